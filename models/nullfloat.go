package models

import (
	"encoding/json"
	"math"
)

// NullFloat represents a float64 that may be undefined, following the
// database/sql convention. Undefined values marshal to JSON null so NaN
// and Inf never reach serialized output.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float wraps v in a valid NullFloat. NaN and infinite values come back
// invalid instead.
func Float(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return NullFloat{Float64: v, Valid: true}
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}
