package models

import (
	"sort"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestFundamentalSnapshot_Ratio(t *testing.T) {
	snapshot := &FundamentalSnapshot{
		GrossMargin: floatPtr(62.5),
		ROE:         floatPtr(21.0),
		PERatio:     floatPtr(0),
	}

	tests := []struct {
		name      string
		key       string
		want      float64
		wantFound bool
	}{
		{"present metric", MetricGrossMargin, 62.5, true},
		{"another present metric", MetricROE, 21.0, true},
		{"present zero is not missing", MetricPERatio, 0, true},
		{"absent metric", MetricFCFMargin, 0, false},
		{"unknown key", "shoe_size", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := snapshot.Ratio(tt.key)
			if found != tt.wantFound {
				t.Errorf("Ratio(%q) found = %v, want %v", tt.key, found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("Ratio(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestFundamentalSnapshot_RatioNilReceiver(t *testing.T) {
	var snapshot *FundamentalSnapshot
	if _, found := snapshot.Ratio(MetricROE); found {
		t.Error("Ratio() on nil snapshot should find nothing")
	}
}

func TestKnownMetric(t *testing.T) {
	for _, key := range MetricKeys() {
		if !KnownMetric(key) {
			t.Errorf("KnownMetric(%q) = false, want true", key)
		}
	}
	if KnownMetric("market_cap") {
		t.Error("KnownMetric(market_cap) = true, want false: money fields are not ratio metrics")
	}
}

func TestMetricKeys_SortedAndComplete(t *testing.T) {
	keys := MetricKeys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("MetricKeys() = %v, want sorted", keys)
	}
	if len(keys) != len(ratioFields) {
		t.Errorf("MetricKeys() returned %d keys, want %d", len(keys), len(ratioFields))
	}
}
