package readtime

import (
	"math"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    string
	}{
		{"zero", 0, "0 sec"},
		{"half a minute", 0.5, "30 sec"},
		{"sub-minute rounds to nearest second", 0.23, "14 sec"},
		{"half-second tie rounds up", 0.375, "23 sec"},
		{"just under a minute carries to one minute", 0.9999, "1 min"},
		{"exactly one minute", 1, "1 min"},
		{"minute and a half", 1.5, "1 min 30 sec"},
		{"whole minutes omit seconds", 12, "12 min"},
		{"minutes with seconds", 30.25, "30 min 15 sec"},
		{"seconds carry into the next minute", 2.9999, "3 min"},
		{"just under an hour carries to an hour", 59.9999, "1h 0m"},
		{"exactly one hour", 60, "1h 0m"},
		{"hour and one minute", 61, "1h 1m"},
		{"hours round remainder minutes", 90.4, "1h 30m"},
		{"minutes carry into the next hour", 119.6, "2h 0m"},
		{"negative clamps to zero", -3, "0 sec"},
		{"NaN clamps to zero", math.NaN(), "0 sec"},
		{"positive infinity clamps to zero", math.Inf(1), "0 sec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.minutes)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestFormatTimes(t *testing.T) {
	a := Analyze(WordCount(600))
	got := FormatTimes(a.Times)

	want := map[string]string{
		"slow":    "4 min",
		"average": "3 min",
		"fast":    "2 min",
		"skim":    "1 min 20 sec",
	}
	for tier, s := range want {
		if got[tier] != s {
			t.Errorf("FormatTimes()[%q] = %q, want %q", tier, got[tier], s)
		}
	}
}
