// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestSurveyConfigYears(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"ascending range", 1989, 1992, []int{1989, 1990, 1991, 1992}},
		{"single year", 2019, 2019, []int{2019}},
		{"inverted range is empty", 2001, 2000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SurveyConfig{YearFrom: tt.from, YearTo: tt.to}
			got := cfg.Years()
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Years()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSurveyConfigLabels(t *testing.T) {
	cfg := SurveyConfig{Techniques: []Technique{
		{Fragment: "arterial spin label*", Label: "Arterial spin labeling"},
		{Fragment: "(T1 mapping OR T2 mapping)", Label: "T1&T2 mapping"},
	}}
	got := cfg.Labels()
	want := []string{"Arterial spin labeling", "T1&T2 mapping"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Survey.Techniques) != 4 {
		t.Errorf("default techniques = %d, want 4", len(cfg.Survey.Techniques))
	}
	if len(cfg.Survey.Labels()) != len(cfg.Survey.Techniques) {
		t.Errorf("labels and techniques differ in length")
	}
	if got := len(cfg.Survey.Years()); got != 32 {
		t.Errorf("default year range covers %d years, want 32", got)
	}
	if cfg.Survey.MaxRequestsPerSecond <= 0 {
		t.Error("default request ceiling must be positive")
	}
	// The study default ships without an email: NCBI requires each user
	// to configure a real contact address.
	if cfg.Entrez.Email != "" {
		t.Errorf("default email = %q, want empty", cfg.Entrez.Email)
	}
}
