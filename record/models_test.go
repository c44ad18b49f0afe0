package record

import "testing"

func TestResolveStageCategory(t *testing.T) {
	cases := []struct {
		stage string
		want  StageCategory
	}{
		{"Closed Won", StageClosedWon},
		{"closed won", StageClosedWon},
		{"  Closed Lost ", StageClosedLost},
		{"At Risk", StageAtRisk},
		{"Renewal At Risk", StageAtRisk},
		{"Negotiation", StageOpen},
		{"", StageOpen},
	}
	for _, tc := range cases {
		if got := ResolveStageCategory(tc.stage); got != tc.want {
			t.Errorf("ResolveStageCategory(%q) = %s, want %s", tc.stage, got, tc.want)
		}
	}
}

func TestStageNamesFor(t *testing.T) {
	names := stageNamesFor(StageAtRisk)
	if len(names) != 2 {
		t.Fatalf("expected 2 at-risk stage names, got %v", names)
	}
	if names[0] != "at risk" || names[1] != "renewal at risk" {
		t.Fatalf("expected sorted at-risk names, got %v", names)
	}
}
