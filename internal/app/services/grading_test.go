package services

import (
	"testing"

	"github.com/okaya/campusgate/internal/config"
)

func TestGradeFor(t *testing.T) {
	table := config.DefaultGrading()

	tests := []struct {
		name  string
		total int
		max   int
		want  string
	}{
		{"full marks", 200, 200, "A+"},
		{"exact A+ cut", 180, 200, "A+"},
		{"just below A+ cut", 179, 200, "A"},
		{"mid table", 130, 200, "B"},
		{"exact pass cut", 66, 200, "D"},
		{"fail", 60, 200, "F"},
		{"zero marks", 0, 200, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeFor(table, tt.total, tt.max); got != tt.want {
				t.Errorf("gradeFor(%d/%d) = %q, want %q", tt.total, tt.max, got, tt.want)
			}
		})
	}
}

func TestGradeForDegenerateInputs(t *testing.T) {
	if got := gradeFor(config.GradingConfig{}, 100, 200); got != "" {
		t.Errorf("gradeFor with empty table = %q, want empty", got)
	}
	if got := gradeFor(config.DefaultGrading(), 100, 0); got != "" {
		t.Errorf("gradeFor with zero max = %q, want empty", got)
	}
}

func TestGradeForIsDeterministic(t *testing.T) {
	table := config.DefaultGrading()
	first := gradeFor(table, 131, 200)
	for i := 0; i < 10; i++ {
		if got := gradeFor(table, 131, 200); got != first {
			t.Fatalf("gradeFor varied across calls: %q then %q", first, got)
		}
	}
}
