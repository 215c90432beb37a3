package services

import (
	"github.com/okaya/campusgate/internal/config"
)

// gradeFor maps a total mark to a letter grade using the configured cut
// table. The table is ordered highest cut first and always ends at zero, so
// the walk is total: the same inputs and table always produce the same
// letter.
func gradeFor(table config.GradingConfig, total, max int) string {
	if max <= 0 {
		return ""
	}

	percent := float64(total) * 100 / float64(max)
	for _, cut := range table.Cuts {
		if percent >= cut.MinPercent {
			return cut.Grade
		}
	}

	// The validated table ends at a zero cut; reaching here means the
	// table was empty.
	return ""
}
