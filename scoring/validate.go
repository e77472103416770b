package scoring

import (
	"fmt"
	"sort"

	"github.com/halftime-club/paddock-predict/models"
)

// ValidationError describes why a result set cannot be trusted as scoring
// input. Reason is surfaced to the end user verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateResults checks one (race, result type) group for structural
// integrity: no duplicate positions, and positions form the contiguous
// sequence 1..N. The first failure wins. A rider appearing twice at two
// different positions is deliberately not rejected here.
func ValidateResults(results []models.RaceResult) error {
	positions := make([]int, 0, len(results))
	seen := make(map[int]bool, len(results))
	for _, r := range results {
		if seen[r.Position] {
			return &ValidationError{Reason: "Duplicate positions found in results"}
		}
		seen[r.Position] = true
		positions = append(positions, r.Position)
	}

	sort.Ints(positions)
	for i, pos := range positions {
		if pos != i+1 {
			return &ValidationError{Reason: fmt.Sprintf("Missing position %d in results", i+1)}
		}
	}
	return nil
}
