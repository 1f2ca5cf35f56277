package level

import (
	"errors"
	"fmt"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the invariants every stored level must satisfy:
//   - square, non-empty grid
//   - start and goal tiles where the level says they are
//   - a route from start to goal
//   - a move budget that covers the shortest route
//   - stars within [0, MaxStars]
func Validate(l Level) error {
	if l.Grid.Rows() == 0 || l.Grid.Rows() != l.Grid.Cols() {
		return ValidationError{
			Code:    "BAD_GRID",
			Message: fmt.Sprintf("level %d: grid is %dx%d", l.ID, l.Grid.Rows(), l.Grid.Cols()),
		}
	}
	for r := range l.Grid {
		if len(l.Grid[r]) != l.Grid.Cols() {
			return ValidationError{
				Code:    "BAD_GRID",
				Message: fmt.Sprintf("level %d: row %d is ragged", l.ID, r),
			}
		}
	}

	if !l.Grid.InBounds(l.Start) || l.Grid.At(l.Start).Type != TileStart {
		return ValidationError{
			Code:    "BAD_START",
			Message: fmt.Sprintf("level %d: no start tile at %s", l.ID, l.Start),
		}
	}
	if !l.Grid.InBounds(l.Goal) || l.Grid.At(l.Goal).Type != TileGoal {
		return ValidationError{
			Code:    "BAD_GOAL",
			Message: fmt.Sprintf("level %d: no goal tile at %s", l.ID, l.Goal),
		}
	}

	shortest := ShortestPathLength(l.Grid, l.Start, l.Goal)
	if shortest < 0 {
		return ValidationError{
			Code:    "NOT_SOLVABLE",
			Message: fmt.Sprintf("level %d: goal unreachable from start", l.ID),
		}
	}
	if l.MoveBudget < shortest {
		return ValidationError{
			Code:    "BUDGET_TOO_SMALL",
			Message: fmt.Sprintf("level %d: budget %d < shortest path %d", l.ID, l.MoveBudget, shortest),
		}
	}

	if l.Stars < 0 || l.Stars > MaxStars {
		return ValidationError{
			Code:    "BAD_STARS",
			Message: fmt.Sprintf("level %d: %d stars", l.ID, l.Stars),
		}
	}
	return nil
}

// IsValidationCode reports whether err is a ValidationError with the code.
func IsValidationCode(err error, code string) bool {
	var ve ValidationError
	return errors.As(err, &ve) && ve.Code == code
}
