package keeper

import "fmt"

// ErrorCode is the outcome of a discrete command.
type ErrorCode int

// Command outcomes. Planning failures are reported here rather than as Go
// errors; there is no retry.
const (
	Success ErrorCode = iota
	PlanningFailed
	OutOfRange
)

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "success"
	case PlanningFailed:
		return "planning_failed"
	case OutOfRange:
		return "out_of_range"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// MarshalJSON encodes the code as its string form.
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}
