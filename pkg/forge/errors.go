package forge

import "fmt"

// InvalidFaceError reports an input face that fails validation
type InvalidFaceError struct {
	Index int
	Err   error
}

func (e *InvalidFaceError) Error() string {
	return fmt.Sprintf("invalid face %d: %v", e.Index, e.Err)
}

func (e *InvalidFaceError) Unwrap() error {
	return e.Err
}

// SubdivisionLimitExceededError reports a face that did not break down into
// right-angled pieces within the depth ceiling
type SubdivisionLimitExceededError struct {
	FaceIndex int
	Depth     int
}

func (e *SubdivisionLimitExceededError) Error() string {
	return fmt.Sprintf("subdivision of face %d exceeded depth %d", e.FaceIndex, e.Depth)
}
