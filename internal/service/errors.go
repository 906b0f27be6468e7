package service

import (
	"errors"
	"fmt"
)

// NotFoundError reports ids that do not exist or are not visible to the
// viewer. Batch operations collect every offending id before failing so the
// caller gets the full list at once.
type NotFoundError struct {
	Kind string
	IDs  []uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Kind, e.IDs)
}

// AsNotFound unwraps err into a NotFoundError, if it is one.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

var (
	ErrAlreadyFavorite    = errors.New("already in favorites")
	ErrNotFavorite        = errors.New("not in favorites")
	ErrAlreadyParticipant = errors.New("already a participant")
	ErrNotParticipant     = errors.New("not a participant")
	ErrAlreadyApplied     = errors.New("proposal already submitted")
	ErrOwnItem            = errors.New("own items cannot be engaged with")
)
