package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrNoView is returned by NewScene when no viewport binding is given or
	// the viewport has no area.
	ErrNoView = errors.New("canvas: scene requires a view with positive size")

	// ErrDuplicateID is reported to the warning handler when CreateObject is
	// called with an identity that is already registered.
	ErrDuplicateID = errors.New("canvas: duplicate object id")

	// ErrUnresolvedCollider means the tag index names an object that the
	// directory no longer resolves. The directory and tag index are out of sync.
	ErrUnresolvedCollider = errors.New("canvas: tagged object not in directory")
)

// DuplicateIDError carries the identity of a rejected duplicate creation.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("canvas: duplicate object id %q", e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// ColliderError describes a collision match that could not be resolved back
// to a registered object.
type ColliderError struct {
	Self    string
	Tag     string
	OtherID string
}

func (e *ColliderError) Error() string {
	return fmt.Sprintf("canvas: sweep of %q for tag %q matched %q which is not registered",
		e.Self, e.Tag, e.OtherID)
}

func (e *ColliderError) Unwrap() error { return ErrUnresolvedCollider }
