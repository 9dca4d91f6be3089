package advanced

import (
	"github.com/osuushi/chamfer/internal"
	"github.com/pkg/errors"
)

// Errors returned by this package wrap one of these, so callers can test for
// them with errors.Is.
var (
	// ErrInvalidMask reports a malformed weight configuration. Retrying with
	// the same arguments fails the same way.
	ErrInvalidMask = errors.New("invalid chamfer mask")

	// ErrUnknownMask reports a label that is not in a catalog.
	ErrUnknownMask = errors.New("unknown chamfer mask")

	// ErrInvalidOffset reports a weight lookup for an offset the mask does
	// not contain.
	ErrInvalidOffset = errors.New("offset not in chamfer mask")

	// ErrDimensionMismatch reports grids of inconsistent shapes, or a mask
	// whose dimension does not match the engine.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrMarkerOutOfMask reports a marker outside the allowed region, when the
	// engine was configured to reject those.
	ErrMarkerOutOfMask = errors.New("marker outside of mask")
)

// HandlePanicRecover converts the recovered value of a panic raised during
// mask validation into an error. Any other panic is re-raised.
func HandlePanicRecover(r interface{}) error {
	return internal.HandlePanicRecover(r)
}
