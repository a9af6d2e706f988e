package scene

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingRasterError is returned when an overlay update arrives before any DEM has been committed.
// The update is kept and drawn once a raster exists.
type MissingRasterError struct {
	Overlay OverlayKind
}

// NewMissingRasterError returns a MissingRasterError for the given overlay.
func NewMissingRasterError(overlay OverlayKind) error {
	return &MissingRasterError{Overlay: overlay}
}

func (e *MissingRasterError) Error() string {
	return fmt.Sprintf("no raster committed yet, %s overlay deferred", e.Overlay)
}

// IsMissingRasterError reports whether err is or wraps a MissingRasterError.
func IsMissingRasterError(err error) bool {
	var missing *MissingRasterError
	return errors.As(err, &missing)
}
