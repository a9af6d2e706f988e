package rimage

import (
	"fmt"
)

// MalformedGridError is returned when a grid payload does not hold exactly width*height cells.
type MalformedGridError struct {
	Width, Height int
	Got, Want     int
}

// NewMalformedGridError returns an error describing a payload of the wrong size.
func NewMalformedGridError(width, height, got, want int) error {
	return &MalformedGridError{Width: width, Height: height, Got: got, Want: want}
}

func (e *MalformedGridError) Error() string {
	return fmt.Sprintf("malformed %dx%d grid: payload has %d bytes, want %d", e.Width, e.Height, e.Got, e.Want)
}

// DegenerateRangeError is returned when every cell of an elevation grid has the same height, so
// there is no dynamic range to normalize over.
type DegenerateRangeError struct {
	Value float64
}

// NewDegenerateRangeError returns an error for a flat grid at the given height.
func NewDegenerateRangeError(value float64) error {
	return &DegenerateRangeError{Value: value}
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("elevation grid is flat at %v, no dynamic range", e.Value)
}

// UnsupportedEncodingError is returned for image encodings that cannot be decoded as a grid.
type UnsupportedEncodingError struct {
	Encoding string
}

// NewUnsupportedEncodingError returns an error for an unknown encoding tag.
func NewUnsupportedEncodingError(encoding string) error {
	return &UnsupportedEncodingError{Encoding: encoding}
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported image encoding %q", e.Encoding)
}
