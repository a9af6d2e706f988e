package rimage

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestDecodeElevation(t *testing.T) {
	grid, err := NewElevationGrid(3, 2, []float64{1, 2, 3, 4, 5, 6.5})
	test.That(t, err, test.ShouldBeNil)

	payload := EncodeElevation(grid)
	test.That(t, payload, test.ShouldHaveLength, 48)

	decoded, err := DecodeElevation(3, 2, ElevationEncoding, payload)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded.Width(), test.ShouldEqual, 3)
	test.That(t, decoded.Height(), test.ShouldEqual, 2)
	test.That(t, decoded.At(0, 0), test.ShouldEqual, 1.)
	test.That(t, decoded.At(2, 0), test.ShouldEqual, 3.)
	test.That(t, decoded.At(2, 1), test.ShouldEqual, 6.5)

	t.Run("little endian", func(t *testing.T) {
		// 1.0 is 0x3ff0000000000000
		one := []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}
		g, err := DecodeElevation(1, 1, "", one)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.At(0, 0), test.ShouldEqual, 1.)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeElevation(3, 2, ElevationEncoding, payload[:40])
		test.That(t, err, test.ShouldNotBeNil)
		var malformed *MalformedGridError
		test.That(t, errors.As(err, &malformed), test.ShouldBeTrue)
		test.That(t, malformed.Got, test.ShouldEqual, 40)
		test.That(t, malformed.Want, test.ShouldEqual, 48)

		_, err = NewElevationGrid(2, 2, []float64{1, 2, 3})
		test.That(t, errors.As(err, &malformed), test.ShouldBeTrue)

		_, err = DecodeElevation(0, 2, ElevationEncoding, nil)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("encoding", func(t *testing.T) {
		_, err := DecodeElevation(3, 2, "rgb8", payload)
		var unsupported *UnsupportedEncodingError
		test.That(t, errors.As(err, &unsupported), test.ShouldBeTrue)
		test.That(t, unsupported.Encoding, test.ShouldEqual, "rgb8")
	})
}

func TestDynamicRange(t *testing.T) {
	grid, err := NewElevationGrid(2, 2, []float64{-3, 7, 2, 0})
	test.That(t, err, test.ShouldBeNil)
	minZ, maxZ, err := grid.DynamicRange()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, minZ, test.ShouldEqual, -3.)
	test.That(t, maxZ, test.ShouldEqual, 7.)

	grid, err = NewElevationGrid(2, 2, []float64{math.NaN(), 7, 2, math.NaN()})
	test.That(t, err, test.ShouldBeNil)
	minZ, maxZ, err = grid.DynamicRange()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, minZ, test.ShouldEqual, 2.)
	test.That(t, maxZ, test.ShouldEqual, 7.)

	grid, err = NewElevationGrid(2, 1, []float64{4, 4})
	test.That(t, err, test.ShouldBeNil)
	_, _, err = grid.DynamicRange()
	var degenerate *DegenerateRangeError
	test.That(t, errors.As(err, &degenerate), test.ShouldBeTrue)
	test.That(t, degenerate.Value, test.ShouldEqual, 4.)
}
