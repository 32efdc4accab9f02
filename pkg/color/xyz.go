package color

import (
	"fmt"
	"math"
)

// Visible spectrum covered by the matching-function table, meters
const (
	MinWavelength = 360e-9
	MaxWavelength = 830e-9
)

// tableSize covers [360 nm, 830 nm] at 1 nm steps
const tableSize = 471

// XYZ is an additive tristimulus color:
// https://en.wikipedia.org/wiki/CIE_1931_color_space#Tristimulus_values
type XYZ struct {
	X, Y, Z float64
}

// wavelengthToXYZ holds the color matching functions sampled at 1 nm,
// built once at startup from the analytic lobe fit
var wavelengthToXYZ [tableSize]XYZ

func init() {
	for i := range wavelengthToXYZ {
		nanos := float64(360 + i)
		wavelengthToXYZ[i] = XYZ{
			X: xBar(nanos),
			Y: yBar(nanos),
			Z: zBar(nanos),
		}
	}
}

// lobe is a piecewise Gaussian with separate widths on each side of the mean
func lobe(nanos, mean, widthLeft, widthRight float64) float64 {
	width := widthLeft
	if nanos >= mean {
		width = widthRight
	}
	x := (nanos - mean) / width
	return math.Exp(-0.5 * x * x)
}

// Analytic fits to the CIE color matching functions after
// Wyman, Sloan & Shirley, "Simple Analytic Approximations to the
// CIE XYZ Color Matching Functions" (JCGT, 2013)
func xBar(nanos float64) float64 {
	return 1.056*lobe(nanos, 599.8, 37.9, 31.0) +
		0.362*lobe(nanos, 442.0, 16.0, 26.7) -
		0.065*lobe(nanos, 501.1, 20.4, 26.2)
}

func yBar(nanos float64) float64 {
	return 0.821*lobe(nanos, 568.8, 46.9, 40.5) +
		0.286*lobe(nanos, 530.9, 16.3, 31.1)
}

func zBar(nanos float64) float64 {
	return 1.217*lobe(nanos, 437.0, 11.8, 36.0) +
		0.681*lobe(nanos, 459.0, 26.0, 13.8)
}

// FromWavelength converts a spectral line at the given wavelength (meters)
// to its XYZ tristimulus value, interpolating adjacent table entries.
// The wavelength must lie within [MinWavelength, MaxWavelength].
func FromWavelength(wavelength float64) XYZ {
	nanos := wavelength / 1e-9
	if !(nanos >= 360 && nanos <= 360+tableSize-1) {
		panic(fmt.Sprintf("wavelength out of the table range: %v m", wavelength))
	}

	// The last table entry is reached as the end of the last interval
	index := min(int(nanos)-360, tableSize-2)
	fraction := nanos - float64(360+index)
	lower, upper := wavelengthToXYZ[index], wavelengthToXYZ[index+1]
	return XYZ{
		X: (1-fraction)*lower.X + fraction*upper.X,
		Y: (1-fraction)*lower.Y + fraction*upper.Y,
		Z: (1-fraction)*lower.Z + fraction*upper.Z,
	}
}

// Add returns the sum of two XYZ colors
func (c XYZ) Add(other XYZ) XYZ {
	return XYZ{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Scale returns the color multiplied by a scalar
func (c XYZ) Scale(factor float64) XYZ {
	return XYZ{X: c.X * factor, Y: c.Y * factor, Z: c.Z * factor}
}

// MaxComponent returns the largest of the three components
func (c XYZ) MaxComponent() float64 {
	return math.Max(c.X, math.Max(c.Y, c.Z))
}

// IsFinite returns true if all components are finite
func (c XYZ) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0) &&
		!math.IsNaN(c.Z) && !math.IsInf(c.Z, 0)
}
