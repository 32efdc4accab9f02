package color

import (
	"image/color"
	"math"
)

// RGB is an sRGB color with channels in [0, 1]
type RGB struct {
	R, G, B float64
}

// BT.709 primaries with D65 white point:
// https://en.wikipedia.org/wiki/SRGB#From_CIE_XYZ_to_sRGB
var xyzToLinearRGB = [3][3]float64{
	{3.2406255, -1.5372080, -0.4986286},
	{-0.9689307, 1.8757561, 0.0415175},
	{0.0557101, -0.2040211, 1.0569959},
}

// ToSRGB converts the XYZ color to gamma-compressed sRGB, clamped to [0, 1]
func (c XYZ) ToSRGB() RGB {
	rgb := RGB{
		R: xyzToLinearRGB[0][0]*c.X + xyzToLinearRGB[0][1]*c.Y + xyzToLinearRGB[0][2]*c.Z,
		G: xyzToLinearRGB[1][0]*c.X + xyzToLinearRGB[1][1]*c.Y + xyzToLinearRGB[1][2]*c.Z,
		B: xyzToLinearRGB[2][0]*c.X + xyzToLinearRGB[2][1]*c.Y + xyzToLinearRGB[2][2]*c.Z,
	}
	return RGB{
		R: clamp01(sRGBTransfer(rgb.R)),
		G: clamp01(sRGBTransfer(rgb.G)),
		B: clamp01(sRGBTransfer(rgb.B)),
	}
}

// sRGBTransfer applies the piecewise sRGB transfer function to a linear channel
func sRGBTransfer(linear float64) float64 {
	if linear <= 0.0031308 {
		return 12.92 * linear
	}
	return 1.055*math.Pow(linear, 1/2.4) - 0.055
}

// ApplyGamma raises every channel to the given power
func (c RGB) ApplyGamma(gamma float64) RGB {
	if gamma == 1 {
		return c
	}
	return RGB{
		R: math.Pow(c.R, gamma),
		G: math.Pow(c.G, gamma),
		B: math.Pow(c.B, gamma),
	}
}

// RGBA64 converts the color to a 16-bit-per-channel image color
func (c RGB) RGBA64() color.RGBA64 {
	return color.RGBA64{
		R: channel16(c.R),
		G: channel16(c.G),
		B: channel16(c.B),
		A: math.MaxUint16,
	}
}

func channel16(value float64) uint16 {
	return uint16(math.Round(clamp01(value) * math.MaxUint16))
}

func clamp01(value float64) float64 {
	return math.Min(1, math.Max(0, value))
}
