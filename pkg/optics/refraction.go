package optics

import "math"

// RefractiveIndex is an absolute refractive index as a function of wavelength
type RefractiveIndex interface {
	At(wavelength float64) float64
}

// ConstantIndex is a wavelength-independent refractive index
type ConstantIndex struct {
	Index float64
}

// At implements the RefractiveIndex interface
func (r ConstantIndex) At(wavelength float64) float64 {
	return r.Index
}

// Cauchy2 is the two-term Cauchy equation n(λ) = a + b/λ²:
// https://en.wikipedia.org/wiki/Cauchy%27s_equation
type Cauchy2 struct {
	A float64
	B float64 // m²
}

// At implements the RefractiveIndex interface
func (r Cauchy2) At(wavelength float64) float64 {
	return r.A + r.B/(wavelength*wavelength)
}

// Cauchy4 is the four-term Cauchy equation n(λ) = a + b/λ² + c/λ⁴ + d/λ⁶
type Cauchy4 struct {
	A float64
	B float64 // m²
	C float64 // m⁴
	D float64 // m⁶
}

// At implements the RefractiveIndex interface
func (r Cauchy4) At(wavelength float64) float64 {
	w2 := wavelength * wavelength
	w4 := w2 * w2
	return r.A + r.B/w2 + r.C/w4 + r.D/(w4*w2)
}

// Vacuum returns the refractive index of vacuum
func Vacuum() RefractiveIndex {
	return ConstantIndex{Index: 1}
}

// Water returns the refractive index of water after Bashkatov & Genina,
// "Water refractive index in dependence on temperature and wavelength:
// a simple approximation" (2003), https://doi.org/10.1117/12.518857
func Water() RefractiveIndex {
	return Cauchy4{A: 1.3199, B: 6878e-18, C: -1.132e-27, D: 1.11e-40}
}

// FusedQuartz returns the refractive index of fused quartz:
// https://en.wikipedia.org/wiki/Fused_quartz
func FusedQuartz() RefractiveIndex {
	return Cauchy2{A: 1.4580, B: 3.54e-15}
}

// RelativeRefractiveIndex pairs the absolute indices on the two sides of a
// dielectric interface: https://en.wikipedia.org/wiki/Refractive_index
type RelativeRefractiveIndex struct {
	Incident  float64 // Absolute index of the medium the ray arrives from
	Refracted float64 // Absolute index of the medium past the interface
}

// Ratio returns the relative index nᵢ/nᵣ
func (r RelativeRefractiveIndex) Ratio() float64 {
	return r.Incident / r.Refracted
}

// Reflectance returns Schlick's approximation of the Fresnel reflectance:
// https://en.wikipedia.org/wiki/Schlick%27s_approximation
func (r RelativeRefractiveIndex) Reflectance(cosTheta1 float64) float64 {
	r0 := (r.Incident - r.Refracted) / (r.Incident + r.Refracted)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosTheta1, 5)
}
