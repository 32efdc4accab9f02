package optics

// Material is the optical behavior of a surface. All parts are optional:
// a surface with none of them absorbs every ray that hits it.
type Material struct {
	Reflectance   *Reflectance
	Transmittance *Transmittance
	Emittance     Property // Spectral radiance per unit wavelength, nil when absent
}

// Reflectance describes how a surface reflects light
type Reflectance struct {
	// Attenuation scales the reflected intensity per wavelength
	Attenuation Property

	// Fuzz perturbs the specular direction, in [0, 1]. Nil means a perfect mirror
	Fuzz *float64

	// Diffusion is the probability of Lambertian scattering, in [0, 1].
	// Nil disables the diffuse branch
	Diffusion *float64
}

// Transmittance describes a dielectric body that refracts light
type Transmittance struct {
	// IncidentIndex is the absolute refractive index outside the body
	IncidentIndex RefractiveIndex

	// RefractedIndex is the absolute refractive index inside the body
	RefractedIndex RefractiveIndex

	// AttenuationCoefficient drives Beer–Lambert absorption inside the body,
	// in reciprocal meters. Nil means a perfectly clear body:
	// https://en.wikipedia.org/wiki/Attenuation_coefficient
	AttenuationCoefficient Property
}
