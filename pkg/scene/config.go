package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/eigenein/raytracer/pkg/core"
	"github.com/eigenein/raytracer/pkg/geometry"
	"github.com/eigenein/raytracer/pkg/optics"
)

// Document is the declarative scene description as read from a file.
// It deserializes from JSON or YAML and compiles into a Scene
type Document struct {
	Camera           CameraConfig    `json:"camera" yaml:"camera" jsonschema:"required"`
	AmbientEmittance *PropertyConfig `json:"ambient_emittance,omitempty" yaml:"ambient_emittance"`
	Surfaces         []SurfaceConfig `json:"surfaces" yaml:"surfaces"`
}

// CameraConfig describes the camera placement
type CameraConfig struct {
	Location    [3]float64 `json:"location" yaml:"location" jsonschema:"required"`
	LookAt      [3]float64 `json:"look_at" yaml:"look_at" jsonschema:"required"`
	Up          [3]float64 `json:"up" yaml:"up" jsonschema:"required"`
	VerticalFOV float64    `json:"vertical_fov" yaml:"vertical_fov" jsonschema:"required"`
}

// SurfaceConfig is a tagged surface variant: Sphere, Triangle or UniformFog
type SurfaceConfig struct {
	Type string `json:"type" yaml:"type" jsonschema:"enum=Sphere,enum=Triangle,enum=UniformFog"`

	// Sphere
	Center *[3]float64 `json:"center,omitempty" yaml:"center"`
	Radius *float64    `json:"radius,omitempty" yaml:"radius"`

	// Triangle
	Vertices *[3][3]float64 `json:"vertices,omitempty" yaml:"vertices"`

	// UniformFog
	AABB    *AABBConfig `json:"aabb,omitempty" yaml:"aabb"`
	Density *float64    `json:"density,omitempty" yaml:"density"`

	Material MaterialConfig `json:"material" yaml:"material"`
}

// AABBConfig describes an axis-aligned box. Both corners set to
// ±infinite values denote an unbounded box; JSON has no infinity
// literal, so omitting the corners entirely also means unbounded
type AABBConfig struct {
	Min *[3]float64 `json:"min,omitempty" yaml:"min"`
	Max *[3]float64 `json:"max,omitempty" yaml:"max"`
}

// MaterialConfig describes the optical material of a surface
type MaterialConfig struct {
	Reflectance   *ReflectanceConfig   `json:"reflectance,omitempty" yaml:"reflectance"`
	Transmittance *TransmittanceConfig `json:"transmittance,omitempty" yaml:"transmittance"`
	Emittance     *PropertyConfig      `json:"emittance,omitempty" yaml:"emittance"`
}

// ReflectanceConfig describes how a surface reflects light
type ReflectanceConfig struct {
	Attenuation *PropertyConfig `json:"attenuation,omitempty" yaml:"attenuation"`
	Fuzz        *float64        `json:"fuzz,omitempty" yaml:"fuzz" jsonschema:"minimum=0,maximum=1"`
	Diffusion   *float64        `json:"diffusion,omitempty" yaml:"diffusion" jsonschema:"minimum=0,maximum=1"`
}

// TransmittanceConfig describes a dielectric body
type TransmittanceConfig struct {
	IncidentIndex          *RefractiveIndexConfig `json:"incident_index,omitempty" yaml:"incident_index"`
	RefractedIndex         *RefractiveIndexConfig `json:"refracted_index,omitempty" yaml:"refracted_index"`
	AttenuationCoefficient *PropertyConfig        `json:"attenuation_coefficient,omitempty" yaml:"attenuation_coefficient"`
}

// PropertyConfig is a tagged spectral property variant
type PropertyConfig struct {
	Type string `json:"type" yaml:"type" jsonschema:"enum=Constant,enum=Lorentzian,enum=BlackBody,enum=Sum,enum=Water"`

	// Constant, under any of its aliases
	Intensity *float64 `json:"intensity,omitempty" yaml:"intensity"`
	Radiance  *float64 `json:"radiance,omitempty" yaml:"radiance"`
	Density   *float64 `json:"density,omitempty" yaml:"density"`

	// Lorentzian
	Max                    *float64 `json:"max,omitempty" yaml:"max"`
	MaximumAt              *float64 `json:"maximum_at,omitempty" yaml:"maximum_at" jsonschema:"description=Wavelength of the maximum in meters"`
	FullWidthAtHalfMaximum *float64 `json:"full_width_at_half_maximum,omitempty" yaml:"full_width_at_half_maximum"`

	// BlackBody
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature" jsonschema:"description=Kelvins"`

	// BlackBody and Water
	Scale *float64 `json:"scale,omitempty" yaml:"scale"`

	// Sum
	Spectra []PropertyConfig `json:"spectra,omitempty" yaml:"spectra"`
}

// RefractiveIndexConfig is a tagged refractive index variant
type RefractiveIndexConfig struct {
	Type string `json:"type" yaml:"type" jsonschema:"enum=Constant,enum=Cauchy2,enum=Cauchy4,enum=Water,enum=FusedQuartz"`

	// Constant
	Index *float64 `json:"index,omitempty" yaml:"index"`

	// Cauchy coefficients
	A *float64 `json:"a,omitempty" yaml:"a"`
	B *float64 `json:"b,omitempty" yaml:"b"`
	C *float64 `json:"c,omitempty" yaml:"c"`
	D *float64 `json:"d,omitempty" yaml:"d"`
}

// Load reads and compiles a scene document. The format is chosen by the
// file extension: .yaml/.yml for YAML, anything else for JSON
func Load(path string) (*Scene, error) {
	buffer, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}

	var document Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buffer, &document)
	default:
		err = json.Unmarshal(buffer, &document)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse the scene from %q", path)
	}

	scene, err := document.Compile()
	return scene, errors.Wrapf(err, "invalid scene in %q", path)
}

// Compile validates the document and converts it into engine types
func (d *Document) Compile() (*Scene, error) {
	if d.Camera.Up == ([3]float64{}) {
		return nil, errors.New("camera: up must be a non-zero vector")
	}
	if d.Camera.VerticalFOV <= 0 || d.Camera.VerticalFOV >= 180 {
		return nil, errors.Errorf("camera: vertical_fov must lie in (0, 180), got %v", d.Camera.VerticalFOV)
	}
	if d.Camera.Location == d.Camera.LookAt {
		return nil, errors.New("camera: location and look_at must differ")
	}

	ambient := optics.Property(optics.Constant{Intensity: 0})
	if d.AmbientEmittance != nil {
		compiled, err := d.AmbientEmittance.Compile()
		if err != nil {
			return nil, errors.Wrap(err, "ambient_emittance")
		}
		ambient = compiled
	}

	surfaces := make([]geometry.Surface, 0, len(d.Surfaces))
	for i, config := range d.Surfaces {
		surface, err := config.Compile()
		if err != nil {
			return nil, errors.Wrapf(err, "surfaces[%d]", i)
		}
		surfaces = append(surfaces, surface)
	}

	return &Scene{
		Camera: Camera{
			Location:    vec3(d.Camera.Location),
			LookAt:      vec3(d.Camera.LookAt),
			Up:          vec3(d.Camera.Up),
			VerticalFOV: d.Camera.VerticalFOV,
		},
		AmbientEmittance: ambient,
		Surfaces:         surfaces,
	}, nil
}

// Compile converts the surface variant into a geometry surface
func (c *SurfaceConfig) Compile() (geometry.Surface, error) {
	material, err := c.Material.Compile()
	if err != nil {
		return nil, errors.Wrap(err, "material")
	}

	switch c.Type {
	case "Sphere":
		if c.Center == nil || c.Radius == nil {
			return nil, errors.New("a sphere needs center and radius")
		}
		if *c.Radius <= 0 {
			return nil, errors.Errorf("radius must be positive, got %v", *c.Radius)
		}
		return geometry.NewSphere(vec3(*c.Center), *c.Radius, material), nil

	case "Triangle":
		if c.Vertices == nil {
			return nil, errors.New("a triangle needs vertices")
		}
		return geometry.NewTriangle(
			vec3(c.Vertices[0]), vec3(c.Vertices[1]), vec3(c.Vertices[2]), material), nil

	case "UniformFog":
		if c.Density == nil || *c.Density <= 0 {
			return nil, errors.New("a fog needs a positive density")
		}
		bounds := core.UnboundedAABB()
		if c.AABB != nil && c.AABB.Min != nil && c.AABB.Max != nil {
			bounds = core.NewAABB(vec3(*c.AABB.Min), vec3(*c.AABB.Max))
			if !bounds.IsValid() {
				return nil, errors.New("fog aabb must satisfy min <= max")
			}
		}
		return geometry.NewUniformFog(bounds, *c.Density, material), nil

	default:
		return nil, errors.Errorf("unknown surface type %q", c.Type)
	}
}

// Compile converts the material description into engine optics
func (c *MaterialConfig) Compile() (*optics.Material, error) {
	material := &optics.Material{}

	if c.Reflectance != nil {
		attenuation := optics.Property(optics.Constant{Intensity: 1})
		if c.Reflectance.Attenuation != nil {
			compiled, err := c.Reflectance.Attenuation.Compile()
			if err != nil {
				return nil, errors.Wrap(err, "reflectance.attenuation")
			}
			attenuation = compiled
		}
		if err := checkUnitInterval(c.Reflectance.Fuzz, "reflectance.fuzz"); err != nil {
			return nil, err
		}
		if err := checkUnitInterval(c.Reflectance.Diffusion, "reflectance.diffusion"); err != nil {
			return nil, err
		}
		material.Reflectance = &optics.Reflectance{
			Attenuation: attenuation,
			Fuzz:        c.Reflectance.Fuzz,
			Diffusion:   c.Reflectance.Diffusion,
		}
	}

	if c.Transmittance != nil {
		incident, err := compileIndex(c.Transmittance.IncidentIndex, "transmittance.incident_index")
		if err != nil {
			return nil, err
		}
		refracted, err := compileIndex(c.Transmittance.RefractedIndex, "transmittance.refracted_index")
		if err != nil {
			return nil, err
		}
		transmittance := &optics.Transmittance{
			IncidentIndex:  incident,
			RefractedIndex: refracted,
		}
		if c.Transmittance.AttenuationCoefficient != nil {
			coefficient, err := c.Transmittance.AttenuationCoefficient.Compile()
			if err != nil {
				return nil, errors.Wrap(err, "transmittance.attenuation_coefficient")
			}
			transmittance.AttenuationCoefficient = coefficient
		}
		material.Transmittance = transmittance
	}

	if c.Emittance != nil {
		emittance, err := c.Emittance.Compile()
		if err != nil {
			return nil, errors.Wrap(err, "emittance")
		}
		material.Emittance = emittance
	}

	return material, nil
}

// Compile converts the property variant into an optics property
func (c *PropertyConfig) Compile() (optics.Property, error) {
	switch c.Type {
	case "Constant":
		intensity := 1.0
		for _, alias := range []*float64{c.Intensity, c.Radiance, c.Density} {
			if alias != nil {
				intensity = *alias
				break
			}
		}
		return optics.Constant{Intensity: intensity}, nil

	case "Lorentzian":
		if c.Max == nil || c.MaximumAt == nil || c.FullWidthAtHalfMaximum == nil {
			return nil, errors.New("a Lorentzian needs max, maximum_at and full_width_at_half_maximum")
		}
		return optics.Lorentzian{
			Max:       *c.Max,
			MaximumAt: *c.MaximumAt,
			FWHM:      *c.FullWidthAtHalfMaximum,
		}, nil

	case "BlackBody":
		if c.Temperature == nil || *c.Temperature <= 0 {
			return nil, errors.New("a black body needs a positive temperature")
		}
		scale := 1.0
		if c.Scale != nil {
			scale = *c.Scale
		}
		return optics.BlackBody{Temperature: *c.Temperature, Scale: scale}, nil

	case "Sum":
		spectra := make([]optics.Property, 0, len(c.Spectra))
		for i := range c.Spectra {
			compiled, err := c.Spectra[i].Compile()
			if err != nil {
				return nil, errors.Wrapf(err, "spectra[%d]", i)
			}
			spectra = append(spectra, compiled)
		}
		return optics.Sum{Spectra: spectra}, nil

	case "Water":
		scale := 1.0
		if c.Scale != nil {
			scale = *c.Scale
		}
		return optics.WaterAbsorption{Scale: scale}, nil

	default:
		return nil, errors.Errorf("unknown property type %q", c.Type)
	}
}

// Compile converts the refractive index variant into engine optics
func (c *RefractiveIndexConfig) Compile() (optics.RefractiveIndex, error) {
	switch c.Type {
	case "Constant":
		if c.Index == nil || *c.Index <= 0 {
			return nil, errors.New("a constant index needs a positive index value")
		}
		return optics.ConstantIndex{Index: *c.Index}, nil

	case "Cauchy2":
		if c.A == nil || c.B == nil {
			return nil, errors.New("Cauchy2 needs coefficients a and b")
		}
		return optics.Cauchy2{A: *c.A, B: *c.B}, nil

	case "Cauchy4":
		if c.A == nil || c.B == nil || c.C == nil || c.D == nil {
			return nil, errors.New("Cauchy4 needs coefficients a, b, c and d")
		}
		return optics.Cauchy4{A: *c.A, B: *c.B, C: *c.C, D: *c.D}, nil

	case "Water":
		return optics.Water(), nil

	case "FusedQuartz":
		return optics.FusedQuartz(), nil

	default:
		return nil, errors.Errorf("unknown refractive index type %q", c.Type)
	}
}

func compileIndex(config *RefractiveIndexConfig, field string) (optics.RefractiveIndex, error) {
	if config == nil {
		// Vacuum by default
		return optics.Vacuum(), nil
	}
	index, err := config.Compile()
	return index, errors.Wrap(err, field)
}

func checkUnitInterval(value *float64, field string) error {
	if value != nil && (*value < 0 || *value > 1) {
		return errors.Errorf("%s must lie in [0, 1], got %v", field, *value)
	}
	return nil
}

func vec3(values [3]float64) core.Vec3 {
	return core.NewVec3(values[0], values[1], values[2])
}
