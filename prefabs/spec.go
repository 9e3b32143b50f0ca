package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/motion"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func decodeInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// TuningSpec mirrors motion.Tuning. Keys left out of the file keep their
// default values.
type TuningSpec struct {
	Gravity            float64 `yaml:"gravity"`
	RunSpeed           float64 `yaml:"run_speed"`
	GroundDamping      float64 `yaml:"ground_damping"`
	InAirDamping       float64 `yaml:"in_air_damping"`
	JumpHeight         float64 `yaml:"jump_height"`
	MaxFallingSpeed    float64 `yaml:"max_falling_speed"`
	MaxRisingSpeed     float64 `yaml:"max_rising_speed"`
	SpeedCheck         float64 `yaml:"speed_check"`
	AboutFaceOffset    float64 `yaml:"about_face_offset"`
	RepulseMinVelocity float64 `yaml:"repulse_min_velocity"`
	RepulseMinDelay    float64 `yaml:"repulse_min_delay"`
	RepulseMaxDelay    float64 `yaml:"repulse_max_delay"`
}

func TuningSpecFrom(t motion.Tuning) TuningSpec {
	return TuningSpec(t)
}

func (s TuningSpec) Tuning() motion.Tuning {
	return motion.Tuning(s)
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AnimationDefSpec struct {
	Name       string  `yaml:"name"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type WeaponSpec struct {
	WindowTicks int `yaml:"window_ticks"`
}

type PlayerSpec struct {
	Name        string             `yaml:"name"`
	Collider    ColliderSpec       `yaml:"collider"`
	FacingRight bool               `yaml:"facing_right"`
	Weapon      WeaponSpec         `yaml:"weapon"`
	Tuning      TuningSpec         `yaml:"tuning"`
	Animations  []AnimationDefSpec `yaml:"animations"`
}

// LoadPlayerSpec reads player.yaml over the default tuning and validates
// the result.
func LoadPlayerSpec() (*PlayerSpec, error) {
	spec := PlayerSpec{
		FacingRight: true,
		Tuning:      TuningSpecFrom(motion.DefaultTuning()),
	}
	if err := decodeInto("player.yaml", &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) Validate() error {
	if s.Collider.Width <= 0 || s.Collider.Height <= 0 {
		return fmt.Errorf("%w: player collider %gx%g", ErrInvalidSpec, s.Collider.Width, s.Collider.Height)
	}
	if s.Weapon.WindowTicks < 0 {
		return fmt.Errorf("%w: negative weapon window", ErrInvalidSpec)
	}
	if err := s.Tuning.Tuning().Validate(); err != nil {
		return fmt.Errorf("prefabs: player tuning: %w", err)
	}
	return nil
}

type BoxSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlatformSpec struct {
	From   TransformSpec `yaml:"from"`
	To     TransformSpec `yaml:"to"`
	Width  float64       `yaml:"width"`
	Height float64       `yaml:"height"`
	Speed  float64       `yaml:"speed"`
}

type RepulsorSpec struct {
	BoxSpec     `yaml:",inline"`
	MaxVelocity float64 `yaml:"max_velocity"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	LookOffset float64 `yaml:"look_offset"`
}

type LevelSpec struct {
	Name              string         `yaml:"name"`
	Background        *YAMLColor     `yaml:"background"`
	Spawn             TransformSpec  `yaml:"spawn"`
	KillPlane         *float64       `yaml:"kill_plane"`
	FastPlatformSpeed float64        `yaml:"fast_platform_speed"`
	Camera            CameraSpec     `yaml:"camera"`
	Solids            []BoxSpec      `yaml:"solids"`
	Platforms         []PlatformSpec `yaml:"platforms"`
	Hazards           []BoxSpec      `yaml:"hazards"`
	Repulsors         []RepulsorSpec `yaml:"repulsors"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

func (s *LevelSpec) Validate() error {
	boxes := make([]BoxSpec, 0, len(s.Solids)+len(s.Hazards)+len(s.Repulsors))
	boxes = append(boxes, s.Solids...)
	boxes = append(boxes, s.Hazards...)
	for _, r := range s.Repulsors {
		boxes = append(boxes, r.BoxSpec)
	}
	for _, b := range boxes {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: box at (%g, %g) has no extent", ErrInvalidSpec, b.X, b.Y)
		}
	}
	for i, r := range s.Repulsors {
		if math.IsNaN(r.MaxVelocity) || math.IsInf(r.MaxVelocity, 0) || r.MaxVelocity < 0 {
			return fmt.Errorf("%w: repulsor %d max velocity %g", ErrInvalidSpec, i, r.MaxVelocity)
		}
	}
	for i, p := range s.Platforms {
		if p.Width <= 0 || p.Height <= 0 || p.Speed <= 0 {
			return fmt.Errorf("%w: platform %d needs a size and a positive speed", ErrInvalidSpec, i)
		}
	}
	if s.FastPlatformSpeed < 0 {
		return fmt.Errorf("%w: negative fast platform speed", ErrInvalidSpec)
	}
	return nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
