package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/common/logger"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"github.com/gorustyt/gowalkmesh/walkmesh_agent"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log         logger.Config `yaml:"log"`
	Mesh        MeshConfig    `yaml:"mesh"`
	Agents      []AgentConfig `yaml:"agents"`
	Ticks       int           `yaml:"ticks"`
	TickSeconds float32       `yaml:"tick_seconds"`
	Output      OutputConfig  `yaml:"output"`
}

// MeshConfig describes the procedural grid the demo walks on.
type MeshConfig struct {
	Cols    int           `yaml:"cols"`
	Rows    int           `yaml:"rows"`
	Cell    float32       `yaml:"cell"`
	Profile HeightProfile `yaml:"profile"`

	RampStart  float32 `yaml:"ramp_start"`
	RampSlope  float32 `yaml:"ramp_slope"`
	Amplitude  float32 `yaml:"amplitude"`
	Wavelength float32 `yaml:"wavelength"`
}

type AgentConfig struct {
	Name     string          `yaml:"name"`
	Spawn    [3]float32      `yaml:"spawn"`
	Forward  [3]float32      `yaml:"forward"`
	Speed    float32         `yaml:"speed"`
	MaxTrail int             `yaml:"max_trail"`
	Controls []ControlConfig `yaml:"controls"`
}

// ControlConfig holds a set of keys from tick FromTick on, until the next
// entry takes over. Turn is applied once, at FromTick.
type ControlConfig struct {
	FromTick int     `yaml:"from_tick"`
	Forward  bool    `yaml:"forward"`
	Backward bool    `yaml:"backward"`
	Left     bool    `yaml:"left"`
	Right    bool    `yaml:"right"`
	Turn     float32 `yaml:"turn"` // radians, counterclockwise seen from above
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	ImageSize   int    `yaml:"image_size"`
	Supersample int    `yaml:"supersample"`
}

func Default() *Config {
	return &Config{
		Log: logger.DefaultConfig(),
		Mesh: MeshConfig{
			Cols:       16,
			Rows:       12,
			Cell:       1,
			Profile:    HEIGHT_PROFILE_RAMP,
			RampStart:  8,
			RampSlope:  0.5,
			Amplitude:  0.75,
			Wavelength: 6,
		},
		Agents: []AgentConfig{
			{
				Name:    "scout",
				Spawn:   [3]float32{2, 0, 3},
				Forward: [3]float32{1, 0, 0},
				Speed:   2,
				Controls: []ControlConfig{
					{FromTick: 0, Forward: true},
					{FromTick: 150, Forward: true, Turn: math.Pi / 2},
				},
			},
			{
				Name:    "sweeper",
				Spawn:   [3]float32{3, 0, 9},
				Forward: [3]float32{0, 0, -1},
				Speed:   1.5,
				Controls: []ControlConfig{
					{FromTick: 0, Right: true},
					{FromTick: 120, Forward: true, Right: true},
				},
			},
		},
		Ticks:       240,
		TickSeconds: 1.0 / 30,
		Output: OutputConfig{
			Dir:         "out",
			ImageSize:   512,
			Supersample: 2,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error
	m := cfg.Mesh
	if m.Cols <= 0 || m.Rows <= 0 {
		errs = append(errs, fmt.Errorf("mesh: grid %dx%d is empty", m.Cols, m.Rows))
	}
	if m.Cell <= 0 {
		errs = append(errs, fmt.Errorf("mesh: cell size %g must be positive", m.Cell))
	}
	if m.Profile.Desc() == "" {
		errs = append(errs, fmt.Errorf("mesh: unknown profile %q", m.Profile))
	}
	if m.Profile == HEIGHT_PROFILE_WAVE && m.Wavelength <= 0 {
		errs = append(errs, fmt.Errorf("mesh: wavelength %g must be positive", m.Wavelength))
	}
	if cfg.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks %d is negative", cfg.Ticks))
	}
	if cfg.TickSeconds <= 0 {
		errs = append(errs, fmt.Errorf("tick_seconds %g must be positive", cfg.TickSeconds))
	}
	if cfg.Output.ImageSize <= 0 {
		errs = append(errs, fmt.Errorf("output: image_size %d must be positive", cfg.Output.ImageSize))
	}
	seen := make(map[string]bool)
	for i, a := range cfg.Agents {
		switch {
		case a.Name == "":
			errs = append(errs, fmt.Errorf("agents[%d]: missing name", i))
		case seen[a.Name]:
			errs = append(errs, fmt.Errorf("agents[%d]: duplicate name %q", i, a.Name))
		}
		seen[a.Name] = true
		if a.Speed < 0 {
			errs = append(errs, fmt.Errorf("agents[%d]: negative speed %g", i, a.Speed))
		}
		for j := 1; j < len(a.Controls); j++ {
			if a.Controls[j].FromTick < a.Controls[j-1].FromTick {
				errs = append(errs, fmt.Errorf("agents[%d]: controls not ordered by from_tick", i))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// HeightFunc returns the height profile of the grid.
func (m MeshConfig) HeightFunc() walkmesh.HeightFunc {
	switch m.Profile {
	case HEIGHT_PROFILE_RAMP:
		start, slope := m.RampStart, m.RampSlope
		return func(x, z float32) float32 {
			return max(0, x-start) * slope
		}
	case HEIGHT_PROFILE_WAVE:
		k := 2 * math.Pi / float64(m.Wavelength)
		amp := float64(m.Amplitude)
		return func(x, z float32) float32 {
			return float32(amp * math.Sin(k*float64(x)) * math.Cos(k*float64(z)))
		}
	}
	return nil
}

func (m MeshConfig) MeshData() *walkmesh.MeshData {
	return walkmesh.NewGridMeshData(m.Cols, m.Rows, m.Cell, m.HeightFunc())
}

func (a AgentConfig) Params() walkmesh_agent.AgentParams {
	return walkmesh_agent.AgentParams{
		Name:     a.Name,
		Spawn:    common.Vec3(a.Spawn),
		Forward:  common.Vec3(a.Forward),
		Speed:    a.Speed,
		MaxTrail: a.MaxTrail,
	}
}

// ControlsAt returns the keys held at tick and the turn to apply on it.
func (a AgentConfig) ControlsAt(tick int) (controls walkmesh_agent.Controls, turn float32) {
	for _, c := range a.Controls {
		if c.FromTick > tick {
			break
		}
		controls = walkmesh_agent.Controls{Forward: c.Forward, Backward: c.Backward, Left: c.Left, Right: c.Right}
		if c.FromTick == tick {
			turn += c.Turn
		}
	}
	return controls, turn
}
