// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON string

// ErrInvalid is returned when a configuration passes schema validation but
// contains values that contradict each other.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Ground     GroundConfig     `yaml:"ground"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Simulation SimulationConfig `yaml:"simulation"`
	Neural     NeuralConfig     `yaml:"neural"`
	Training   TrainingConfig   `yaml:"training"`
	Assets     AssetsConfig     `yaml:"assets"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Storage    StorageConfig    `yaml:"storage"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds the bird kinematic constants.
// Displacement per tick is JumpVelocity*t + 0.5*Gravity*t².
type PhysicsConfig struct {
	JumpVelocity     float64 `yaml:"jump_velocity"`     // Velocity set by a jump (negative = up)
	Gravity          float64 `yaml:"gravity"`           // Acceleration in px/tick²
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Max downward displacement per tick
	AscentBias       float64 `yaml:"ascent_bias"`       // Added to displacement while rising
	MaxRotation      float64 `yaml:"max_rotation"`      // Nose-up tilt in degrees
	RotationVelocity float64 `yaml:"rotation_velocity"` // Nose-down tilt rate in degrees per tick
	TiltBand         float64 `yaml:"tilt_band"`         // Stay nose-up while within this band below the jump height
	MinTilt          float64 `yaml:"min_tilt"`          // Nose-down floor in degrees
}

// BirdConfig holds agent spawn and animation parameters.
type BirdConfig struct {
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	AnimationTime int     `yaml:"animation_time"` // Ticks per flap frame
}

// PipesConfig holds obstacle generation parameters.
type PipesConfig struct {
	GapSize        float64 `yaml:"gap_size"`
	GapMin         int     `yaml:"gap_min"` // Inclusive lower bound of the gap top
	GapMax         int     `yaml:"gap_max"` // Exclusive upper bound of the gap top
	ScrollVelocity float64 `yaml:"scroll_velocity"`
	SpawnX         float64 `yaml:"spawn_x"`
}

// GroundConfig holds the scrolling ground strip parameters.
type GroundConfig struct {
	Y              float64 `yaml:"y"`
	ScrollVelocity float64 `yaml:"scroll_velocity"`
}

// FitnessConfig holds the per-agent reward shaping.
type FitnessConfig struct {
	SurvivalReward   float64 `yaml:"survival_reward"`   // Per tick alive
	PassReward       float64 `yaml:"pass_reward"`       // Per pipe passed, to every survivor
	CollisionPenalty float64 `yaml:"collision_penalty"` // Once, on pipe collision
}

// SimulationConfig holds loop control parameters.
type SimulationConfig struct {
	MaxTicks          int     `yaml:"max_ticks"` // 0 = unlimited
	JumpThreshold     float64 `yaml:"jump_threshold"`
	Workers           int     `yaml:"workers"`
	ParallelThreshold int     `yaml:"parallel_threshold"`
}

// NeuralConfig holds controller network parameters.
type NeuralConfig struct {
	Hidden int `yaml:"hidden"`
}

// TrainingConfig holds parameters for the population training adapter.
// The simulation core never reads these.
type TrainingConfig struct {
	Population  int            `yaml:"population"`
	Generations int            `yaml:"generations"`
	Elite       int            `yaml:"elite"`
	Mutation    MutationConfig `yaml:"mutation"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Sigma    float64 `yaml:"sigma"`
	BigRate  float64 `yaml:"big_rate"`
	BigSigma float64 `yaml:"big_sigma"`
}

// AssetsConfig holds sprite loading parameters.
type AssetsConfig struct {
	Dir   string `yaml:"dir"`   // Directory of PNG overrides (empty = procedural)
	Scale int    `yaml:"scale"` // Integer upscale applied to every sprite
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow     int  `yaml:"perf_window"`
	LogGenerations bool `yaml:"log_generations"`
}

// StorageConfig holds the generation history database location.
type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickSeconds float64 // 1 / Screen.TargetFPS
	ScreenW32   float32
	ScreenH32   float32
}

// Default returns the embedded defaults. It panics if the embedded file is broken,
// which can only happen at build time.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges a YAML document over the embedded defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in file
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate checks the merged document against the embedded JSON schema and
// then applies the cross-field rules a schema cannot express.
func (c *Config) validate() error {
	sch, err := jsonschema.CompileString("schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	doc, err := c.document()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	var problems []string
	if c.Pipes.GapMax <= c.Pipes.GapMin {
		problems = append(problems, "pipes.gap_max must exceed pipes.gap_min")
	}
	if c.Ground.Y > float64(c.Screen.Height) {
		problems = append(problems, "ground.y must lie inside the screen")
	}
	if c.Training.Elite > c.Training.Population {
		problems = append(problems, "training.elite cannot exceed training.population")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// document converts the config into the generic JSON value the schema validator expects.
func (c *Config) document() (interface{}, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("re-reading config: %w", err)
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("converting config to json: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("decoding config json: %w", err)
	}
	return doc, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickSeconds = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// YAML returns the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
