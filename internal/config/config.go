package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// weightSumTolerance absorbs floating point noise when checking that the
// four component weights sum to 1.
const weightSumTolerance = 1e-9

// Config is the complete application configuration. It is loaded once in
// main and passed by value to everything that needs it; nothing reads
// config ambiently.
type Config struct {
	Weights    Weights    `yaml:"weights" envconfig:"WEIGHTS"`
	GradeScale GradeScale `yaml:"grade_scale" envconfig:"-" validate:"dive"`
	Thresholds Thresholds `yaml:"thresholds" envconfig:"THRESHOLDS"`
	Paths      Paths      `yaml:"paths" envconfig:"PATHS"`
	Server     Server     `yaml:"server" envconfig:"SERVER"`
	Logging    Logging    `yaml:"logging" envconfig:"LOGGING"`
}

// Weights holds the fractional weight of each grade component. The four
// fields must sum to 1; renormalization for records with missing
// components happens at computation time, not here.
type Weights struct {
	Quizzes    float64 `yaml:"quizzes" envconfig:"QUIZZES" validate:"min=0,max=1"`
	Midterm    float64 `yaml:"midterm" envconfig:"MIDTERM" validate:"min=0,max=1"`
	Final      float64 `yaml:"final" envconfig:"FINAL" validate:"min=0,max=1"`
	Attendance float64 `yaml:"attendance" envconfig:"ATTENDANCE" validate:"min=0,max=1"`
}

// Sum returns the total of the four component weights.
func (w Weights) Sum() float64 {
	return w.Quizzes + w.Midterm + w.Final + w.Attendance
}

// GradeBand maps a letter grade to the minimum final grade that earns it.
type GradeBand struct {
	Letter string  `yaml:"letter" validate:"required"`
	Min    float64 `yaml:"min" validate:"min=0,max=100"`
}

// GradeScale is an ordered list of grade bands, descending by minimum.
type GradeScale []GradeBand

// Letter returns the letter for the first band whose minimum is at or
// below the given grade, or the last band's letter when none matches
// (the catch-all failing grade).
func (s GradeScale) Letter(grade float64) string {
	for _, band := range s {
		if grade >= band.Min {
			return band.Letter
		}
	}
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Letter
}

// Letters returns the scale's letters in band order, for deterministic
// iteration over frequency maps.
func (s GradeScale) Letters() []string {
	letters := make([]string, 0, len(s))
	for _, band := range s {
		letters = append(letters, band.Letter)
	}
	return letters
}

// Thresholds holds report cutoffs.
type Thresholds struct {
	AtRisk float64 `yaml:"at_risk" envconfig:"AT_RISK" validate:"min=0,max=100"`
}

// Paths holds filesystem locations for the batch pipeline.
type Paths struct {
	Input     string `yaml:"input" envconfig:"INPUT"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// Server contains HTTP server configuration for cmd/web.
type Server struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// Logging contains logging configuration.
type Logging struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the configuration used when no file and no environment
// overrides are present: the standard 30/30/30/10 weighting and the usual
// A-F ten-point scale.
func Default() Config {
	return Config{
		Weights: Weights{
			Quizzes:    0.3,
			Midterm:    0.3,
			Final:      0.3,
			Attendance: 0.1,
		},
		GradeScale: GradeScale{
			{Letter: "A", Min: 90},
			{Letter: "B", Min: 80},
			{Letter: "C", Min: 70},
			{Letter: "D", Min: 60},
			{Letter: "F", Min: 0},
		},
		Thresholds: Thresholds{AtRisk: 60},
		Paths: Paths{
			Input:     "data/input.csv",
			OutputDir: "data/output",
		},
		Server: Server{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: Logging{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/gradecli.log",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// it exists, then GRADECLI_* environment overrides, then validation.
// A missing file is fine; a malformed or invalid one is a fatal error
// reported before any ingest happens.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("GRADECLI", &cfg); err != nil {
		return Config{}, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the structural tags plus the constraints the tags
// cannot express: weights summing to 1 and a usable grade scale.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if math.Abs(c.Weights.Sum()-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", c.Weights.Sum())
	}

	if len(c.GradeScale) == 0 {
		return fmt.Errorf("grade_scale must have at least one band")
	}
	for i := 1; i < len(c.GradeScale); i++ {
		if c.GradeScale[i].Min >= c.GradeScale[i-1].Min {
			return fmt.Errorf("grade_scale must be strictly descending: %q (%.1f) follows %q (%.1f)",
				c.GradeScale[i].Letter, c.GradeScale[i].Min,
				c.GradeScale[i-1].Letter, c.GradeScale[i-1].Min)
		}
	}

	return nil
}
