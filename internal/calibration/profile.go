// Package calibration measures the engine thresholds that run fastest on the
// current machine and persists them in a YAML profile.
package calibration

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/sysmon"
)

// CalibrationProfile stores the results of a calibration run together with
// the hardware they were measured on.
type CalibrationProfile struct {
	// Hardware identification
	CPUModel  string `yaml:"cpu_model"`
	NumCPU    int    `yaml:"num_cpu"`
	GOARCH    string `yaml:"goarch"`
	GOOS      string `yaml:"goos"`
	GoVersion string `yaml:"go_version"`
	WordSize  int    `yaml:"word_size"`

	// Calibrated thresholds, in digits
	OptimalParallelThreshold  int `yaml:"optimal_parallel_threshold"`
	OptimalRecursionThreshold int `yaml:"optimal_recursion_threshold"`

	// Calibration metadata
	CalibratedAt      time.Time `yaml:"calibrated_at"`
	CalibrationDigits int       `yaml:"calibration_digits"`
	CalibrationTime   string    `yaml:"calibration_time"`

	ProfileVersion int `yaml:"profile_version"`
}

const (
	// CurrentProfileVersion is incremented on breaking changes to the format.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the profile file name in the home directory.
	DefaultProfileFileName = ".bigmul_calibration.yaml"
)

func wordSize() int {
	return 32 << (^uint(0) >> 63)
}

// GetDefaultProfilePath returns the profile path in the user's home
// directory, or in the current directory when there is none.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

func resolvePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}

// NewProfile creates an empty profile describing the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		CPUModel:       sysmon.CPUModel(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       wordSize(),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(resolvePath(path))
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to read profile")
	}

	var profile CalibrationProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, apperrors.WrapError(err, "failed to parse profile")
	}
	return &profile, nil
}

// SaveProfile writes the profile as YAML. An empty path selects the default.
func (p *CalibrationProfile) SaveProfile(path string) error {
	path = resolvePath(path)

	data, err := yaml.Marshal(p)
	if err != nil {
		return apperrors.WrapError(err, "failed to marshal profile")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapError(err, "failed to write profile")
	}
	return nil
}

// IsValid reports whether the profile was measured with the current format
// on hardware with the same CPU count, architecture and word size.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == wordSize()
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// ApplyTo fills the tuning fields of cfg that are still zero. Values set by
// flags, environment or configuration file take precedence.
func (p *CalibrationProfile) ApplyTo(cfg config.AppConfig) config.AppConfig {
	if p == nil {
		return cfg
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = p.OptimalParallelThreshold
	}
	if cfg.RecursionThreshold == 0 {
		cfg.RecursionThreshold = p.OptimalRecursionThreshold
	}
	return cfg
}

// String returns a human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf(
		"CalibrationProfile{CPU: %s, Parallel: %s, Recursion: %d digits, Calibrated: %s}",
		p.CPUModel,
		thresholdLabel(p.OptimalParallelThreshold),
		p.OptimalRecursionThreshold,
		p.CalibratedAt.Format(time.RFC3339),
	)
}

// LoadOrCreateProfile loads the profile at path. It returns a fresh profile
// and false when the file is missing, unreadable or measured on other
// hardware.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := loadProfile(path)
	if err != nil || !profile.IsValid() {
		return NewProfile(), false
	}
	return profile, true
}

// ProfileExists reports whether a profile file exists at path.
func ProfileExists(path string) bool {
	_, err := os.Stat(resolvePath(path))
	return err == nil
}
