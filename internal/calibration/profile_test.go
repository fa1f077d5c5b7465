package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigmul/internal/config"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	profile := NewProfile()

	if profile.NumCPU != runtime.NumCPU() {
		t.Errorf("NumCPU = %d, want %d", profile.NumCPU, runtime.NumCPU())
	}
	if profile.GOARCH != runtime.GOARCH {
		t.Errorf("GOARCH = %s, want %s", profile.GOARCH, runtime.GOARCH)
	}
	if profile.GOOS != runtime.GOOS {
		t.Errorf("GOOS = %s, want %s", profile.GOOS, runtime.GOOS)
	}
	if profile.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", profile.GoVersion, runtime.Version())
	}
	if profile.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", profile.ProfileVersion, CurrentProfileVersion)
	}
	if profile.WordSize != 32<<(^uint(0)>>63) {
		t.Errorf("WordSize = %d", profile.WordSize)
	}
	if profile.CalibratedAt.IsZero() {
		t.Error("CalibratedAt is zero")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")

	original := NewProfile()
	original.OptimalParallelThreshold = 2048
	original.OptimalRecursionThreshold = 48
	original.CalibrationDigits = 10000
	original.CalibrationTime = "1.5s"

	if err := original.SaveProfile(profilePath); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	data, err := os.ReadFile(profilePath)
	if err != nil {
		t.Fatalf("profile file was not created: %v", err)
	}
	if !strings.Contains(string(data), "optimal_parallel_threshold: 2048") {
		t.Errorf("profile is not the expected YAML:\n%s", data)
	}

	loaded, err := loadProfile(profilePath)
	if err != nil {
		t.Fatalf("loadProfile failed: %v", err)
	}
	if loaded.OptimalParallelThreshold != 2048 || loaded.OptimalRecursionThreshold != 48 {
		t.Errorf("thresholds = %d/%d, want 2048/48", loaded.OptimalParallelThreshold, loaded.OptimalRecursionThreshold)
	}
	if loaded.CalibrationDigits != 10000 || loaded.CalibrationTime != "1.5s" {
		t.Errorf("metadata not preserved: %+v", loaded)
	}
	if !loaded.CalibratedAt.Equal(original.CalibratedAt) {
		t.Errorf("CalibratedAt = %v, want %v", loaded.CalibratedAt, original.CalibratedAt)
	}
	if !loaded.IsValid() {
		t.Error("a saved profile should be valid on the same machine")
	}
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(p *CalibrationProfile)
		want   bool
	}{
		{"fresh", func(*CalibrationProfile) {}, true},
		{"wrong CPU count", func(p *CalibrationProfile) { p.NumCPU = 999 }, false},
		{"wrong architecture", func(p *CalibrationProfile) { p.GOARCH = "invalid_arch" }, false},
		{"wrong word size", func(p *CalibrationProfile) { p.WordSize = 16 }, false},
		{"wrong version", func(p *CalibrationProfile) { p.ProfileVersion = 999 }, false},
		{"other GOOS", func(p *CalibrationProfile) { p.GOOS = "plan9" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProfile()
			tt.mutate(p)
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilProfile *CalibrationProfile
	if nilProfile.IsValid() {
		t.Error("expected nil profile to be invalid")
	}
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	if profile.IsStale(time.Hour) {
		t.Error("expected fresh profile to not be stale")
	}
	profile.CalibratedAt = time.Now().Add(-2 * time.Hour)
	if !profile.IsStale(time.Hour) {
		t.Error("expected old profile to be stale")
	}
	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("expected nil profile to be stale")
	}
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	profile.OptimalParallelThreshold = SequentialThreshold
	profile.OptimalRecursionThreshold = 64

	str := profile.String()
	for _, want := range []string{"Sequential", "64 digits", profile.CPUModel} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}

	var nilProfile *CalibrationProfile
	if nilProfile.String() != "<nil profile>" {
		t.Errorf("nil String() = %q", nilProfile.String())
	}
}

func TestProfileApplyTo(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	profile.OptimalParallelThreshold = 512
	profile.OptimalRecursionThreshold = 32

	got := profile.ApplyTo(config.AppConfig{})
	if got.ParallelThreshold != 512 || got.RecursionThreshold != 32 {
		t.Errorf("zero fields not filled: %+v", got)
	}

	explicit := profile.ApplyTo(config.AppConfig{ParallelThreshold: 4096, RecursionThreshold: 96})
	if explicit.ParallelThreshold != 4096 || explicit.RecursionThreshold != 96 {
		t.Errorf("explicit values overridden: %+v", explicit)
	}

	var nilProfile *CalibrationProfile
	if cfg := nilProfile.ApplyTo(config.AppConfig{Workers: 3}); cfg.Workers != 3 || cfg.ParallelThreshold != 0 {
		t.Errorf("nil profile changed the config: %+v", cfg)
	}
}

func TestLoadNonExistentProfile(t *testing.T) {
	t.Parallel()
	if _, err := loadProfile("/nonexistent/path/to/profile.yaml"); err == nil {
		t.Error("expected error loading nonexistent profile")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("num_cpu: [not, an, int"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProfile(path); err == nil {
		t.Error("expected error loading invalid YAML")
	}
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")

	profile, loaded := LoadOrCreateProfile(profilePath)
	if loaded {
		t.Error("expected a new profile when none exists")
	}
	if ProfileExists(profilePath) {
		t.Error("LoadOrCreateProfile must not write a file")
	}

	profile.OptimalParallelThreshold = 1024
	if err := profile.SaveProfile(profilePath); err != nil {
		t.Fatal(err)
	}

	profile2, loaded2 := LoadOrCreateProfile(profilePath)
	if !loaded2 {
		t.Error("expected to load the saved profile")
	}
	if profile2.OptimalParallelThreshold != 1024 {
		t.Errorf("loaded profile has wrong threshold: %d", profile2.OptimalParallelThreshold)
	}

	profile2.NumCPU = runtime.NumCPU() + 1
	if err := profile2.SaveProfile(profilePath); err != nil {
		t.Fatal(err)
	}
	if _, loaded3 := LoadOrCreateProfile(profilePath); loaded3 {
		t.Error("a profile from other hardware should not be loaded")
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	path := GetDefaultProfilePath()
	if filepath.Base(path) != DefaultProfileFileName {
		t.Errorf("path %s doesn't end with %s", path, DefaultProfileFileName)
	}
}
