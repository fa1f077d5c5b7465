// Package app wires the bigmul command line: it resolves the configuration,
// builds the engine factory and dispatches to the mul, bench, calibrate, tui
// and version commands.
package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigmul/internal/sysmon"
)

// Build-time variables set via -ldflags.
//
// Example build command:
//
//	go build -ldflags="-X github.com/agbru/bigmul/internal/app.Version=v1.2.3 -X github.com/agbru/bigmul/internal/app.Commit=abc123 -X github.com/agbru/bigmul/internal/app.BuildDate=2026-01-01T00:00:00Z" ./cmd/bigmul
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// PrintVersion outputs version, build and host information: the Go
// version, OS/architecture, CPU model and the SIMD features the CPU offers.
//
// Parameters:
//   - out: The writer to output version information to.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "bigmul %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:       %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:        %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version:   %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:      %s/%s\n", info.OS, info.Arch)
	fmt.Fprintf(out, "  CPU:          %s\n", info.CPUModel)
	fmt.Fprintf(out, "  CPU features: %s\n", info.CPUFeatures)
}

// VersionData holds version information for programmatic access.
type VersionData struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	CPUModel    string `json:"cpu_model"`
	CPUFeatures string `json:"cpu_features"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		CPUModel:    sysmon.CPUModel(),
		CPUFeatures: sysmon.CPUFeatures(),
	}
}
