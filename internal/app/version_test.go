package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	output := buf.String()

	for _, want := range []string{"bigmul " + Version, "Commit:", "Built:", runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH, "CPU:"} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintVersion output should contain %q:\n%s", want, output)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()
	info := GetVersionInfo()

	if info.Version != Version || info.Commit != Commit || info.BuildDate != BuildDate {
		t.Errorf("build variables not reported: %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s", info.OS, info.Arch)
	}
	if info.CPUFeatures == "" || info.CPUModel == "" {
		t.Errorf("CPU information missing: %+v", info)
	}
}
