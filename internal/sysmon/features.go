package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	xcpu "golang.org/x/sys/cpu"
)

// CPUFeatures lists the vector extensions relevant to the multiplication
// kernels that the running CPU supports, e.g. "avx2,bmi2". It returns
// "none" when none is detected.
func CPUFeatures() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"sse4.1", xcpu.X86.HasSSE41},
			{"avx", xcpu.X86.HasAVX},
			{"avx2", xcpu.X86.HasAVX2},
			{"bmi2", xcpu.X86.HasBMI2},
			{"adx", xcpu.X86.HasADX},
			{"avx512f", xcpu.X86.HasAVX512F},
		} {
			if f.ok {
				feats = append(feats, f.name)
			}
		}
	case "arm64":
		if xcpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if xcpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
	}
	if len(feats) == 0 {
		return "none"
	}
	return strings.Join(feats, ",")
}

// CPUModel returns the model name of the first CPU, or "unknown".
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return "unknown"
	}
	return infos[0].ModelName
}
