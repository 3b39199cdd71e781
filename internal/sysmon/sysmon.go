// Package sysmon reports host resources: system-wide CPU and memory usage
// through gopsutil, and the CPU features that matter to the float64
// multiplication strategies.
package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent     float64 // 0.0 .. 100.0
	MemPercent     float64 // 0.0 .. 100.0
	AvailableBytes uint64
	TotalBytes     uint64
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.AvailableBytes = vmem.Available
		s.TotalBytes = vmem.Total
	}
	return s
}

// Features lists the CPU capabilities relevant to the float64 strategies.
type Features struct {
	// FMA reports a hardware fused multiply-add. Without it math.FMA falls
	// back to a slower software path.
	FMA  bool
	AVX2 bool
}

// CPUFeatures detects the features of the running CPU.
func CPUFeatures() Features {
	switch runtime.GOARCH {
	case "amd64", "386":
		return Features{FMA: xcpu.X86.HasFMA, AVX2: xcpu.X86.HasAVX2}
	case "arm64":
		// FMADD is part of the base ARMv8 instruction set.
		return Features{FMA: true}
	case "s390x", "ppc64", "ppc64le", "riscv64":
		return Features{FMA: true}
	}
	return Features{}
}

// String renders the detected features, e.g. "FMA AVX2".
func (f Features) String() string {
	var parts []string
	if f.FMA {
		parts = append(parts, "FMA")
	}
	if f.AVX2 {
		parts = append(parts, "AVX2")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// CPUModel returns the model name of the first CPU, or "" if unknown.
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return ""
	}
	return strings.TrimSpace(infos[0].ModelName)
}
