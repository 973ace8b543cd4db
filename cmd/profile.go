package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/LakGar/Coco-sub001/internal/contract"
)

// cpuFile is open between startProfiling and stopProfiling.
var cpuFile *os.File

func cpuProfilePath(p *contract.ProfileConfig) string { return p.Prefix + ".cpu.prof" }
func memProfilePath(p *contract.ProfileConfig) string { return p.Prefix + ".mem.prof" }

// startProfiling begins CPU profiling to <prefix>.cpu.prof.
func startProfiling(p *contract.ProfileConfig) error {
	if !p.Enabled || cpuFile != nil {
		return nil
	}
	f, err := os.Create(cpuProfilePath(p))
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	cpuFile = f
	contract.Logger().Info("profiling enabled", "cpu", cpuProfilePath(p), "heap", memProfilePath(p))
	return nil
}

// stopProfiling ends CPU profiling and writes the heap profile to <prefix>.mem.prof.
func stopProfiling(p *contract.ProfileConfig) error {
	if !p.Enabled || cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := cpuFile.Close()
	cpuFile = nil

	memFile, createErr := os.Create(memProfilePath(p))
	if createErr != nil {
		return errors.Join(err, fmt.Errorf("could not create memory profile: %w", createErr))
	}
	if writeErr := pprof.WriteHeapProfile(memFile); writeErr != nil {
		err = errors.Join(err, fmt.Errorf("could not write memory profile: %w", writeErr))
	}
	err = errors.Join(err, memFile.Close())
	if err == nil {
		contract.Logger().Info("profiling complete", "analyze", "go tool pprof "+cpuProfilePath(p))
	}
	return err
}
