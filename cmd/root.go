package cmd

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/relex/gotils/logger"
)

type rootCommandState struct {
	CPUProfile string `name:"cpuprofile" help:"Write CPU profile to file."`
	MemProfile string `name:"memprofile" help:"Write memory profile to file."`
	Trace      string `help:"Write trace to file."`

	stopFuncs []func()
}

var rootCmd rootCommandState

func (cmd *rootCommandState) preRun() {
	cmd.startProfile("CPU profile", cmd.CPUProfile, func(f *os.File) error {
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		cmd.stopFuncs = append(cmd.stopFuncs, pprof.StopCPUProfile)
		return nil
	})
	cmd.startProfile("memory profile", cmd.MemProfile, func(f *os.File) error {
		cmd.stopFuncs = append(cmd.stopFuncs, func() {
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				logger.Errorf("failed to write memory profile: %s", err.Error())
			}
		})
		return nil
	})
	cmd.startProfile("trace", cmd.Trace, func(f *os.File) error {
		if err := trace.Start(f); err != nil {
			return err
		}
		cmd.stopFuncs = append(cmd.stopFuncs, trace.Stop)
		return nil
	})
}

func (cmd *rootCommandState) postRun() {
	for i := len(cmd.stopFuncs) - 1; i >= 0; i-- {
		cmd.stopFuncs[i]()
	}
}

// startProfile creates the output file and starts profiling if path isn't empty
func (cmd *rootCommandState) startProfile(title string, path string, start func(f *os.File) error) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Fatalf("failed to create %s %s: %s", title, path, err.Error())
	}
	logger.Infof("start %s %s", title, path)
	// stopped in reverse order: the file is closed after profiling stops
	cmd.stopFuncs = append(cmd.stopFuncs, func() { f.Close() })
	if err := start(f); err != nil {
		logger.Fatalf("failed to start %s: %s", title, err.Error())
	}
}
