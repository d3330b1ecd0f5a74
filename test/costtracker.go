package test

import (
	"runtime"
	"syscall"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/util"
)

// CostTracker tracks CPU usage and memory allocations
type CostTracker struct {
	initRealTime      time.Time
	initUserTime      time.Time
	initSystemTime    time.Time
	initNumHeapAllocs uint64
}

// CostReport contains measurements since NewCostTracker()
type CostReport struct {
	RealTime      time.Duration
	UserTime      time.Duration
	SystemTime    time.Duration
	NumHeapAllocs uint64
	GCCPUFraction float64
}

// NewCostTracker creates a cost tracker and starts tracking
func NewCostTracker() *CostTracker {
	runtime.GC()
	userTime, systemTime := readCPUTimes()
	return &CostTracker{
		initRealTime:      time.Now(),
		initUserTime:      userTime,
		initSystemTime:    systemTime,
		initNumHeapAllocs: readMemStats().Mallocs,
	}
}

// Report reports measurements since the tracker was created
func (ct *CostTracker) Report() CostReport {
	runtime.GC()
	realTime := time.Since(ct.initRealTime)
	userTime, systemTime := readCPUTimes()
	memStats := readMemStats()
	return CostReport{
		RealTime:      realTime,
		UserTime:      userTime.Sub(ct.initUserTime),
		SystemTime:    systemTime.Sub(ct.initSystemTime),
		NumHeapAllocs: memStats.Mallocs - ct.initNumHeapAllocs,
		GCCPUFraction: memStats.GCCPUFraction,
	}
}

func readCPUTimes() (time.Time, time.Time) {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		logger.Panic("failed to get resource usage: ", err)
	}
	return util.TimeFromTimeval(rusage.Utime), util.TimeFromTimeval(rusage.Stime)
}

func readMemStats() *runtime.MemStats {
	memStats := &runtime.MemStats{}
	runtime.ReadMemStats(memStats)
	return memStats
}
