package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names a timed part of the render pipeline.
type Stage int

const (
	StageFloor Stage = iota
	StageWalls
	StageSprites
	StageMinimap
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageFloor:
		return "floor"
	case StageWalls:
		return "walls"
	case StageSprites:
		return "sprites"
	case StageMinimap:
		return "minimap"
	default:
		return "unknown"
	}
}

// smoothing is the weight of the newest sample in the moving averages.
const smoothing = 0.1

// PerformanceMonitor tracks render timings and counters. All methods are safe
// for concurrent use.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Per-stage metrics
	stageTime [stageCount]atomic.Uint64 // nanoseconds, last sample

	// Render counters, last frame
	columnsCast   atomic.Uint64
	spritesDrawn  atomic.Uint64
	spritesCulled atomic.Uint64

	mutex        sync.RWMutex
	avgFrameTime float64
	avgStageTime [stageCount]float64
	startTime    time.Time

	// Alert thresholds
	minFPS      float64
	maxMemoryMB float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:   time.Now(),
		minFPS:      30,
		maxMemoryMB: 500,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ns := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(ns)
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.avgFrameTime = ema(ft.monitor.avgFrameTime, float64(ns))
	ft.monitor.mutex.Unlock()
}

// StageTimer measures one pipeline stage.
type StageTimer struct {
	monitor   *PerformanceMonitor
	stage     Stage
	startTime time.Time
}

// StartStage begins timing a stage.
func (pm *PerformanceMonitor) StartStage(stage Stage) *StageTimer {
	return &StageTimer{monitor: pm, stage: stage, startTime: time.Now()}
}

// End completes stage timing and returns the elapsed time.
func (st *StageTimer) End() time.Duration {
	d := time.Since(st.startTime)
	st.monitor.recordStage(st.stage, d)
	return d
}

func (pm *PerformanceMonitor) recordStage(stage Stage, d time.Duration) {
	ns := uint64(d.Nanoseconds())
	pm.stageTime[stage].Store(ns)
	pm.mutex.Lock()
	pm.avgStageTime[stage] = ema(pm.avgStageTime[stage], float64(ns))
	pm.mutex.Unlock()
}

// RecordCounts stores the per-frame render counters.
func (pm *PerformanceMonitor) RecordCounts(columns, spritesDrawn, spritesCulled int) {
	pm.columnsCast.Store(uint64(columns))
	pm.spritesDrawn.Store(uint64(spritesDrawn))
	pm.spritesCulled.Store(uint64(spritesCulled))
}

// ProfiledFunction runs fn and records its duration under stage.
func (pm *PerformanceMonitor) ProfiledFunction(stage Stage, fn func()) time.Duration {
	timer := pm.StartStage(stage)
	fn()
	return timer.End()
}

// Stats is a point-in-time copy of the metrics, for overlays.
type Stats struct {
	Frames        uint64
	FPS           float64
	AvgFrame      time.Duration
	Stage         [stageCount]time.Duration
	AvgStage      [stageCount]time.Duration
	ColumnsCast   uint64
	SpritesDrawn  uint64
	SpritesCulled uint64
}

// StageTime returns the averaged time of a stage.
func (s Stats) StageTime(stage Stage) time.Duration {
	return s.AvgStage[stage]
}

// Snapshot returns the current metrics.
func (pm *PerformanceMonitor) Snapshot() Stats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	s := Stats{
		Frames:        pm.frameCount.Load(),
		AvgFrame:      time.Duration(pm.avgFrameTime),
		ColumnsCast:   pm.columnsCast.Load(),
		SpritesDrawn:  pm.spritesDrawn.Load(),
		SpritesCulled: pm.spritesCulled.Load(),
	}
	if pm.avgFrameTime > 0 {
		s.FPS = 1e9 / pm.avgFrameTime
	}
	for i := range s.Stage {
		s.Stage[i] = time.Duration(pm.stageTime[i].Load())
		s.AvgStage[i] = time.Duration(pm.avgStageTime[i])
	}
	return s
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	s := pm.Snapshot()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.mutex.RLock()
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	stats := map[string]interface{}{
		"uptime_seconds":    uptime.Seconds(),
		"frame_count":       s.Frames,
		"avg_frame_time_ms": float64(s.AvgFrame) / 1e6,
		"current_fps":       s.FPS,
		"columns_cast":      s.ColumnsCast,
		"sprites_drawn":     s.SpritesDrawn,
		"sprites_culled":    s.SpritesCulled,
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"cpu_cores":         runtime.NumCPU(),
		"goroutines":        runtime.NumGoroutine(),
	}
	for st := Stage(0); st < stageCount; st++ {
		stats["avg_"+st.String()+"_ms"] = float64(s.AvgStage[st]) / 1e6
	}
	return stats
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	minFPS, maxMemoryMB := pm.minFPS, pm.maxMemoryMB
	pm.mutex.RUnlock()

	s := pm.Snapshot()
	if s.Frames > 0 && s.FPS > 0 && s.FPS < minFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below target",
			Value:     s.FPS,
			Threshold: minFPS,
			Timestamp: currentTime,
		})
	}

	// a single stage eating more than the whole frame budget
	budget := 1e9 / minFPS
	for st := Stage(0); st < stageCount; st++ {
		if v := float64(s.AvgStage[st]); v > budget {
			alerts = append(alerts, PerformanceAlert{
				Type:      "slow_" + st.String(),
				Message:   "Stage " + st.String() + " exceeds the frame budget",
				Value:     v / 1e6,
				Threshold: budget / 1e6,
				Timestamp: currentTime,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > maxMemoryMB {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above threshold",
			Value:     memoryMB,
			Threshold: maxMemoryMB,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// SetThresholds changes the alert limits.
func (pm *PerformanceMonitor) SetThresholds(minFPS, maxMemoryMB float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if minFPS > 0 {
		pm.minFPS = minFPS
	}
	if maxMemoryMB > 0 {
		pm.maxMemoryMB = maxMemoryMB
	}
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	for i := range pm.stageTime {
		pm.stageTime[i].Store(0)
	}
	pm.columnsCast.Store(0)
	pm.spritesDrawn.Store(0)
	pm.spritesCulled.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgStageTime = [stageCount]float64{}
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

func ema(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + (sample-avg)*smoothing
}
