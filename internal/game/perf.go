package game

import (
	"time"

	"go.uber.org/zap"

	"labyrinth/internal/threading/monitoring"
)

const (
	perfCheckInterval = time.Second
	perfLogInterval   = 5 * time.Second
)

// perfWatch polls the monitor for alerts and logs them, rate limited.
type perfWatch struct {
	lastCheck time.Time
	lastLog   map[string]time.Time
}

func (p *perfWatch) check(log *zap.Logger, pm *monitoring.PerformanceMonitor) {
	p.checkAt(time.Now(), log, pm.CheckPerformanceAlerts)
}

func (p *perfWatch) checkAt(now time.Time, log *zap.Logger, alerts func() []monitoring.PerformanceAlert) int {
	if !p.lastCheck.IsZero() && now.Sub(p.lastCheck) < perfCheckInterval {
		return 0
	}
	p.lastCheck = now
	if p.lastLog == nil {
		p.lastLog = make(map[string]time.Time)
	}

	logged := 0
	for _, a := range alerts() {
		if last, ok := p.lastLog[a.Type]; ok && now.Sub(last) < perfLogInterval {
			continue
		}
		p.lastLog[a.Type] = now
		logged++
		log.Warn(a.Message,
			zap.String("alert", a.Type),
			zap.Float64("value", a.Value),
			zap.Float64("threshold", a.Threshold),
		)
	}
	return logged
}
