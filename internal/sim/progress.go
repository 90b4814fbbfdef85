package sim

import "github.com/charmbracelet/log"

// ProgressLogger logs the state every Every grid points at debug level.
type ProgressLogger struct {
	Logger *log.Logger
	Every  int
}

func NewProgressLogger(logger *log.Logger, every int) *ProgressLogger {
	return &ProgressLogger{Logger: logger, Every: every}
}

func (p *ProgressLogger) OnStep(step int, x State, t float32) {
	if p.Logger == nil || p.Every <= 0 || step%p.Every != 0 {
		return
	}
	p.Logger.Debug("step", "i", step, "t", t, "v", x[IdxV], "n", x[IdxN], "m", x[IdxM], "h", x[IdxH])
}
