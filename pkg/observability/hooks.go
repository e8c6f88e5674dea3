package observability

import (
	"log/slog"

	"github.com/aretw0/dfsm/pkg/domain"
)

// Combine returns hooks that call every non-nil hook of each set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var combined domain.LifecycleHooks

	var starts, ends []func(*domain.RunEvent)
	var steps []func(*domain.StepEvent)
	for _, s := range sets {
		if s.OnRunStart != nil {
			starts = append(starts, s.OnRunStart)
		}
		if s.OnStep != nil {
			steps = append(steps, s.OnStep)
		}
		if s.OnRunEnd != nil {
			ends = append(ends, s.OnRunEnd)
		}
	}

	if len(starts) > 0 {
		combined.OnRunStart = func(e *domain.RunEvent) {
			for _, fn := range starts {
				fn(e)
			}
		}
	}
	if len(steps) > 0 {
		combined.OnStep = func(e *domain.StepEvent) {
			for _, fn := range steps {
				fn(e)
			}
		}
	}
	if len(ends) > 0 {
		combined.OnRunEnd = func(e *domain.RunEvent) {
			for _, fn := range ends {
				fn(e)
			}
		}
	}
	return combined
}

// LogHooks writes an audit line per transition at debug level and one per
// finished run at info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("transition",
				"machine", e.Machine,
				"step", StepLabel(e.Index),
				"from", e.From,
				"symbol", e.Symbol,
				"to", e.To,
			)
		},
		OnRunEnd: func(e *domain.RunEvent) {
			if e.Err != nil {
				logger.Info("run_end",
					"machine", e.Machine,
					"steps", e.Steps,
					"kind", domain.Kind(e.Err),
					"err", e.Err,
				)
				return
			}
			logger.Info("run_end",
				"machine", e.Machine,
				"steps", e.Steps,
				"terminal", e.Terminal,
				"accepted", e.Accepted,
				"duration", e.Duration,
			)
		},
	}
}
