package runtime

import (
	"fmt"
	"time"

	"github.com/aretw0/dfsm/pkg/domain"
)

func (e *Engine[S, A]) emitRunStart(def *domain.Definition[S, A], inputLen int) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(&domain.RunEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventRunStart,
			Machine:   def.Name(),
		},
		InputLength: inputLen,
	})
}

func (e *Engine[S, A]) emitStep(def *domain.Definition[S, A], index int, from S, symbol A, to S) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(&domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventStep,
			Machine:   def.Name(),
		},
		Index:  index,
		From:   fmt.Sprint(from),
		Symbol: fmt.Sprint(symbol),
		To:     fmt.Sprint(to),
	})
}

func (e *Engine[S, A]) emitRunEnd(def *domain.Definition[S, A], inputLen, steps int, res *domain.Result[S], start time.Time, err error) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	evt := &domain.RunEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventRunEnd,
			Machine:   def.Name(),
		},
		InputLength: inputLen,
		Steps:       steps,
		Duration:    time.Since(start),
		Err:         err,
	}
	if res != nil {
		evt.Terminal = fmt.Sprint(res.Terminal)
		evt.Accepted = res.Accepted
	}
	e.hooks.OnRunEnd(evt)
}
