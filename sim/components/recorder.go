package components

import (
	"github.com/sirupsen/logrus"

	"github.com/afcarl/vivarium/sim"
)

// Recorder observes the run: it counts every driver emission at the
// earliest priority and, when the run ends, emits a "final_report" event
// carrying its counts. Nothing has to listen for the report; emitting to
// an empty channel is fine.
type Recorder struct {
	counts     map[string]int
	emitReport sim.Emitter
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]int)}
}

// EventHandlers implements sim.ListenerProvider. The recorder subscribes
// at MinPriority so its counts reflect what every later listener saw.
func (r *Recorder) EventHandlers() []*sim.Handler {
	return []*sim.Handler{
		sim.NewHandler("recorder.on_start", r.observe(sim.EventSimulationStart)).
			ListensFor(sim.EventSimulationStart, sim.MinPriority),
		sim.NewHandler("recorder.on_step", r.observe(sim.EventTimeStep)).
			ListensFor(sim.EventTimeStep, sim.MinPriority),
		sim.NewHandler("recorder.on_end", r.onEnd).
			ListensFor(sim.EventSimulationEnd, sim.MinPriority),
	}
}

// EventEmitters implements sim.EmitterProvider.
func (r *Recorder) EventEmitters() []sim.EmitterRequest {
	return []sim.EmitterRequest{
		{Event: "final_report", Bind: func(e sim.Emitter) { r.emitReport = e }},
	}
}

// Count reports how many times the named event was observed.
func (r *Recorder) Count(event string) int {
	return r.counts[event]
}

func (r *Recorder) observe(event string) sim.Listener {
	return func(*sim.Event) {
		r.counts[event]++
	}
}

func (r *Recorder) onEnd(ev *sim.Event) {
	r.counts[sim.EventSimulationEnd]++
	logrus.Infof("recorder: %d steps observed", r.counts[sim.EventTimeStep])
	r.emitReport(sim.NewEvent(ev.Index, map[string]any{"counts": r.counts}))
}
