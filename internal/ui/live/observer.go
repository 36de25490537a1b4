package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string) {
	c.send(Event{Kind: EventRunStart, RunID: runID})
}

// OnExperimentStart forwards experiment start events to the UI.
func (c *Controller) OnExperimentStart(experimentID, experimentType, modelID, model string, evaluations int) {
	c.send(Event{
		Kind:           EventExperimentStart,
		ExperimentID:   experimentID,
		ExperimentType: experimentType,
		ModelID:        modelID,
		Model:          model,
		Evaluations:    evaluations,
	})
}

// OnTrialEvent forwards trial status updates to the UI.
func (c *Controller) OnTrialEvent(event runner.TrialEvent) {
	c.send(Event{Kind: EventTrial, Trial: event})
}

// OnExperimentEnd forwards experiment completion events to the UI.
func (c *Controller) OnExperimentEnd(experimentID, status, errText string) {
	c.send(Event{
		Kind:             EventExperimentEnd,
		ExperimentID:     experimentID,
		ExperimentStatus: status,
		ExperimentError:  errText,
	})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
