package ascent

import (
	"fmt"

	"github.com/go-kit/kit/log"
)

// Event is a discrete mission event, keyed so that downstream sinks (audio
// callouts, UI banners) can de-duplicate on their side. The core fires each
// phase entry exactly once per transition; any further de-duplication state
// lives entirely in the sink.
type Event struct {
	Key         string
	Phase       Phase
	MissionTime float64 // s
}

// EventSink receives mission events. Implementations must not block: the
// tick loop calls Publish synchronously.
type EventSink interface {
	Publish(Event)
}

// NopSink discards all events.
type NopSink struct{}

// Publish implements the EventSink interface.
func (NopSink) Publish(Event) {}

// LogSink writes events to a logger.
type LogSink struct {
	Logger log.Logger
}

// Publish implements the EventSink interface.
func (s LogSink) Publish(e Event) {
	s.Logger.Log("level", "info", "subsys", "events", "key", e.Key, "t", fmt.Sprintf("%.2f", e.MissionTime))
}

// phaseEvents derives the events between two consecutive states.
func phaseEvents(prev, next SimulationState) []Event {
	var events []Event
	if prev.Phase != next.Phase {
		events = append(events, Event{
			Key:         "phase:" + next.Phase.String(),
			Phase:       next.Phase,
			MissionTime: next.MissionTime,
		})
	}
	if !prev.Orbiting && next.Orbiting {
		events = append(events, Event{Key: "orbit:stable", Phase: next.Phase, MissionTime: next.MissionTime})
	}
	if !prev.LegsDeployed && next.LegsDeployed {
		events = append(events, Event{Key: "deploy:legs", Phase: next.Phase, MissionTime: next.MissionTime})
	}
	if !prev.GridFinsDeployed && next.GridFinsDeployed {
		events = append(events, Event{Key: "deploy:gridfins", Phase: next.Phase, MissionTime: next.MissionTime})
	}
	return events
}
