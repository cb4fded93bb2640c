package core

import "log"

// Event is an immutable change-description value delivered on the view
// model's update channel. Consumers must treat every event as "recompute
// fully"; none of the event types carries an incremental contract.
type Event any

// LinesChangedEvent signals that the content of model lines
// FromLineNumber..ToLineNumber changed in place.
type LinesChangedEvent struct {
	FromLineNumber int
	ToLineNumber   int
}

// LinesInsertedEvent signals that Count model lines were inserted before
// AtLineNumber.
type LinesInsertedEvent struct {
	AtLineNumber int
	Count        int
}

// LinesDeletedEvent signals that model lines FromLineNumber..ToLineNumber
// were removed.
type LinesDeletedEvent struct {
	FromLineNumber int
	ToLineNumber   int
}

// WrappingChangedEvent signals that the wrapping column or indent mode
// changed and every line was re-broken.
type WrappingChangedEvent struct {
	WrappingColumn int
}

// DecorationsChangedEvent signals that decorations changed somewhere in the
// document.
type DecorationsChangedEvent struct{}

// FlushEvent signals that the whole document was replaced.
type FlushEvent struct{}

func (v *ViewModel) dispatchEvent(event Event) {
	select {
	case v.updates <- event:
	default:
		log.Println("update channel is full, dropping event")
	}
}
