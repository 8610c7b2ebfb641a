// Package conversation implements the intake dialog: input normalization,
// the step transition table, and the session engine that drives both.
// It performs no network I/O; persistence and delivery are injected.
package conversation

// EventKind classifies an inbound provider event before normalization.
type EventKind string

const (
	// EventText is a plain text message.
	EventText EventKind = "text"
	// EventImage is a media attachment of category image.
	EventImage EventKind = "image"
	// EventInteractive is a structured selection (list row or button reply).
	EventInteractive EventKind = "interactive"
	// EventOther covers provider event kinds the dialog does not understand.
	EventOther EventKind = "other"
)

// Event is one inbound webhook delivery, already stripped of transport framing.
type Event struct {
	PartyID     string
	DisplayName string
	DeliveryID  string
	Kind        EventKind
	Text        string
	// SelectionID carries the opaque id of a list-row or button reply.
	SelectionID string
}
