package conversation

import (
	"context"
	"log/slog"

	"lodgebot/core/logger"
)

// SessionStore is the durable party-id to session mapping. Load returns
// (nil, nil) on a miss; Save is a full replace that refreshes the sliding
// expiry on every write.
type SessionStore interface {
	Load(ctx context.Context, partyID string) (*Session, error)
	Save(ctx context.Context, sess Session) error
}

// DedupFilter guards against re-processing provider retries. Seen only
// tests membership; Record commits the id once the transition is persisted,
// so a failed save leaves the retry eligible for reprocessing.
type DedupFilter interface {
	Seen(ctx context.Context, partyID, deliveryID string) (bool, error)
	Record(ctx context.Context, partyID, deliveryID string) error
}

// Engine orchestrates one inbound delivery: dedup check, session load,
// input normalization, transition lookup, and persistence. It never calls
// the network; the returned directive is the caller's to dispatch.
type Engine struct {
	sessions SessionStore
	dedup    DedupFilter
}

// NewEngine wires the engine with its stores.
func NewEngine(sessions SessionStore, dedup DedupFilter) *Engine {
	return &Engine{sessions: sessions, dedup: dedup}
}

// HandleEvent processes a single inbound event and returns the outcome.
// Steps before the session save are read-only, so a returned error means no
// mutation was committed.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) (Outcome, error) {
	if ev.DeliveryID != "" {
		seen, err := e.dedup.Seen(ctx, ev.PartyID, ev.DeliveryID)
		if err != nil {
			return Outcome{}, storeErr("dedup check", err)
		}
		if seen {
			logger.Debug(ctx, "engine", "event.duplicate",
				slog.String("status", "duplicate"),
			)
			return Outcome{Duplicate: true, Directive: None()}, nil
		}
	}

	sess, err := e.loadSession(ctx, ev)
	if err != nil {
		return Outcome{}, err
	}

	in := NormalizeInput(ev)
	out := Transition(sess, in)
	out.Directive = clampOptions(out.Directive)

	if err := e.sessions.Save(ctx, out.Session); err != nil {
		return Outcome{}, storeErr("session save", err)
	}

	if ev.DeliveryID != "" {
		// The transition is committed; losing the dedup append only risks
		// answering a provider retry twice, so it does not fail the event.
		if err := e.dedup.Record(ctx, ev.PartyID, ev.DeliveryID); err != nil {
			logger.Warn(ctx, "engine", "dedup.record.fail",
				slog.String("err", err.Error()),
			)
		}
	}

	logger.Debug(ctx, "engine", "event.handled",
		slog.String("status", "ok"),
		slog.String("step", string(sess.Step)),
		slog.String("next_step", string(out.Session.Step)),
		slog.String("input_kind", string(in.Kind)),
		slog.String("form", string(out.Directive.Form)),
	)

	return out, nil
}

func (e *Engine) loadSession(ctx context.Context, ev Event) (Session, error) {
	stored, err := e.sessions.Load(ctx, ev.PartyID)
	if err != nil {
		return Session{}, storeErr("session load", err)
	}

	var sess Session
	if stored == nil {
		sess = NewSession(ev.PartyID)
	} else {
		sess = *stored
		if !sess.Step.Known() {
			logger.Warn(ctx, "engine", "session.unknown_step",
				slog.String("step", string(sess.Step)),
			)
			sess = sess.restart()
		}
	}

	// Display name is captured once and never overwritten.
	if sess.DisplayName == "" && ev.DisplayName != "" {
		sess.DisplayName = ev.DisplayName
	}
	return sess, nil
}
