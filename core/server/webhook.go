package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"lodgebot/core/logger"
	"lodgebot/core/metrics"
	"lodgebot/core/whatsapp"
	"lodgebot/internal/conversation"
	"lodgebot/internal/listing"
)

const (
	// maxWebhookBody bounds the inbound payload; Cloud API envelopes are
	// small and anything larger is not ours.
	maxWebhookBody = 1 << 20

	apologyText = "Sorry, we are having trouble right now. Please try again in a moment."

	notifyTimeout = 15 * time.Second
)

// handleVerify answers the provider's subscription handshake: echo the
// challenge when the mode and token match, refuse otherwise.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && token != "" && token == s.cfg.VerifyToken {
		logger.Info(r.Context(), "server", "webhook.verified",
			slog.String("status", "ok"),
		)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, challenge)
		return
	}

	logger.Warn(r.Context(), "server", "webhook.verify.rejected",
		slog.String("status", "rejected"),
		slog.String("mode", mode),
	)
	w.WriteHeader(http.StatusForbidden)
}

// handleWebhook processes one inbound delivery. The provider retries on
// non-2xx, so every outcome other than a transient panic acknowledges with
// 200: replies the bot cannot produce are not fixed by a redelivery.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		logger.Warn(r.Context(), "server", "webhook.body.unreadable",
			slog.String("status", "rejected"),
			slog.String("err", err.Error()),
		)
		w.WriteHeader(http.StatusOK)
		return
	}

	ev, ok := whatsapp.DecodeWebhook(body)
	if !ok {
		// Status callbacks and unknown notification shapes land here.
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := logger.WithDeliveryMeta(r.Context(), ev.PartyID, ev.DeliveryID)
	s.processEvent(ctx, ev)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) processEvent(ctx context.Context, ev conversation.Event) {
	if s.locks != nil {
		unlock, err := s.locks.Acquire(ctx, ev.PartyID, s.cfg.LockTTL)
		if err != nil {
			logger.Error(ctx, "server", "party.lock.fail",
				slog.String("status", "error"),
				slog.String("err", err.Error()),
			)
			s.apologize(ctx, ev.PartyID)
			return
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				logger.Warn(ctx, "server", "party.unlock.fail",
					slog.String("err", err.Error()),
				)
			}
		}()
	}

	out, err := s.engine.HandleEvent(ctx, ev)
	if err != nil {
		if errors.Is(err, conversation.ErrStoreUnavailable) {
			logger.Error(ctx, "server", "event.store.unavailable",
				slog.String("status", "error"),
				slog.String("err", err.Error()),
			)
			metrics.EventsTotal.WithLabelValues("store_error").Inc()
			s.apologize(ctx, ev.PartyID)
			return
		}
		logger.Error(ctx, "server", "event.fail",
			slog.String("status", "error"),
			slog.String("err", err.Error()),
		)
		metrics.EventsTotal.WithLabelValues("error").Inc()
		return
	}

	if out.Duplicate {
		metrics.EventsTotal.WithLabelValues("duplicate").Inc()
		return
	}
	metrics.EventsTotal.WithLabelValues("ok").Inc()

	if err := s.msgr.Deliver(ctx, out.Directive); err != nil {
		// Outbound failures never roll back conversation state.
		logger.Error(ctx, "server", "reply.fail",
			slog.String("status", "error"),
			slog.String("form", string(out.Directive.Form)),
			slog.String("err", err.Error()),
		)
	}

	if out.Confirmed {
		metrics.ListingsConfirmedTotal.Inc()
		go s.finalizeListing(listing.FromSession(out.Session))
	}
}

// apologize tells the party something went wrong. Best effort only.
func (s *Server) apologize(ctx context.Context, partyID string) {
	if err := s.msgr.DeliverText(ctx, partyID, apologyText); err != nil {
		logger.Warn(ctx, "server", "apology.fail",
			slog.String("err", err.Error()),
		)
	}
}

// finalizeListing archives a confirmed listing and notifies the operator.
// Both effects are after-the-fact: the party already got the confirmation
// reply, so failures are logged and not surfaced.
func (s *Server) finalizeListing(l listing.Listing) {
	ctx, cancel := context.WithTimeout(logger.Background(), notifyTimeout)
	defer cancel()
	ctx = logger.WithDeliveryMeta(ctx, l.PartyID, "")

	summary := listing.Summarize(l)
	if s.archiver != nil {
		if err := s.archiver.Insert(ctx, l); err != nil {
			logger.Error(ctx, "server", "listing.archive.fail",
				slog.String("status", "error"),
				slog.String("err", err.Error()),
			)
		} else if n, err := s.archiver.CountByParty(ctx, l.PartyID); err == nil && n > 1 {
			summary += fmt.Sprintf("\nListings from this landlord so far: %d", n)
		}
	}

	if s.cfg.OwnerPhone == "" {
		return
	}
	if err := s.msgr.DeliverText(ctx, s.cfg.OwnerPhone, summary); err != nil {
		logger.Error(ctx, "server", "owner.notify.fail",
			slog.String("status", "error"),
			slog.String("err", err.Error()),
		)
	}
}
