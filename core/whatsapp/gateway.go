// Package whatsapp is the messaging gateway: it turns abstract outbound
// directives into WhatsApp Cloud API calls and decodes inbound webhook
// payloads into conversation events.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"lodgebot/core/logger"
	"lodgebot/core/metrics"
	"lodgebot/core/whatsapp/sender"
	"lodgebot/internal/conversation"
)

// Config carries the Cloud API credentials and addressing.
type Config struct {
	Token        string
	PhoneID      string
	GraphBaseURL string
}

// APIError is a non-2xx Graph API response.
type APIError struct {
	Code int
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api status %d: %s", e.Code, e.Body)
}

// StatusCode implements sender.StatusCoder.
func (e *APIError) StatusCode() int { return e.Code }

// Gateway sends outbound messages through the Cloud API. Sends go through
// the async dispatcher when one is wired; either way a failure never
// propagates back into conversation state.
type Gateway struct {
	cfg    Config
	client *http.Client
	disp   *sender.Dispatcher
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient overrides the tuned default client, mainly for tests.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = c }
}

// WithDispatcher wires the async sender.
func WithDispatcher(d *sender.Dispatcher) GatewayOption {
	return func(g *Gateway) { g.disp = d }
}

// NewGateway builds the gateway from explicit configuration; no ambient
// global token or phone id is consulted anywhere.
func NewGateway(cfg Config, opts ...GatewayOption) (*Gateway, error) {
	if cfg.Token == "" || cfg.PhoneID == "" {
		return nil, errors.New("whatsapp: token and phone id are required")
	}
	if cfg.GraphBaseURL == "" {
		return nil, errors.New("whatsapp: graph base url is required")
	}
	g := &Gateway{
		cfg:    cfg,
		client: BuildHTTPClient(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Deliver sends the directive to its recipient. FormNone is a no-op.
func (g *Gateway) Deliver(ctx context.Context, d conversation.Directive) error {
	switch d.Form {
	case conversation.FormNone:
		return nil
	case conversation.FormText:
		return g.send(ctx, "send.text", d.Recipient, buildTextPayload(d.Recipient, d.Body), string(d.Form))
	case conversation.FormList:
		if len(d.Options) > conversation.MaxListOptions {
			return fmt.Errorf("whatsapp: too many list options (%d)", len(d.Options))
		}
		return g.send(ctx, "send.list", d.Recipient, buildListPayload(d.Recipient, d.Body, d.Title, d.Options), string(d.Form))
	case conversation.FormButtons:
		if len(d.Options) > conversation.MaxButtonOptions {
			return fmt.Errorf("whatsapp: too many buttons (%d)", len(d.Options))
		}
		return g.send(ctx, "send.buttons", d.Recipient, buildButtonsPayload(d.Recipient, d.Body, d.Options), string(d.Form))
	default:
		return fmt.Errorf("whatsapp: unknown directive form %q", d.Form)
	}
}

// DeliverText sends a plain text message, used for operator notifications.
func (g *Gateway) DeliverText(ctx context.Context, recipient, body string) error {
	return g.send(ctx, "send.text", recipient, buildTextPayload(recipient, body), "text")
}

func (g *Gateway) send(ctx context.Context, action, recipient string, payload any, form string) error {
	run := func() error {
		err := g.post(ctx, payload)
		if err != nil {
			metrics.SendsTotal.WithLabelValues(form, "fail").Inc()
			return err
		}
		metrics.SendsTotal.WithLabelValues(form, "ok").Inc()
		return nil
	}

	if g.disp == nil {
		return run()
	}
	if err := g.disp.Enqueue(ctx, action, recipient, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "wa", "queue.fallback",
				slog.String("action", action),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

func (g *Gateway) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", g.cfg.GraphBaseURL, g.cfg.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{Code: resp.StatusCode, Body: string(data)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
