package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lodgebot/internal/conversation"
	"lodgebot/internal/listing"
)

type fakeEngine struct {
	mu     sync.Mutex
	events []conversation.Event
	out    conversation.Outcome
	err    error
}

func (f *fakeEngine) HandleEvent(ctx context.Context, ev conversation.Event) (conversation.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.out, f.err
}

func (f *fakeEngine) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeMessenger struct {
	mu         sync.Mutex
	directives []conversation.Directive
	texts      map[string]string
}

func (f *fakeMessenger) Deliver(ctx context.Context, d conversation.Directive) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directives = append(f.directives, d)
	return nil
}

func (f *fakeMessenger) DeliverText(ctx context.Context, recipient, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.texts == nil {
		f.texts = map[string]string{}
	}
	f.texts[recipient] = body
	return nil
}

func (f *fakeMessenger) textFor(recipient string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.texts[recipient]
	return body, ok
}

type fakeArchiver struct {
	mu       sync.Mutex
	listings []listing.Listing
}

func (f *fakeArchiver) Insert(ctx context.Context, l listing.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = append(f.listings, l)
	return nil
}

func (f *fakeArchiver) CountByParty(ctx context.Context, partyID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, l := range f.listings {
		if l.PartyID == partyID {
			n++
		}
	}
	return n, nil
}

func (f *fakeArchiver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listings)
}

const inboundText = `{
  "entry": [{
    "changes": [{
      "value": {
        "messages": [{
          "id": "wamid.test",
          "from": "263771000700",
          "type": "text",
          "text": {"body": "hi"}
        }]
      }
    }]
  }]
}`

func newTestServer(engine Engine, msgr Messenger, opts ...Option) *httptest.Server {
	srv := New(Config{VerifyToken: "secret-token", OwnerPhone: "263770000000"}, engine, msgr, opts...)
	return httptest.NewServer(srv.Router())
}

func TestVerifyHandshake(t *testing.T) {
	ts := newTestServer(&fakeEngine{}, &fakeMessenger{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "12345" {
		t.Fatalf("challenge echo = %q", body)
	}
}

func TestVerifyHandshakeRejections(t *testing.T) {
	ts := newTestServer(&fakeEngine{}, &fakeMessenger{})
	defer ts.Close()

	cases := []string{
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=1",
		"/webhook?hub.mode=unsubscribe&hub.verify_token=secret-token&hub.challenge=1",
		"/webhook?hub.challenge=1",
	}
	for _, path := range cases {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: status = %d, expected 403", path, resp.StatusCode)
		}
	}
}

func TestWebhookDeliversReply(t *testing.T) {
	engine := &fakeEngine{out: conversation.Outcome{
		Session: conversation.NewSession("263771000700"),
		Directive: conversation.Directive{
			Form:      conversation.FormText,
			Recipient: "263771000700",
			Body:      "Welcome",
		},
	}}
	msgr := &fakeMessenger{}
	ts := newTestServer(engine, msgr)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(inboundText))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if engine.eventCount() != 1 {
		t.Fatalf("engine calls = %d", engine.eventCount())
	}
	msgr.mu.Lock()
	defer msgr.mu.Unlock()
	if len(msgr.directives) != 1 || msgr.directives[0].Body != "Welcome" {
		t.Fatalf("directives = %+v", msgr.directives)
	}
}

func TestWebhookAcksNonMessagePayloads(t *testing.T) {
	engine := &fakeEngine{}
	ts := newTestServer(engine, &fakeMessenger{})
	defer ts.Close()

	for _, body := range []string{"{}", "not json", `{"entry":[]}`} {
		resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d for %q, expected 200", resp.StatusCode, body)
		}
	}
	if engine.eventCount() != 0 {
		t.Fatalf("engine called %d times on non-message payloads", engine.eventCount())
	}
}

func TestWebhookStoreUnavailableApologizes(t *testing.T) {
	engine := &fakeEngine{err: conversation.ErrStoreUnavailable}
	msgr := &fakeMessenger{}
	ts := newTestServer(engine, msgr)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(inboundText))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, outage must still ack", resp.StatusCode)
	}
	body, ok := msgr.textFor("263771000700")
	if !ok {
		t.Fatal("expected an apology to the party")
	}
	if body != apologyText {
		t.Fatalf("apology = %q", body)
	}
}

func TestWebhookConfirmNotifiesAndArchives(t *testing.T) {
	sess := conversation.NewSession("263771000700")
	sess.Step = conversation.StepEnd
	ht := "boys"
	sess.Attributes.HouseType = &ht

	engine := &fakeEngine{out: conversation.Outcome{
		Session: sess,
		Directive: conversation.Directive{
			Form:      conversation.FormText,
			Recipient: "263771000700",
			Body:      "Thank you",
		},
		Confirmed: true,
	}}
	msgr := &fakeMessenger{}
	archiver := &fakeArchiver{}
	ts := newTestServer(engine, msgr, WithArchiver(archiver))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(inboundText))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	// Archive and owner notification run after the reply; poll for them.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := msgr.textFor("263770000000"); ok && archiver.count() == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if archiver.count() != 1 {
		t.Fatalf("archived listings = %d", archiver.count())
	}
	summary, ok := msgr.textFor("263770000000")
	if !ok {
		t.Fatal("expected owner notification")
	}
	if !strings.Contains(summary, "Type: boys") {
		t.Fatalf("summary = %q", summary)
	}
	archiver.mu.Lock()
	defer archiver.mu.Unlock()
	if archiver.listings[0].PartyID != "263771000700" {
		t.Fatalf("listing party = %s", archiver.listings[0].PartyID)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(&fakeEngine{}, &fakeMessenger{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
