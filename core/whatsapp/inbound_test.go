package whatsapp

import (
	"testing"

	"lodgebot/internal/conversation"
)

const textWebhook = `{
  "entry": [{
    "changes": [{
      "value": {
        "contacts": [{"profile": {"name": "Tatenda"}}],
        "messages": [{
          "id": "wamid.abc",
          "from": "263771000600",
          "type": "text",
          "text": {"body": "hi"}
        }]
      }
    }]
  }]
}`

const listReplyWebhook = `{
  "entry": [{
    "changes": [{
      "value": {
        "messages": [{
          "id": "wamid.def",
          "from": "263771000600",
          "type": "interactive",
          "interactive": {
            "type": "list_reply",
            "list_reply": {"id": "landlord", "title": "Landlord"}
          }
        }]
      }
    }]
  }]
}`

const buttonReplyWebhook = `{
  "entry": [{
    "changes": [{
      "value": {
        "messages": [{
          "id": "wamid.ghi",
          "from": "263771000600",
          "type": "interactive",
          "interactive": {
            "type": "button_reply",
            "button_reply": {"id": "yes", "title": "Yes"}
          }
        }]
      }
    }]
  }]
}`

const statusWebhook = `{
  "entry": [{
    "changes": [{
      "value": {
        "statuses": [{"id": "wamid.abc", "status": "delivered"}]
      }
    }]
  }]
}`

func TestDecodeWebhookText(t *testing.T) {
	ev, ok := DecodeWebhook([]byte(textWebhook))
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != conversation.EventText || ev.Text != "hi" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.PartyID != "263771000600" || ev.DeliveryID != "wamid.abc" {
		t.Fatalf("identity = %s/%s", ev.PartyID, ev.DeliveryID)
	}
	if ev.DisplayName != "Tatenda" {
		t.Fatalf("display name = %s", ev.DisplayName)
	}
}

func TestDecodeWebhookListReply(t *testing.T) {
	ev, ok := DecodeWebhook([]byte(listReplyWebhook))
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != conversation.EventInteractive || ev.SelectionID != "landlord" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestDecodeWebhookButtonReply(t *testing.T) {
	ev, ok := DecodeWebhook([]byte(buttonReplyWebhook))
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != conversation.EventInteractive || ev.SelectionID != "yes" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestDecodeWebhookImage(t *testing.T) {
	body := `{"entry":[{"changes":[{"value":{"messages":[{"id":"wamid.img","from":"1","type":"image","image":{"id":"media-1"}}]}}]}]}`
	ev, ok := DecodeWebhook([]byte(body))
	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Kind != conversation.EventImage {
		t.Fatalf("kind = %s", ev.Kind)
	}
}

func TestDecodeWebhookStatusCallback(t *testing.T) {
	if _, ok := DecodeWebhook([]byte(statusWebhook)); ok {
		t.Fatal("status callbacks carry no message")
	}
}

func TestDecodeWebhookMalformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"{}",
		`{"entry":[]}`,
		`{"entry":[{"changes":[]}]}`,
		`{"entry":[{"changes":[{"value":{"messages":[{"type":"text"}]}}]}]}`,
	}
	for _, body := range cases {
		if _, ok := DecodeWebhook([]byte(body)); ok {
			t.Fatalf("decoded an event from %q", body)
		}
	}
}

func TestDecodeWebhookUnknownMessageType(t *testing.T) {
	body := `{"entry":[{"changes":[{"value":{"messages":[{"id":"wamid.x","from":"1","type":"audio"}]}}]}]}`
	ev, ok := DecodeWebhook([]byte(body))
	if !ok {
		t.Fatal("unknown message types still identify the party")
	}
	if ev.Kind != conversation.EventOther {
		t.Fatalf("kind = %s", ev.Kind)
	}
}
