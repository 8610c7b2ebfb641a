package whatsapp

import (
	"encoding/json"

	"lodgebot/internal/conversation"
)

// Webhook envelope as delivered by the Cloud API. Only the fields the
// conversation layer needs are decoded; everything else is ignored.
type webhookEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					ID   string `json:"id"`
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive struct {
						Type      string `json:"type"`
						ListReply struct {
							ID string `json:"id"`
						} `json:"list_reply"`
						ButtonReply struct {
							ID string `json:"id"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// DecodeWebhook extracts the first inbound message from a webhook body.
// Status callbacks and other non-message notifications return ok=false;
// they are acknowledged but carry nothing for the conversation engine.
func DecodeWebhook(body []byte) (conversation.Event, bool) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return conversation.Event{}, false
	}
	if len(env.Entry) == 0 || len(env.Entry[0].Changes) == 0 {
		return conversation.Event{}, false
	}
	value := env.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return conversation.Event{}, false
	}
	msg := value.Messages[0]
	if msg.From == "" || msg.ID == "" {
		return conversation.Event{}, false
	}

	ev := conversation.Event{
		PartyID:    msg.From,
		DeliveryID: msg.ID,
	}
	if len(value.Contacts) > 0 {
		ev.DisplayName = value.Contacts[0].Profile.Name
	}

	switch msg.Type {
	case "text":
		ev.Kind = conversation.EventText
		ev.Text = msg.Text.Body
	case "image":
		ev.Kind = conversation.EventImage
	case "interactive":
		ev.Kind = conversation.EventInteractive
		switch msg.Interactive.Type {
		case "list_reply":
			ev.SelectionID = msg.Interactive.ListReply.ID
		case "button_reply":
			ev.SelectionID = msg.Interactive.ButtonReply.ID
		}
		if ev.SelectionID == "" {
			ev.Kind = conversation.EventOther
		}
	default:
		ev.Kind = conversation.EventOther
	}
	return ev, true
}
