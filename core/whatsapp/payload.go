package whatsapp

import "lodgebot/internal/conversation"

// Cloud API character ceilings. The API rejects oversized fields outright,
// so payload builders truncate instead of failing the send.
const (
	maxTextBody    = 4096
	maxBodyText    = 1024
	maxHeaderText  = 60
	maxRowTitle    = 24
	maxButtonTitle = 20
)

type textBody struct {
	Body string `json:"body"`
}

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type headerSpec struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bodySpec struct {
	Text string `json:"text"`
}

type rowSpec struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type sectionSpec struct {
	Title string    `json:"title"`
	Rows  []rowSpec `json:"rows"`
}

type listAction struct {
	Button   string        `json:"button"`
	Sections []sectionSpec `json:"sections"`
}

type buttonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type buttonSpec struct {
	Type  string      `json:"type"`
	Reply buttonReply `json:"reply"`
}

type buttonAction struct {
	Buttons []buttonSpec `json:"buttons"`
}

type interactiveSpec struct {
	Type   string      `json:"type"`
	Header *headerSpec `json:"header,omitempty"`
	Body   bodySpec    `json:"body"`
	Action any         `json:"action"`
}

type interactivePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Interactive      interactiveSpec `json:"interactive"`
}

func buildTextPayload(recipient, body string) textPayload {
	return textPayload{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
		Text:             textBody{Body: truncate(body, maxTextBody)},
	}
}

func buildListPayload(recipient, body, title string, opts []conversation.Option) interactivePayload {
	rows := make([]rowSpec, 0, len(opts))
	for _, opt := range opts {
		if len(rows) == conversation.MaxListOptions {
			break
		}
		rows = append(rows, rowSpec{
			ID:    opt.ID,
			Title: truncate(opt.Title, maxRowTitle),
		})
	}
	return interactivePayload{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "interactive",
		Interactive: interactiveSpec{
			Type:   "list",
			Header: &headerSpec{Type: "text", Text: truncate(title, maxHeaderText)},
			Body:   bodySpec{Text: truncate(body, maxBodyText)},
			Action: listAction{
				Button: "Options",
				Sections: []sectionSpec{{
					Title: "Choose one",
					Rows:  rows,
				}},
			},
		},
	}
}

func buildButtonsPayload(recipient, body string, opts []conversation.Option) interactivePayload {
	buttons := make([]buttonSpec, 0, len(opts))
	for _, opt := range opts {
		if len(buttons) == conversation.MaxButtonOptions {
			break
		}
		buttons = append(buttons, buttonSpec{
			Type: "reply",
			Reply: buttonReply{
				ID:    opt.ID,
				Title: truncate(opt.Title, maxButtonTitle),
			},
		})
	}
	return interactivePayload{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "interactive",
		Interactive: interactiveSpec{
			Type:   "button",
			Body:   bodySpec{Text: truncate(body, maxBodyText)},
			Action: buttonAction{Buttons: buttons},
		},
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
