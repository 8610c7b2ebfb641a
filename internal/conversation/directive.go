package conversation

import "strings"

// Form selects the outbound message shape the gateway must produce.
type Form string

const (
	// FormNone instructs the caller to send nothing (duplicate delivery).
	FormNone Form = ""
	// FormText is a plain text message.
	FormText Form = "text"
	// FormList is a single-select list message.
	FormList Form = "list"
	// FormButtons is a quick-reply button message.
	FormButtons Form = "buttons"
)

const (
	// MaxListOptions is the provider ceiling on list rows.
	MaxListOptions = 10
	// MaxButtonOptions is the provider ceiling on quick-reply buttons.
	MaxButtonOptions = 3
)

// Option is one selectable row or button.
type Option struct {
	ID    string
	Title string
}

// Directive is the engine's abstract description of what to send next,
// independent of the provider wire format.
type Directive struct {
	Form      Form
	Recipient string
	Body      string
	Title     string
	Options   []Option
}

// None is the no-op directive returned for duplicate deliveries.
func None() Directive {
	return Directive{Form: FormNone}
}

// OptionID derives a selection id from a human title, matching the provider
// convention of lower-cased, underscore-joined titles.
func OptionID(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}

// options builds Option values from plain titles.
func options(titles ...string) []Option {
	out := make([]Option, 0, len(titles))
	for _, t := range titles {
		out = append(out, Option{ID: OptionID(t), Title: t})
	}
	return out
}

// clampOptions enforces the per-form option ceilings. The engine truncates
// rather than trusting the gateway to reject oversized payloads.
func clampOptions(d Directive) Directive {
	limit := 0
	switch d.Form {
	case FormList:
		limit = MaxListOptions
	case FormButtons:
		limit = MaxButtonOptions
	default:
		return d
	}
	if len(d.Options) > limit {
		d.Options = d.Options[:limit]
	}
	return d
}
