package conversation

import (
	"regexp"
	"strings"
)

// Kind is the canonical classification of an inbound event.
type Kind string

const (
	// KindGreeting matches the greeting token set and restarts the dialog.
	KindGreeting Kind = "greeting"
	// KindRoleChoice is reserved for explicit role events; the provider reports
	// role picks as list selections, so the normalizer emits KindSelection and
	// the transition table resolves the role from the selection id.
	KindRoleChoice Kind = "role_choice"
	// KindYesNo is a literal yes or no text answer.
	KindYesNo Kind = "yes_no"
	// KindFreeText is any other text, kept in its original casing.
	KindFreeText Kind = "free_text"
	// KindNumber is a non-negative integer literal.
	KindNumber Kind = "number"
	// KindDecimal is a non-negative decimal literal.
	KindDecimal Kind = "decimal"
	// KindImage is a media attachment of category image.
	KindImage Kind = "image"
	// KindSelection is a structured list-row or button reply.
	KindSelection Kind = "selection"
	// KindUnrecognized covers provider event kinds outside the dialog contract.
	KindUnrecognized Kind = "unrecognized"
)

// Input is the normalized form of an inbound event. It is never persisted.
type Input struct {
	Kind Kind
	// Raw is the original payload text or interaction identifier.
	Raw string
	// Normalized is the canonical value used for matching: lower-cased and
	// trimmed, except for KindFreeText which keeps the original casing so
	// answers like an age range survive verbatim.
	Normalized string
}

var greetingTokens = map[string]struct{}{
	"hi":    {},
	"hie":   {},
	"hey":   {},
	"hello": {},
}

var (
	numberRe  = regexp.MustCompile(`^[0-9]+$`)
	decimalRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// NormalizeInput classifies a raw inbound event into exactly one Input.
// It is a pure function of the event.
func NormalizeInput(ev Event) Input {
	switch ev.Kind {
	case EventImage:
		return Input{Kind: KindImage}
	case EventInteractive:
		return Input{
			Kind:       KindSelection,
			Raw:        ev.SelectionID,
			Normalized: strings.ToLower(strings.TrimSpace(ev.SelectionID)),
		}
	case EventText:
		trimmed := strings.TrimSpace(ev.Text)
		lowered := strings.ToLower(trimmed)
		switch {
		case isGreeting(lowered):
			return Input{Kind: KindGreeting, Raw: ev.Text, Normalized: lowered}
		case numberRe.MatchString(lowered):
			return Input{Kind: KindNumber, Raw: ev.Text, Normalized: lowered}
		case decimalRe.MatchString(lowered):
			return Input{Kind: KindDecimal, Raw: ev.Text, Normalized: lowered}
		case lowered == "yes" || lowered == "no":
			return Input{Kind: KindYesNo, Raw: ev.Text, Normalized: lowered}
		default:
			return Input{Kind: KindFreeText, Raw: ev.Text, Normalized: trimmed}
		}
	default:
		return Input{Kind: KindUnrecognized, Raw: ev.Text}
	}
}

func isGreeting(token string) bool {
	_, ok := greetingTokens[token]
	return ok
}

// token returns the lower-cased normalized value for exact-token matching.
// FreeText keeps original casing in Normalized, so matching lowers it here.
func (in Input) token() string {
	return strings.ToLower(strings.TrimSpace(in.Normalized))
}
