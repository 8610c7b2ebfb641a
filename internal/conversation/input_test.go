package conversation

import "testing"

func TestNormalizeInputText(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		kind       Kind
		normalized string
	}{
		{"greeting lower", "hi", KindGreeting, "hi"},
		{"greeting mixed case", "  HeLLo  ", KindGreeting, "hello"},
		{"greeting variant", "Hie", KindGreeting, "hie"},
		{"integer", "12", KindNumber, "12"},
		{"integer padded", " 3 ", KindNumber, "3"},
		{"decimal", "120.50", KindDecimal, "120.50"},
		{"yes", "YES", KindYesNo, "yes"},
		{"no", "no", KindYesNo, "no"},
		{"free text keeps casing", "  18 to 25 Years ", KindFreeText, "18 to 25 Years"},
		{"negative is free text", "-3", KindFreeText, "-3"},
		{"word", "boys", KindFreeText, "boys"},
		{"empty", "", KindFreeText, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NormalizeInput(Event{Kind: EventText, Text: tc.text})
			if in.Kind != tc.kind {
				t.Fatalf("kind = %s, expected %s", in.Kind, tc.kind)
			}
			if in.Normalized != tc.normalized {
				t.Fatalf("normalized = %q, expected %q", in.Normalized, tc.normalized)
			}
		})
	}
}

func TestNormalizeInputImage(t *testing.T) {
	in := NormalizeInput(Event{Kind: EventImage})
	if in.Kind != KindImage {
		t.Fatalf("kind = %s, expected image", in.Kind)
	}
}

func TestNormalizeInputSelection(t *testing.T) {
	in := NormalizeInput(Event{Kind: EventInteractive, SelectionID: " Landlord "})
	if in.Kind != KindSelection {
		t.Fatalf("kind = %s, expected selection", in.Kind)
	}
	if in.Normalized != "landlord" {
		t.Fatalf("normalized = %q, expected landlord", in.Normalized)
	}
}

func TestNormalizeInputUnknownEventKind(t *testing.T) {
	in := NormalizeInput(Event{Kind: EventOther})
	if in.Kind != KindUnrecognized {
		t.Fatalf("kind = %s, expected unrecognized", in.Kind)
	}
}
