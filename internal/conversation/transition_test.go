package conversation

import (
	"reflect"
	"testing"
)

func textInput(s string) Input {
	return NormalizeInput(Event{Kind: EventText, Text: s})
}

func selectionInput(id string) Input {
	return NormalizeInput(Event{Kind: EventInteractive, SelectionID: id})
}

func imageInput() Input {
	return NormalizeInput(Event{Kind: EventImage})
}

func TestGreetingPromptsRole(t *testing.T) {
	sess := NewSession("263771000001")
	out := Transition(sess, textInput("hi"))
	if out.Session.Step != StepStart {
		t.Fatalf("step = %s, expected start", out.Session.Step)
	}
	if out.Directive.Form != FormList {
		t.Fatalf("form = %s, expected list", out.Directive.Form)
	}
	if len(out.Directive.Options) != 2 {
		t.Fatalf("options = %d, expected 2", len(out.Directive.Options))
	}
}

func TestStudentBranch(t *testing.T) {
	sess := NewSession("263771000002")
	out := Transition(sess, selectionInput("student"))
	if out.Session.Step != StepStudentPending {
		t.Fatalf("step = %s, expected student_pending", out.Session.Step)
	}

	// The pending branch restates itself whatever arrives next.
	out = Transition(out.Session, textInput("when is the app out"))
	if out.Session.Step != StepStudentPending {
		t.Fatalf("step = %s, expected student_pending", out.Session.Step)
	}
	if out.Directive.Form != FormText {
		t.Fatalf("form = %s, expected text", out.Directive.Form)
	}
}

func TestLandlordHappyPath(t *testing.T) {
	sess := NewSession("263771000003")

	steps := []struct {
		in       Input
		nextStep Step
	}{
		{selectionInput("landlord"), StepAwaitingImage},
		{imageInput(), StepHouseType},
		{selectionInput("boys"), StepAskCat},
		{selectionInput("yes"), StepAskAvailability},
		{selectionInput("yes"), StepSingleCount},
		{textInput("4"), StepSingleRent},
		{textInput("120.50"), StepDoubleCount},
		{textInput("2"), StepDoubleRent},
		{textInput("90"), StepTripleCount},
		{textInput("0"), StepTripleRent},
		{textInput("60"), StepAskAge},
		{textInput("18 to 25 years"), StepConfirm},
	}

	var out Outcome
	for i, st := range steps {
		out = Transition(sess, st.in)
		if out.Session.Step != st.nextStep {
			t.Fatalf("step %d: got %s, expected %s", i, out.Session.Step, st.nextStep)
		}
		if out.Confirmed {
			t.Fatalf("step %d: confirmed before the confirm step", i)
		}
		sess = out.Session
	}

	out = Transition(sess, selectionInput("confirm"))
	if !out.Confirmed {
		t.Fatal("expected confirmed outcome")
	}
	if out.Session.Step != StepEnd {
		t.Fatalf("step = %s, expected end", out.Session.Step)
	}

	a := out.Session.Attributes
	if a.HouseType == nil || *a.HouseType != "boys" {
		t.Fatalf("house type = %v", a.HouseType)
	}
	if a.HasCat == nil || !*a.HasCat {
		t.Fatalf("has cat = %v", a.HasCat)
	}
	if a.RoomSingleCount == nil || *a.RoomSingleCount != 4 {
		t.Fatalf("single count = %v", a.RoomSingleCount)
	}
	if a.RentSingle == nil || *a.RentSingle != 120.50 {
		t.Fatalf("single rent = %v", a.RentSingle)
	}
	if a.RoomDoubleCount == nil || *a.RoomDoubleCount != 2 {
		t.Fatalf("double count = %v", a.RoomDoubleCount)
	}
	if a.RentDouble == nil || *a.RentDouble != 90 {
		t.Fatalf("double rent = %v", a.RentDouble)
	}
	if a.RoomTripleCount == nil || *a.RoomTripleCount != 0 {
		t.Fatalf("triple count = %v", a.RoomTripleCount)
	}
	if a.RentTriple == nil || *a.RentTriple != 60 {
		t.Fatalf("triple rent = %v", a.RentTriple)
	}
	if a.StudentAge == nil || *a.StudentAge != "18 to 25 years" {
		t.Fatalf("age = %v", a.StudentAge)
	}
	if !out.Session.Verified || !out.Session.ImageReceived {
		t.Fatal("expected verified session with image received")
	}
}

func TestInvalidCountDoesNotMutate(t *testing.T) {
	sess := NewSession("263771000004")
	sess.Step = StepSingleCount

	out := Transition(sess, textInput("abc"))
	if !reflect.DeepEqual(out.Session, sess) {
		t.Fatal("rejected input mutated the session")
	}
	if out.Session.Step != StepSingleCount {
		t.Fatalf("step = %s, expected single count re-prompt", out.Session.Step)
	}
	if out.Session.Attributes.RoomSingleCount != nil {
		t.Fatal("count written from non-numeric input")
	}
}

func TestDecimalRejectedForCount(t *testing.T) {
	sess := NewSession("263771000005")
	sess.Step = StepDoubleCount

	out := Transition(sess, textInput("2.5"))
	if out.Session.Step != StepDoubleCount {
		t.Fatalf("step = %s, expected re-prompt at double count", out.Session.Step)
	}
	if out.Session.Attributes.RoomDoubleCount != nil {
		t.Fatal("count accepted a decimal")
	}
}

func TestRentAcceptsIntegerAndDecimal(t *testing.T) {
	sess := NewSession("263771000006")
	sess.Step = StepSingleRent

	out := Transition(sess, textInput("100"))
	if out.Session.Attributes.RentSingle == nil || *out.Session.Attributes.RentSingle != 100 {
		t.Fatalf("rent = %v, expected 100", out.Session.Attributes.RentSingle)
	}

	sess.Step = StepDoubleRent
	out = Transition(sess, textInput("85.75"))
	if out.Session.Attributes.RentDouble == nil || *out.Session.Attributes.RentDouble != 85.75 {
		t.Fatalf("rent = %v, expected 85.75", out.Session.Attributes.RentDouble)
	}
}

func TestImageGuard(t *testing.T) {
	sess := NewSession("263771000007")
	sess.Step = StepAwaitingImage

	out := Transition(sess, textInput("here is my house"))
	if out.Session.Step != StepAwaitingImage {
		t.Fatalf("step = %s, text must not pass the image gate", out.Session.Step)
	}
	if out.Session.Verified {
		t.Fatal("verified without an image")
	}

	out = Transition(sess, imageInput())
	if out.Session.Step != StepHouseType || !out.Session.Verified {
		t.Fatalf("step = %s verified = %v, expected house_type verified", out.Session.Step, out.Session.Verified)
	}

	// A second image mid-dialog must not re-trigger verification.
	again := out.Session
	again.Step = StepAwaitingImage
	out = Transition(again, imageInput())
	if out.Session.Step != StepAwaitingImage {
		t.Fatalf("step = %s, repeat image must not advance", out.Session.Step)
	}
}

func TestNoVacancyEndsDialog(t *testing.T) {
	sess := NewSession("263771000008")
	sess.Step = StepAskAvailability

	out := Transition(sess, textInput("no"))
	if out.Session.Step != StepEnd {
		t.Fatalf("step = %s, expected end", out.Session.Step)
	}
	if out.Confirmed {
		t.Fatal("no-vacancy path must not confirm")
	}
}

func TestCancelDiscardsWithoutConfirm(t *testing.T) {
	sess := NewSession("263771000009")
	sess.Step = StepConfirm

	out := Transition(sess, selectionInput("cancel"))
	if out.Session.Step != StepEnd {
		t.Fatalf("step = %s, expected end", out.Session.Step)
	}
	if out.Confirmed {
		t.Fatal("cancel must not confirm")
	}
}

func TestGreetingAfterEndRestarts(t *testing.T) {
	sess := NewSession("263771000010")
	sess.Step = StepEnd
	ht := "girls"
	sess.Attributes.HouseType = &ht
	sess.Verified = true

	out := Transition(sess, textInput("hello"))
	if out.Session.Step != StepStart {
		t.Fatalf("step = %s, expected start", out.Session.Step)
	}
	if out.Session.Attributes.HouseType != nil {
		t.Fatal("restart kept old attributes")
	}
	if out.Session.Verified {
		t.Fatal("restart kept verified flag")
	}
	if out.Session.PartyID != sess.PartyID {
		t.Fatal("restart lost party id")
	}
}

func TestUnknownStepDegradesToStart(t *testing.T) {
	sess := NewSession("263771000011")
	sess.Step = Step("ask_color")

	out := Transition(sess, textInput("hi"))
	if out.Session.Step != StepStart {
		t.Fatalf("step = %s, expected start", out.Session.Step)
	}
}

func TestUnrecognizedRestatesCurrentPrompt(t *testing.T) {
	sess := NewSession("263771000012")
	sess.Step = StepAskCat

	out := Transition(sess, Input{Kind: KindUnrecognized})
	if out.Session.Step != StepAskCat {
		t.Fatalf("step = %s, expected ask_cat", out.Session.Step)
	}
	if out.Directive.Form != FormText {
		t.Fatalf("form = %s, canonical re-prompt is text", out.Directive.Form)
	}
}

func TestHouseTypeAcceptsTypedAnswer(t *testing.T) {
	sess := NewSession("263771000013")
	sess.Step = StepHouseType

	out := Transition(sess, textInput("Mixed"))
	if out.Session.Attributes.HouseType == nil || *out.Session.Attributes.HouseType != "mixed" {
		t.Fatalf("house type = %v, expected mixed", out.Session.Attributes.HouseType)
	}
	if out.Session.Step != StepAskCat {
		t.Fatalf("step = %s, expected ask_cat", out.Session.Step)
	}
}
