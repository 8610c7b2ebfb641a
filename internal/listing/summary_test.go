package listing

import (
	"strings"
	"testing"

	"lodgebot/internal/conversation"
)

func confirmedSession() conversation.Session {
	sess := conversation.NewSession("263771000400")
	sess.DisplayName = "Rumbidzai"
	sess.Step = conversation.StepEnd
	sess.Verified = true
	sess.ImageReceived = true

	ht := "girls"
	cat := true
	single, double, triple := 4, 2, 0
	rentS, rentD, rentT := 120.5, 90.0, 60.0
	age := "18 to 25"
	sess.Attributes = conversation.Attributes{
		HouseType:       &ht,
		HasCat:          &cat,
		RoomSingleCount: &single,
		RentSingle:      &rentS,
		RoomDoubleCount: &double,
		RentDouble:      &rentD,
		RoomTripleCount: &triple,
		RentTriple:      &rentT,
		StudentAge:      &age,
	}
	return sess
}

func TestFromSession(t *testing.T) {
	l := FromSession(confirmedSession())

	if l.ID == "" {
		t.Fatal("expected generated id")
	}
	if l.PartyID != "263771000400" {
		t.Fatalf("party id = %s", l.PartyID)
	}
	if l.HouseType != "girls" || !l.HasCat {
		t.Fatalf("house type = %s has cat = %v", l.HouseType, l.HasCat)
	}
	if l.SingleCount != 4 || l.RentSingle != 120.5 {
		t.Fatalf("single = %d at %v", l.SingleCount, l.RentSingle)
	}
	if l.TripleCount != 0 || l.RentTriple != 60 {
		t.Fatalf("triple = %d at %v", l.TripleCount, l.RentTriple)
	}
	if l.StudentAge != "18 to 25" {
		t.Fatalf("age = %s", l.StudentAge)
	}
	if l.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}
}

func TestFromSessionPartialAttributes(t *testing.T) {
	sess := conversation.NewSession("263771000401")
	l := FromSession(sess)
	if l.HouseType != "" || l.SingleCount != 0 || l.RentSingle != 0 {
		t.Fatal("unanswered fields must stay zero")
	}
}

func TestSummarize(t *testing.T) {
	l := FromSession(confirmedSession())
	got := Summarize(l)

	for _, want := range []string{
		"New accommodation listing",
		"From: Rumbidzai (263771000400)",
		"Type: girls",
		"Has cat: yes",
		"Single rooms: 4 at 120.50",
		"2-sharing rooms: 2 at 90.00",
		"3-sharing rooms: 0 at 60.00",
		"Preferred student age: 18 to 25",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummarizeUnknownName(t *testing.T) {
	l := Listing{PartyID: "263771000402"}
	got := Summarize(l)
	if !strings.Contains(got, "From: unknown (263771000402)") {
		t.Fatalf("summary = %s", got)
	}
}
