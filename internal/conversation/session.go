package conversation

// Attributes holds the answers collected from a landlord. Pointer fields
// distinguish "never answered" from a zero value, which keeps rejected
// inputs from leaving partial writes behind.
type Attributes struct {
	HouseType       *string  `json:"house_type,omitempty"`
	HasCat          *bool    `json:"has_cat,omitempty"`
	RoomSingleCount *int     `json:"room_single_count,omitempty"`
	RentSingle      *float64 `json:"rent_single,omitempty"`
	RoomDoubleCount *int     `json:"room_double_count,omitempty"`
	RentDouble      *float64 `json:"rent_double,omitempty"`
	RoomTripleCount *int     `json:"room_triple_count,omitempty"`
	RentTriple      *float64 `json:"rent_triple,omitempty"`
	StudentAge      *string  `json:"student_age,omitempty"`
}

// Session is the persisted conversation record for one party.
type Session struct {
	PartyID       string     `json:"party_id"`
	Step          Step       `json:"step"`
	DisplayName   string     `json:"display_name,omitempty"`
	Verified      bool       `json:"verified"`
	ImageReceived bool       `json:"image_received"`
	Attributes    Attributes `json:"attributes"`
}

// NewSession returns a fresh record positioned at the start step.
func NewSession(partyID string) Session {
	return Session{PartyID: partyID, Step: StepStart}
}

// restart discards every collected answer while keeping the party identity.
// The display name is best-effort contact metadata, not an answer, so it
// survives the reset.
func (s Session) restart() Session {
	fresh := NewSession(s.PartyID)
	fresh.DisplayName = s.DisplayName
	return fresh
}
