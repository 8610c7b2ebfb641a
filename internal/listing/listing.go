// Package listing turns a confirmed conversation into a durable record and
// the summary text sent to the operator.
package listing

import (
	"time"

	"github.com/google/uuid"

	"lodgebot/internal/conversation"
)

// Listing is one confirmed accommodation submission.
type Listing struct {
	ID          string    `db:"id"`
	PartyID     string    `db:"party_id"`
	DisplayName string    `db:"display_name"`
	HouseType   string    `db:"house_type"`
	HasCat      bool      `db:"has_cat"`
	SingleCount int       `db:"single_count"`
	RentSingle  float64   `db:"rent_single"`
	DoubleCount int       `db:"double_count"`
	RentDouble  float64   `db:"rent_double"`
	TripleCount int       `db:"triple_count"`
	RentTriple  float64   `db:"rent_triple"`
	StudentAge  string    `db:"student_age"`
	CreatedAt   time.Time `db:"created_at"`
}

// FromSession builds a listing from a confirmed session. Unanswered fields
// stay at their zero values; confirmation only happens after the full tier
// walk, so in practice every field is populated.
func FromSession(sess conversation.Session) Listing {
	a := sess.Attributes
	l := Listing{
		ID:          uuid.NewString(),
		PartyID:     sess.PartyID,
		DisplayName: sess.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}
	if a.HouseType != nil {
		l.HouseType = *a.HouseType
	}
	if a.HasCat != nil {
		l.HasCat = *a.HasCat
	}
	if a.RoomSingleCount != nil {
		l.SingleCount = *a.RoomSingleCount
	}
	if a.RentSingle != nil {
		l.RentSingle = *a.RentSingle
	}
	if a.RoomDoubleCount != nil {
		l.DoubleCount = *a.RoomDoubleCount
	}
	if a.RentDouble != nil {
		l.RentDouble = *a.RentDouble
	}
	if a.RoomTripleCount != nil {
		l.TripleCount = *a.RoomTripleCount
	}
	if a.RentTriple != nil {
		l.RentTriple = *a.RentTriple
	}
	if a.StudentAge != nil {
		l.StudentAge = *a.StudentAge
	}
	return l
}
