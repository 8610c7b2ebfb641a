package listing

import (
	"fmt"
	"strings"
)

// Summarize renders the operator notification for a confirmed listing.
func Summarize(l Listing) string {
	var b strings.Builder
	b.WriteString("New accommodation listing\n")
	name := l.DisplayName
	if name == "" {
		name = "unknown"
	}
	fmt.Fprintf(&b, "From: %s (%s)\n", name, l.PartyID)
	fmt.Fprintf(&b, "Type: %s\n", l.HouseType)
	if l.HasCat {
		b.WriteString("Has cat: yes\n")
	} else {
		b.WriteString("Has cat: no\n")
	}
	fmt.Fprintf(&b, "Single rooms: %d at %.2f\n", l.SingleCount, l.RentSingle)
	fmt.Fprintf(&b, "2-sharing rooms: %d at %.2f\n", l.DoubleCount, l.RentDouble)
	fmt.Fprintf(&b, "3-sharing rooms: %d at %.2f\n", l.TripleCount, l.RentTriple)
	fmt.Fprintf(&b, "Preferred student age: %s", l.StudentAge)
	return b.String()
}
