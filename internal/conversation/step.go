package conversation

// Step identifies the party's position in the fixed conversation graph.
// Values are persisted inside Session records, so renaming one is a schema
// change for live sessions; unknown values degrade to StepStart on load.
type Step string

const (
	// StepStart awaits a greeting or a role choice.
	StepStart Step = "start"
	// StepAwaitingImage awaits the identity-verification image from a landlord.
	StepAwaitingImage Step = "awaiting_image"
	// StepHouseType collects the accommodation type (boys/girls/mixed).
	StepHouseType Step = "house_type"
	// StepAskCat asks whether the landlord keeps a cat.
	StepAskCat Step = "ask_cat"
	// StepAskAvailability asks whether any rooms are vacant.
	StepAskAvailability Step = "ask_availability"

	// StepSingleCount and the five steps after it walk the pricing tiers.
	StepSingleCount Step = "room_single_count"
	StepSingleRent  Step = "room_single_rent"
	StepDoubleCount Step = "room_double_count"
	StepDoubleRent  Step = "room_double_rent"
	StepTripleCount Step = "room_triple_count"
	StepTripleRent  Step = "room_triple_rent"

	// StepAskAge collects the preferred student age range as free text.
	StepAskAge Step = "ask_age"
	// StepConfirm awaits the final confirm/cancel choice.
	StepConfirm Step = "confirm"
	// StepStudentPending is the terminal branch for the student role.
	StepStudentPending Step = "student_pending"
	// StepEnd is the closed conversation; only a greeting reopens it.
	StepEnd Step = "end"
)

var knownSteps = map[Step]struct{}{
	StepStart:           {},
	StepAwaitingImage:   {},
	StepHouseType:       {},
	StepAskCat:          {},
	StepAskAvailability: {},
	StepSingleCount:     {},
	StepSingleRent:      {},
	StepDoubleCount:     {},
	StepDoubleRent:      {},
	StepTripleCount:     {},
	StepTripleRent:      {},
	StepAskAge:          {},
	StepConfirm:         {},
	StepStudentPending:  {},
	StepEnd:             {},
}

// Known reports whether the step exists in the transition table.
func (s Step) Known() bool {
	_, ok := knownSteps[s]
	return ok
}
