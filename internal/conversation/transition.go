package conversation

import "strconv"

// Outcome is the result of applying one input to one session: the mutated
// session copy, the reply to send, and whether the listing was confirmed.
type Outcome struct {
	Session   Session
	Directive Directive
	// Confirmed is set on the confirm step's accept path; the caller uses it
	// to fire the owner notification and archive the listing.
	Confirmed bool
	// Duplicate marks an outcome produced for an already-processed delivery.
	Duplicate bool
}

// tier describes one room pricing tier: its count and rent sub-steps and
// where the dialog goes once the rent is captured.
type tier struct {
	count     Step
	rent      Step
	afterRent Step
	setCount  func(*Attributes, int)
	setRent   func(*Attributes, float64)
}

var tiers = []tier{
	{
		count:     StepSingleCount,
		rent:      StepSingleRent,
		afterRent: StepDoubleCount,
		setCount:  func(a *Attributes, v int) { a.RoomSingleCount = &v },
		setRent:   func(a *Attributes, v float64) { a.RentSingle = &v },
	},
	{
		count:     StepDoubleCount,
		rent:      StepDoubleRent,
		afterRent: StepTripleCount,
		setCount:  func(a *Attributes, v int) { a.RoomDoubleCount = &v },
		setRent:   func(a *Attributes, v float64) { a.RentDouble = &v },
	},
	{
		count:     StepTripleCount,
		rent:      StepTripleRent,
		afterRent: StepAskAge,
		setCount:  func(a *Attributes, v int) { a.RoomTripleCount = &v },
		setRent:   func(a *Attributes, v float64) { a.RentTriple = &v },
	},
}

func tierByCountStep(s Step) (tier, bool) {
	for _, t := range tiers {
		if t.count == s {
			return t, true
		}
	}
	return tier{}, false
}

func tierByRentStep(s Step) (tier, bool) {
	for _, t := range tiers {
		if t.rent == s {
			return t, true
		}
	}
	return tier{}, false
}

// Transition maps (session, input) to the next session state and reply. It is
// a pure function: rejected inputs return the session untouched together with
// the step's re-prompt, and no entry here performs I/O.
func Transition(sess Session, in Input) Outcome {
	// A step value the table no longer knows degrades to a fresh start
	// instead of crashing the exchange.
	if !sess.Step.Known() {
		sess = sess.restart()
	}

	to := sess.PartyID

	// Events outside the contract never advance the dialog and never go
	// unanswered: restate the current step's question.
	if in.Kind == KindUnrecognized {
		return Outcome{Session: sess, Directive: canonicalPrompt(sess.Step, to)}
	}

	switch sess.Step {
	case StepStart:
		return transitionStart(sess, in)

	case StepAwaitingImage:
		if in.Kind == KindImage && !sess.ImageReceived {
			sess.ImageReceived = true
			sess.Verified = true
			sess.Step = StepHouseType
			return Outcome{Session: sess, Directive: promptHouseType(to)}
		}
		// A second image while already verified must not re-trigger the
		// verification transition.
		return Outcome{Session: sess, Directive: canonicalPrompt(StepAwaitingImage, to)}

	case StepHouseType:
		if in.Kind == KindSelection || in.Kind == KindFreeText {
			switch tok := in.token(); tok {
			case "boys", "girls", "mixed":
				sess.Attributes.HouseType = &tok
				sess.Step = StepAskCat
				return Outcome{Session: sess, Directive: promptCat(to)}
			}
		}
		return Outcome{Session: sess, Directive: promptHouseType(to)}

	case StepAskCat:
		if yes, ok := yesNo(in); ok {
			sess.Attributes.HasCat = &yes
			sess.Step = StepAskAvailability
			return Outcome{Session: sess, Directive: promptAvailability(to)}
		}
		return Outcome{Session: sess, Directive: promptCat(to)}

	case StepAskAvailability:
		if yes, ok := yesNo(in); ok {
			if !yes {
				sess.Step = StepEnd
				return Outcome{Session: sess, Directive: textNoVacancy(to)}
			}
			sess.Step = StepSingleCount
			return Outcome{Session: sess, Directive: promptCount(StepSingleCount, to)}
		}
		return Outcome{Session: sess, Directive: promptAvailability(to)}

	case StepSingleCount, StepDoubleCount, StepTripleCount:
		t, _ := tierByCountStep(sess.Step)
		if in.Kind == KindNumber {
			if n, err := strconv.Atoi(in.Normalized); err == nil {
				t.setCount(&sess.Attributes, n)
				sess.Step = t.rent
				return Outcome{Session: sess, Directive: promptRent(t.rent, to)}
			}
		}
		// Non-numeric input must not write into attributes.
		return Outcome{Session: sess, Directive: promptCount(sess.Step, to)}

	case StepSingleRent, StepDoubleRent, StepTripleRent:
		t, _ := tierByRentStep(sess.Step)
		if in.Kind == KindNumber || in.Kind == KindDecimal {
			if v, err := strconv.ParseFloat(in.Normalized, 64); err == nil {
				t.setRent(&sess.Attributes, v)
				sess.Step = t.afterRent
				if t.afterRent == StepAskAge {
					return Outcome{Session: sess, Directive: promptAge(to)}
				}
				return Outcome{Session: sess, Directive: promptCount(t.afterRent, to)}
			}
		}
		return Outcome{Session: sess, Directive: promptRent(sess.Step, to)}

	case StepAskAge:
		if in.Kind == KindFreeText && in.Normalized != "" {
			age := in.Normalized
			sess.Attributes.StudentAge = &age
			sess.Step = StepConfirm
			return Outcome{Session: sess, Directive: promptConfirm(to)}
		}
		return Outcome{Session: sess, Directive: promptAge(to)}

	case StepConfirm:
		switch in.token() {
		case "confirm":
			sess.Step = StepEnd
			return Outcome{Session: sess, Directive: textConfirmed(to), Confirmed: true}
		case "cancel":
			sess.Step = StepEnd
			return Outcome{Session: sess, Directive: textCancelled(to)}
		}
		return Outcome{Session: sess, Directive: promptConfirm(to)}

	case StepStudentPending:
		// Terminal branch: restate the app-download prompt whatever arrives.
		return Outcome{Session: sess, Directive: textStudentPending(to)}

	case StepEnd:
		if in.Kind == KindGreeting {
			fresh := sess.restart()
			return Outcome{Session: fresh, Directive: promptRole(to)}
		}
		return Outcome{Session: sess, Directive: textClosing(to)}
	}

	// Unreachable: Known() filtered unknown steps above.
	return Outcome{Session: sess, Directive: canonicalPrompt(StepStart, to)}
}

func transitionStart(sess Session, in Input) Outcome {
	to := sess.PartyID

	if in.Kind == KindGreeting {
		return Outcome{Session: sess, Directive: promptRole(to)}
	}

	if in.Kind == KindSelection || in.Kind == KindFreeText || in.Kind == KindRoleChoice {
		switch in.token() {
		case "landlord":
			sess.Step = StepAwaitingImage
			sess.Verified = false
			sess.ImageReceived = false
			return Outcome{Session: sess, Directive: promptImage(to)}
		case "student":
			sess.Step = StepStudentPending
			return Outcome{Session: sess, Directive: textStudentPending(to)}
		}
	}

	return Outcome{Session: sess, Directive: promptRole(to)}
}

// yesNo resolves a yes/no answer from either a text reply or a quick-reply
// button selection whose id is the literal token.
func yesNo(in Input) (bool, bool) {
	if in.Kind != KindYesNo && in.Kind != KindSelection {
		return false, false
	}
	switch in.token() {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}
