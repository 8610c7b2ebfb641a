package conversation

// Prompt wording follows the production dialog; option ids are derived from
// the titles, so changing a title here changes the id the table matches on.

func promptRole(recipient string) Directive {
	return Directive{
		Form:      FormList,
		Recipient: recipient,
		Body:      "Hello! Are you a student or landlord?",
		Title:     "User Type",
		Options:   options("Student", "Landlord"),
	}
}

func promptImage(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "Great! Please send a screenshot of your WhatsApp profile for verification.",
	}
}

func promptHouseType(recipient string) Directive {
	return Directive{
		Form:      FormList,
		Recipient: recipient,
		Body:      "Is your accommodation for boys, girls, or mixed?",
		Title:     "Accommodation Type",
		Options:   options("Boys", "Girls", "Mixed"),
	}
}

func promptCat(recipient string) Directive {
	return Directive{
		Form:      FormButtons,
		Recipient: recipient,
		Body:      "Do you have a cat?",
		Options:   options("Yes", "No"),
	}
}

func promptAvailability(recipient string) Directive {
	return Directive{
		Form:      FormButtons,
		Recipient: recipient,
		Body:      "Do you have vacancies?",
		Options:   options("Yes", "No"),
	}
}

func promptAge(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "Which age range of students do you prefer? (e.g. 18-22)",
	}
}

func promptConfirm(recipient string) Directive {
	return Directive{
		Form:      FormButtons,
		Recipient: recipient,
		Body:      "That's everything. Submit your listing?",
		Options:   options("Confirm", "Cancel"),
	}
}

func textStudentPending(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "Welcome student! Please download our app to find accommodation.",
	}
}

func textNoVacancy(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "OK thanks. Whenever you have vacancies, don't hesitate to say 'Hi!'",
	}
}

func textConfirmed(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "Thank you! Your listing has been submitted.",
	}
}

func textCancelled(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "No problem, your listing was discarded. Say 'Hi' to start again.",
	}
}

func textClosing(recipient string) Directive {
	return Directive{
		Form:      FormText,
		Recipient: recipient,
		Body:      "Thank you for using our service. Type 'Hi' to start again.",
	}
}

// canonicalPrompts restate each step's question when the inbound event could
// not be interpreted at all. Steps that re-ask with interactive messages get
// a plain-text fallback here because an unrecognized event kind may mean the
// party's client cannot render interactive replies.
var canonicalPrompts = map[Step]string{
	StepStart:           "Please select an option from the menu, or say 'Hi' to begin.",
	StepAwaitingImage:   "Please send a screenshot of your WhatsApp profile for verification.",
	StepHouseType:       "Please pick the accommodation type from the menu: boys, girls or mixed.",
	StepAskCat:          "Do you have a cat? Please reply yes or no.",
	StepAskAvailability: "Do you have vacancies? Please reply yes or no.",
	StepSingleCount:     "How many single rooms are available? (Reply with a number only)",
	StepSingleRent:      "What is the monthly rent for a single room? (Reply with an amount, e.g. 130)",
	StepDoubleCount:     "How many 2-sharing rooms are available? (Reply with a number only)",
	StepDoubleRent:      "What is the monthly rent per person for a 2-sharing room? (e.g. 80)",
	StepTripleCount:     "How many 3-sharing rooms are available? (Reply with a number only)",
	StepTripleRent:      "What is the monthly rent per person for a 3-sharing room? (e.g. 60)",
	StepAskAge:          "Which age range of students do you prefer? (e.g. 18-22)",
	StepConfirm:         "Please confirm or cancel your listing.",
	StepStudentPending:  "Welcome student! Please download our app to find accommodation.",
	StepEnd:             "Thank you for using our service. Type 'Hi' to start again.",
}

// canonicalPrompt returns the plain-text restatement of the step's question.
func canonicalPrompt(step Step, recipient string) Directive {
	body, ok := canonicalPrompts[step]
	if !ok {
		body = canonicalPrompts[StepStart]
	}
	return Directive{Form: FormText, Recipient: recipient, Body: body}
}

func promptCount(step Step, recipient string) Directive {
	return Directive{Form: FormText, Recipient: recipient, Body: canonicalPrompts[step]}
}

func promptRent(step Step, recipient string) Directive {
	return Directive{Form: FormText, Recipient: recipient, Body: canonicalPrompts[step]}
}
