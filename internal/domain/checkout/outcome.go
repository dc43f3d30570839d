package checkout

type OutcomeKind string

const (
	OutcomeRedirect         OutcomeKind = "redirect"
	OutcomeImmediateSuccess OutcomeKind = "success"
	OutcomeFailure          OutcomeKind = "failure"
)

// Outcome is what every payment adapter produces.
//   - Redirect: the page must navigate to URL and is done.
//   - ImmediateSuccess: navigate to ConfirmationPath without any external call.
//   - Failure: show Message and stay editable.
type Outcome struct {
	Kind             OutcomeKind
	URL              string
	ConfirmationPath string
	Message          string
	FailureKind      FailureKind
	// Provider-side correlation key (purchase order id, checkout session id).
	Reference string
}

func Redirect(url string) Outcome {
	return Outcome{Kind: OutcomeRedirect, URL: url}
}

func ImmediateSuccess(confirmationPath string) Outcome {
	return Outcome{Kind: OutcomeImmediateSuccess, ConfirmationPath: confirmationPath}
}

func Failure(kind FailureKind, message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message, FailureKind: kind}
}

func (o Outcome) WithReference(ref string) Outcome {
	o.Reference = ref
	return o
}

func (o Outcome) IsFailure() bool { return o.Kind == OutcomeFailure }

func (o Outcome) IsValid() bool {
	switch o.Kind {
	case OutcomeRedirect:
		return o.URL != ""
	case OutcomeImmediateSuccess:
		return o.ConfirmationPath != ""
	case OutcomeFailure:
		return o.Message != ""
	default:
		return false
	}
}
