package checkout

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseInvalid    Phase = "invalid"
	PhaseSubmitting Phase = "submitting"
	PhaseRedirected Phase = "redirected"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

var transitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseValidating},
	PhaseValidating: {PhaseInvalid, PhaseSubmitting},
	PhaseInvalid:    {PhaseIdle},
	PhaseSubmitting: {PhaseRedirected, PhaseSucceeded, PhaseFailed},
	PhaseFailed:     {PhaseIdle},
}

func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports phases after which the page has left checkout.
func (p Phase) IsTerminal() bool {
	return p == PhaseRedirected || p == PhaseSucceeded
}

func (p Phase) String() string {
	return string(p)
}
