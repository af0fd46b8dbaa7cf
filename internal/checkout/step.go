package checkout

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepConfirmation
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	case StepSuccess:
		return "success"
	}
	return "unknown"
}

// Success is terminal; backward moves exist only between the form steps.
var validNext = map[Step]map[Step]bool{
	StepShipping:     {StepPayment: true},
	StepPayment:      {StepConfirmation: true, StepShipping: true},
	StepConfirmation: {StepSuccess: true, StepPayment: true},
	StepSuccess:      {},
}

func CanTransition(from, to Step) bool {
	return validNext[from][to]
}
