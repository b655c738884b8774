package cadence

// DelayStep waits for its duration and does nothing else.
type DelayStep struct {
	StepBase
}

// NewDelay creates a step that waits seconds.
func NewDelay(seconds float64) *DelayStep {
	return NewDelayStep(StepOptions{Duration: seconds})
}

// NewDelayStep creates a delay step from full options.
func NewDelayStep(o StepOptions) *DelayStep {
	d := &DelayStep{}
	d.init(o, nil)
	return d
}
