package agent

// EchoAgent is a minimal concrete agent with every handler defaulted to
// a no-op, used by tests that need a registered subscriber without
// pulling in a real strategy or matching adapter.
type EchoAgent struct {
	*BaseAgent
	NoOpHandlers
}

// NewEchoAgent returns a ready-to-register EchoAgent.
func NewEchoAgent() *EchoAgent {
	a := &EchoAgent{}
	a.BaseAgent = NewBaseAgent(a)
	return a
}
