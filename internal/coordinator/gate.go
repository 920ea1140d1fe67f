package coordinator

// ActionGate admits at most one in-flight instance per action.
type ActionGate interface {
	TryEnter(action Action) bool
	Leave(action Action)
}

// Gate keeps one in-flight flag per action. It holds no lock: every call
// must come from the presentation goroutine.
type Gate struct {
	inFlight [actionCount]bool
}

// NewGate returns a gate with every action idle.
func NewGate() *Gate {
	return &Gate{}
}

// TryEnter marks action in flight and reports true, or reports false when
// it already is.
func (g *Gate) TryEnter(action Action) bool {
	if !action.valid() || g.inFlight[action] {
		return false
	}
	g.inFlight[action] = true
	return true
}

// Leave marks action idle. Leaving an idle action is a no-op.
func (g *Gate) Leave(action Action) {
	if !action.valid() {
		return
	}
	g.inFlight[action] = false
}

// InFlight reports whether action is currently admitted.
func (g *Gate) InFlight(action Action) bool {
	return action.valid() && g.inFlight[action]
}
