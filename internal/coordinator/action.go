// Package coordinator bridges the single presentation goroutine and the
// background network calls it triggers. Intents pass through a per-action
// gate, run on a worker goroutine, and come back as an Outcome that is
// applied on the presentation goroutine exactly once.
package coordinator

// Action names one logical operation the user can trigger.
type Action int

const (
	ActionRefresh Action = iota
	ActionAdd
	ActionUpdate
	ActionDelete

	actionCount
)

// Actions lists every action in declaration order.
var Actions = []Action{ActionRefresh, ActionAdd, ActionUpdate, ActionDelete}

func (a Action) String() string {
	switch a {
	case ActionRefresh:
		return "refresh"
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

func (a Action) valid() bool {
	return a >= 0 && a < actionCount
}
