package todo

// Ability is a named permission evaluated by the Policy.
type Ability string

const (
	// AbilityUpdate guards toggling a todo's finished flag.
	AbilityUpdate Ability = "update"
	// AbilityDelete guards permanent removal of a todo.
	AbilityDelete Ability = "delete"
)

// Policy decides whether an actor may perform an ability on a todo.
// It is a pure function of its inputs and never fails; callers that
// receive false must refuse the operation.
type Policy struct{}

// Can reports whether the actor may perform the ability on the todo.
// Both update and delete are granted only to the owner.
func (Policy) Can(actorID string, ability Ability, t *Todo) bool {
	switch ability {
	case AbilityUpdate, AbilityDelete:
		return actorID != "" && actorID == t.UserID
	default:
		return false
	}
}
