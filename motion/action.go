package motion

import "fmt"

// Action is the per-tick classification of what the actor is doing.
type Action int

const (
	// ActionNone means the tick has not been classified yet. It is never
	// dispatchable.
	ActionNone Action = iota
	ActionIdle
	ActionRun
	ActionJump
	ActionFall
	ActionAttack
	// ActionDefend is declared but nothing classifies into it.
	ActionDefend
	ActionRunAttack
	ActionJumpAttack
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionIdle:
		return "idle"
	case ActionRun:
		return "run"
	case ActionJump:
		return "jump"
	case ActionFall:
		return "fall"
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionRunAttack:
		return "run_attack"
	case ActionJumpAttack:
		return "jump_attack"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Category is the token forwarded to the weapon subsystem each tick.
type Category string

const (
	CategoryIdle       Category = "idle"
	CategoryRun        Category = "run"
	CategoryJump       Category = "jump"
	CategoryFall       Category = "fall"
	CategoryAttack     Category = "attack"
	CategoryRunAttack  Category = "run_attack"
	CategoryJumpAttack Category = "jump_attack"
)

// IsAttack reports whether the category starts a weapon swing.
func (c Category) IsAttack() bool {
	return c == CategoryAttack || c == CategoryRunAttack || c == CategoryJumpAttack
}

// categoryFor maps an action to its dispatch token. It panics on any action
// the classifier should never produce.
func categoryFor(a Action) Category {
	switch a {
	case ActionIdle:
		return CategoryIdle
	case ActionRun:
		return CategoryRun
	case ActionJump:
		return CategoryJump
	case ActionFall:
		return CategoryFall
	case ActionAttack:
		return CategoryAttack
	case ActionRunAttack:
		return CategoryRunAttack
	case ActionJumpAttack:
		return CategoryJumpAttack
	default:
		panic(fmt.Sprintf("motion: no dispatch category for action %s", a))
	}
}
