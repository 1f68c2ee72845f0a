package vim

// ActionKind identifies an effect the host must carry out.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSave
	ActionQuit
	ActionSaveQuit
	ActionOpen
	ActionSetOption
	ActionMessage
)

// Action is a host-level effect requested by a command.
type Action struct {
	Kind ActionKind

	// Path is the optional target of ActionSave, ActionSaveQuit and ActionOpen.
	Path string
	// Force is set for `:q!`.
	Force bool

	// Option and Value describe ActionSetOption.
	Option string
	Value  bool

	// Message is informational text; Err reports a failed command.
	Message string
	Err     error
}

// ActionMsg carries an Action through the Bubble Tea update loop.
type ActionMsg struct {
	Action Action
}

// Result is returned for every key handled by a Machine.
type Result struct {
	// PassThrough asks the host editor to process the key as plain input.
	PassThrough bool
	Action      Action
	// Typed holds runes that followed an insert command in the same message.
	// The host types them as plain input in the new insert session.
	Typed []rune
}

func message(format string) Result {
	return Result{Action: Action{Kind: ActionMessage, Message: format}}
}

func failure(err error) Result {
	return Result{Action: Action{Kind: ActionMessage, Err: err}}
}
