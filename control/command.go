// Package control defines lightweight command messages used by the UI to
// request value changes from the application command loop. The command loop
// centralizes mutations of the counter value to avoid races and to simplify
// synchronization.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdAdd CommandType = iota
	CmdSet
	CmdReset
)

// Command is the message sent from UI to AppManager.commandLoop. The
// optional Reply channel can be used by the commandLoop to confirm
// completion back to the sender (useful for keeping UI state in sync).
type Command struct {
	Type  CommandType
	Delta int        // CmdAdd: signed step to apply
	Value int        // CmdSet: absolute value to display
	Reply chan error // optional reply channel
}
