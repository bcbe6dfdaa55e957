package ui

import (
	"github.com/treebird7/Envoak/internal/secrets"
)

// Status icons.
const (
	IconOK      = "✓"
	IconFail    = "✗"
	IconWarn    = "⚠"
	IconPending = "○"
	IconArrow   = "→"
)

// StateIcon returns the icon shown next to a directory state.
// Plaintext with no backup is the dangerous case, so UNTRACKED is the red one.
func StateIcon(state secrets.DirectoryState) string {
	switch state {
	case secrets.StateSynced:
		return Success.Sprint(IconOK)
	case secrets.StateUntracked:
		return Error.Sprint(IconFail)
	case secrets.StateMissing:
		return Warning.Sprint(IconWarn)
	default:
		return Muted.Sprint(IconPending)
	}
}

// State renders a directory state name in its semantic color.
func State(state secrets.DirectoryState) string {
	switch state {
	case secrets.StateSynced:
		return Success.Sprint(string(state))
	case secrets.StateUntracked:
		return Error.Sprint(string(state))
	case secrets.StateMissing:
		return Warning.Sprint(string(state))
	default:
		return Muted.Sprint(string(state))
	}
}

// Check renders a boolean as a success or failure icon.
func Check(ok bool) string {
	if ok {
		return Success.Sprint(IconOK)
	}
	return Error.Sprint(IconFail)
}
