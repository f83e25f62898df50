// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Move errors
	CodeInvalidSelection Code = "INVALID_SELECTION"
	CodeIllegalMove      Code = "ILLEGAL_MOVE"

	// Turn errors
	CodeNotHumanTurn Code = "NOT_HUMAN_TURN"
	CodeGameOver     Code = "GAME_OVER"

	// Setup errors
	CodeInvalidCard  Code = "INVALID_CARD"
	CodeInvalidSetup Code = "INVALID_SETUP"
)

// Recoverable reports whether the acting player may simply try again.
// Recoverable rejections never change game state.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInvalidSelection, CodeIllegalMove:
		return true
	default:
		return false
	}
}
