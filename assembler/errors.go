package assembler

import "errors"

// Every assembly failure wraps one of these sentinels, so callers can pick
// the failure class out with errors.Is while the message keeps the line and
// field context.
var (
	// ErrRegisterFormat is returned when an operand does not match the r<N> register syntax.
	ErrRegisterFormat = errors.New("bad register")
	// ErrFieldRange is returned when a value does not fit its field's bit width.
	ErrFieldRange = errors.New("value out of range")
	// ErrAlignment is returned when a branch displacement is not a multiple of 4.
	ErrAlignment = errors.New("unaligned branch target")
	// ErrLabelRedefinition is returned when a label is declared at two different addresses.
	ErrLabelRedefinition = errors.New("label redefined")
	// ErrUnknownMnemonic is returned when a line names an instruction that doesn't exist.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrUnknownField is returned when an instruction layout references an unregistered field.
	ErrUnknownField = errors.New("unknown field")
	// ErrOperandCount is returned when a line supplies fewer operands than its layout needs.
	ErrOperandCount = errors.New("not enough operands")
	// ErrUnknownLabel is returned when a branch references a label that is never declared.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrOperandFormat is returned when an operand can't be parsed as the kind its field expects.
	ErrOperandFormat = errors.New("bad operand")
)
