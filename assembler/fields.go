package assembler

import "fmt"

// fieldFunc encodes one operand into its shifted contribution to an
// instruction word. Contributions from all fields of a layout are ORed
// together, so each must stay inside its own bit positions.
type fieldFunc func(ctx *context, op Operand) (uint32, error)

// fields is the encoder registry. Populated once here, read-only afterwards,
// so concurrent assemblies can share it without locking.
var fields = map[string]fieldFunc{
	"rs":      registerField(21),
	"rd":      registerField(16),
	"rt":      registerField(11),
	"cmpop":   unsignedField(5, 16),
	"simm16":  signedField(16),
	"uimm16":  unsignedField(16, 0),
	"opcode":  unsignedField(6, 26),
	"jmpop":   unsignedField(2, 0),
	"rel24":   relativeField(24),
	"rel16":   relativeField(16),
	"off11":   unsignedField(11, 0),
	"bitsel":  unsignedField(5, 16),
	"twobits": unsignedField(2, 0),
	"funct":   unsignedField(11, 0),
}

// ubits checks that v fits in n unsigned bits.
func ubits(v int64, n uint) (uint32, error) {
	if v < 0 || v >= 1<<n {
		return 0, fmt.Errorf("%w: %d needs more than %d unsigned bits", ErrFieldRange, v, n)
	}
	return uint32(v), nil
}

// sbits checks that v fits in n signed bits and returns the n-bit
// two's-complement pattern.
func sbits(v int64, n uint) (uint32, error) {
	if v < -(1<<(n-1)) || v >= 1<<(n-1) {
		return 0, fmt.Errorf("%w: %d needs more than %d signed bits", ErrFieldRange, v, n)
	}
	return uint32(v) & (1<<n - 1), nil
}

// registerField encodes an r<N> operand at the given bit position.
func registerField(shift uint) fieldFunc {
	return func(_ *context, op Operand) (uint32, error) {
		if op.Kind != Register {
			return 0, fmt.Errorf("%w: %q is not a register", ErrRegisterFormat, op.Raw)
		}
		v, err := ubits(op.Value, 5)
		if err != nil {
			return 0, err
		}
		return v << shift, nil
	}
}

// unsignedField encodes a numeric literal of the given width and position.
func unsignedField(bits, shift uint) fieldFunc {
	return func(_ *context, op Operand) (uint32, error) {
		if op.Kind != Immediate {
			return 0, fmt.Errorf("%w: %q is not a number", ErrOperandFormat, op.Raw)
		}
		v, err := ubits(op.Value, bits)
		if err != nil {
			return 0, err
		}
		return v << shift, nil
	}
}

// signedField encodes a two's-complement literal with no shift.
func signedField(bits uint) fieldFunc {
	return func(_ *context, op Operand) (uint32, error) {
		if op.Kind != Immediate {
			return 0, fmt.Errorf("%w: %q is not a number", ErrOperandFormat, op.Raw)
		}
		return sbits(op.Value, bits)
	}
}

// relativeField encodes a branch displacement to a label, in words.
// The first pass is still collecting labels, so it contributes zero bits
// and skips validation; the second pass must find the label, and the
// displacement must be 4-byte aligned and fit the field.
func relativeField(bits uint) fieldFunc {
	return func(ctx *context, op Operand) (uint32, error) {
		if op.Kind != LabelRef {
			return 0, fmt.Errorf("%w: %q is not a label", ErrOperandFormat, op.Raw)
		}
		if !ctx.resolve {
			return 0, nil
		}
		addr, ok := ctx.labels[op.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, op.Name)
		}
		// The displacement is mod-2^32: code near the top of the address
		// space branches across the wrap.
		rel := int64(int32(addr - ctx.address()))
		if rel&3 != 0 {
			return 0, fmt.Errorf("%w: %q is %d bytes away", ErrAlignment, op.Name, rel)
		}
		return sbits(rel>>2, bits)
	}
}
