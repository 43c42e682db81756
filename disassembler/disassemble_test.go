package disassembler_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Urethramancer/irisc/assembler"
	"github.com/Urethramancer/irisc/disassembler"
)

// wordsToBytes packs instruction words big-endian, the way they are stored.
func wordsToBytes(words ...uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// normalize strips layout whitespace so tests compare content, not padding.
func normalize(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		out = append(out, strings.Join(f, " "))
	}
	return out
}

func TestDisassembleBasic(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		base  uint32
		want  []string
	}{
		{"ADDI", []uint32{0x0041000A}, 0,
			[]string{"addi r1, r2, 10"}},
		{"ADDI_Negative", []uint32{0x0021FFFF}, 0,
			[]string{"addi r1, r1, -1"}},
		{"SET_Family", []uint32{0x180100FF, 0x1C05FFFF, 0x20420001, 0x24420001}, 0,
			[]string{"set0 r1, r0, 0xff", "set1 r5, r0, 0xffff", "set3 r2, r2, 0x1", "set2 r2, r2, 0x1"}},
		{"ALU_Family", []uint32{0xFC231000, 0xFC231004, 0xFC231005, 0xFC23100B, 0xFC00002D}, 0,
			[]string{"add r3, r1, r2", "sub r3, r1, r2", "subs r3, r1, r2", "alur.0xb r3, r1, r2", "ret.d r0, r0, r0"}},
		{"ALU_Generic", []uint32{0xFFFFFFFF}, 0,
			[]string{"alu.r 0x7ff, r31, r31, r31"}},
		{"Memory", []uint32{0x6441180A, 0x6C41180A, 0x7841180B}, 0,
			[]string{"ld.d r1, r2, r3, 8", "st.d r1, r2, r3, 8", "st.q r1, r2, r3, 11, 3"}},
		{"UnknownOpcode", []uint32{0x80000000}, 0,
			[]string{"unk.i 0x20, r0, r0, 0x0"}},
		{"LoadWithoutFixedBit", []uint32{0x64000000}, 0,
			[]string{"unk.i 0x19, r0, r0, 0x0"}},
		{"BranchOutOfWindow", []uint32{0xA0000008}, 0,
			[]string{"unk.i 0x28, r0, r0, 0x8"}},
		{"BranchBackward", []uint32{0x0041000A, 0x0021FFFF, 0xA020FFFF}, 0,
			[]string{"addi r1, r2, 10", "lbl loc_4", "addi r1, r1, -1", "b.t 0, r1, loc_4"}},
		{"JumpForward", []uint32{0x94000005, 0, 0, 0}, 0,
			[]string{"jump loc_10", "addi r0, r0, 0", "addi r0, r0, 0", "addi r0, r0, 0", "lbl loc_10"}},
		{"CallForward", []uint32{0x94000004, 0, 0, 0}, 0,
			[]string{"call loc_10", "addi r0, r0, 0", "addi r0, r0, 0", "addi r0, r0, 0", "lbl loc_10"}},
		{"BranchSelf", []uint32{0xA0000000}, 0xFFF0,
			[]string{"lbl loc_fff0", "b.t 0, r0, loc_fff0"}},
		{"BaseInTargets", []uint32{0x0041000A, 0xA020FFFF}, 0x1000,
			[]string{"lbl loc_1000", "addi r1, r2, 10", "b.t 0, r1, loc_1000"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := disassembler.Disassemble(wordsToBytes(tc.words...), tc.base)
			require.NoError(t, err)
			require.Equal(t, tc.want, normalize(got))
		})
	}
}

func TestDisassembleOddLength(t *testing.T) {
	_, err := disassembler.Disassemble([]byte{1, 2, 3}, 0)
	require.Error(t, err)
}

func TestDisassembleEmpty(t *testing.T) {
	out, err := disassembler.Disassemble(nil, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

// Disassembling and reassembling a known program must reproduce it.
func TestRoundTripProgram(t *testing.T) {
	src := "addi r1, r2, 10\nlbl loop\naddi r1, r1, -1\nb.t 0, r1, loop"
	code, err := assembler.New().Assemble(src, 0x2000)
	require.NoError(t, err)

	text, err := disassembler.Disassemble(code, 0x2000)
	require.NoError(t, err)

	back, err := assembler.New().Assemble(text, 0x2000)
	require.NoError(t, err)
	require.Equal(t, code, back)
}

// A branch target can sit one word past the end of memory; reassembly binds
// the label at the wrapped address and the displacement comes out the same.
func TestRoundTripAtAddressWrap(t *testing.T) {
	code := wordsToBytes(0x94000005, 0, 0, 0)
	base := uint32(0xFFFFFFF0)

	text, err := disassembler.Disassemble(code, base)
	require.NoError(t, err)

	back, err := assembler.New().Assemble(text, base)
	require.NoError(t, err)
	require.Equal(t, code, back)
}

// Any word sequence at any base survives a disassemble/assemble round trip.
func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.Uint32(), 0, 64).Draw(t, "words")
		base := rapid.Uint32().Draw(t, "base")
		code := wordsToBytes(words...)

		text, err := disassembler.Disassemble(code, base)
		require.NoError(t, err)

		back, err := assembler.New().Assemble(text, base)
		require.NoError(t, err)
		require.Equal(t, code, back)
	})
}
