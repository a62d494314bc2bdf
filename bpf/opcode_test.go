package bpf_test

import (
	"testing"

	"github.com/tcassar-diss/classicbpf/bpf"
)

func TestOpcodeComposition(t *testing.T) {
	tests := []struct {
		name     string
		opcode   bpf.Opcode
		expected bpf.Opcode
	}{
		{
			name:     "load byte at absolute offset",
			opcode:   bpf.LoadOpcode(bpf.Abs, bpf.Byte),
			expected: 0x30,
		},
		{
			name:     "load half-word at absolute offset",
			opcode:   bpf.LoadOpcode(bpf.Abs, bpf.Half),
			expected: 0x28,
		},
		{
			name:     "load word at absolute offset",
			opcode:   bpf.LoadOpcode(bpf.Abs, bpf.Word),
			expected: 0x20,
		},
		{
			name:     "load byte at indirect offset",
			opcode:   bpf.LoadOpcode(bpf.Ind, bpf.Byte),
			expected: 0x50,
		},
		{
			name:     "load packet length",
			opcode:   bpf.LoadOpcode(bpf.Len, bpf.Word),
			expected: 0x80,
		},
		{
			name:     "load index immediate",
			opcode:   bpf.LoadXOpcode(bpf.Imm, bpf.Word),
			expected: 0x01,
		},
		{
			name:     "load index masked-shift",
			opcode:   bpf.LoadXOpcode(bpf.Msh, bpf.Byte),
			expected: 0xb1,
		},
		{
			name:     "store accumulator",
			opcode:   bpf.StoreOpcode(),
			expected: 0x02,
		},
		{
			name:     "store index",
			opcode:   bpf.StoreXOpcode(),
			expected: 0x03,
		},
		{
			name:     "add index register",
			opcode:   bpf.ALUOpcode(bpf.Add, bpf.X),
			expected: 0x0c,
		},
		{
			name:     "right shift by literal",
			opcode:   bpf.ALUOpcode(bpf.Rsh, bpf.K),
			expected: 0x74,
		},
		{
			name:     "negate",
			opcode:   bpf.ALUOpcode(bpf.Neg, bpf.K),
			expected: 0x84,
		},
		{
			name:     "jump always",
			opcode:   bpf.JumpOpcode(bpf.Ja, bpf.K),
			expected: 0x05,
		},
		{
			name:     "jump if equal to literal",
			opcode:   bpf.JumpOpcode(bpf.Jeq, bpf.K),
			expected: 0x15,
		},
		{
			name:     "jump if greater than index register",
			opcode:   bpf.JumpOpcode(bpf.Jgt, bpf.X),
			expected: 0x2d,
		},
		{
			name:     "jump if bits set",
			opcode:   bpf.JumpOpcode(bpf.Jset, bpf.K),
			expected: 0x45,
		},
		{
			name:     "return literal",
			opcode:   bpf.RetOpcode(bpf.RetK),
			expected: 0x06,
		},
		{
			name:     "return accumulator",
			opcode:   bpf.RetOpcode(bpf.RetA),
			expected: 0x16,
		},
		{
			name:     "transfer accumulator to index",
			opcode:   bpf.MiscOpcode(bpf.TAX),
			expected: 0x07,
		},
		{
			name:     "transfer index to accumulator",
			opcode:   bpf.MiscOpcode(bpf.TXA),
			expected: 0x87,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opcode != tt.expected {
				t.Errorf("composed opcode = %#04x, expected %#04x", uint16(tt.opcode), uint16(tt.expected))
			}
		})
	}
}
