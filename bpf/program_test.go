package bpf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tcassar-diss/classicbpf/bpf"
)

func icmp6Insns() []bpf.Instruction {
	return []bpf.Instruction{
		bpf.Stmt(bpf.LoadOpcode(bpf.Abs, bpf.Byte), 6),
		bpf.Jump(bpf.JumpOpcode(bpf.Jeq, bpf.K), 58, 0, 1),
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0xffffffff),
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0),
	}
}

func TestNewProgram(t *testing.T) {
	insns := icmp6Insns()

	p, err := bpf.NewProgram(insns)
	require.NoError(t, err)

	require.Equal(t, len(insns), p.Len())
	require.Equal(t, insns, p.Instructions())

	// the program borrows the caller's slice, it doesn't copy it
	require.Same(t, &insns[0], &p.Instructions()[0])
}

func TestNewProgramEmpty(t *testing.T) {
	p, err := bpf.NewProgram(nil)

	require.ErrorIs(t, err, bpf.ErrEmptyProgram)
	require.Nil(t, p)
}

func TestNewProgramLength(t *testing.T) {
	tests := []struct {
		name string
		n    int
		err  error
	}{
		{name: "single instruction", n: 1, err: nil},
		{name: "largest encodable program", n: 65535, err: nil},
		{name: "one past the length field", n: 65536, err: bpf.ErrProgramTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insns := make([]bpf.Instruction, tt.n)
			for i := range insns {
				insns[i] = bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0)
			}

			p, err := bpf.NewProgram(insns)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.Nil(t, p)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.n, p.Len())
		})
	}
}
