package bpf

import (
	"fmt"

	netbpf "golang.org/x/net/bpf"
)

// Assemble lowers symbolic golang.org/x/net/bpf instructions into a
// Program. It exists so filters written against the x/net instruction
// types can be attached through this package without hand-encoding
// opcodes.
func Assemble(insns []netbpf.Instruction) (*Program, error) {
	raw, err := netbpf.Assemble(insns)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble instructions: %w", err)
	}

	out := make([]Instruction, len(raw))
	for i, r := range raw {
		out[i] = Instruction{Op: r.Op, Jt: r.Jt, Jf: r.Jf, K: r.K}
	}

	return NewProgram(out)
}
