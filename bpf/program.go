package bpf

import (
	"fmt"
	"math"
)

// Program is a read-only view over a caller-owned instruction sequence,
// the unit the attach layer hands to the kernel. It borrows the slice
// rather than copying it: the caller must keep the slice alive and
// unmodified while the Program is in use. The kernel reads the
// instructions synchronously during the attach call and retains nothing
// afterwards, so a Program need not outlive its Attach.
type Program struct {
	insns []Instruction
}

// NewProgram wraps an instruction sequence. It fails with ErrEmptyProgram
// for an empty slice and ErrProgramTooLong past 65535 instructions, since
// silently truncating would attach a different filter than the one the
// caller built.
func NewProgram(insns []Instruction) (*Program, error) {
	if len(insns) == 0 {
		return nil, ErrEmptyProgram
	}

	if len(insns) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: got %d", ErrProgramTooLong, len(insns))
	}

	return &Program{insns: insns}, nil
}

// Len reports the number of instructions in the program.
func (p *Program) Len() int { return len(p.insns) }

// Instructions returns the borrowed instruction sequence. It is the
// caller's own slice, not a copy.
func (p *Program) Instructions() []Instruction { return p.insns }
