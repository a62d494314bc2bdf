package bpf

// Opcode is a composed classic BPF opcode, ready to be placed in
// Instruction.Op. Compose one with the per-class builders below; the
// fragment types keep incompatible combinations (say, a jump condition on a
// load) from type-checking.
//
// Numeric values are fixed by the kernel ABI (see bpf.h on any of the
// target systems) and must never change.
type Opcode uint16

// Instruction classes, the low three bits of every opcode.
const (
	classLd   Opcode = 0x00
	classLdx  Opcode = 0x01
	classSt   Opcode = 0x02
	classStx  Opcode = 0x03
	classALU  Opcode = 0x04
	classJmp  Opcode = 0x05
	classRet  Opcode = 0x06
	classMisc Opcode = 0x07
)

// Size selects the operand width of a load.
type Size uint16

const (
	Word Size = 0x00
	Half Size = 0x08
	Byte Size = 0x10
)

// Mode is the addressing mode of a load or store.
type Mode uint16

const (
	Imm Mode = 0x00 // literal operand
	Abs Mode = 0x20 // fixed packet offset
	Ind Mode = 0x40 // packet offset relative to the index register
	Mem Mode = 0x60 // scratch memory slot
	Len Mode = 0x80 // packet length
	Msh Mode = 0xa0 // masked shift, for IP header lengths
	Rnd Mode = 0xc0 // random, OpenBSD only
)

// ALUOp is an arithmetic/logic operator.
type ALUOp uint16

const (
	Add ALUOp = 0x00
	Sub ALUOp = 0x10
	Mul ALUOp = 0x20
	Div ALUOp = 0x30
	Or  ALUOp = 0x40
	And ALUOp = 0x50
	Lsh ALUOp = 0x60
	Rsh ALUOp = 0x70
	Neg ALUOp = 0x80
)

// JumpCond is a jump comparison.
type JumpCond uint16

const (
	Ja   JumpCond = 0x00 // always
	Jeq  JumpCond = 0x10
	Jgt  JumpCond = 0x20
	Jge  JumpCond = 0x30
	Jset JumpCond = 0x40 // bit test
)

// Source selects the right-hand operand of an ALU or jump instruction:
// the literal K field, or the index register X.
type Source uint16

const (
	K Source = 0x00
	X Source = 0x08
)

// RetSource selects what a return instruction yields: the literal K field,
// or the accumulator.
type RetSource uint16

const (
	RetK RetSource = 0x00
	RetA RetSource = 0x10
)

// TransferDir is the register transfer direction of a misc instruction.
type TransferDir uint16

const (
	TAX TransferDir = 0x00 // accumulator to index
	TXA TransferDir = 0x80 // index to accumulator
)

// LoadOpcode composes a load-into-accumulator opcode.
func LoadOpcode(mode Mode, size Size) Opcode {
	return classLd | Opcode(mode) | Opcode(size)
}

// LoadXOpcode composes a load-into-index opcode. The kernel only accepts a
// subset of modes here (Imm, Mem, Len, Msh); an unsupported mode is
// rejected at attach time, not by this builder.
func LoadXOpcode(mode Mode, size Size) Opcode {
	return classLdx | Opcode(mode) | Opcode(size)
}

// StoreOpcode composes the store-accumulator-to-scratch opcode.
func StoreOpcode() Opcode { return classSt }

// StoreXOpcode composes the store-index-to-scratch opcode.
func StoreXOpcode() Opcode { return classStx }

// ALUOpcode composes an arithmetic/logic opcode. src is ignored by the
// kernel for Neg, which has no right-hand operand.
func ALUOpcode(op ALUOp, src Source) Opcode {
	return classALU | Opcode(op) | Opcode(src)
}

// JumpOpcode composes a jump opcode.
func JumpOpcode(cond JumpCond, src Source) Opcode {
	return classJmp | Opcode(cond) | Opcode(src)
}

// RetOpcode composes a return opcode.
func RetOpcode(src RetSource) Opcode {
	return classRet | Opcode(src)
}

// MiscOpcode composes a register-transfer opcode.
func MiscOpcode(dir TransferDir) Opcode {
	return classMisc | Opcode(dir)
}
