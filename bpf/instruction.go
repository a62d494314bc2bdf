package bpf

// Instruction is one classic BPF instruction. Its layout is bit-exact with
// the kernel's sock_filter (Linux) and bf_insn (BSD) structs: 2 bytes
// opcode, 1 byte jump-if-true, 1 byte jump-if-false, 4 bytes operand,
// native byte order, 8 bytes total. The attach layer hands the kernel a
// pointer straight into an []Instruction, so the field order and widths
// must never change.
type Instruction struct {
	Op uint16
	Jt uint8
	Jf uint8
	K  uint32
}

// Stmt builds a non-jump instruction, the BPF_STMT macro. k is the
// instruction's operand: a packet offset for loads, a return value for
// returns, and so on, depending on the opcode's class.
func Stmt(op Opcode, k uint32) Instruction {
	return Instruction{Op: uint16(op), K: k}
}

// Jump builds a jump instruction, the BPF_JUMP macro. jt and jf are the
// number of instructions to skip forward when the comparison against k is
// true or false respectively.
func Jump(op Opcode, k uint32, jt, jf uint8) Instruction {
	return Instruction{Op: uint16(op), Jt: jt, Jf: jf, K: k}
}
