//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package bpf

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// bpfProgram mirrors struct bpf_program from bpf.h: a 32-bit instruction
// count followed by a pointer to the first instruction. Instruction is
// layout-identical to bf_insn, so the pointer goes straight into the
// borrowed slice.
type bpfProgram struct {
	Len   uint32
	Insns *Instruction
}

// ioctl seam, swapped for a recording fake in tests.
var ioctlSetFilter = func(fd int, prog *bpfProgram) error {
	if _, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(unix.BIOCSETF),
		uintptr(unsafe.Pointer(prog)),
	); errno != 0 {
		return errno
	}

	return nil
}

// Attach installs the program on fd via the BIOCSETF ioctl. The kernel
// copies the instructions during the call and replaces any previous filter
// atomically. This ABI has no detach primitive; to remove a filter, attach
// a replacement that accepts or drops everything.
func (p *Program) Attach(fd int) error {
	prog := bpfProgram{
		Len:   uint32(len(p.insns)),
		Insns: &p.insns[0],
	}

	err := ioctlSetFilter(fd, &prog)

	// prog.Insns crosses the syscall boundary as a raw pointer; keep the
	// slice live until the kernel is done reading through it.
	runtime.KeepAlive(p.insns)

	if err != nil {
		return &AttachError{Errno: errnoOf(err)}
	}

	return nil
}
