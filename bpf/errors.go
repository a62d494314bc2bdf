package bpf

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrEmptyProgram is returned by NewProgram for a zero-instruction
	// sequence. The kernel has no use for an empty filter.
	ErrEmptyProgram = errors.New("bpf program has no instructions")
	// ErrProgramTooLong is returned by NewProgram when the sequence does
	// not fit the kernel descriptor's 16-bit length field.
	ErrProgramTooLong = errors.New("bpf program longer than 65535 instructions")
)

// AttachError reports a failed attach system call. Errno is the OS error
// number, surfaced unchanged; interpreting it (EPERM, EINVAL from the
// kernel's verifier, ...) is the caller's business.
type AttachError struct {
	Errno syscall.Errno
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("failed to attach bpf filter: %v (errno %d)", e.Errno, int(e.Errno))
}

func (e *AttachError) Unwrap() error { return e.Errno }

// DetachError is the detach-side counterpart of AttachError.
type DetachError struct {
	Errno syscall.Errno
}

func (e *DetachError) Error() string {
	return fmt.Sprintf("failed to detach bpf filter: %v (errno %d)", e.Errno, int(e.Errno))
}

func (e *DetachError) Unwrap() error { return e.Errno }

// errnoOf digs the raw error number out of an x/sys/unix call's error.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	return syscall.EINVAL
}
