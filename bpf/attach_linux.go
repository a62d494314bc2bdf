//go:build linux

package bpf

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// syscall seams, swapped for recording fakes in tests.
var (
	setsockoptSockFprog = unix.SetsockoptSockFprog
	setsockoptInt       = unix.SetsockoptInt
)

// Attach installs the program as fd's socket filter via
// setsockopt(SOL_SOCKET, SO_ATTACH_FILTER). The kernel copies the
// instructions during the call and replaces any previously attached filter
// atomically; every packet delivered on the socket afterwards passes
// through the new filter. A non-zero setsockopt result comes back as an
// *AttachError carrying the errno.
func (p *Program) Attach(fd int) error {
	// the kernel descriptor points into the borrowed slice; built here,
	// used for the one call, never stored.
	fprog := unix.SockFprog{
		Len:    uint16(len(p.insns)),
		Filter: (*unix.SockFilter)(unsafe.Pointer(&p.insns[0])),
	}

	err := setsockoptSockFprog(fd, unix.SOL_SOCKET, unix.SO_ATTACH_FILTER, &fprog)

	// fprog.Filter is invisible to the GC; keep the slice live until the
	// kernel is done reading through it.
	runtime.KeepAlive(p.insns)

	if err != nil {
		return &AttachError{Errno: errnoOf(err)}
	}

	return nil
}

// Detach removes whatever filter is attached to fd via
// setsockopt(SOL_SOCKET, SO_DETACH_FILTER). Detaching a socket with no
// filter attached is a kernel-defined no-op and succeeds.
func Detach(fd int) error {
	if err := setsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DETACH_FILTER, 0); err != nil {
		return &DetachError{Errno: errnoOf(err)}
	}

	return nil
}

// DetachConn is Detach for a socket held as a syscall.Conn.
func DetachConn(c syscall.Conn) error {
	rc, err := c.SyscallConn()
	if err != nil {
		return fmt.Errorf("failed to get raw conn: %w", err)
	}

	var detachErr error

	if err := rc.Control(func(fd uintptr) {
		detachErr = Detach(int(fd))
	}); err != nil {
		return fmt.Errorf("failed to control raw conn: %w", err)
	}

	return detachErr
}
