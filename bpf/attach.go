//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package bpf

import (
	"fmt"
	"syscall"
)

// AttachConn attaches the program to a socket held as a syscall.Conn
// (net.IPConn, net.UDPConn, and friends all are). The file descriptor is
// borrowed through RawConn.Control for the duration of the attach call, so
// the runtime cannot close it out from under the syscall.
func (p *Program) AttachConn(c syscall.Conn) error {
	rc, err := c.SyscallConn()
	if err != nil {
		return fmt.Errorf("failed to get raw conn: %w", err)
	}

	var attachErr error

	if err := rc.Control(func(fd uintptr) {
		attachErr = p.Attach(int(fd))
	}); err != nil {
		return fmt.Errorf("failed to control raw conn: %w", err)
	}

	return attachErr
}
