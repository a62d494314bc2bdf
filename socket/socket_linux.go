//go:build linux

// Package socket opens raw AF_PACKET sockets suitable for classic BPF
// filtering. It manages the descriptor's lifetime; the bpf package only
// ever borrows it.
package socket

import (
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// Conn is a raw packet socket bound to one interface. Reads return whole
// link-layer frames, filtered by whatever BPF program is attached.
type Conn struct {
	fd      int
	ifindex int
}

// Open creates a SOCK_RAW AF_PACKET socket capturing every ethertype on
// the named interface.
func Open(ifname string) (*Conn, error) {
	intf, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interface %q: %w", ifname, err)
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, fmt.Errorf("failed to open raw socket: %w", err)
	}

	sll := unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  intf.Index,
	}

	if err := unix.Bind(fd, &sll); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("failed to bind raw socket to %q: %w", ifname, err)
	}

	return &Conn{fd: fd, ifindex: intf.Index}, nil
}

// Fd exposes the underlying descriptor for Program.Attach and Detach. The
// Conn still owns it; don't close it directly.
func (c *Conn) Fd() int { return c.fd }

// Poll waits up to timeout for a frame to become readable. It reports
// false on timeout, and swallows EINTR so callers can treat a signal as
// one more timeout.
func (c *Conn) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}

		return false, fmt.Errorf("failed to poll raw socket: %w", err)
	}

	return n > 0, nil
}

// Read fills b with the next frame delivered through the filter.
func (c *Conn) Read(b []byte) (int, error) {
	n, err := unix.Read(c.fd, b)
	if err != nil {
		return 0, fmt.Errorf("failed to read from raw socket: %w", err)
	}

	return n, nil
}

func (c *Conn) Close() error {
	return unix.Close(c.fd)
}

// htons converts to the network byte order the sockaddr expects.
func htons(i uint16) uint16 {
	return i<<8 | i>>8
}
