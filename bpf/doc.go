// Package bpf encodes classic BPF (cBPF) filter programs and attaches them
// to sockets.
//
// An Instruction is the kernel's 8-byte sock_filter record. Build them with
// Stmt and Jump, composing opcodes with the per-class builders (LoadOpcode,
// JumpOpcode, ...), then wrap the sequence in a Program with NewProgram and
// install it with Program.Attach. The package performs no verification of
// the program's control flow; the kernel rejects invalid programs at attach
// time.
//
// Attachment is selected at build time: Linux goes through
// setsockopt(SO_ATTACH_FILTER), the BSDs and Darwin go through the BIOCSETF
// ioctl. The public surface is identical on both apart from Detach, which
// only exists on Linux; on BSD a filter is removed by attaching a
// replacement (see the preset package).
package bpf
