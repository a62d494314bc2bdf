// Package preset ships ready-made classic BPF filter programs and loads
// user-defined ones from TOML files. File-defined presets carry raw
// instruction quadruples in the same shape tcpdump -dd prints, so a filter
// compiled elsewhere can be dropped straight into a preset file.
package preset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tcassar-diss/classicbpf/bpf"
)

var (
	ErrDuplicatePreset = errors.New("duplicate preset name")
	ErrUnnamedPreset   = errors.New("preset has no name")
)

// ICMP6 returns the canonical "ICMPv6 only" filter for an IPv6 datagram
// socket: load the next-header byte at offset 6, accept the whole packet
// when it is IPPROTO_ICMPV6, drop it otherwise.
func ICMP6() *bpf.Program {
	return mustProgram([]bpf.Instruction{
		bpf.Stmt(bpf.LoadOpcode(bpf.Abs, bpf.Byte), 6),
		bpf.Jump(bpf.JumpOpcode(bpf.Jeq, bpf.K), 58, 0, 1),
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0xffffffff),
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0),
	})
}

// AcceptAll returns a single-instruction filter passing every packet
// whole. Attaching it is the detach substitute on the ioctl ABI, which has
// no detach primitive.
func AcceptAll() *bpf.Program {
	return mustProgram([]bpf.Instruction{
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0xffffffff),
	})
}

// DropAll returns a single-instruction filter rejecting every packet.
func DropAll() *bpf.Program {
	return mustProgram([]bpf.Instruction{
		bpf.Stmt(bpf.RetOpcode(bpf.RetK), 0),
	})
}

// Builtin looks up one of the canned presets by name.
func Builtin(name string) (*bpf.Program, bool) {
	switch name {
	case "icmp6":
		return ICMP6(), true
	case "accept-all":
		return AcceptAll(), true
	case "drop-all":
		return DropAll(), true
	}

	return nil, false
}

type presetFile struct {
	Presets []presetTOML `toml:"preset"`
}

type presetTOML struct {
	Name  string     `toml:"name"`
	Insns []insnTOML `toml:"insn"`
}

type insnTOML struct {
	Code uint16 `toml:"code"`
	Jt   uint8  `toml:"jt"`
	Jf   uint8  `toml:"jf"`
	K    uint32 `toml:"k"`
}

// LoadFile reads presets from a TOML file.
func LoadFile(path string) (map[string]*bpf.Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset file: %w", err)
	}
	defer file.Close()

	presets, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return presets, nil
}

// Parse decodes TOML presets into attachable programs.
func Parse(r io.Reader) (map[string]*bpf.Program, error) {
	var parsed presetFile

	if _, err := toml.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode preset toml: %w", err)
	}

	presets := make(map[string]*bpf.Program, len(parsed.Presets))

	for _, p := range parsed.Presets {
		if p.Name == "" {
			return nil, ErrUnnamedPreset
		}

		if _, ok := presets[p.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePreset, p.Name)
		}

		insns := make([]bpf.Instruction, len(p.Insns))
		for i, insn := range p.Insns {
			insns[i] = bpf.Instruction{Op: insn.Code, Jt: insn.Jt, Jf: insn.Jf, K: insn.K}
		}

		prog, err := bpf.NewProgram(insns)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}

		presets[p.Name] = prog
	}

	return presets, nil
}

func mustProgram(insns []bpf.Instruction) *bpf.Program {
	p, err := bpf.NewProgram(insns)
	if err != nil {
		panic(err)
	}

	return p
}
