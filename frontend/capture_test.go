//go:build linux

package frontend

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

const dropAllTOML = `
[[preset]]
name = "drop-all"

[[preset.insn]]
code = 0x6
k = 0
`

func TestResolveProgram(t *testing.T) {
	presetPath := path.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(presetPath, []byte(dropAllTOML), 0o644))

	tests := []struct {
		name   string
		cfg    *CaptureCfg
		nInsns int
		err    error
	}{
		{
			name:   "builtin",
			cfg:    &CaptureCfg{PresetName: "icmp6"},
			nInsns: 4,
		},
		{
			name: "unknown builtin",
			cfg:  &CaptureCfg{PresetName: "tcp80"},
			err:  ErrUnknownPreset,
		},
		{
			name:   "from file",
			cfg:    &CaptureCfg{PresetName: "drop-all", PresetPath: presetPath},
			nInsns: 1,
		},
		{
			name: "not in file",
			cfg:  &CaptureCfg{PresetName: "icmp6", PresetPath: presetPath},
			err:  ErrUnknownPreset,
		},
		{
			name: "missing file",
			cfg:  &CaptureCfg{PresetName: "drop-all", PresetPath: path.Join(t.TempDir(), "nope.toml")},
			err:  os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolveProgram(tt.cfg)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.nInsns, p.Len())
		})
	}
}
