package sheetconf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmigpin/sheet/core/sheet"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEETSIM_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, sheet.DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.toml")
	src := `
[panel]
peek = 100
half_expanded = true
half_ratio = 0.25
initial_state = "expanded"

[fling]
threshold_fraction = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 100.0, cfg.PeekDp)
	require.True(t, cfg.HalfExpandedEnabled)
	require.Equal(t, 0.25, cfg.HalfExpandedRatio)
	require.Equal(t, sheet.Expanded, cfg.InitialState)
	require.Equal(t, 0.5, cfg.FlingThresholdFraction)
	// untouched keys keep their defaults
	require.Equal(t, 160.0, cfg.DensityDPI)
	require.True(t, cfg.Draggable)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.toml")
	require.NoError(t, os.WriteFile(path, []byte("[panel]\npeek = 100\n"), 0o644))
	t.Setenv("SHEETSIM_CONFIG", path)
	t.Setenv("SHEETSIM_PANEL_PEEK", "80")
	t.Setenv("SHEETSIM_FLING_MIN", "120")
	t.Setenv("SHEETSIM_PANEL_DRAGGABLE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 80.0, cfg.PeekDp)
	require.Equal(t, 120.0, cfg.MinFlingDp)
	require.False(t, cfg.Draggable)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nothere.toml"))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Setenv("SHEETSIM_PANEL_PEEK", "80")
	cfg, err := Parse([]byte("[panel]\nhalf_expanded = true\ninitial_state = \"half\"\n"))
	require.NoError(t, err)
	require.True(t, cfg.HalfExpandedEnabled)
	require.Equal(t, sheet.HalfExpanded, cfg.InitialState)
	// env is ignored
	require.Equal(t, 56.0, cfg.PeekDp)
}

func TestParseInvalid(t *testing.T) {
	srcs := []string{
		"[panel]\ninitial_state = \"dragging\"\n",
		"[panel]\ninitial_state = \"sideways\"\n",
		"[panel]\npeek = -3\n",
		"[fling]\nmin = 100\nmax = 10\n",
	}
	for _, src := range srcs {
		_, err := Parse([]byte(src))
		require.ErrorIs(t, err, sheet.ErrInvalidConfig, src)
	}

	_, err := Parse([]byte("[panel\npeek = 1"))
	require.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDefault(buf))
	require.Contains(t, buf.String(), "[panel]")
	require.Contains(t, buf.String(), "threshold_fraction")

	cfg, err := Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, sheet.DefaultConfig(), cfg)
}
