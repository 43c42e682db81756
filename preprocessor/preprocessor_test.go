package preprocessor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/irisc/preprocessor"
)

func TestExpand(t *testing.T) {
	out, err := preprocessor.Expand("addi r1, r2, {{ n }}", preprocessor.Params{"n": int64(5)})
	require.NoError(t, err)
	require.Equal(t, "addi r1, r2, 5", out)
}

func TestExpandString(t *testing.T) {
	out, err := preprocessor.Expand("lbl {{ name }}", preprocessor.Params{"name": "start"})
	require.NoError(t, err)
	require.Equal(t, "lbl start", out)
}

func TestExpandConditional(t *testing.T) {
	tpl := "{% if debug %}addi r0, r0, 1{% endif %}"

	out, err := preprocessor.Expand(tpl, preprocessor.Params{"debug": int64(1)})
	require.NoError(t, err)
	require.Equal(t, "addi r0, r0, 1", out)

	out, err = preprocessor.Expand(tpl, preprocessor.Params{"debug": int64(0)})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestExpandBadTemplate(t *testing.T) {
	_, err := preprocessor.Expand("addi r1, r2, {{ n", nil)
	require.Error(t, err)
}

func TestExpandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.s")
	require.NoError(t, os.WriteFile(path, []byte("set0 r1, r0, {{ v }}\n"), 0o644))

	out, err := preprocessor.ExpandFile(path, preprocessor.Params{"v": int64(255)})
	require.NoError(t, err)
	require.Equal(t, "set0 r1, r0, 255\n", out)
}

func TestExpandFileMissing(t *testing.T) {
	_, err := preprocessor.ExpandFile(filepath.Join(t.TempDir(), "absent.s"), nil)
	require.Error(t, err)
}
