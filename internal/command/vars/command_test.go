package vars

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("log:\n  level: error\n"), 0o600))

	var out bytes.Buffer
	app := command.NewApp(newCommand())
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"varsub", "--config", config}, args...))

	return out.String(), err
}

func writeVars(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vars.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestVars(t *testing.T) {
	path := writeVars(t, "adapter.id=${my.adapter}ID\nmy.adapter=Edi\nhome=${app.home}\n")

	out, err := run(t, "-D", "app.home=/opt", "vars", "--variable-substitution-properties-url", path)
	require.NoError(t, err)
	assert.Equal(t, "adapter.id=EdiID\nmy.adapter=Edi\nhome=/opt\n", out)
}

func TestVars_Raw(t *testing.T) {
	path := writeVars(t, "adapter.id=${my.adapter}ID\nmy.adapter=Edi\n")

	out, err := run(t, "vars", "--raw", "--variable-substitution-properties-url", path)
	require.NoError(t, err)
	assert.Equal(t, "adapter.id=${my.adapter}ID\nmy.adapter=Edi\n", out)
}

func TestVars_SelfReference(t *testing.T) {
	path := writeVars(t, "loop=x${loop}\n")

	_, err := run(t, "vars", "--variable-substitution-properties-url", path)
	require.ErrorIs(t, err, varsub.ErrSelfReference)
}

func TestVars_Layers(t *testing.T) {
	t.Setenv("VARSUB_VARS_TEST", "yes")

	out, err := run(t, "-D", "custom.prop=1", "vars", "--layer", "system")
	require.NoError(t, err)
	assert.Contains(t, out, "custom.prop=1\n")
	assert.Contains(t, out, "os.name=")

	out, err = run(t, "vars", "--layer", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "VARSUB_VARS_TEST=yes\n")

	_, err = run(t, "vars", "--layer", "bogus")
	require.Error(t, err)
}

func TestVars_InvalidDefine(t *testing.T) {
	_, err := run(t, "-D", "=oops", "vars")
	require.ErrorIs(t, err, command.ErrInvalidDefine)
}
