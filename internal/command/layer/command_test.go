package layer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("log:\n  level: error\n"), 0o600))

	var out bytes.Buffer
	app := command.NewApp(newSysProps(), newEnvVars())
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"varsub", "--config", config}, args...))

	return out.String(), err
}

func TestSysProps(t *testing.T) {
	out, err := run(t, "${app.name} on ${file.separator}", "-D", "app.name=edi", "sysprops")
	require.NoError(t, err)
	assert.Equal(t, "edi on "+string(os.PathSeparator), out)
}

func TestSysProps_IgnoresEnvironment(t *testing.T) {
	t.Setenv("VARSUB_LAYER_TEST", "env")

	out, err := run(t, "${VARSUB_LAYER_TEST}", "sysprops")
	require.NoError(t, err)
	assert.Equal(t, "${VARSUB_LAYER_TEST}", out)

	_, err = run(t, "${VARSUB_LAYER_TEST}", "sysprops", "--system-properties-impl", "STRICT")
	require.ErrorIs(t, err, varsub.ErrUnresolved)
	assert.Contains(t, err.Error(), "system-properties")
}

func TestEnvVars(t *testing.T) {
	t.Setenv("VARSUB_LAYER_TEST", "env")

	out, err := run(t, "%{VARSUB_LAYER_TEST}%", "envvars",
		"--environment-variables-varprefix", "%{",
		"--environment-variables-varpostfix", "}%")
	require.NoError(t, err)
	assert.Equal(t, "env", out)
}

func TestEnvVars_ConfigFromEnvironment(t *testing.T) {
	t.Setenv("VARSUB_ENVIRONMENT_VARIABLES_IMPL", "STRICT_WITH_LOGGING")

	_, err := run(t, "${VARSUB_LAYER_UNDEFINED}", "envvars")
	require.ErrorIs(t, err, varsub.ErrUnresolved)
}
