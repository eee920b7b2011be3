package command

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/config"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/cfgm"
)

// slowVariables 在 delay 之后才返回变量文件，客户端取消时提前结束。
func slowVariables(delay time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
		_, _ = io.WriteString(w, "adapter.id=Edi\n")
	}))
}

func TestLoadVariables_HTTP(t *testing.T) {
	srv := slowVariables(0)
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Substitution.Properties.URL = []string{srv.URL + "/vars.properties"}

	vars, err := LoadVariables(context.Background(), &cfg)
	require.NoError(t, err)
	v, ok := vars.Get("adapter.id")
	require.True(t, ok)
	assert.Equal(t, "Edi", v)
}

func TestLoadVariables_UsesVariableFileTimeout(t *testing.T) {
	srv := slowVariables(2 * time.Second)
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Substitution.Properties.URL = []string{srv.URL + "/vars.properties"}
	cfg.Substitution.URL.Timeout = 50 * time.Millisecond
	cfg.Client.Timeout = time.Hour

	_, err := LoadVariables(context.Background(), &cfg)
	require.Error(t, err)
}

func TestConfig_VariableFileTimeoutKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variable-substitution:\n  url:\n    timeout: 5s\n"), 0o600))

	cfg, err := cfgm.Load(config.DefaultConfig(), cfgm.WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Substitution.URL.Timeout)
	assert.Equal(t, config.DefaultConfig().Client.Timeout, cfg.Client.Timeout)
}
