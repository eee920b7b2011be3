package process

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/propfile"
)

// startWatch 在后台运行 watch，返回 run 的调用次数与停止函数。
func startWatch(t *testing.T, locators ...string) (*atomic.Int32, func() error) {
	t.Helper()
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, locators, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	stop := sync.OnceValue(func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("watch did not stop")
		}
	})
	t.Cleanup(func() { _ = stop() })

	return &calls, stop
}

// touch 写文件并忽略错误，供 Eventually 的条件函数使用。
func touch(path, content string) {
	_ = os.WriteFile(path, []byte(content), 0o600)
}

// 修改间隔必须大于 debounce，否则计时器会被不断重置。
const touchInterval = 3 * debounce

func TestWatch_Rewrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adapter.xml")
	write(t, input, "<id>${adapter.id}</id>")

	calls, stop := startWatch(t, input)

	require.Eventually(t, func() bool {
		touch(input, "<id>${adapter.name}</id>")
		return calls.Load() > 0
	}, 5*time.Second, touchInterval)

	require.NoError(t, stop())
}

func TestWatch_AtomicRename(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adapter.xml")
	write(t, input, "<id>${adapter.id}</id>")

	calls, stop := startWatch(t, input)

	require.Eventually(t, func() bool {
		tmp := filepath.Join(dir, ".adapter.xml.tmp")
		touch(tmp, "<id>${adapter.name}</id>")
		_ = os.Rename(tmp, input)
		return calls.Load() > 0
	}, 5*time.Second, touchInterval)

	require.NoError(t, stop())
}

func TestWatch_VariableFileAndDebounce(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adapter.xml")
	vars := filepath.Join(dir, "vars.properties")
	write(t, input, "${a}")
	write(t, vars, "a=1\n")

	calls, stop := startWatch(t, input, "file://"+vars)

	require.Eventually(t, func() bool {
		touch(vars, "a=2\n")
		return calls.Load() > 0
	}, 5*time.Second, touchInterval)

	// 一连串快速写入只触发一次处理
	time.Sleep(touchInterval)
	before := calls.Load()
	for range 5 {
		write(t, vars, "a=3\n")
	}
	require.Eventually(t, func() bool { return calls.Load() > before }, 5*time.Second, debounce/2)
	time.Sleep(touchInterval)
	assert.Equal(t, before+1, calls.Load())

	require.NoError(t, stop())
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adapter.xml")
	write(t, input, "${a}")

	calls, stop := startWatch(t, input)

	// 先确认监听已生效
	require.Eventually(t, func() bool {
		touch(input, "${b}")
		return calls.Load() > 0
	}, 5*time.Second, touchInterval)
	time.Sleep(touchInterval)
	before := calls.Load()

	write(t, filepath.Join(dir, "other.txt"), "noise")
	time.Sleep(touchInterval)
	assert.Equal(t, before, calls.Load())

	require.NoError(t, stop())
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := watch(context.Background(), []string{filepath.Join(t.TempDir(), "missing", "adapter.xml")},
		func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestWatchList(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	loader := propfile.New(
		propfile.WithHostname(true),
		propfile.WithHostnameFunc(func() (string, error) { return "", errors.New("no hostname") }),
	)

	got := watchList(loader, "adapter.xml", []string{"conf/common.properties", "conf/%s.properties"})

	assert.Equal(t, []string{"adapter.xml", "conf/common.properties"}, got)
	assert.Contains(t, logs.String(), "Variable file not watched")
	assert.Contains(t, logs.String(), "conf/%s.properties")
}
