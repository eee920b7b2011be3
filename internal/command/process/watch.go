package process

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce 合并编辑器保存时产生的连续事件。
const debounce = 100 * time.Millisecond

// watch 监听本地文件所在目录，文件变化后调用 run，直到 ctx 结束。
//
// 监听目录而不是文件本身，原子替换（写临时文件后 rename）后仍能收到事件。
// run 的错误只记录日志，不会终止监听。
func watch(ctx context.Context, locators []string, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	files := make(map[string]bool)
	for _, loc := range locators {
		path, ok := localPath(loc)
		if !ok {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
	}
	slog.Info("Watching for changes", "files", len(files))

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			slog.Debug("File changed", "path", ev.Name, "op", ev.Op.String())
			timer = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-timer:
			timer = nil
			if err := run(ctx); err != nil {
				slog.Error("Processing failed", "error", err)
				continue
			}
			slog.Info("Document reprocessed")
		}
	}
}

// localPath 返回定位符对应的本地路径；远程定位符返回 false。
func localPath(locator string) (string, bool) {
	u, err := url.Parse(locator)
	if err != nil || len(u.Scheme) <= 1 {
		return locator, true
	}
	if u.Scheme == "file" {
		return u.Path, true
	}

	return "", false
}
