package propfile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// Loader 按定位符读取变量文件。零值不可用，使用 [New] 创建。
type Loader struct {
	client      *http.Client
	useHostname bool
	hostname    func() (string, error)
}

type options struct {
	timeout     time.Duration
	retries     int
	waitMin     time.Duration
	waitMax     time.Duration
	transport   http.RoundTripper
	useHostname bool
	hostname    func() (string, error)
}

// Option 配置 [Loader]。
type Option func(*options)

// WithTimeout 设置单次 HTTP 请求的超时，默认 10s。
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRetry 设置 HTTP 请求的最大重试次数与退避等待区间。
func WithRetry(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(o *options) {
		o.retries = maxRetries
		o.waitMin = waitMin
		o.waitMax = waitMax
	}
}

// WithTransport 替换底层 HTTP transport，主要用于测试。
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithHostname 启用后，定位符中的 "%s" 会被替换为本机主机名。
//
//	conf/%s.properties → conf/web01.properties
func WithHostname(enabled bool) Option {
	return func(o *options) {
		o.useHostname = enabled
	}
}

// WithHostnameFunc 替换主机名的获取方式，默认为 [os.Hostname]。
func WithHostnameFunc(fn func() (string, error)) Option {
	return func(o *options) {
		o.hostname = fn
	}
}

// New 创建 Loader。
func New(opts ...Option) *Loader {
	o := &options{
		timeout:  10 * time.Second,
		retries:  3,
		waitMin:  200 * time.Millisecond,
		waitMax:  2 * time.Second,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(o)
	}

	rc := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		Logger:       slog.Default(),
		RetryWaitMin: o.waitMin,
		RetryWaitMax: o.waitMax,
		RetryMax:     o.retries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return &Loader{
		client:      rc.StandardClient(),
		useHostname: o.useHostname,
		hostname:    o.hostname,
	}
}

// Locator 返回实际读取的定位符（应用主机名替换后）。
func (l *Loader) Locator(locator string) (string, error) {
	if !l.useHostname || !strings.Contains(locator, "%s") {
		return locator, nil
	}
	host, err := l.hostname()
	if err != nil {
		return "", fmt.Errorf("resolve hostname: %w", err)
	}

	return strings.ReplaceAll(locator, "%s", host), nil
}

// Load 读取并解析单个定位符。
//
// 定位符不存在（本地文件缺失或 HTTP 404）时返回的错误满足 errors.Is(err, fs.ErrNotExist)。
func (l *Loader) Load(ctx context.Context, locator string) (*varsub.Store, error) {
	resolved, err := l.Locator(locator)
	if err != nil {
		return nil, &LoadError{Locator: locator, Err: err}
	}

	data, err := l.read(ctx, resolved)
	if err != nil {
		return nil, &LoadError{Locator: resolved, Err: err}
	}

	s, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Locator: resolved, Err: err}
	}
	slog.Debug("Loaded variables", "locator", resolved, "count", s.Len())

	return s, nil
}

// LoadLenient 与 [Loader.Load] 相同，但失败时记录警告并返回空的 Store。
func (l *Loader) LoadLenient(ctx context.Context, locator string) *varsub.Store {
	s, err := l.Load(ctx, locator)
	if err != nil {
		slog.Warn("Unable to load variables, continuing without them", "locator", locator, "error", err)
		return &varsub.Store{}
	}

	return s
}

// LoadAll 并发读取所有定位符，并按给定顺序合并：靠后的文件覆盖同名变量。
//
// lenient 为 true 时单个文件失败只记录警告；否则返回第一个错误。
// 未提供任何定位符时记录警告并返回空的 Store。
func (l *Loader) LoadAll(ctx context.Context, locators []string, lenient bool) (*varsub.Store, error) {
	if len(locators) == 0 {
		slog.Warn("No variable file configured, substitution will have no effect")
		return &varsub.Store{}, nil
	}

	stores := make([]*varsub.Store, len(locators))
	eg, egctx := errgroup.WithContext(ctx)
	for i, locator := range locators {
		eg.Go(func() error {
			if lenient {
				stores[i] = l.LoadLenient(egctx, locator)
				return nil
			}
			s, err := l.Load(egctx, locator)
			if err != nil {
				return err
			}
			stores[i] = s

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := &varsub.Store{}
	for _, s := range stores {
		merged.Merge(s)
	}

	return merged, nil
}

func (l *Loader) read(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err != nil || len(u.Scheme) <= 1 {
		// 无 scheme 或 Windows 盘符，按本地路径处理
		return os.ReadFile(locator) //nolint:gosec // locator is from trusted config
	}

	switch u.Scheme {
	case "file":
		return os.ReadFile(u.Path) //nolint:gosec // locator is from trusted config
	case "http", "https":
		return l.fetch(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", resp.Status, fs.ErrNotExist)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
