// Package command 提供各子命令共享的配置加载、flags 与输入输出辅助。
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/config"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/version"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// EnvPrefix 配置项对应的环境变量前缀。
const EnvPrefix = "VARSUB_"

// ErrInvalidDefine -D 参数缺少名称。
var ErrInvalidDefine = errors.New("invalid -D definition")

// GlobalFlags 返回根命令上的通用 flags，子命令通过 lineage 读取。
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (.yaml / .json / .properties)",
			Sources: cli.EnvVars(EnvPrefix + "CONFIG"),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别: debug | info | warn | error",
		},
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "覆盖或新增系统属性 name=value，可重复",
		},
	}
}

// SubstitutionFlags 返回 variable-substitution.* 配置对应的 flags。
func SubstitutionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "variable-substitution-properties-url",
			Usage: "变量文件路径或 URL，可重复",
		},
		&cli.StringFlag{
			Name:  "variable-substitution-impl",
			Value: Defaults.Substitution.Impl,
			Usage: "替换模式: SIMPLE | SIMPLE_WITH_LOGGING | STRICT | STRICT_WITH_LOGGING",
		},
		&cli.StringFlag{
			Name:  "variable-substitution-varprefix",
			Value: Defaults.Substitution.Prefix,
			Usage: "占位符前缀",
		},
		&cli.StringFlag{
			Name:  "variable-substitution-varpostfix",
			Value: Defaults.Substitution.Postfix,
			Usage: "占位符后缀",
		},
		&cli.BoolFlag{
			Name:  "variable-substitution-lenient",
			Usage: "变量文件缺失时仅记录警告",
		},
		&cli.BoolFlag{
			Name:  "variable-substitution-url-useHostname",
			Usage: "将定位符中的 %s 替换为本机主机名",
		},
	}
}

// LayerFlags 返回单个替换阶段 (system-properties / environment-variables) 的 flags。
func LayerFlags(key string, defaults config.LayerConfig) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  key + "-impl",
			Value: defaults.Impl,
			Usage: "替换模式",
		},
		&cli.StringFlag{
			Name:  key + "-varprefix",
			Value: defaults.Prefix,
			Usage: "占位符前缀",
		},
		&cli.StringFlag{
			Name:  key + "-varpostfix",
			Value: defaults.Postfix,
			Usage: "占位符后缀",
		},
	}
}

// LoadConfig 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(EnvPrefix)}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, cfgm.WithConfigPaths(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// SetupLogging 安装写到 stderr 的文本 handler。
func SetupLogging(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))

	return nil
}

// Before 根命令的 Before hook：按配置中的 log.level（或 --log-level）初始化日志。
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return ctx, err
	}

	return ctx, SetupLogging(cmd.Root().ErrWriter, cfg.Log.Level)
}

// ParseDefines 解析 -D name=value 列表；缺少 "=" 时值为空字符串。
func ParseDefines(defs []string) (*varsub.Store, error) {
	s := &varsub.Store{}
	for _, def := range defs {
		name, value, _ := strings.Cut(def, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDefine, def)
		}
		s.Set(name, value)
	}

	return s, nil
}

// Snapshot 获取系统属性（叠加 -D 定义）与环境变量快照。
func Snapshot(cmd *cli.Command) (system, env *varsub.Store, err error) {
	defines, err := ParseDefines(cmd.StringSlice("define"))
	if err != nil {
		return nil, nil, err
	}

	return varsub.SystemProperties(defines), varsub.Environment(), nil
}

// ReadInput 读取输入文档，path 为空或 "-" 时读取 r。
func ReadInput(r io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is given by the operator
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return string(data), nil
}

// WriteOutput 写出结果，path 为空或 "-" 时写到 w。
func WriteOutput(w io.Writer, path, text string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, text)

		return err
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // output is a config document
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// NewApp 创建根命令，挂载通用 flags、日志初始化与子命令。
func NewApp(cmds ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     version.AppRawName,
		Usage:    "配置文档变量替换工具",
		Version:  version.GetVersion(),
		Flags:    GlobalFlags(),
		Before:   Before,
		Commands: cmds,
	}
}
