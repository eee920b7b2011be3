package cfgm

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	baseDir             string // 路径基准目录，用于将相对路径转换为绝对路径
	envPrefix           string
	noSubstitution bool // 是否禁用配置文件变量替换（默认启用）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
//
// 示例：
//
//	cfgm.Load(defaultConfig,
//	    cfgm.WithAppName("varsub"),  // 自动搜索 .varsub.yaml 等
//	    cfgm.WithCommand(cmd),
//	)
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置配置路径的解析基准。
//
// 默认为当前工作目录；绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "VARSUB_")：
//   - VARSUB_LOG_LEVEL → log.level
//   - VARSUB_SERVER_ADDR → server.addr
//   - VARSUB_VARIABLE_SUBSTITUTION_IMPL → variable-substitution.impl
//
// 注意：通过反射自动生成配置 key 的绑定，只匹配结构体中定义的 key。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutSubstitution 禁用配置文件的变量替换。
//
// 默认在解析前用环境变量与系统属性替换 ${NAME} 占位符（SIMPLE 模式，未定义的占位符保持原样）。
// 该选项会保留原始 ${...} 字符串。
func WithoutSubstitution() Option {
	return func(o *options) {
		o.noSubstitution = true
	}
}
