package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
//  6. bootstrap.properties - properties 格式的引导配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	paths = append(paths, "config.yaml", "config/config.yaml", "bootstrap.properties")

	return paths
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML、JSON 与 properties 共享同一套 key。
// 配置文件按顺序查找，命中首个文件即停止。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.configPaths) == 0 {
		options.configPaths = DefaultPaths(options.appName)
	}

	configMap := structToMap(defaultConfig)
	knownKeys := collectConfigKeys(defaultConfig)

	// 2️⃣ 加载配置文件 (按顺序搜索，找到第一个即停止)
	configLoaded := false
	for _, path := range resolvePaths(options.baseDir, options.configPaths) {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !options.noSubstitution {
			expanded, expandErr := expandText(string(content))
			if expandErr != nil {
				return nil, fmt.Errorf("expand variables in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		warnUnknownKeys(path, fileMap, knownKeys)
		mergeMaps(configMap, fileMap)

		slog.Debug("Loaded config from file", "path", path, "substitution", !options.noSubstitution)
		configLoaded = true

		break
	}

	if !configLoaded {
		slog.Debug("No config file found, using defaults")
	}

	// 3️⃣ 环境变量绑定 (基于配置结构体的 key)
	if options.envPrefix != "" {
		autoBindings := generateEnvBindings(options.envPrefix, knownKeys)
		slog.Debug("Generated auto env bindings", "prefix", options.envPrefix, "count", len(autoBindings))
		for envKey, configPath := range autoBindings {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ CLI flags (最高优先级，仅当用户明确指定时)
	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// resolvePaths 把相对路径转换为基于 baseDir 的路径；baseDir 为空时保持原样（即当前工作目录）。
func resolvePaths(baseDir string, paths []string) []string {
	if baseDir == "" {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(baseDir, p)
	}

	return out
}

// expandText 用系统属性与环境变量替换配置文本中的 ${NAME}，同名时系统属性优先。
//
// 使用 SIMPLE 模式：未定义的占位符保持原样。
func expandText(text string) (string, error) {
	vars := varsub.Environment()
	vars.Merge(varsub.SystemProperties())

	return varsub.Substitute(text, vars, varsub.DefaultMarkers(), varsub.Simple)
}

// warnUnknownKeys 对配置文件中未在结构体里定义的 key 记录警告。
func warnUnknownKeys(path string, fileMap map[string]any, known []string) {
	for _, key := range flattenMapKeys(fileMap) {
		if slices.Contains(known, key) {
			continue
		}
		slog.Warn("Unknown config key", "path", path, "key", key)
	}
}

// collectConfigKeys 递归收集配置结构体的 key 列表。
//
// 以 json tag 为准，返回叶子路径（如 variable-substitution.properties.url）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	collectConfigKeysRecursive(reflect.TypeOf(defaultConfig), "", &keys)

	return keys
}

func collectConfigKeysRecursive(typ reflect.Type, prefix string, keys *[]string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			collectConfigKeysRecursive(field.Type, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// key 中的 "." 和 "-" 转为 "_"，转为大写后添加前缀：
//
//	variable-substitution.varprefix → VARSUB_VARIABLE_SUBSTITUTION_VARPREFIX
//	variable-substitution.url.useHostname → VARSUB_VARIABLE_SUBSTITUTION_URL_USEHOSTNAME
func generateEnvBindings(prefix string, keys []string) map[string]string {
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		bindings[prefix+envKey] = key
	}

	return bindings
}

// applyCLIFlags 递归遍历结构体字段，将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 json tag 生成，仅替换 "." 为 "-"：
//
//	variable-substitution.impl → --variable-substitution-impl
//	server.addr → --server-addr
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			applyCLIFlags(cmd, config, field.Type, fullKey)

			continue
		}

		cliFlag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(cliFlag) {
			continue
		}

		setCLIFlagValue(cmd, config, fullKey, cliFlag, field.Type)
	}
}

// setCLIFlagValue 按字段类型读取 CLI 值并写入配置 map。
//
// 支持 string、bool、int、time.Duration 与 []string，其他类型忽略。
func setCLIFlagValue(cmd *cli.Command, config map[string]any, configPath, cliFlag string, fieldType reflect.Type) {
	if fieldType == durationType {
		setByPath(config, configPath, cmd.Duration(cliFlag))

		return
	}

	switch fieldType.Kind() {
	case reflect.String:
		setByPath(config, configPath, cmd.String(cliFlag))
	case reflect.Bool:
		setByPath(config, configPath, cmd.Bool(cliFlag))
	case reflect.Int:
		setByPath(config, configPath, cmd.Int(cliFlag))
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			setByPath(config, configPath, cmd.StringSlice(cliFlag))
		}
	default:
		slog.Debug("Unsupported flag type", "flag", cliFlag, "type", fieldType.String())
	}
}
