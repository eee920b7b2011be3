// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .varsub.yaml、config.yaml、bootstrap.properties 等，或 --config 指定
//  3. 环境变量 - VARSUB_ 前缀，如 VARSUB_VARIABLE_SUBSTITUTION_IMPL
//  4. CLI flags - 如 --variable-substitution-impl
//
// 配置 key 与 properties 形式的引导配置保持一致：
//
//	variable-substitution.varprefix=${
//	variable-substitution.varpostfix=}
//	variable-substitution.impl=STRICT
//	variable-substitution.properties.url=conf/vars.properties
//	variable-substitution.url.timeout=5s
package config

import (
	"time"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// Config 应用配置。
type Config struct {
	Substitution         SubstitutionConfig `json:"variable-substitution" desc:"自定义变量文件替换"`
	SystemProperties     LayerConfig        `json:"system-properties" desc:"系统属性替换"`
	EnvironmentVariables LayerConfig        `json:"environment-variables" desc:"环境变量替换"`
	Server               ServerConfig       `json:"server" desc:"服务端配置"`
	Client               ClientConfig       `json:"client" desc:"客户端配置"`
	Log                  LogConfig          `json:"log" desc:"日志配置"`
}

// LayerConfig 单个替换阶段的占位符语法与模式。
type LayerConfig struct {
	Prefix  string `json:"varprefix" desc:"占位符前缀"`
	Postfix string `json:"varpostfix" desc:"占位符后缀"`
	Impl    string `json:"impl" desc:"替换模式: SIMPLE | SIMPLE_WITH_LOGGING | STRICT | STRICT_WITH_LOGGING"`
}

// Markers 返回占位符语法，空白值回退为默认值。
func (c LayerConfig) Markers() varsub.Markers {
	return varsub.NewMarkers(c.Prefix, c.Postfix)
}

// Mode 解析替换模式。
func (c LayerConfig) Mode() (varsub.Mode, error) {
	return varsub.ParseMode(c.Impl)
}

// SubstitutionConfig 自定义变量文件替换配置。
type SubstitutionConfig struct {
	Prefix     string           `json:"varprefix" desc:"占位符前缀"`
	Postfix    string           `json:"varpostfix" desc:"占位符后缀"`
	Impl       string           `json:"impl" desc:"替换模式"`
	Properties PropertiesConfig `json:"properties" desc:"变量文件"`
	URL        URLConfig        `json:"url" desc:"变量文件定位符选项"`
	Lenient    bool             `json:"lenient" desc:"变量文件缺失时仅记录警告"`
}

// Layer 返回占位符语法与模式部分。
func (c SubstitutionConfig) Layer() LayerConfig {
	return LayerConfig{Prefix: c.Prefix, Postfix: c.Postfix, Impl: c.Impl}
}

// PropertiesConfig 变量文件列表。
type PropertiesConfig struct {
	URL []string `json:"url" desc:"变量文件路径或 URL，按顺序合并，靠后的覆盖靠前的"`
}

// URLConfig 变量文件定位符选项。
type URLConfig struct {
	UseHostname bool          `json:"useHostname" desc:"将定位符中的 %s 替换为本机主机名"`
	Timeout     time.Duration `json:"timeout" desc:"通过 HTTP 读取变量文件的单次请求超时"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"日志级别: debug | info | warn | error"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	layer := LayerConfig{
		Prefix:  varsub.DefaultPrefix,
		Postfix: varsub.DefaultPostfix,
		Impl:    varsub.DefaultMode,
	}

	return Config{
		Substitution: SubstitutionConfig{
			Prefix:  layer.Prefix,
			Postfix: layer.Postfix,
			Impl:    layer.Impl,
			URL: URLConfig{
				Timeout: 10 * time.Second,
			},
		},
		SystemProperties:     layer,
		EnvironmentVariables: layer,
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
		},
		Client: ClientConfig{
			URL:     "http://localhost:40117",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
