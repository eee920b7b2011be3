package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/config"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/propfile"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// NewLoader 按配置创建变量文件加载器。
func NewLoader(cfg *config.Config) *propfile.Loader {
	return propfile.New(
		propfile.WithHostname(cfg.Substitution.URL.UseHostname),
		propfile.WithTimeout(cfg.Substitution.URL.Timeout),
	)
}

// LoadVariables 读取并合并配置中的全部变量文件。
func LoadVariables(ctx context.Context, cfg *config.Config) (*varsub.Store, error) {
	return NewLoader(cfg).LoadAll(ctx, cfg.Substitution.Properties.URL, cfg.Substitution.Lenient)
}

// NewProcessor 按 variable-substitution 配置创建 Processor。
func NewProcessor(cfg *config.Config, system, env *varsub.Store) (*varsub.Processor, error) {
	layer := cfg.Substitution.Layer()
	mode, err := layer.Mode()
	if err != nil {
		return nil, fmt.Errorf("variable-substitution.impl: %w", err)
	}

	return &varsub.Processor{
		Markers:     layer.Markers(),
		Mode:        mode,
		System:      system,
		Environment: env,
	}, nil
}

// SubstituteLayer 把单个变量层直接替换进文档，用于 system-properties 与 environment-variables 阶段。
func SubstituteLayer(document string, vars *varsub.Store, layer config.LayerConfig) (string, error) {
	mode, err := layer.Mode()
	if err != nil {
		return "", err
	}

	return varsub.Substitute(document, vars, layer.Markers(), mode)
}

// Stages 选择 [Pipeline.Run] 在变量文件替换之后追加的阶段。
type Stages struct {
	SystemProperties     bool
	EnvironmentVariables bool
}

// Pipeline 一次完整的文档处理：变量文件 → 可选的系统属性阶段 → 可选的环境变量阶段。
type Pipeline struct {
	Config *config.Config
	System *varsub.Store
	Env    *varsub.Store
	Stages Stages
}

// Run 处理 document；任一阶段失败都不返回部分结果。
func (p *Pipeline) Run(ctx context.Context, document string) (string, error) {
	raw, err := LoadVariables(ctx, p.Config)
	if err != nil {
		return "", err
	}

	proc, err := NewProcessor(p.Config, p.System, p.Env)
	if err != nil {
		return "", err
	}

	out, err := proc.Process(document, raw)
	if err != nil {
		return "", fmt.Errorf("variable-substitution: %w", err)
	}

	if p.Stages.SystemProperties {
		slog.Debug("Applying system properties", "count", p.System.Len())
		if out, err = SubstituteLayer(out, p.System, p.Config.SystemProperties); err != nil {
			return "", fmt.Errorf("system-properties: %w", err)
		}
	}
	if p.Stages.EnvironmentVariables {
		slog.Debug("Applying environment variables", "count", p.Env.Len())
		if out, err = SubstituteLayer(out, p.Env, p.Config.EnvironmentVariables); err != nil {
			return "", fmt.Errorf("environment-variables: %w", err)
		}
	}

	return out, nil
}
