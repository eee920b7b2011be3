// Package layer 提供单层替换命令：只用系统属性或只用环境变量替换文档。
package layer

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/config"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// SysProps 系统属性替换命令
var SysProps = newSysProps()

// EnvVars 环境变量替换命令
var EnvVars = newEnvVars()

func newSysProps() *cli.Command {
	return newCommand("sysprops", "system-properties", "用系统属性 (含 -D 定义) 替换文档中的占位符", command.Defaults.SystemProperties,
		func(cfg *config.Config, system, _ *varsub.Store) (*varsub.Store, config.LayerConfig) {
			return system, cfg.SystemProperties
		})
}

func newEnvVars() *cli.Command {
	return newCommand("envvars", "environment-variables", "用环境变量替换文档中的占位符", command.Defaults.EnvironmentVariables,
		func(cfg *config.Config, _, env *varsub.Store) (*varsub.Store, config.LayerConfig) {
			return env, cfg.EnvironmentVariables
		})
}

// selectFunc 从配置与快照中选出本命令使用的变量层及其配置。
type selectFunc func(cfg *config.Config, system, env *varsub.Store) (*varsub.Store, config.LayerConfig)

func newCommand(name, key, usage string, defaults config.LayerConfig, sel selectFunc) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[input]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "输出文件，默认写到标准输出",
			},
		}, command.LayerFlags(key, defaults)...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}
			system, env, err := command.Snapshot(cmd)
			if err != nil {
				return err
			}

			document, err := command.ReadInput(cmd.Root().Reader, cmd.Args().First())
			if err != nil {
				return err
			}

			vars, layer := sel(cfg, system, env)
			out, err := command.SubstituteLayer(document, vars, layer)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}

			return command.WriteOutput(cmd.Root().Writer, cmd.String("output"), out)
		},
	}
}
