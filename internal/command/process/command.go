// Package process 提供文档变量替换命令。
package process

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
)

// Command 文档替换命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Aliases:   []string{"p"},
		Usage:     "用变量文件、系统属性与环境变量替换文档中的占位符",
		ArgsUsage: "[input]",
		Action:    action,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "输出文件，默认写到标准输出",
			},
			&cli.BoolFlag{
				Name:  "with-sysprops",
				Usage: "追加系统属性替换阶段 (system-properties.*)",
			},
			&cli.BoolFlag{
				Name:  "with-envvars",
				Usage: "追加环境变量替换阶段 (environment-variables.*)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "输入文档或本地变量文件变化时重新处理",
			},
		}, command.SubstitutionFlags()...),
	}
}
