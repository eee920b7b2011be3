// Package client 提供替换服务的 HTTP 客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
)

// Command 客户端命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "替换服务客户端",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "client-url",
				Aliases: []string{"s"},
				Value:   command.Defaults.Client.URL,
				Usage:   "服务器地址",
			},
			&cli.DurationFlag{
				Name:  "client-timeout",
				Value: command.Defaults.Client.Timeout,
				Usage: "请求超时时间",
			},
			&cli.IntFlag{
				Name:  "client-retries",
				Value: command.Defaults.Client.Retries,
				Usage: "重试次数",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "检查服务器健康状态",
				Action: healthAction,
			},
			{
				Name:      "substitute",
				Usage:     "把文档与变量文件发送到服务端替换",
				ArgsUsage: "[input]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "输出文件，默认写到标准输出",
					},
				}, command.SubstitutionFlags()...),
				Action: substituteAction,
			},
		},
	}
}
