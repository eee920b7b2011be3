// Package version 提供应用名称与构建版本信息。
package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，用于默认配置路径 (.varsub.yaml) 等。
const AppRawName = "varsub"

// Version 可在构建时通过 -ldflags "-X .../internal/version.Version=v1.2.3" 注入。
var Version = ""

// GetVersion 返回版本号；未注入时读取模块构建信息。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

// Command 打印版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppRawName, GetVersion())

		return err
	},
}
