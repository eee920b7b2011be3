package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/server"
)

func main() {
	app := command.NewApp(server.Command)
	app.DefaultCommand = server.Command.Name

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("应用程序运行失败", "error", err)
		os.Exit(1)
	}
}
