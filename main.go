package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/layer"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/process"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/vars"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/version"
)

func main() {
	app := command.NewApp(
		version.Command,
		process.Command,
		vars.Command,
		layer.SysProps,
		layer.EnvVars,
		server.Command,
		client.Command,
	)

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
