// Package vars 提供变量诊断命令：打印展开后的变量表。
package vars

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// Command 变量诊断命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "vars",
		Usage:  "打印变量文件展开后的结果 (key=value)",
		Action: action,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "打印未展开的原始值",
			},
			&cli.StringFlag{
				Name:  "layer",
				Value: "custom",
				Usage: "打印的变量层: custom | system | env",
			},
		}, command.SubstitutionFlags()...),
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	system, env, err := command.Snapshot(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	switch cmd.String("layer") {
	case "system":
		return writeStore(w, system)
	case "env":
		return writeStore(w, env)
	case "custom":
	default:
		return fmt.Errorf("unknown layer %q", cmd.String("layer"))
	}

	raw, err := command.LoadVariables(ctx, cfg)
	if err != nil {
		return err
	}
	if cmd.Bool("raw") {
		return writeStore(w, raw)
	}

	proc, err := command.NewProcessor(cfg, system, env)
	if err != nil {
		return err
	}
	resolved, err := proc.Resolve(raw)
	if err != nil {
		return err
	}

	return writeStore(w, resolved)
}

func writeStore(w io.Writer, s *varsub.Store) error {
	_, err := io.WriteString(w, s.String())

	return err
}
