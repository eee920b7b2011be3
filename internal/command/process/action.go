package process

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/propfile"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	system, env, err := command.Snapshot(cmd)
	if err != nil {
		return err
	}

	p := &command.Pipeline{
		Config: cfg,
		System: system,
		Env:    env,
		Stages: command.Stages{
			SystemProperties:     cmd.Bool("with-sysprops"),
			EnvironmentVariables: cmd.Bool("with-envvars"),
		},
	}

	input := cmd.Args().First()
	output := cmd.String("output")
	run := func(ctx context.Context) error {
		document, err := command.ReadInput(cmd.Root().Reader, input)
		if err != nil {
			return err
		}
		out, err := p.Run(ctx, document)
		if err != nil {
			return err
		}

		return command.WriteOutput(cmd.Root().Writer, output, out)
	}

	if !cmd.Bool("watch") {
		return run(ctx)
	}

	if input == "" || input == "-" {
		return errors.New("--watch requires an input file")
	}
	if err := run(ctx); err != nil {
		slog.Error("Processing failed", "error", err)
	}

	return watch(ctx, watchList(command.NewLoader(cfg), input, cfg.Substitution.Properties.URL), run)
}

// watchList 返回需要监听的定位符：输入文档与应用主机名替换后的变量文件。
// 无法解析的定位符记录警告后跳过。
func watchList(loader *propfile.Loader, input string, urls []string) []string {
	locators := []string{input}
	for _, loc := range urls {
		resolved, err := loader.Locator(loc)
		if err != nil {
			slog.Warn("Variable file not watched", "locator", loc, "error", err)
			continue
		}
		locators = append(locators, resolved)
	}

	return locators
}
