package client

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-varsub/internal/config"
)

func newClient(cfg *config.Config) *Client {
	return New(cfg.Client.URL, cfg.Client.Timeout, cfg.Client.Retries)
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	body, err := newClient(cfg).Health(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, body)

	return err
}

func substituteAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	document, err := command.ReadInput(cmd.Root().Reader, cmd.Args().First())
	if err != nil {
		return err
	}
	raw, err := command.LoadVariables(ctx, cfg)
	if err != nil {
		return err
	}

	out, err := newClient(cfg).Substitute(ctx, server.SubstituteRequest{
		Input:            document,
		Variables:        raw.String(),
		SubstitutionType: cfg.Substitution.Impl,
		VariablePrefix:   cfg.Substitution.Prefix,
		VariablePostfix:  cfg.Substitution.Postfix,
	})
	if err != nil {
		return err
	}

	return command.WriteOutput(cmd.Root().Writer, cmd.String("output"), out)
}
