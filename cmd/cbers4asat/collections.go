package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/cbers4asat/internal/config"
)

func newCollectionsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "collections",
		Usage: "List the collections published by the catalog",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return listCollectionsAction(ctx, cmd, cfg)
		},
	}
}

func listCollectionsAction(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if cmd.Args().Len() != 0 {
		return usageErrorf("no arguments expected")
	}

	svc, err := newService(cmd, cfg)
	if err != nil {
		return err
	}

	names, err := svc.Collections(ctx)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
