package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/robert-malhotra/cbers4asat/internal/config"
	"github.com/robert-malhotra/cbers4asat/internal/logger"
	"github.com/robert-malhotra/cbers4asat/pkg/catalog"
	"github.com/robert-malhotra/cbers4asat/pkg/cbers"
	"github.com/robert-malhotra/cbers4asat/pkg/client"
)

const (
	stacURLFlag     = "stac-url"
	catalogURLFlag  = "catalog-url"
	timeoutFlag     = "timeout"
	concurrencyFlag = "concurrency"
	verboseFlag     = "verbose"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		stop()
		os.Exit(exitCode(err))
	}
}

// newApp builds the command tree. Connection flags default to cfg.
func newApp(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	rootFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  stacURLFlag,
			Usage: "STAC API base URL",
			Value: cfg.STACURL,
		},
		&cli.StringFlag{
			Name:  catalogURLFlag,
			Usage: "collection metadata URL",
			Value: cfg.CatalogURL,
		},
		&cli.DurationFlag{
			Name:    timeoutFlag,
			Aliases: []string{"t"},
			Usage:   "HTTP client timeout (e.g. 30s, 1m)",
			Value:   cfg.Timeout,
		},
		&cli.IntFlag{
			Name:  concurrencyFlag,
			Usage: "maximum number of requests in flight",
			Value: cfg.Concurrency,
		},
		&cli.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "log requests to stderr",
		},
	}

	return &cli.Command{
		Name:      "cbers4asat",
		Usage:     "Search the INPE catalog for CBERS and Amazonia scenes",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(rootFlags, searchFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return searchAction(ctx, cmd, cfg)
		},
		Commands: []*cli.Command{
			newCollectionsCommand(cfg),
		},
	}
}

// newService wires a client, a resolver and a service from the root flags.
func newService(cmd *cli.Command, cfg *config.Config) (*cbers.Service, error) {
	root := cmd.Root()

	lvl := cfg.LogLevel
	if root.Bool(verboseFlag) {
		lvl = "debug"
	}
	log := logger.Build(logger.Config{Level: lvl, Console: cfg.LogConsole}, root.ErrWriter)

	concurrency := int(root.Int(concurrencyFlag))
	if concurrency < 1 {
		return nil, usageErrorf("--%s must be at least 1", concurrencyFlag)
	}
	timeout := root.Duration(timeoutFlag)
	if timeout <= 0 {
		return nil, usageErrorf("--%s must be positive", timeoutFlag)
	}

	middleware := []client.Middleware{
		client.UserAgent(cfg.UserAgent),
		client.RequestID(),
	}
	if cfg.RateLimit > 0 {
		middleware = append(middleware, client.RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)))
	}

	c, err := client.NewClient(root.String(stacURLFlag),
		client.WithTimeout(timeout),
		client.WithCatalogURL(root.String(catalogURLFlag)),
		client.WithMiddleware(middleware...),
		client.WithLogger(log.With().Str("component", "client").Logger()),
	)
	if err != nil {
		return nil, usageErrorf("%v", err)
	}

	resolver := catalog.NewResolver(c, c.CatalogURL(),
		catalog.WithLogger(log.With().Str("component", "catalog").Logger()))

	return cbers.New(c, resolver,
		cbers.WithConcurrency(concurrency),
		cbers.WithLogger(log),
	), nil
}
