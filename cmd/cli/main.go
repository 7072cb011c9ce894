package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/somapoll/internal/buildinfo"
	"github.com/dmitrijs2005/somapoll/internal/client/cli"
	"github.com/dmitrijs2005/somapoll/internal/client/config"
	"github.com/dmitrijs2005/somapoll/internal/client/provider"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	p, err := provider.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cli.NewApp(p, logger).Run(ctx)
}
