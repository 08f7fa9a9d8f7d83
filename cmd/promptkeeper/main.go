package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/promptkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/promptkeeper/internal/cli"
	"github.com/dmitrijs2005/promptkeeper/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
