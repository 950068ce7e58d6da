// Command studydeck turns study material into summaries, sections,
// explanations and slide decks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/studydeck/internal/adapters/driven/config/env"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/cli"
)

func main() {
	if err := env.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
