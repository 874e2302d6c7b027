// Command fracpay runs fracpay ledger operations against a local bbolt
// ledger, signing with an operator key from an encrypted HD keystore.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Error().Err(err).Msg("fracpay failed")
		stop()
		os.Exit(1)
	}
}
