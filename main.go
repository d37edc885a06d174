package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/attrex/cli"
	"github.com/ardnew/attrex/cli/cmd"
	"github.com/ardnew/attrex/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Absence is an outcome, not a failure: exit nonzero without a
		// diagnostic so eval works as a presence test.
		if errors.Is(err, cmd.ErrAbsent) {
			os.Exit(1)
		}

		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
