// Package main is the customfields bootstrap: it seeds configured
// definitions and attaches every stored definition to the host registry.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/customfields/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration based on ENV
	env := config.GetEnv()
	ctx := context.Background()

	a, err := newApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := bootstrap(ctx, a); err != nil {
		a.logger.Error("Bootstrap failed", zap.Error(err))
		return err
	}
	return nil
}
