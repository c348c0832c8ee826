// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the csweb
// coffee shops web project. Commands are organized using the cobra
// library. The root command seeds the registry and starts the web
// server itself while the "seed check" sub-command only loads the
// configured seed source in order to report its contents.
//
//	./csweb [-c /path/of/main/config.yaml]            # start web server
//	./csweb seed check [-c /path/of/main/config.yaml]
//
// A .env file in the working directory, if any, is loaded before the
// configuration file, so it may provide the overriding variables.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dwarthen/coffeeshops/pkg/adapter/config"
	"github.com/dwarthen/coffeeshops/pkg/adapter/db/memory/shopsrp"
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin/routes"
	"github.com/dwarthen/coffeeshops/pkg/core/log"
	"github.com/dwarthen/coffeeshops/pkg/core/usecase/shopsuc"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "csweb",
	Short: "A coffee shops locations web service",
	Long: `A coffee shops locations web service which keeps the coffee
shops in an in-memory registry, seeded at startup from a CSV file, an
S3 object, or a PostgreSQL table. It exposes REST APIs in order to
look up, create, update, and delete coffee shops and to find the name
of the coffee shop which is nearest to a given address, geocoding that
address with Google Maps or Nominatim.`,
	SilenceUsage: true,
	RunE:         startWebServer,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	shops, _, err := newSeededUseCase(ctx, c)
	if err != nil {
		return err
	}
	e := c.Gin.NewEngine()
	routes.Register(e, shops)
	srv := &http.Server{
		Addr:              c.Server.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting web server", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down web server")
	sctx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running web server: %w", err)
	}
	log.Info(ctx, "web server is stopped")
	return nil
}

// loadConfig loads the cfgPath configuration file and installs the
// default logger based on its logging settings.
func loadConfig(ctx context.Context) (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	err = log.Configure(os.Stderr, c.Logging.Level, c.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	log.Info(ctx, "configs are loaded",
		slog.String("path", cfgPath), log.Valuer("config", c),
	)
	return c, nil
}

// newSeededUseCase creates an empty registry, wraps it by a coffee
// shops use case, and seeds it from the configured seed source.
// The seed source resources are released before returning.
func newSeededUseCase(ctx context.Context, c *config.Config) (
	*shopsuc.UseCase, *shopsrp.Repo, error,
) {
	registry := shopsrp.New()
	shops, err := c.NewShopsUseCase(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("creating shops use case: %w", err)
	}
	seeds, closeSeeds, err := c.Seed.NewSeeds(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("creating seeds repo: %w", err)
	}
	defer closeSeeds()
	if _, err = shops.Seed(ctx, seeds); err != nil {
		return nil, nil, fmt.Errorf("seeding from %s: %w", c.Seed, err)
	}
	return shops, registry, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure, e.g., if the seed data could
// not be loaded.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the .env file, if it exists, without overriding the
// already set environment variables.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
