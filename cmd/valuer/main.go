package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gregtusar/exotics/api"
	"github.com/gregtusar/exotics/internal/config"
	"github.com/gregtusar/exotics/pkg/auth"
	"github.com/gregtusar/exotics/pkg/client"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/gregtusar/exotics/pkg/valuer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	pathFlag string
	logger   *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "valuer",
		Short: "Option payoff valuation over price paths",
		Long:  `Values vanilla and path-dependent option contracts against a price path of the underlying and reports payoff and net P&L`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "comma separated price path, overrides valuation.path")

	rootCmd.AddCommand(newValueCmd(), newServeCmd(), newTokenCmd(), newRemoteCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if pathFlag != "" {
		path, err := config.ParsePath(pathFlag)
		if err != nil {
			return nil, err
		}
		cfg.Valuation.Path = path
	}
	logger = cfg.NewLogger()
	return cfg, nil
}

func newValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value",
		Short: "Value the configured portfolio and print a payoff table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			v := valuer.New(cfg.Valuation.Workers, logger)
			report, err := v.EvaluateSpecs(cmd.Context(), cfg.Valuation.Path, cfg.Valuation.Portfolio)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the valuation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			book := valuer.NewBook(logger)
			for _, spec := range cfg.Valuation.Portfolio {
				if _, err := book.Add(spec); err != nil {
					logger.WithError(err).WithField("contract", spec.DisplayName()).Warn("Skipping configured contract")
				}
			}

			opts := []api.Option{api.WithRateLimit(cfg.Server.RateLimit, cfg.Server.Burst)}
			if cfg.Auth.SigningKey != "" {
				signer, err := auth.NewSigner(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
				if err != nil {
					return err
				}
				opts = append(opts, api.WithSigner(signer))
			} else {
				logger.Warn("No signing key configured, API authentication disabled")
			}

			apiServer := api.NewServer(book, valuer.New(cfg.Valuation.Workers, logger), logger,
				strconv.Itoa(cfg.Server.Port), opts...)

			errCh := make(chan error, 1)
			go func() {
				errCh <- apiServer.Start()
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			logger.Info("Valuation API is running. Press Ctrl+C to stop.")

			select {
			case err := <-errCh:
				return err
			case <-sigChan:
				logger.Info("Received shutdown signal")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := apiServer.Shutdown(ctx); err != nil {
				return err
			}

			logger.Info("Valuation API stopped")
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			signer, err := auth.NewSigner(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			token, err := signer.Issue(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cli", "token subject")
	return cmd
}

func newRemoteCmd() *cobra.Command {
	var (
		server    string
		token     string
		stream    bool
		portfolio bool
	)
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Value the configured path on a remote server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var authenticator client.Authenticator
			if token != "" {
				authenticator = client.NewTokenAuthenticator(token)
			}

			req := models.ValuationRequest{Path: cfg.Valuation.Path}
			if portfolio {
				req.Contracts = cfg.Valuation.Portfolio
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			var report *models.Report
			if stream {
				sc := client.NewStreamClient(server, authenticator, logger)
				if err := sc.Connect(ctx); err != nil {
					return err
				}
				defer sc.Close()
				report, err = sc.Value(ctx, req)
			} else {
				report, err = client.NewClient(server, authenticator).Value(ctx, req)
			}
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&token, "token", os.Getenv("VALUER_TOKEN"), "bearer token")
	cmd.Flags().BoolVar(&stream, "stream", false, "use the websocket endpoint")
	cmd.Flags().BoolVar(&portfolio, "portfolio", false, "send the configured portfolio instead of using the server's book")
	return cmd
}
