package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyreq/internal/app"
)

type indexOptions struct {
	Output           string
	IndexURL         string
	User             string
	APIKey           string
	Packages         []string
	Max              int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a package index file from a PyPI-compatible index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Index output path")
	cmd.Flags().StringVar(&opts.IndexURL, "index-url", "", "PyPI-compatible index URL")
	cmd.Flags().StringVar(&opts.User, "user", "", "Basic auth user")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Basic auth key")
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Limit to specific packages")
	cmd.Flags().IntVar(&opts.Max, "max", 0, "Cap on packages fetched when enumerating")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent fetch workers")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry count")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "Base retry delay in milliseconds")
	_ = viper.BindPFlag("index_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("index_url", cmd.Flags().Lookup("index-url"))
	_ = viper.BindPFlag("index_user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("index_api_key", cmd.Flags().Lookup("api-key"))
	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.Index(ctx, app.IndexRequest{
		Output:           resolveString(cmd, opts.Output, "index_output", "output"),
		IndexURL:         resolveString(cmd, opts.IndexURL, "index_url", "index-url"),
		User:             resolveString(cmd, opts.User, "index_user", "user"),
		APIKey:           resolveString(cmd, opts.APIKey, "index_api_key", "api-key"),
		Packages:         opts.Packages,
		Max:              resolveInt(cmd, opts.Max, "index_max", "max"),
		Workers:          resolveInt(cmd, opts.Workers, "index_workers", "workers"),
		HTTPTimeoutSec:   opts.HTTPTimeoutSec,
		HTTPRetries:      opts.HTTPRetries,
		HTTPRetryDelayMs: opts.HTTPRetryDelayMs,
	})
	if err != nil {
		return err
	}
	fmt.Printf("index written: %s (%d packages)\n", result.OutputPath, result.PackageCount)
	return nil
}
