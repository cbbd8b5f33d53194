package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyreq/internal/app"
)

type fmtOptions struct {
	Manifest string
	Output   string
	Write    bool
}

func newFmtCommand() *cobra.Command {
	opts := fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Canonicalize a manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output path (defaults to the manifest itself)")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Write the result instead of printing it")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("write", cmd.Flags().Lookup("write"))
	return cmd
}

func runFmt(ctx context.Context, cmd *cobra.Command, opts fmtOptions) error {
	service := newAppService()
	result, err := service.Format(ctx, app.FormatRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
		Write:        resolveBool(cmd, opts.Write, "write", "write"),
	})
	if err != nil {
		return err
	}
	if result.OutputPath != "" {
		fmt.Printf("formatted: %s\n", result.OutputPath)
		return nil
	}
	fmt.Print(result.Formatted)
	return nil
}
