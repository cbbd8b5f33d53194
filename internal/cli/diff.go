package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyreq/internal/app"
)

type diffOptions struct {
	Before string
	After  string
	Lock   string
}

func newDiffCommand() *cobra.Command {
	opts := diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two manifests, or a manifest against a lock file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Before, "before", "", "Base manifest path")
	cmd.Flags().StringVar(&opts.After, "after", "", "Manifest to compare against")
	cmd.Flags().StringVar(&opts.Lock, "lock", "", "Lock file to compare against")
	_ = viper.BindPFlag("before", cmd.Flags().Lookup("before"))
	_ = viper.BindPFlag("after", cmd.Flags().Lookup("after"))
	_ = viper.BindPFlag("lock", cmd.Flags().Lookup("lock"))
	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, opts diffOptions) error {
	service := newAppService()
	result, err := service.Diff(ctx, app.DiffRequest{
		BeforePath: resolveString(cmd, opts.Before, "before", "before"),
		AfterPath:  resolveString(cmd, opts.After, "after", "after"),
		LockPath:   resolveString(cmd, opts.Lock, "lock", "lock"),
	})
	if err != nil {
		return err
	}
	if result.Equal {
		fmt.Println("manifests are equal")
		return nil
	}
	for _, added := range result.Added {
		fmt.Printf("+ %s\n", added)
	}
	for _, removed := range result.Removed {
		fmt.Printf("- %s\n", removed)
	}
	for _, change := range result.Changed {
		fmt.Printf("~ %s: %s -> %s\n", change.Name, change.Before, change.After)
	}
	return nil
}
