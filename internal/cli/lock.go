package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyreq/internal/app"
)

type lockOptions struct {
	Project   string
	Manifests []string
	Index     string
	Output    string
	LockID    string
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve manifests to exact pins against an index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Project, "project", "", "Project spec path")
	cmd.Flags().StringSliceVar(&opts.Manifests, "manifest", nil, "Manifest paths")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Package index file path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Lock output directory")
	cmd.Flags().StringVar(&opts.LockID, "lock-id", "", "Lock identifier (generated when empty)")
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("lock_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("lock_id", cmd.Flags().Lookup("lock-id"))
	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := newAppService()
	result, err := service.Lock(ctx, app.LockRequest{
		ProjectPath: resolveString(cmd, opts.Project, "project", "project"),
		Manifests:   resolveStrings(cmd, opts.Manifests, "manifests", "manifest"),
		Index:       resolveString(cmd, opts.Index, "index", "index"),
		OutputDir:   resolveString(cmd, opts.Output, "lock_output", "output"),
		LockID:      resolveString(cmd, opts.LockID, "lock_id", "lock-id"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked %d requirement(s): %s (%s)\n", result.Count, result.OutputDir, result.LockID)
	return nil
}
