package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyreq/internal/app"
)

type inspectOptions struct {
	Project   string
	Manifests []string
	LockDir   string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize manifests and lock output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Project, "project", "", "Project spec path")
	cmd.Flags().StringSliceVar(&opts.Manifests, "manifest", nil, "Manifest paths")
	cmd.Flags().StringVar(&opts.LockDir, "lock-dir", "", "Lock output directory to include")
	_ = viper.BindPFlag("lock_dir", cmd.Flags().Lookup("lock-dir"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		ProjectPath: resolveString(cmd, opts.Project, "project", "project"),
		Manifests:   resolveStrings(cmd, opts.Manifests, "manifests", "manifest"),
		LockDir:     resolveString(cmd, opts.LockDir, "lock_dir", "lock-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("requirements: %d\n", result.RequirementCount)
	for _, class := range result.Classes {
		fmt.Printf("  %s: %d (%s)\n", class.Class, class.Count, strings.Join(class.Packages, ", "))
	}
	for _, dup := range result.Duplicates {
		fmt.Printf("duplicate: %s\n", dup)
	}
	for _, include := range result.Includes {
		fmt.Printf("include: %s\n", include)
	}
	if result.LockID != "" {
		fmt.Printf("lock: %s (%d entries)\n", result.LockID, result.LockCount)
	}
	return nil
}
