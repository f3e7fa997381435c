package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags "-X github.com/hatlonely/surrealauth/internal/cli.Version=..." 设置
var Version = "dev"

func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			return f.Success(map[string]string{
				"version": Version,
				"go":      runtime.Version(),
			}, "surrealauth "+Version+" ("+runtime.Version()+")")
		},
	}
}
