package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootOptions 全局参数
type RootOptions struct {
	Verbose bool
	Format  string
}

// ValidFormats 支持的输出格式
var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "surrealauth",
		Short: "SurrealDB storage for better-auth",
		Long: `Translate better-auth storage requests into SurrealQL and generate
SurrealQL table, field, index and permission definitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return errors.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}
