package cli

import (
	"encoding/json"

	"github.com/hatlonely/surrealauth/adapter"
	"github.com/hatlonely/surrealauth/cfg"
	"github.com/hatlonely/surrealauth/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// EnvPrefix 环境变量前缀，如 SURREALAUTH_CONNECT_ENDPOINT
const EnvPrefix = "SURREALAUTH"

type execOptions struct {
	Config  string
	Key     string
	Request string
}

func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &execOptions{}

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a storage request against SurrealDB",
		Long: `Execute a JSON storage request through the adapter and print the reshaped result.

Adapter options are read from --config and overridden by SURREALAUTH_* environment
variables, e.g. SURREALAUTH_CONNECT_ENDPOINT=ws://localhost:8000/rpc.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "adapter config file (yaml|json|toml|ini)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "sub key of the adapter options in the config file")
	cmd.Flags().StringVarP(&opts.Request, "request", "r", "-", "request file, - for stdin")

	return cmd
}

func runExec(rootOpts *RootOptions, opts *execOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	var options adapter.Options
	if err := cfg.LoadWithOptions(&cfg.LoadOptions{File: opts.Config, Key: opts.Key, EnvPrefix: EnvPrefix}, &options); err != nil {
		return f.Fail(errors.WithMessage(err, "load adapter options failed"))
	}

	req, err := readRequest(opts.Request, cmd.InOrStdin())
	if err != nil {
		return f.Fail(err)
	}

	a, err := adapter.NewAdapterWithOptions(&options)
	if err != nil {
		return f.Fail(err)
	}
	defer a.Close()

	f.Log("executing %s on %s", req.Method(), options.Connect.Endpoint)
	result, err := a.Do(cmd.Context(), req)
	if err != nil {
		return f.Fail(err)
	}

	buf, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return f.Fail(errors.Wrap(err, "json.MarshalIndent failed"))
	}
	return f.Success(result, string(buf))
}

// loadRoles 文件为空时返回 nil，使用默认角色集合
func loadRoles(filename string) (*schema.RoleSets, error) {
	if filename == "" {
		return nil, nil
	}
	roles := &schema.RoleSets{}
	if err := cfg.Load(filename, roles); err != nil {
		return nil, errors.WithMessage(err, "load roles failed")
	}
	return roles, nil
}
