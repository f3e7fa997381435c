package cli

import (
	"fmt"
	"os"

	"github.com/hatlonely/surrealauth/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type schemaOptions struct {
	Tables string
	Output string
	Roles  string
	DryRun bool
	Watch  bool
}

func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate SurrealQL schema and permissions",
		Long: `Generate DEFINE TABLE / FIELD / INDEX statements and row-level permissions
from table descriptors. Without --tables the built-in auth tables are used
(user, session, account, verification).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Tables, "tables", "t", "", "table descriptor file (yaml|json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", schema.DefaultPath, "output file")
	cmd.Flags().StringVar(&opts.Roles, "roles", "", "role sets file (yaml|json|toml|ini)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the schema instead of writing the file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "regenerate when the table descriptor file changes")

	return cmd
}

func runSchema(rootOpts *RootOptions, opts *schemaOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	roles, err := loadRoles(opts.Roles)
	if err != nil {
		return f.Fail(err)
	}

	generate := func(tables []*schema.TableModel) error {
		result, err := schema.Generate(tables, &schema.GenerateOptions{File: opts.Output, Roles: roles})
		if err != nil {
			return err
		}
		if opts.DryRun {
			return f.Success(result, result.Code)
		}
		if err := os.WriteFile(result.Path, []byte(result.Code), 0644); err != nil {
			return errors.Wrapf(err, "os.WriteFile [%s] failed", result.Path)
		}
		return f.Success(map[string]any{"path": result.Path, "tables": len(tables)},
			fmt.Sprintf("schema written to %s", result.Path))
	}

	if !opts.Watch {
		tables, err := loadTables(opts.Tables)
		if err != nil {
			return f.Fail(err)
		}
		if err := generate(tables); err != nil {
			return f.Fail(err)
		}
		return nil
	}

	if opts.Tables == "" {
		return f.Fail(errors.New("--watch requires --tables"))
	}
	watcher, err := schema.NewWatcherWithOptions(&schema.WatcherOptions{FilePath: opts.Tables})
	if err != nil {
		return f.Fail(err)
	}
	defer watcher.Close()

	if err := watcher.OnChange(func(tables []*schema.TableModel) error {
		f.Log("%s changed, regenerating", opts.Tables)
		return generate(tables)
	}); err != nil {
		return f.Fail(err)
	}

	f.Log("watching %s", opts.Tables)
	<-cmd.Context().Done()
	return nil
}

// loadTables 文件为空时使用内置的认证表
func loadTables(filename string) ([]*schema.TableModel, error) {
	if filename == "" {
		return schema.AuthTables(), nil
	}
	return schema.LoadTables(filename)
}
