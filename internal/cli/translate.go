package cli

import (
	"io"
	"os"
	"strings"

	"github.com/hatlonely/surrealauth/rdb"
	"github.com/hatlonely/surrealauth/schema"
	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	Request string
	Tables  string
	Inline  bool
}

// TranslateResult translate 命令的输出
type TranslateResult struct {
	Query string         `json:"query"`
	Vars  map[string]any `json:"vars"`
}

func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a storage request into SurrealQL",
		Long: `Translate a JSON storage request into SurrealQL with bound parameters.

  {"method": "findMany", "model": "user", "where": [{"field": "email", "operator": "ends_with", "value": "@example.com"}], "limit": 10}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Request, "request", "r", "-", "request file, - for stdin")
	cmd.Flags().StringVarP(&opts.Tables, "tables", "t", "", "table descriptor file (yaml|json)")
	cmd.Flags().BoolVar(&opts.Inline, "inline", false, "inline bound values into the query text (debug only)")

	return cmd
}

func runTranslate(rootOpts *RootOptions, opts *translateOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	req, err := readRequest(opts.Request, cmd.InOrStdin())
	if err != nil {
		return f.Fail(err)
	}
	tables, err := loadTables(opts.Tables)
	if err != nil {
		return f.Fail(err)
	}

	query, err := rdb.Translate(req, schema.NewResolver(tables))
	if err != nil {
		return f.Fail(err)
	}

	result := &TranslateResult{Query: query.Text(), Vars: query.Vars()}
	if opts.Inline {
		result.Query = query.Inline()
	}
	return f.Success(result, formatQuery(result.Query, query, opts.Inline))
}

func formatQuery(text string, query *surql.Query, inline bool) string {
	if inline {
		return text
	}
	lines := []string{text}
	for i, v := range query.Values() {
		lines = append(lines, "  $"+surql.ParamName(i+1)+" = "+surql.Literal(v))
	}
	return strings.Join(lines, "\n")
}

// readRequest 读取并解码请求，filename 为 - 时从 stdin 读取
func readRequest(filename string, stdin io.Reader) (rdb.Request, error) {
	var buf []byte
	var err error
	if filename == "" || filename == "-" {
		buf, err = io.ReadAll(stdin)
	} else {
		buf, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read request [%s] failed", filename)
	}
	return rdb.DecodeRequest(buf)
}
