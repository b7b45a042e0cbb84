package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/models"
)

type queryOptions struct {
	types  []string
	args   []string
	format string
}

func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SELECT and print the decoded rows",
		Long: `Run a SELECT and print the decoded rows.

Every column needs a type (String, Float, Boolean, Enum, Json, DateTime,
GraphQLID, UUID, Int, Relation). Arguments use the tagged JSON syntax,
for example '{"Int":5}' or '"Null"'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idents, err := parseTypes(opts.types)
			if err != nil {
				return err
			}
			vals, err := parseArgs(opts.args)
			if err != nil {
				return err
			}
			conn, _, err := rootOpts.connect(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer conn.Close()
			nodes, err := conn.Filter(cmd.Context(), connector.Raw(args[0], vals...), idents)
			if err != nil {
				return err
			}
			return writeNodes(cmd.OutOrStdout(), opts.format, nodes)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.types, "types", "t", nil, "column types, in column order")
	cmd.Flags().StringArrayVarP(&opts.args, "arg", "a", nil, "statement argument, repeatable")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format (text|json)")
	return cmd
}

type execOptions struct {
	args      []string
	insert    bool
	unguarded bool
}

func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec <sql>",
		Short: "Run a write statement",
		Long: `Run a write statement.

With --insert the id of the inserted record is printed when the database
reports one. UPDATE and DELETE without a WHERE clause are rejected unless
--unguarded is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseArgs(opts.args)
			if err != nil {
				return err
			}
			conn, _, err := rootOpts.connect(cmd.Context(), !opts.unguarded)
			if err != nil {
				return err
			}
			defer conn.Close()

			q := connector.Update(connector.Raw(args[0], vals...))
			if opts.insert {
				q = connector.Insert(connector.Raw(args[0], vals...))
			}
			id, err := conn.Write(cmd.Context(), q)
			if err != nil {
				return err
			}
			if id != nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&opts.args, "arg", "a", nil, "statement argument, repeatable")
	cmd.Flags().BoolVar(&opts.insert, "insert", false, "the statement is an INSERT")
	cmd.Flags().BoolVar(&opts.unguarded, "unguarded", false, "allow UPDATE and DELETE without WHERE")
	return cmd
}

type truncateOptions struct {
	models []string
	lists  []string
}

func NewTruncateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &truncateOptions{}
	cmd := &cobra.Command{
		Use:   "truncate",
		Short: "Delete every row of the given model tables in one transaction",
		Long: `Delete every row of the given model tables in one transaction.

Foreign key checks are deferred while the tables are emptied. List fields
are given as Model.field and empty the Model_field table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := parseListFields(opts.lists)
			if err != nil {
				return err
			}
			conn, db, err := rootOpts.connect(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer conn.Close()
			s := truncateSchema(db.Schema, opts.models, lists)
			if err = conn.Truncate(cmd.Context(), s); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "truncated %d tables\n", len(s.TableNames()))
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&opts.models, "model", "m", nil, "model table, repeatable")
	cmd.Flags().StringSliceVarP(&opts.lists, "list", "l", nil, "list field as Model.field, repeatable")
	return cmd
}

type listField struct {
	model string
	field string
}

func parseListFields(raw []string) ([]listField, error) {
	res := make([]listField, 0, len(raw))
	for _, l := range raw {
		model, field, ok := strings.Cut(l, ".")
		if !ok || model == "" || field == "" {
			return nil, newErrInvalidListField(l)
		}
		res = append(res, listField{model: model, field: field})
	}
	return res, nil
}

// truncateSchema 只需要表名, 字段的类型不重要
func truncateSchema(name string, modelNames []string, lists []listField) *models.Schema {
	s := &models.Schema{Name: name}
	byName := make(map[string]*models.Model, len(modelNames))
	model := func(name string) *models.Model {
		if m, ok := byName[name]; ok {
			return m
		}
		m := &models.Model{Name: name}
		byName[name] = m
		s.Models = append(s.Models, m)
		return m
	}
	for _, name := range modelNames {
		model(name)
	}
	for _, l := range lists {
		m := model(l.model)
		m.Fields = append(m.Fields, &models.ScalarField{Name: l.field, IsList: true})
	}
	return s
}
