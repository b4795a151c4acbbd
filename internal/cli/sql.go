package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
	"github.com/xy-planning-network/enums/postgres"
)

func (a *app) newSQLCommand() *cobra.Command {
	var in []string
	cmd := &cobra.Command{
		Use:   "sql <entity> [scope...]",
		Short: "Render the PostgreSQL query selecting an entity's records by scope",
		Long: `Render the query selecting the records of entity matching every named scope
and every --in condition, without connecting to a database.`,
		Example: `enumctl sql support_tickets unresolved high_priority
enumctl sql notification_preferences --in enabled_types=sms,push`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.filters(args[0], args[1:], in)
			if err != nil {
				return err
			}

			db, err := postgres.DryRun()
			if err != nil {
				return err
			}

			sql := db.ToSQL(func(tx *postgres.DB) *postgres.DB {
				q := tx.Table(args[0])
				if len(fs) > 0 {
					q = q.Where(filter.And(fs...))
				}
				_ = q.Find(&[]map[string]any{})
				return q
			})

			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&in, "in", nil, "column=label[,label...] condition, repeatable")

	return cmd
}

// filters resolves the named scopes of entity and every column=labels condition.
func (a *app) filters(entity string, scopes, in []string) ([]filter.Filter, error) {
	if _, err := a.reg.Columns(entity); err != nil {
		return nil, err
	}

	var fs []filter.Filter
	for _, name := range scopes {
		f, err := a.reg.Scope(entity, name)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}

	for _, cond := range in {
		column, labels, ok := strings.Cut(cond, "=")
		if !ok || labels == "" {
			return nil, fmt.Errorf("%w: --in %q must look like column=label[,label...]", enums.ErrNotValid, cond)
		}

		f, err := a.labelsFilter(entity, column, strings.Split(labels, ","))
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}

	return fs, nil
}

func (a *app) labelsFilter(entity, column string, labels []string) (filter.Filter, error) {
	if f, err := a.reg.Field(entity, column); err == nil {
		return f.In(labels...)
	}

	m, err := a.reg.MultiField(entity, column)
	if err != nil {
		return filter.Filter{}, fmt.Errorf("%w: enum column %s.%s", enums.ErrNotExist, entity, column)
	}

	return m.ContainingAny(labels...)
}
