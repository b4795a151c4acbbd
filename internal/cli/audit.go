package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/logger"
	"github.com/xy-planning-network/enums/postgres"
)

func (a *app) newAuditCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit [entity...]",
		Short: "Find stored codes without a label",
		Long: `Read the records of each entity, or every registered entity, from the database
configured by the DATABASE_* env vars and report every enum column holding a code without a label.

Each problem is logged as a warning; audit exits non-zero when any are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entities := args
			if len(entities) == 0 {
				entities = a.reg.Entities()
			}

			for _, e := range entities {
				if _, err := a.reg.Columns(e); err != nil {
					return err
				}
			}

			cfg := postgres.NewConfig(a.environment())
			// audit only reads; never let Connect reset a test schema
			cfg.IsTestDB = false

			db, err := a.connect(cfg, a.log)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ENTITY\tROWS\tPROBLEMS")

			var total int
			for _, e := range entities {
				q := db.WithContext(cmd.Context()).Table(e).Order("id")
				if limit > 0 {
					q = q.Limit(limit)
				}

				rows, err := q.Rows()
				if err != nil {
					return fmt.Errorf("reading %s: %w", e, err)
				}

				n := Audit(a.reg, a.log, e, rows)
				total += n
				fmt.Fprintf(w, "%s\t%d\t%d\n", e, len(rows), n)
			}

			if err := w.Flush(); err != nil {
				return err
			}

			if total > 0 {
				return fmt.Errorf("%w: %d stored codes have no label", enums.ErrUnknownCode, total)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Read at most this many records per entity, 0 reads all")

	return cmd
}

// Audit checks every row of entity against reg, logging a warning for each problem found:
// a stored code without a label, or an enum column that is NULL or absent.
// Audit returns the number of problems.
func Audit(reg *enums.Registry, l logger.Logger, entity string, rows []enums.Row) int {
	var problems int
	for _, row := range rows {
		for _, err := range reg.Check(entity, row) {
			problems++

			ctx := &logger.LogContext{Entity: entity, Error: err, Data: map[string]any{}}
			if id, ok := row["id"]; ok {
				ctx.Data["id"] = id
			}

			var colErr *enums.ColumnError
			if errors.As(err, &colErr) {
				ctx.Column = colErr.Column
				ctx.Data["stored"] = row[colErr.Column]
			}

			msg := "enum column unreadable"
			if errors.Is(err, enums.ErrUnknownCode) {
				msg = "stored code has no label"
			}

			l.Warn(msg, ctx)
		}
	}

	return problems
}
