package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/enums"
)

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [entity]",
		Short: "List entities, or the enum columns and scopes of one entity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listEntities(cmd)
			}

			return a.listEntity(cmd, args[0])
		},
	}
}

func (a *app) listEntities(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tCOLUMNS\tSCOPES")
	for _, name := range a.reg.Entities() {
		cols, err := a.reg.Columns(name)
		if err != nil {
			return err
		}

		scopes, err := a.reg.Scopes(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(cols, ","), strings.Join(scopes, ","))
	}

	return w.Flush()
}

func (a *app) listEntity(cmd *cobra.Command, entity string) error {
	fields, err := a.reg.Fields(entity)
	if err != nil {
		return err
	}

	multis, err := a.reg.MultiFields(entity)
	if err != nil {
		return err
	}

	scopes, err := a.reg.Scopes(entity)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tDEFINITION\tDEFAULT\tMETHODS")
	for _, f := range fields {
		def, _ := f.DefaultLabel()
		methods := make([]string, 0, len(f.Predicates()))
		for _, p := range f.Predicates() {
			methods = append(methods, fmt.Sprintf("%s=%d", p.Name, p.Code))
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Column, f.Definition.Name(), orDash(def), strings.Join(methods, " "))
	}

	for _, m := range multis {
		methods := make([]string, 0, m.Definition.Len())
		for _, l := range m.Definition.Pairs() {
			methods = append(methods, fmt.Sprintf("%s=%d", m.MethodName(l.Name), l.Code))
		}

		def := "[" + strings.Join(m.Default, ",") + "]"
		fmt.Fprintf(w, "%s[]\t%s\t%s\t%s\n", m.Column, m.Definition.Name(), def, strings.Join(methods, " "))
	}

	if len(scopes) > 0 {
		fmt.Fprintln(w, "\nSCOPE\tFILTER")
		for _, name := range scopes {
			f, err := a.reg.Scope(entity, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%s\t%s\n", name, f)
		}
	}

	return w.Flush()
}

func (a *app) newCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "code <entity> <column> <label>",
		Short:   "Print the code stored for a label",
		Example: "enumctl code support_tickets priority critical",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.definition(args[0], args[1])
			if err != nil {
				return err
			}

			code, err := d.CodeOf(args[2])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func (a *app) newLabelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "label <entity> <column> <code>",
		Short:   "Print the label of a stored code",
		Example: "enumctl label support_tickets priority 4",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.definition(args[0], args[1])
			if err != nil {
				return err
			}

			code, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%w: code %q is not an integer", enums.ErrNotValid, args[2])
			}

			label, err := d.LabelOf(code)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
