package shell

import (
	"context"
	"fmt"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/logging"
)

func (s *Shell) createDatabase(ctx context.Context) error {
	name := s.conn.GetDatabase()
	if err := s.conn.CreateDatabase(ctx, name); err != nil {
		return err
	}

	logging.WithFields(ctx, "database", name).Info("database created")
	return nil
}

func (s *Shell) showDatabases(ctx context.Context) error {
	names, err := s.conn.ListDatabases(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "List of Databases present:")
	s.printList(names)
	return nil
}

func (s *Shell) createTable(ctx context.Context) error {
	table, err := s.prompt(ctx, "Enter Table Name: ")
	if err != nil {
		return err
	}
	schema, err := s.prompt(ctx, "Enter the table schema: ")
	if err != nil {
		return err
	}

	if err := s.conn.CreateTable(ctx, table, schema); err != nil {
		return err
	}

	logging.WithFields(ctx, "table", table).Info("table created")
	return nil
}

func (s *Shell) showTables(ctx context.Context) error {
	tables, err := s.conn.ListTables(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "List of Tables present in %s\n", s.conn.GetDatabase())
	s.printList(tables)
	return nil
}

func (s *Shell) insertRow(ctx context.Context) error {
	table, err := s.prompt(ctx, "Enter Table Name: ")
	if err != nil {
		return err
	}

	columns, err := s.conn.TableSchema(ctx, table)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Values that can be inserted into the table: Name Type(max size)")
	for i, col := range columns {
		if i == 0 {
			continue
		}
		fmt.Fprintln(s.out, i, col.Name, col.Type)
	}

	if err := s.conn.InsertRowInteractive(ctx, table, &prompter{shell: s, ctx: ctx}); err != nil {
		return err
	}

	logging.WithFields(ctx, "table", table).Info("row inserted")
	return nil
}

func (s *Shell) updateRow(ctx context.Context) error {
	table, err := s.prompt(ctx, "Enter Table Name: ")
	if err != nil {
		return err
	}
	if err := s.printRows(ctx, table); err != nil {
		return err
	}

	oldValue, err := s.prompt(ctx, "Enter Old Value you want to change: ")
	if err != nil {
		return err
	}
	newValue, err := s.prompt(ctx, "Enter New Value you want to insert: ")
	if err != nil {
		return err
	}

	if _, err := s.conn.UpdateRow(ctx, table, oldValue, newValue); err != nil {
		return err
	}
	logging.WithFields(ctx, "table", table).Info("row updated")

	fmt.Fprintln(s.out, "Showing Updated Changes")
	return s.printRows(ctx, table)
}

func (s *Shell) deleteRow(ctx context.Context) error {
	table, err := s.prompt(ctx, "Enter Table Name: ")
	if err != nil {
		return err
	}
	if err := s.printRows(ctx, table); err != nil {
		return err
	}

	value, err := s.prompt(ctx, "Enter the value whose row you want to delete: ")
	if err != nil {
		return err
	}

	if _, err := s.conn.DeleteRow(ctx, table, value, &prompter{shell: s, ctx: ctx}); err != nil {
		return err
	}

	logging.WithFields(ctx, "table", table).Info("row deleted")
	fmt.Fprintln(s.out, "The selected row has been deleted.")
	return nil
}

func (s *Shell) showRows(ctx context.Context) error {
	table, err := s.prompt(ctx, "Enter Table Name: ")
	if err != nil {
		return err
	}
	return s.printRows(ctx, table)
}

// printRows prints every row of the table with the configured formatter.
func (s *Shell) printRows(ctx context.Context, table string) error {
	result, err := s.conn.Dump(ctx, table)
	if err != nil {
		return err
	}

	out, err := result.Format(s.formatter, 0, -1)
	if err != nil {
		return fmt.Errorf("result.Format: %w", err)
	}

	fmt.Fprintln(s.out, string(out))
	return nil
}

func (s *Shell) printList(names []string) {
	fmt.Fprintln(s.out, rule)
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	fmt.Fprintln(s.out, rule)
}

var _ core.Prompter = (*prompter)(nil)

// prompter asks the shell user for values and confirmations.
type prompter struct {
	shell *Shell
	ctx   context.Context
}

func (p *prompter) Value(column *core.Column) (string, error) {
	return p.shell.prompt(p.ctx, fmt.Sprintf("Insert value for %s: ", column.Name))
}

func (p *prompter) Confirm(core.Record) (bool, error) {
	answer, err := p.shell.prompt(p.ctx, "Are you sure you want to delete the entire row? (Yes / No): ")
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}
