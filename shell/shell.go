// Package shell implements the interactive menu on top of a core.Connection.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sqladmin/sqladmin/core"
	"github.com/sqladmin/sqladmin/core/format"
	"github.com/sqladmin/sqladmin/logging"
)

const (
	rule        = "--------------------"
	clearScreen = "\033[H\033[2J"
)

var menu = []string{
	"1. Create Database",
	"2. Show All Databases",
	"3. Create Table in Database",
	"4. Show All Tables in Database",
	"5. Add Data to Table",
	"6. Update Data in Table",
	"7. Delete a Row from Table",
	"8. Show all Data Rows in Table",
	"9. Exit Program",
}

const exitChoice = 9

// Shell reads menu choices and their parameters line by line and runs them
// against the connection.
type Shell struct {
	conn      *core.Connection
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	formatter core.Formatter
	clear     bool

	lines   <-chan string
	readErr error

	actions map[int]func(ctx context.Context) error
}

type Option func(*Shell)

// WithFormatter sets the formatter used to print table rows.
func WithFormatter(f core.Formatter) Option {
	return func(s *Shell) {
		s.formatter = f
	}
}

// WithClearScreen clears the terminal before every menu.
func WithClearScreen(clear bool) Option {
	return func(s *Shell) {
		s.clear = clear
	}
}

// New creates a shell. Errors are written to errOut, everything else to out.
func New(conn *core.Connection, in io.Reader, out, errOut io.Writer, opts ...Option) *Shell {
	s := &Shell{
		conn:      conn,
		in:        in,
		out:       out,
		errOut:    errOut,
		formatter: format.NewTable(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.actions = map[int]func(ctx context.Context) error{
		1: s.createDatabase,
		2: s.showDatabases,
		3: s.createTable,
		4: s.showTables,
		5: s.insertRow,
		6: s.updateRow,
		7: s.deleteRow,
		8: s.showRows,
	}

	return s
}

// Run loops on the menu until the user exits, the input ends or ctx is
// cancelled. Operation errors are printed and never end the loop.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.startReader(ctx)

	for {
		if s.clear {
			fmt.Fprint(s.out, clearScreen)
		}
		for _, line := range menu {
			fmt.Fprintln(s.out, line)
		}

		answer, err := s.prompt(ctx, "Enter Your Choice: ")
		if err != nil {
			return s.finish(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && choice == exitChoice {
			fmt.Fprintln(s.out, "Exiting Program.")
			return nil
		}

		action, ok := s.actions[choice]
		if err != nil || !ok {
			fmt.Fprintln(s.out, "Incorrect Option selected.")
		} else {
			logging.FromContext(ctx).Debug("running menu action", "choice", choice)
			if err := action(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, io.EOF) {
					return s.finish(err)
				}
				s.report(ctx, err)
			}
		}

		answer, err = s.prompt(ctx, "Continue (Yes / No): ")
		if err != nil {
			return s.finish(err)
		}
		if !isYes(answer) {
			fmt.Fprintln(s.out, "Exiting Program.")
			return nil
		}
	}
}

// startReader feeds input lines to s.lines until the input ends or ctx is done.
func (s *Shell) startReader(ctx context.Context) {
	lines := make(chan string)
	s.lines = lines

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		s.readErr = scanner.Err()
	}()
}

// prompt prints label and returns the next input line without the line break.
// The end of input is reported as io.EOF.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				return "", fmt.Errorf("read input: %w", s.readErr)
			}
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r"), nil
	}
}

// finish maps the error that ended the input to the result of Run.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

// report prints an operation error and logs it with its status.
func (s *Shell) report(ctx context.Context, err error) {
	status := core.StatusOf(err)
	logging.WithFields(ctx, "status", status.String()).Warn("operation failed", "error", err)

	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrEmptySearchTerm):
		fmt.Fprintln(s.out, "No matching row found.")
	case errors.Is(err, core.ErrAborted):
		fmt.Fprintln(s.out, "Deletion cancelled.")
	default:
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

func isYes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}
