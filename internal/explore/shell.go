// Package explore implements the interactive SQL shell over the output
// dataset. It is a thin line-editor around the query service; every
// statement it runs is read-only.
package explore

import (
	"context"
	"fmt"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/tmeis/snowgrid/internal/logging"
	"github.com/tmeis/snowgrid/internal/query"
)

// sqlKeywords seeds completion with the vocabulary most queries over the
// dataset need.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "GROUP BY", "ORDER BY", "LIMIT",
	"COUNT", "MIN", "MAX", "AVG", "STDDEV", "DISTINCT", "AND", "OR",
}

// Shell is the interactive query shell.
type Shell struct {
	svc         *query.Service
	suggestions []prompt.Suggest
}

// New creates a shell over the query service, loading table and column
// names for completion.
func New(ctx context.Context, svc *query.Service) *Shell {
	s := &Shell{svc: svc}

	for _, kw := range sqlKeywords {
		s.suggestions = append(s.suggestions, prompt.Suggest{Text: kw})
	}
	for _, table := range svc.Tables() {
		s.suggestions = append(s.suggestions, prompt.Suggest{Text: table, Description: "dataset view"})
		cols, err := svc.Columns(ctx, table)
		if err != nil {
			logging.Component("explore").Warn("column completion unavailable", "table", table, "error", err)
			continue
		}
		for _, col := range cols {
			s.suggestions = append(s.suggestions, prompt.Suggest{Text: col, Description: table + " column"})
		}
	}

	return s
}

// Run starts the interactive loop. It returns when the user exits.
func (s *Shell) Run(ctx context.Context) {
	fmt.Println("snowgrid explore — read-only SQL over the aggregated dataset")
	fmt.Printf("views: %s. Type exit to quit.\n", strings.Join(s.svc.Tables(), ", "))

	p := prompt.New(
		func(in string) { s.execute(ctx, in) },
		s.complete,
		prompt.OptionTitle("snowgrid explore"),
		prompt.OptionPrefix("snowgrid> "),
	)
	p.Run()
}

func (s *Shell) execute(ctx context.Context, in string) {
	in = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(in), ";"))
	if in == "" {
		return
	}
	switch strings.ToLower(in) {
	case "exit", "quit":
		os.Exit(0)
	case "tables":
		fmt.Println(strings.Join(s.svc.Tables(), "\n"))
		return
	}

	result, err := s.svc.Query(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	printResult(result)
}

func (s *Shell) complete(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	if word == "" {
		return nil
	}
	return prompt.FilterHasPrefix(s.suggestions, word, true)
}

// printResult renders a result with columns padded to their widest cell.
func printResult(r *query.Result) {
	widths := make([]int, len(r.Columns))
	for i, c := range r.Columns {
		widths[i] = len(c)
	}
	for _, row := range r.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(r.Columns, widths)
	seps := make([]string, len(r.Columns))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps, widths)
	for _, row := range r.Rows {
		printRow(row, widths)
	}
	fmt.Printf("(%d rows)\n", len(r.Rows))
}

func printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	fmt.Println(strings.Join(parts, "  "))
}
