package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// maxCellWidth truncates long cells in terminal tables.
const maxCellWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle()
)

// table is the tabular view of a result.
type table struct {
	headers []string
	rows    [][]string
}

func validateOutput() error {
	switch outputFormat {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", outputFormat)
}

// render prints v in the selected format. t is used for table output.
func render(cmd *cobra.Command, v any, t table) error {
	w := cmd.OutOrStdout()
	if jsonPath != "" {
		return renderJSONPath(w, v, jsonPath)
	}
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		renderTable(w, t)
		return nil
	}
}

func renderJSONPath(w io.Writer, v any, expr string) error {
	x, err := jp.ParseString(expr)
	if err != nil {
		return fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	root, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	for _, r := range x.Get(root) {
		if s, ok := r.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		fmt.Fprintln(w, oj.JSON(r, &ojg.Options{Sort: true}))
	}
	return nil
}

func renderTable(w io.Writer, t table) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	if !isTerminal(w) {
		fmt.Fprintln(w, strings.Join(t.headers, "\t"))
		for _, row := range t.rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(truncate(row[i], maxCellWidth)))
			}
		}
	}

	fmt.Fprintln(w, renderRow(t.headers, widths, headerStyle))
	for _, row := range t.rows {
		fmt.Fprintln(w, renderRow(row, widths, cellStyle))
	}
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, 0, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncate(cells[i], maxCellWidth)
		}
		parts = append(parts, style.Width(width+2).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
