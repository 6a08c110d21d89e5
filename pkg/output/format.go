// Package output provides utilities for formatting and displaying calculator
// results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Write renders the documents in the requested output format.
func Write(w io.Writer, outputFormat string, docs ...Document) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, docs...)
	case constants.OutputFormatJSON:
		return JSONFormat(w, docs...)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, docs...)
	default:
		return PrettyFormat(w, docs...)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, docs ...Document) error {
	for i, doc := range docs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- Results for %s calculator ---\n", doc.Name); err != nil {
			return err
		}

		for _, section := range doc.Sections {
			width := labelWidth(section.Fields)
			if _, err := fmt.Fprintf(w, "\n%s\n%s\n", section.Title, strings.Repeat("_", len(section.Title))); err != nil {
				return err
			}
			for _, field := range section.Fields {
				if _, err := fmt.Fprintf(w, "%s | %s\n", padRight(field.Label, width), field.Value); err != nil {
					return err
				}
			}
		}

		for _, table := range doc.Tables {
			if err := prettyTable(w, table); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyTable(w io.Writer, table Table) error {
	widths := make([]int, len(table.Header))
	for i, h := range table.Header {
		widths[i] = displayWidth(h)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s (%d rows)\n", table.Title, len(table.Rows)); err != nil {
		return err
	}
	lines := [][]string{table.Header, underline(widths)}
	lines = append(lines, table.Rows...)
	for _, cells := range lines {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = padRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, " | "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func underline(widths []int) []string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		cells[i] = strings.Repeat("_", width)
	}
	return cells
}

func labelWidth(fields []Field) int {
	width := 0
	for _, field := range fields {
		if len(field.Label) > width {
			width = len(field.Label)
		}
	}
	return width
}

func padRight(s string, width int) string {
	if pad := width - displayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// displayWidth counts runes so the rupee sign pads like a single column.
func displayWidth(s string) int {
	return len([]rune(s))
}

// CsvFormat outputs in comma-separated value format. Section fields become
// "calculator,section,label,value" records and table rows become
// "calculator,table,cell..." records.
func CsvFormat(w io.Writer, docs ...Document) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"calculator", "group", "label", "value"}); err != nil {
		return err
	}
	for _, doc := range docs {
		for _, section := range doc.Sections {
			for _, field := range section.Fields {
				if err := writer.Write([]string{doc.Name, section.Title, field.Label, field.Value}); err != nil {
					return err
				}
			}
		}
		for _, table := range doc.Tables {
			records := append([][]string{table.Header}, table.Rows...)
			for _, row := range records {
				record := append([]string{doc.Name, table.Title}, row...)
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the raw results as indented JSON. A single document is
// written as an object, several as an object keyed by calculator name.
func JSONFormat(w io.Writer, docs ...Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload(docs))
}

// YAMLFormat outputs the raw results as YAML.
func YAMLFormat(w io.Writer, docs ...Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(payload(docs)); err != nil {
		return err
	}
	return encoder.Close()
}

func payload(docs []Document) interface{} {
	if len(docs) == 1 {
		return docs[0].Data
	}
	combined := make(map[string]interface{}, len(docs))
	for _, doc := range docs {
		combined[doc.Name] = doc.Data
	}
	return combined
}
