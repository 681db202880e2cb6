package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var headerCaser = cases.Upper(language.Und)

// outputFormatter writes command results in the selected format
type outputFormatter struct {
	format string
	out    io.Writer
}

func newOutputFormatter(format string, out io.Writer) (*outputFormatter, error) {
	switch strings.ToLower(format) {
	case formatTable, "":
		return &outputFormatter{format: formatTable, out: out}, nil
	case formatJSON:
		return &outputFormatter{format: formatJSON, out: out}, nil
	case formatYAML, "yml":
		return &outputFormatter{format: formatYAML, out: out}, nil
	}
	return nil, NewValidationError("format output", "format", format,
		"Use --format table, json or yaml")
}

// render writes data as JSON or YAML, or calls table for the table format
func (of *outputFormatter) render(data any, table func(t *tableWriter)) error {
	switch of.format {
	case formatJSON:
		encoder := json.NewEncoder(of.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case formatYAML:
		encoder := yaml.NewEncoder(of.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	default:
		t := &tableWriter{tw: tabwriter.NewWriter(of.out, 0, 0, 2, ' ', 0)}
		table(t)
		return t.tw.Flush()
	}
}

// message prints a plain confirmation line; structured formats get it as an object
func (of *outputFormatter) message(data any, format string, args ...any) error {
	if of.format != formatTable {
		return of.render(data, nil)
	}
	_, err := fmt.Fprintf(of.out, format+"\n", args...)
	return err
}

// tableWriter is an aligned table with upper-cased headers
type tableWriter struct {
	tw *tabwriter.Writer
}

func (t *tableWriter) header(columns ...string) {
	cased := make([]string, len(columns))
	for i, c := range columns {
		cased[i] = headerCaser.String(c)
	}
	t.row(cased...)
}

func (t *tableWriter) row(cells ...string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}
