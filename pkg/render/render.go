package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var htmlView = template.Must(template.New("view").Parse(
	`{{- if eq .Kind "table" -}}
<table><thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead><tbody>
{{- range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end -}}
</tbody></table>
{{- else if eq .Kind "success" -}}
<div class="success">{{.Message}}</div>
{{- else if eq .Kind "error" -}}
<div class="error">{{.Message}}</div>
{{- else -}}
{{.Message}}
{{- end}}`))

// HTML writes the view as an HTML fragment. Cell and message content is
// escaped.
func HTML(w io.Writer, v View) error {
	if err := htmlView.Execute(w, v); err != nil {
		return fmt.Errorf("unable to render view: %w", err)
	}
	return nil
}

// Text writes the view for a terminal. Tables are aligned in columns;
// success and error notices are colored unless colored is false.
func Text(w io.Writer, v View, colored bool) error {
	var err error

	switch v.Kind {
	case KindTable:
		err = table(w, v.Header, v.Rows)
	case KindSuccess:
		err = notice(w, color.New(color.FgGreen), v.Message, colored)
	case KindError:
		err = notice(w, color.New(color.FgRed), v.Message, colored)
	case KindText:
		_, err = fmt.Fprintln(w, v.Message)
	}

	if err != nil {
		return fmt.Errorf("unable to render view: %w", err)
	}
	return nil
}

func notice(w io.Writer, c *color.Color, message string, colored bool) error {
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, err := fmt.Fprintln(w, c.Sprint(message))
	return err
}

func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	line := func(cells []string) {
		fmt.Fprintln(tw, strings.Join(sanitize(cells), "\t"))
	}

	line(header)
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", max(len(h), 1))
	}
	line(rule)
	for _, r := range rows {
		line(r)
	}

	return tw.Flush()
}

var flatten = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func sanitize(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = flatten.Replace(c)
	}
	return out
}
