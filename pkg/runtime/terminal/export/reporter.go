package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

type TableConfig struct {
	PeriodWidth  int
	NameWidth    int
	ValueWidth   int
	CommentWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		PeriodWidth:  25,
		NameWidth:    44,
		ValueWidth:   10,
		CommentWidth: 24,
	}
}

// Reporter renders reports as fixed-width tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"header": func() string {
			return fmt.Sprintf("| %-*s | %-*s | %*s | %*s | %*s | %-*s |",
				c.config.PeriodWidth, "Period",
				c.config.NameWidth, "KPI",
				c.config.ValueWidth, "Minimum",
				c.config.ValueWidth, "Target",
				c.config.ValueWidth, "Actual",
				c.config.CommentWidth, "Comment")
		},
		"formatRow": func(row domain.ReportRow) string {
			return fmt.Sprintf("| %-*s | %-*s | %*s | %*s | %*s | %-*s |",
				c.config.PeriodWidth, truncate(row.Period, c.config.PeriodWidth),
				c.config.NameWidth, truncate(row.Name, c.config.NameWidth),
				c.config.ValueWidth, formatValue(row.Minimum),
				c.config.ValueWidth, formatValue(row.Target),
				c.config.ValueWidth, formatValue(row.Actual),
				c.config.CommentWidth, truncate(row.Comment, c.config.CommentWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.PeriodWidth+2),
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.CommentWidth+2))
		},
	}

	tmpl := `
{{.Title}}{{if .Period.Duration}} ({{.Period.Duration}} days){{end}}
{{if not .Period.Start.IsZero}}
Period: {{.Period.Start.Format "02.01.2006"}} to {{.Period.End.Format "02.01.2006"}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{if .Rows}}
{{separator}}
{{header}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{else if .Empty}}
{{.Empty}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
