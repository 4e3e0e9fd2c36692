package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

// Reporter outputs reports to the console in a plain list form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	tmpl := `{{.Title}}
{{if not .Period.Start.IsZero}}Period: {{.Period.Start.Format "02.01.2006"}} to {{.Period.End.Format "02.01.2006"}}
{{end}}{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{range .Rows}}- {{.Period}} {{.Name}}: {{printf "%.2f" .Actual}} (min {{printf "%.2f" .Minimum}}, target {{printf "%.2f" .Target}}){{if .Comment}} {{.Comment}}{{end}}
{{else}}{{if .Empty}}{{.Empty}}
{{end}}{{end}}{{end}}`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
