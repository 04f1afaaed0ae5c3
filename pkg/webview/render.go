package webview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

func centrality(c *float64) string {
	if c == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*c, 'f', 2, 64) //nolint:mnd
}

func parse(file string) *template.Template {
	return template.Must(template.New("layout.html").
		Funcs(template.FuncMap{
			"centrality": centrality,
			"inc": func(i int) int {
				return i + 1
			},
		}).
		ParseFS(templateFS, "templates/layout.html", "templates/"+file))
}

var (
	contextTemplate = parse("context.html") //nolint:gochecknoglobals
	welcomeTemplate = parse("welcome.html") //nolint:gochecknoglobals
	impactTemplate  = parse("impact.html")  //nolint:gochecknoglobals
)

type page struct {
	Title string
	Panel string
	State any
}

func render(w io.Writer, tpl *template.Template, title, panel string, state any) error {
	if err := tpl.ExecuteTemplate(w, "layout.html", &page{Title: title, Panel: panel, State: state}); err != nil {
		return fmt.Errorf("render the %s panel: %w", panel, err)
	}
	return nil
}
