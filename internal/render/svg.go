package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"regexp"
	"sort"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonmartinstorm/statsnusern/internal/models"
)

const (
	DefaultMaxLanguages = 10
	DefaultColor        = "#000000"

	// Forsinkelse i ms mellom hver rad i animasjonen.
	rowDelay = 150
)

//go:embed templates/overview.svg.tmpl
var overviewTemplate string

//go:embed templates/languages.svg.tmpl
var languagesTemplate string

var funcs = template.FuncMap{
	"delay": func(i int) int { return i * rowDelay },
}

var (
	overviewTmpl  = template.Must(template.New("overview").Funcs(funcs).Parse(overviewTemplate))
	languagesTmpl = template.Must(template.New("languages").Funcs(funcs).Parse(languagesTemplate))
)

var (
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	printer      = message.NewPrinter(language.English)
)

// Octicon-stier for radene i oversikten.
const (
	iconStar   = "M8 .25a.75.75 0 01.673.418l1.882 3.815 4.21.612a.75.75 0 01.416 1.279l-3.046 2.97.719 4.192a.75.75 0 01-1.088.791L8 12.347l-3.766 1.98a.75.75 0 01-1.088-.79l.72-4.194L.818 6.374a.75.75 0 01.416-1.28l4.21-.611L7.327.668A.75.75 0 018 .25z"
	iconFork   = "M5 3.25a.75.75 0 11-1.5 0 .75.75 0 011.5 0zm0 2.122a2.25 2.25 0 10-1.5 0v.878A2.25 2.25 0 005.75 8.5h1.5v2.128a2.251 2.251 0 101.5 0V8.5h1.5a2.25 2.25 0 002.25-2.25v-.878a2.25 2.25 0 10-1.5 0v.878a.75.75 0 01-.75.75h-4.5A.75.75 0 015 6.25v-.878z"
	iconCommit = "M10.5 7.75a2.5 2.5 0 11-5 0 2.5 2.5 0 015 0zm1.43.75a4.002 4.002 0 01-7.86 0H.75a.75.75 0 110-1.5h3.32a4.001 4.001 0 017.86 0h3.32a.75.75 0 110 1.5h-3.32z"
	iconDiff   = "M8.75 1.75a.75.75 0 00-1.5 0V5H4a.75.75 0 000 1.5h3.25v3.25a.75.75 0 001.5 0V6.5H12A.75.75 0 0012 5H8.75V1.75zM4 13a.75.75 0 000 1.5h8a.75.75 0 100-1.5H4z"
	iconEye    = "M1.679 7.932c.412-.621 1.242-1.75 2.366-2.717C5.175 4.242 6.527 3.5 8 3.5c1.473 0 2.824.742 3.955 1.715 1.124.967 1.954 2.096 2.366 2.717a.119.119 0 010 .136c-.412.621-1.242 1.75-2.366 2.717C10.825 11.758 9.473 12.5 8 12.5c-1.473 0-2.824-.742-3.955-1.715C2.92 9.818 2.09 8.69 1.679 8.068a.119.119 0 010-.136zM8 2c-1.981 0-3.67.992-4.933 2.078C1.797 5.169.88 6.423.43 7.1a1.619 1.619 0 000 1.798c.45.678 1.367 1.932 2.637 3.024C4.329 13.008 6.019 14 8 14c1.981 0 3.67-.992 4.933-2.078 1.27-1.091 2.187-2.345 2.637-3.023a1.619 1.619 0 000-1.798c-.45-.678-1.367-1.932-2.637-3.023C11.671 2.992 9.981 2 8 2zm0 8a2 2 0 100-4 2 2 0 000 4z"
	iconRepo   = "M2 2.5A2.5 2.5 0 014.5 0h8.75a.75.75 0 01.75.75v12.5a.75.75 0 01-.75.75h-2.5a.75.75 0 110-1.5h1.75v-2h-8a1 1 0 00-.714 1.7.75.75 0 01-1.072 1.05A2.495 2.495 0 012 11.5v-9zm10.5-1V9h-8c-.356 0-.694.074-1 .208V2.5a1 1 0 011-1h8zM5 12.25v3.25a.25.25 0 00.4.2l1.45-1.087a.25.25 0 01.3 0L8.6 15.7a.25.25 0 00.4-.2v-3.25a.25.25 0 00-.25-.25h-3.5a.25.25 0 00-.25.25z"
)

type overviewRow struct {
	Icon  string
	Label string
	Value string
}

type overviewViewModel struct {
	Name string
	Rows []overviewRow
}

type LanguageRow struct {
	Name       string
	Color      string
	Percentage float64
}

type languagesViewModel struct {
	Languages []LanguageRow
}

// RenderOverview lager oversiktskortet med totaltallene fra rapporten.
func RenderOverview(report *models.Report) ([]byte, error) {
	vm := overviewViewModel{
		Name: html.EscapeString(report.Name),
		Rows: []overviewRow{
			{Icon: iconStar, Label: "Stars", Value: FormatNumber(report.TotalStars)},
			{Icon: iconFork, Label: "Forks", Value: FormatNumber(report.TotalForks)},
			{Icon: iconCommit, Label: "All-time contributions", Value: FormatNumber(report.TotalContributions)},
			{Icon: iconDiff, Label: "Lines of code changed", Value: FormatNumber(report.LinesChanged())},
			{Icon: iconEye, Label: "Repository views (past two weeks)", Value: FormatNumber(report.TotalViews)},
			{Icon: iconRepo, Label: "Repositories with contributions", Value: FormatNumber(int64(report.TotalRepos))},
		},
	}

	var buf bytes.Buffer
	if err := overviewTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("kunne ikke lage oversikt-SVG: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderLanguages lager språkkortet med de maxLanguages største språkene.
func RenderLanguages(report *models.Report, maxLanguages int) ([]byte, error) {
	vm := languagesViewModel{Languages: TopLanguages(report, maxLanguages)}

	var buf bytes.Buffer
	if err := languagesTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("kunne ikke lage språk-SVG: %w", err)
	}
	return buf.Bytes(), nil
}

// TopLanguages sorterer språk etter størrelse, største først, og kutter
// listen ved maxLanguages. Navn og farger er klare for SVG.
func TopLanguages(report *models.Report, maxLanguages int) []LanguageRow {
	if maxLanguages <= 0 {
		maxLanguages = DefaultMaxLanguages
	}

	names := make([]string, 0, len(report.Languages))
	for name := range report.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := report.Languages[names[i]], report.Languages[names[j]]
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		return names[i] < names[j]
	})

	if len(names) > maxLanguages {
		names = names[:maxLanguages]
	}

	rows := make([]LanguageRow, 0, len(names))
	for _, name := range names {
		stat := report.Languages[name]
		rows = append(rows, LanguageRow{
			Name:       html.EscapeString(name),
			Color:      safeColor(stat.Color),
			Percentage: stat.Percentage,
		})
	}
	return rows
}

// FormatNumber skriver tall med komma som tusenskille, f.eks. 1,234,567.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

func safeColor(color string) string {
	if colorPattern.MatchString(color) {
		return color
	}
	return DefaultColor
}
