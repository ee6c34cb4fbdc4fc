package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonmartinstorm/statsnusern/internal/models"
)

const (
	OverviewFile  = "overview.svg"
	LanguagesFile = "languages.svg"
	ReportFile    = "report.json"
)

// FileRenderer skriver begge SVG-kortene og en JSON-dump av rapporten til dir.
type FileRenderer struct {
	dir          string
	maxLanguages int
}

func NewFileRenderer(dir string, maxLanguages int) *FileRenderer {
	return &FileRenderer{dir: dir, maxLanguages: maxLanguages}
}

func (r *FileRenderer) Render(report *models.Report) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("kunne ikke opprette katalog %s: %w", r.dir, err)
	}

	overview, err := RenderOverview(report)
	if err != nil {
		return err
	}
	if err := writeFile(r.dir, OverviewFile, overview); err != nil {
		return err
	}

	languages, err := RenderLanguages(report, r.maxLanguages)
	if err != nil {
		return err
	}
	if err := writeFile(r.dir, LanguagesFile, languages); err != nil {
		return err
	}

	if err := StoreReportJSON(r.dir, report); err != nil {
		return err
	}

	slog.Info("🖼️ Genererte SVG-filer", "dir", r.dir)
	return nil
}

// StoreReportJSON lagrer hele rapporten som JSON, nyttig for feilsøking.
func StoreReportJSON(dir string, report *models.Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("kunne ikke opprette katalog %s: %w", dir, err)
	}

	rawOut, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("kunne ikke serialisere rapport til JSON: %w", err)
	}

	if err := writeFile(dir, ReportFile, rawOut); err != nil {
		return err
	}

	slog.Info("Lagret rapport", "språk", len(report.Languages), "file", filepath.Join(dir, ReportFile))
	return nil
}

func writeFile(dir, name string, data []byte) error {
	file := filepath.Join(dir, name)
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("kunne ikke skrive til fil %s: %w", file, err)
	}
	return nil
}
