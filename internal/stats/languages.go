package stats

import (
	"math"

	"github.com/jonmartinstorm/statsnusern/internal/models"
)

// weightedRepo er ett repos bidrag til språkstatistikken, ferdig vektet.
// Lages uten delt tilstand og foldes inn i rapporten etterpå.
type weightedRepo struct {
	FullName  string
	Ratio     float64
	Languages []models.RepoLanguage
}

func weigh(repo models.RepoRecord, ratio float64) weightedRepo {
	langs := make([]models.RepoLanguage, 0, len(repo.Languages))
	for _, lang := range repo.Languages {
		langs = append(langs, models.RepoLanguage{
			Name:  lang.Name,
			Size:  int64(math.Round(float64(lang.Size) * ratio)),
			Color: lang.Color,
		})
	}
	return weightedRepo{FullName: repo.FullName, Ratio: ratio, Languages: langs}
}

// foldLanguages legger vektede størrelser inn i rapporten i den rekkefølgen
// repoene ble funnet. Fargen settes første gang et språk dukker opp.
func foldLanguages(report *models.Report, partials []weightedRepo) {
	if report.Languages == nil {
		report.Languages = map[string]*models.LanguageStat{}
	}

	for _, repo := range partials {
		for _, lang := range repo.Languages {
			stat, ok := report.Languages[lang.Name]
			if !ok {
				stat = &models.LanguageStat{Color: lang.Color}
				report.Languages[lang.Name] = stat
			}
			stat.Size += lang.Size
			stat.Occurrences++
		}
	}
}

// Finalize regner ut prosentandel per språk. Er totalen 0 blir alle andeler 0.
func Finalize(report *models.Report) {
	total := report.TotalLanguageSize()
	for _, stat := range report.Languages {
		if total <= 0 {
			stat.Percentage = 0
			continue
		}
		stat.Percentage = float64(stat.Size) / float64(total) * 100
	}
}
