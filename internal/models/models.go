package models

// Report er det ferdige, aggregerte resultatet som sendes til renderingen.
type Report struct {
	Name               string                   `json:"name"`
	Username           string                   `json:"username"`
	TotalStars         int64                    `json:"total_stars"`
	TotalForks         int64                    `json:"total_forks"`
	TotalContributions int64                    `json:"total_contributions"`
	TotalRepos         int                      `json:"total_repos"`
	LinesAdded         int64                    `json:"lines_added"`
	LinesDeleted       int64                    `json:"lines_deleted"`
	TotalViews         int64                    `json:"total_views"`
	Languages          map[string]*LanguageStat `json:"languages"`
}

// LanguageStat er vektet størrelse for ett språk over alle repos.
// Color settes fra første repo som bruker språket.
type LanguageStat struct {
	Size        int64   `json:"size"`
	Occurrences int     `json:"occurrences"`
	Color       string  `json:"color,omitempty"`
	Percentage  float64 `json:"percentage"`
}

// RepoRecord lever bare under innsamlingen.
type RepoRecord struct {
	FullName  string         `json:"full_name"`
	Stars     int64          `json:"stars"`
	Forks     int64          `json:"forks"`
	Languages []RepoLanguage `json:"languages"`
}

type RepoLanguage struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Color string `json:"color,omitempty"`
}

func NewReport(username string) *Report {
	return &Report{
		Username:  username,
		Languages: map[string]*LanguageStat{},
	}
}

// TotalLanguageSize summerer vektet størrelse for alle språk.
func (r *Report) TotalLanguageSize() int64 {
	var total int64
	for _, lang := range r.Languages {
		total += lang.Size
	}
	return total
}

// LinesChanged er summen av lagt til og slettet.
func (r *Report) LinesChanged() int64 {
	return r.LinesAdded + r.LinesDeleted
}
