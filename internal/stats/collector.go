package stats

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/go-github/v75/github"
	"golang.org/x/sync/errgroup"

	"github.com/jonmartinstorm/statsnusern/internal/fetcher"
	"github.com/jonmartinstorm/statsnusern/internal/models"
)

// Språk som alltid holdes utenfor, uansett konfigurasjon.
var alwaysExcludedLangs = []string{"html"}

type Options struct {
	Username      string
	ExcludedRepos []string
	ExcludedLangs []string
	ExcludeForked bool
}

// Collector samler all statistikk for én bruker i fire faser og bygger en Report.
type Collector struct {
	api           fetcher.API
	username      string
	excludeForked bool
	excludedRepos map[string]struct{}
	excludedLangs map[string]struct{}
}

func NewCollector(api fetcher.API, opts Options) *Collector {
	c := &Collector{
		api:           api,
		username:      opts.Username,
		excludeForked: opts.ExcludeForked,
		excludedRepos: map[string]struct{}{},
		excludedLangs: map[string]struct{}{},
	}

	for _, repo := range opts.ExcludedRepos {
		if repo = strings.TrimSpace(repo); repo != "" {
			c.excludedRepos[repo] = struct{}{}
		}
	}
	for _, lang := range slices.Concat(opts.ExcludedLangs, alwaysExcludedLangs) {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			c.excludedLangs[lang] = struct{}{}
		}
	}
	return c
}

// CollectAll kjører alle fasene. Feiler repo-listingen eller spørringen etter
// bidragsår avbrytes hele innsamlingen. Andre feil gir bare mindre data.
func (c *Collector) CollectAll(ctx context.Context) (*models.Report, error) {
	report := models.NewReport(c.username)

	slog.Info("🔍 Henter repo-liste")
	repos, err := c.discover(ctx, report)
	if err != nil {
		return nil, err
	}
	report.TotalRepos = len(repos)
	slog.Info("Fant repos", "antall", len(repos), "stjerner", report.TotalStars, "forks", report.TotalForks)

	// Bidrag og trafikk avhenger bare av repo-listen, og kjører ved siden av fase 2 og 3.
	var (
		contributions int64
		views         int64
		g             errgroup.Group
	)
	g.Go(func() error {
		total, err := c.contributions(ctx)
		if err != nil {
			return err
		}
		contributions = total
		return nil
	})
	g.Go(func() error {
		views = c.views(ctx, repos)
		return nil
	})

	slog.Info("📦 Henter bidragsstatistikk", "antall", len(repos))
	contributors := c.contributorStats(ctx, repos)

	partials := c.weighRepos(repos, contributors)
	foldLanguages(report, partials)

	for _, repo := range repos {
		added, deleted := UserLines(contributors[repo.FullName], c.username)
		report.LinesAdded += added
		report.LinesDeleted += deleted
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.TotalContributions = contributions
	report.TotalViews = views

	Finalize(report)

	slog.Info("✅ Innsamling ferdig",
		"repos", report.TotalRepos,
		"bidrag", report.TotalContributions,
		"linjer_endret", report.LinesChanged(),
		"visninger", report.TotalViews,
		"språk", len(report.Languages))
	return report, nil
}

// discover paginerer eide repos og repos brukeren har bidratt til.
// Hver listing har sin egen markør og tas ut av spørringen når den er ferdig.
func (c *Collector) discover(ctx context.Context, report *models.Report) ([]models.RepoRecord, error) {
	var (
		repos          []models.RepoRecord
		seen           = map[string]struct{}{}
		ownedCursor    *string
		contribCursor  *string
		includeOwned   = true
		includeContrib = !c.excludeForked
		page           = 0
	)

	for includeOwned || includeContrib {
		page++
		slog.Debug("Henter side med repos", "side", page, "eide", includeOwned, "bidratt", includeContrib)

		raw, err := c.api.GraphQL(ctx, fetcher.BuildReposQuery(ownedCursor, contribCursor, includeOwned, includeContrib))
		if err != nil {
			return nil, fmt.Errorf("kunne ikke hente repo-liste (side %d): %w", page, err)
		}
		resp, err := fetcher.DecodeReposResponse(raw)
		if err != nil {
			return nil, err
		}

		viewer := resp.Data.Viewer
		if page == 1 {
			report.Name = viewer.DisplayName()
		}

		var owned, contributed *fetcher.RepoConnection
		if includeOwned {
			owned = viewer.Repositories
		}
		if includeContrib {
			contributed = viewer.RepositoriesContributedTo
		}

		for _, conn := range []*fetcher.RepoConnection{owned, contributed} {
			if conn == nil {
				continue
			}
			for _, node := range conn.Nodes {
				if record, ok := c.record(node, seen); ok {
					report.TotalStars += record.Stars
					report.TotalForks += record.Forks
					repos = append(repos, record)
				}
			}
		}

		ownedCursor, includeOwned = advance(owned)
		contribCursor, includeContrib = advance(contributed)
	}

	return repos, nil
}

func advance(conn *fetcher.RepoConnection) (*string, bool) {
	if conn == nil {
		return nil, false
	}
	next := conn.PageInfo.Next()
	return next, next != nil
}

// record gjør en repo-node om til en RepoRecord. Dubletter og ekskluderte
// repos hoppes over, og ekskluderte språk fjernes før noe lagres.
func (c *Collector) record(node *fetcher.RepoNode, seen map[string]struct{}) (models.RepoRecord, bool) {
	if node == nil || node.NameWithOwner == "" {
		return models.RepoRecord{}, false
	}
	name := node.NameWithOwner

	if _, dup := seen[name]; dup {
		return models.RepoRecord{}, false
	}
	if _, excluded := c.excludedRepos[name]; excluded {
		slog.Debug("Hopper over ekskludert repo", "repo", name)
		return models.RepoRecord{}, false
	}
	seen[name] = struct{}{}

	var langs []models.RepoLanguage
	for _, lang := range node.LanguageEntries() {
		if _, excluded := c.excludedLangs[strings.ToLower(lang.Name)]; excluded {
			continue
		}
		langs = append(langs, lang)
	}

	return models.RepoRecord{
		FullName:  name,
		Stars:     max(node.Stargazers.TotalCount, 0),
		Forks:     max(node.ForkCount, 0),
		Languages: langs,
	}, true
}

// contributorStats henter bidragsstatistikk for alle repos. Repos som
// feilet eller mangler i svaret er ikke med i resultatet.
func (c *Collector) contributorStats(ctx context.Context, repos []models.RepoRecord) map[string][]*github.ContributorStats {
	out := make(map[string][]*github.ContributorStats, len(repos))
	if len(repos) == 0 {
		return out
	}

	paths := make([]string, 0, len(repos))
	for _, repo := range repos {
		paths = append(paths, fetcher.ContributorStatsPath(repo.FullName))
	}

	for _, res := range c.api.RestGetBatch(ctx, paths) {
		repo, ok := fetcher.RepoFromPath(res.Path)
		if !ok {
			continue
		}
		if res.Err != nil {
			slog.Warn("Klarte ikke å hente bidragsstatistikk", "repo", repo, "error", res.Err)
			continue
		}
		stats, err := fetcher.DecodeContributorStats(res.Data)
		if err != nil {
			slog.Warn("Ugyldig bidragsstatistikk", "repo", repo, "error", err)
			continue
		}
		out[repo] = stats
	}
	return out
}

// weighRepos regner ut andel per repo og vekter språkstørrelsene.
func (c *Collector) weighRepos(repos []models.RepoRecord, contributors map[string][]*github.ContributorStats) []weightedRepo {
	partials := make([]weightedRepo, 0, len(repos))
	weighted := 0

	for _, repo := range repos {
		stats, found := contributors[repo.FullName]
		result := ComputeRatio(stats, found, c.username)
		if result.Weighted() {
			weighted++
			slog.Debug("Vekter repo", "repo", repo.FullName, "andel", result.Ratio)
		} else {
			slog.Info("Bruker 100% vekt for repo", "repo", repo.FullName, "årsak", result.Outcome.String())
		}
		partials = append(partials, weigh(repo, result.Ratio))
	}

	slog.Info("Vekting ferdig",
		"vektet", weighted,
		"standard", len(repos)-weighted,
		"totalt", len(repos))
	return partials
}

// contributions summerer bidrag for alle år brukeren har vært aktiv.
// Feil i spørringen etter år er fatal, feil i selve summeringen gir 0.
func (c *Collector) contributions(ctx context.Context) (int64, error) {
	raw, err := c.api.GraphQL(ctx, fetcher.ContributionYearsQuery)
	if err != nil {
		return 0, fmt.Errorf("kunne ikke hente bidragsår: %w", err)
	}
	years, err := fetcher.DecodeContributionYears(raw)
	if err != nil {
		return 0, fmt.Errorf("kunne ikke hente bidragsår: %w", err)
	}
	if len(years) == 0 {
		return 0, nil
	}

	raw, err = c.api.GraphQL(ctx, fetcher.BuildContributionsQuery(years))
	if err != nil {
		slog.Warn("Klarte ikke å hente bidrag per år", "år", years, "error", err)
		return 0, nil
	}
	total, err := fetcher.DecodeContributionsTotal(raw)
	if err != nil {
		slog.Warn("Ugyldig svar for bidrag per år", "error", err)
		return 0, nil
	}
	return total, nil
}

// views summerer trafikkvisninger for alle repos. Feil per repo ignoreres,
// siden trafikkdata bare er tilgjengelig med push-tilgang.
func (c *Collector) views(ctx context.Context, repos []models.RepoRecord) int64 {
	if len(repos) == 0 {
		return 0
	}

	paths := make([]string, 0, len(repos))
	for _, repo := range repos {
		paths = append(paths, fetcher.TrafficViewsPath(repo.FullName))
	}

	var total int64
	for _, res := range c.api.RestGetBatch(ctx, paths) {
		if res.Err != nil {
			slog.Debug("Ingen trafikkdata", "path", res.Path, "error", res.Err)
			continue
		}
		views, err := fetcher.DecodeTrafficViews(res.Data)
		if err != nil {
			slog.Debug("Ugyldige trafikkdata", "path", res.Path, "error", err)
			continue
		}
		total += fetcher.SumViews(views)
	}
	return total
}
