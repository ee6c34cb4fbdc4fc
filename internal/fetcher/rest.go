package fetcher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v75/github"
)

func ContributorStatsPath(repo string) string {
	return fmt.Sprintf("/repos/%s/stats/contributors", repo)
}

func TrafficViewsPath(repo string) string {
	return fmt.Sprintf("/repos/%s/traffic/views", repo)
}

// RepoFromPath henter owner/repo ut av en sti på formen /repos/{owner}/{repo}/...
func RepoFromPath(path string) (string, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 || parts[1] != "repos" || parts[2] == "" || parts[3] == "" {
		return "", false
	}
	return parts[2] + "/" + parts[3], true
}

// DecodeContributorStats tolker svaret fra /stats/contributors.
// Et tomt svar (null) gir en tom liste. Bidragsytere og uker tolkes hver for
// seg, og tall med feil type regnes som manglende.
func DecodeContributorStats(raw json.RawMessage) ([]*github.ContributorStats, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("bidragsstatistikk er ikke en liste: %w", err)
	}

	stats := make([]*github.ContributorStats, 0, len(items))
	for _, item := range items {
		fields, err := objectFields(item)
		if err != nil || fields == nil {
			continue
		}
		stats = append(stats, decodeContributor(fields))
	}
	return stats, nil
}

func decodeContributor(fields map[string]json.RawMessage) *github.ContributorStats {
	c := &github.ContributorStats{}
	decodeField(fields["total"], &c.Total)

	var author map[string]json.RawMessage
	if decodeField(fields["author"], &author) && author != nil {
		c.Author = &github.Contributor{}
		decodeField(author["login"], &c.Author.Login)
	}

	var weeks []json.RawMessage
	decodeField(fields["weeks"], &weeks)
	for _, raw := range weeks {
		week, err := objectFields(raw)
		if err != nil || week == nil {
			continue
		}
		w := &github.WeeklyStats{}
		decodeField(week["w"], &w.Week)
		decodeField(week["a"], &w.Additions)
		decodeField(week["d"], &w.Deletions)
		decodeField(week["c"], &w.Commits)
		c.Weeks = append(c.Weeks, w)
	}
	return c
}

// DecodeTrafficViews tolker svaret fra /traffic/views. Dager som ikke kan
// tolkes hoppes over.
func DecodeTrafficViews(raw json.RawMessage) (*github.TrafficViews, error) {
	fields, err := objectFields(raw)
	if err != nil {
		return nil, fmt.Errorf("kunne ikke parse trafikkdata: %w", err)
	}

	views := &github.TrafficViews{}
	decodeField(fields["count"], &views.Count)
	decodeField(fields["uniques"], &views.Uniques)
	for _, day := range decodeList[github.TrafficData](fields["views"]) {
		if day != nil {
			views.Views = append(views.Views, day)
		}
	}
	return views, nil
}

// SumViews summerer daglige visninger. Manglende tall regnes som 0.
func SumViews(views *github.TrafficViews) int64 {
	if views == nil {
		return 0
	}

	var total int64
	for _, day := range views.Views {
		total += int64(max(day.GetCount(), 0))
	}
	return total
}
