package stats

import (
	"strings"

	"github.com/google/go-github/v75/github"
)

// RatioOutcome sier hvordan bidragsandelen for et repo ble bestemt.
type RatioOutcome int

const (
	RatioCalculated RatioOutcome = iota
	FallbackNoStats
	FallbackEmptyStats
	FallbackNoLines
	FallbackUserNotFound
)

func (o RatioOutcome) String() string {
	switch o {
	case RatioCalculated:
		return "beregnet"
	case FallbackNoStats:
		return "ingen bidragsstatistikk"
	case FallbackEmptyStats:
		return "tom bidragsstatistikk"
	case FallbackNoLines:
		return "ingen linjer lagt til"
	case FallbackUserNotFound:
		return "bruker ikke blant bidragsyterne"
	default:
		return "ukjent"
	}
}

type RatioResult struct {
	Outcome RatioOutcome
	Ratio   float64
}

// Weighted er true når andelen faktisk er regnet ut fra bidragsdata.
func (r RatioResult) Weighted() bool {
	return r.Outcome == RatioCalculated
}

func fallback(outcome RatioOutcome) RatioResult {
	return RatioResult{Outcome: outcome, Ratio: 1.0}
}

// ComputeRatio finner brukerens andel av linjene som er lagt til i et repo.
// found er false når det ikke finnes noen statistikk for repoet. Alle
// reserveutfall gir andel 1.0.
func ComputeRatio(contributors []*github.ContributorStats, found bool, username string) RatioResult {
	if !found {
		return fallback(FallbackNoStats)
	}
	if len(contributors) == 0 {
		return fallback(FallbackEmptyStats)
	}

	var total, user int64
	userFound := false
	for _, c := range contributors {
		added := sumAdded(c)
		total += added
		if isUser(c, username) {
			userFound = true
			user += added
		}
	}

	if total <= 0 {
		return fallback(FallbackNoLines)
	}
	if !userFound {
		return fallback(FallbackUserNotFound)
	}

	return RatioResult{
		Outcome: RatioCalculated,
		Ratio:   min(1.0, float64(user)/float64(total)),
	}
}

// UserLines summerer linjene brukeren selv har lagt til og slettet, uvektet.
func UserLines(contributors []*github.ContributorStats, username string) (added, deleted int64) {
	for _, c := range contributors {
		if !isUser(c, username) {
			continue
		}
		for _, week := range c.Weeks {
			if week == nil {
				continue
			}
			added += int64(max(week.GetAdditions(), 0))
			deleted += int64(max(week.GetDeletions(), 0))
		}
	}
	return added, deleted
}

func sumAdded(c *github.ContributorStats) int64 {
	if c == nil {
		return 0
	}

	var added int64
	for _, week := range c.Weeks {
		if week == nil {
			continue
		}
		added += int64(max(week.GetAdditions(), 0))
	}
	return added
}

func isUser(c *github.ContributorStats, username string) bool {
	if c == nil || username == "" {
		return false
	}
	login := c.GetAuthor().GetLogin()
	return login != "" && strings.EqualFold(login, username)
}
