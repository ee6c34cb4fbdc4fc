package fetcher

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonmartinstorm/statsnusern/internal/models"
)

// Antall språk som hentes per repo, sortert etter størrelse.
const MaxLanguagesPerRepo = 10

const (
	DefaultLanguageName = "Other"
	DefaultDisplayName  = "Unknown"
)

// ==== Spørringer ====

const repoNodeFields = `
				nameWithOwner
				stargazers {
					totalCount
				}
				forkCount
				languages(first: %d, orderBy: {field: SIZE, direction: DESC}) {
					edges {
						size
						node {
							name
							color
						}
					}
				}`

// BuildReposQuery bygger én side av repo-listingen. Listinger som allerede
// er ferdig paginert tas ikke med.
func BuildReposQuery(ownedCursor, contribCursor *string, includeOwned, includeContrib bool) string {
	fields := fmt.Sprintf(repoNodeFields, MaxLanguagesPerRepo)

	var b strings.Builder
	b.WriteString("{\n\tviewer {\n\t\tlogin\n\t\tname\n")

	if includeOwned {
		fmt.Fprintf(&b, `		repositories(
			first: 100,
			orderBy: {field: UPDATED_AT, direction: DESC},
			isFork: false,
			after: %s
		) {
			pageInfo {
				hasNextPage
				endCursor
			}
			nodes {%s
			}
		}
`, cursorArg(ownedCursor), fields)
	}

	if includeContrib {
		fmt.Fprintf(&b, `		repositoriesContributedTo(
			first: 100,
			includeUserRepositories: false,
			orderBy: {field: UPDATED_AT, direction: DESC},
			contributionTypes: [COMMIT, PULL_REQUEST, REPOSITORY, PULL_REQUEST_REVIEW],
			after: %s
		) {
			pageInfo {
				hasNextPage
				endCursor
			}
			nodes {%s
			}
		}
`, cursorArg(contribCursor), fields)
	}

	b.WriteString("\t}\n}")
	return b.String()
}

const ContributionYearsQuery = `
query {
	viewer {
		contributionsCollection {
			contributionYears
		}
	}
}`

// BuildContributionsQuery ber om totalt antall bidrag for hvert år i én spørring.
func BuildContributionsQuery(years []int) string {
	var b strings.Builder
	for _, year := range years {
		fmt.Fprintf(&b, `
		year%d: contributionsCollection(
			from: "%d-01-01T00:00:00Z",
			to: "%d-01-01T00:00:00Z"
		) {
			contributionCalendar {
				totalContributions
			}
		}`, year, year, year+1)
	}

	return fmt.Sprintf(`
query {
	viewer {%s
	}
}`, b.String())
}

func cursorArg(cursor *string) string {
	if cursor == nil {
		return "null"
	}
	return strconv.Quote(*cursor)
}

// ==== Svar ====

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Next returnerer markøren til neste side, eller nil når listingen er ferdig.
func (p PageInfo) Next() *string {
	if !p.HasNextPage || p.EndCursor == nil {
		return nil
	}
	return p.EndCursor
}

func (p *PageInfo) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*p = PageInfo{}
	decodeField(fields["hasNextPage"], &p.HasNextPage)
	decodeField(fields["endCursor"], &p.EndCursor)
	return nil
}

type LanguageNode struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (n *LanguageNode) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*n = LanguageNode{}
	decodeField(fields["name"], &n.Name)
	decodeField(fields["color"], &n.Color)
	return nil
}

type LanguageEdge struct {
	Size int64         `json:"size"`
	Node *LanguageNode `json:"node"`
}

func (e *LanguageEdge) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*e = LanguageEdge{}
	decodeField(fields["size"], &e.Size)
	decodeField(fields["node"], &e.Node)
	return nil
}

type RepoNode struct {
	NameWithOwner string `json:"nameWithOwner"`
	Stargazers    struct {
		TotalCount int64 `json:"totalCount"`
	} `json:"stargazers"`
	ForkCount int64 `json:"forkCount"`
	Languages struct {
		Edges []*LanguageEdge `json:"edges"`
	} `json:"languages"`
}

// UnmarshalJSON tolker hvert felt for seg. Felter med feil type får nullverdi
// i stedet for å felle hele noden.
func (r *RepoNode) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*r = RepoNode{}
	decodeField(fields["nameWithOwner"], &r.NameWithOwner)
	decodeField(fields["forkCount"], &r.ForkCount)

	var stargazers, languages map[string]json.RawMessage
	if decodeField(fields["stargazers"], &stargazers) {
		decodeField(stargazers["totalCount"], &r.Stargazers.TotalCount)
	}
	if decodeField(fields["languages"], &languages) {
		r.Languages.Edges = decodeList[LanguageEdge](languages["edges"])
	}
	return nil
}

// LanguageEntries fyller inn standardverdier for manglende språkdata.
func (r RepoNode) LanguageEntries() []models.RepoLanguage {
	langs := make([]models.RepoLanguage, 0, len(r.Languages.Edges))
	for _, edge := range r.Languages.Edges {
		if edge == nil {
			continue
		}

		lang := models.RepoLanguage{Name: DefaultLanguageName, Size: max(edge.Size, 0)}
		if edge.Node != nil {
			if edge.Node.Name != "" {
				lang.Name = edge.Node.Name
			}
			lang.Color = edge.Node.Color
		}
		langs = append(langs, lang)
	}
	return langs
}

type RepoConnection struct {
	PageInfo PageInfo    `json:"pageInfo"`
	Nodes    []*RepoNode `json:"nodes"`
}

// UnmarshalJSON tolker nodene én og én. En node som ikke er et objekt blir nil.
func (c *RepoConnection) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*c = RepoConnection{}
	decodeField(fields["pageInfo"], &c.PageInfo)
	c.Nodes = decodeList[RepoNode](fields["nodes"])
	return nil
}

type Viewer struct {
	Login                     string          `json:"login"`
	Name                      string          `json:"name"`
	Repositories              *RepoConnection `json:"repositories"`
	RepositoriesContributedTo *RepoConnection `json:"repositoriesContributedTo"`
}

// DisplayName faller tilbake til login, og deretter "Unknown".
func (v Viewer) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	if v.Login != "" {
		return v.Login
	}
	return DefaultDisplayName
}

func (v *Viewer) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*v = Viewer{}
	decodeField(fields["login"], &v.Login)
	decodeField(fields["name"], &v.Name)
	decodeField(fields["repositories"], &v.Repositories)
	decodeField(fields["repositoriesContributedTo"], &v.RepositoriesContributedTo)
	return nil
}

type ReposResponse struct {
	Data struct {
		Viewer Viewer `json:"viewer"`
	} `json:"data"`
}

// DecodeReposResponse feiler bare når svaret ikke er et JSON-objekt. Alt
// under det får standardverdier når formen er feil.
func DecodeReposResponse(raw json.RawMessage) (*ReposResponse, error) {
	fields, err := objectFields(raw)
	if err != nil {
		return nil, fmt.Errorf("kunne ikke parse repo-listing: %w", err)
	}

	var resp ReposResponse
	var data map[string]json.RawMessage
	if decodeField(fields["data"], &data) {
		decodeField(data["viewer"], &resp.Data.Viewer)
	}
	return &resp, nil
}

type ContributionYearsResponse struct {
	Data struct {
		Viewer struct {
			ContributionsCollection *struct {
				ContributionYears []int `json:"contributionYears"`
			} `json:"contributionsCollection"`
		} `json:"viewer"`
	} `json:"data"`
}

// DecodeContributionYears feiler hvis svaret mangler listen over år.
func DecodeContributionYears(raw json.RawMessage) ([]int, error) {
	var resp ContributionYearsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("kunne ikke parse bidragsår: %w", err)
	}

	collection := resp.Data.Viewer.ContributionsCollection
	if collection == nil || collection.ContributionYears == nil {
		return nil, fmt.Errorf("fant ingen bidragsår i svaret")
	}
	return collection.ContributionYears, nil
}

type yearContributions struct {
	ContributionCalendar struct {
		TotalContributions int64 `json:"totalContributions"`
	} `json:"contributionCalendar"`
}

// DecodeContributionsTotal summerer totalContributions for alle år-aliaser
// under viewer. Felter som ikke har riktig form hoppes over.
func DecodeContributionsTotal(raw json.RawMessage) (int64, error) {
	var resp struct {
		Data struct {
			Viewer map[string]json.RawMessage `json:"viewer"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("kunne ikke parse bidrag: %w", err)
	}

	var total int64
	for _, value := range resp.Data.Viewer {
		var year yearContributions
		if err := json.Unmarshal(value, &year); err != nil {
			continue
		}
		total += max(year.ContributionCalendar.TotalContributions, 0)
	}
	return total, nil
}
