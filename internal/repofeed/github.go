package repofeed

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/m-mizutani/goerr/v2"
)

// Lister returns the most recently updated repositories of owner.
type Lister interface {
	ListRecent(ctx context.Context, owner string, limit int) ([]Summary, error)
}

type GitHubLister struct {
	client *github.Client
}

type githubConfig struct {
	token   string
	baseURL string
}

type GitHubOption func(*githubConfig)

// WithToken authenticates requests. Public listings work without it, at a
// lower rate limit.
func WithToken(token string) GitHubOption {
	return func(cfg *githubConfig) {
		cfg.token = token
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(raw string) GitHubOption {
	return func(cfg *githubConfig) {
		cfg.baseURL = raw
	}
}

func NewGitHubLister(httpClient *http.Client, opts ...GitHubOption) (*GitHubLister, error) {
	cfg := &githubConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	client := github.NewClient(httpClient)
	if cfg.token != "" {
		client = client.WithAuthToken(cfg.token)
	}
	if cfg.baseURL != "" {
		raw := cfg.baseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", raw))
		}
		client.BaseURL = u
	}

	return &GitHubLister{client: client}, nil
}

func (x *GitHubLister) ListRecent(ctx context.Context, owner string, limit int) ([]Summary, error) {
	repos, _, err := x.client.Repositories.ListByUser(ctx, owner, &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories",
			goerr.V("owner", owner),
			goerr.V("limit", limit),
		)
	}

	out := make([]Summary, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		out = append(out, toSummary(r))
	}
	return out, nil
}

func toSummary(r *github.Repository) Summary {
	s := Summary{
		Name:        r.GetName(),
		Description: r.GetDescription(),
		URL:         r.GetHTMLURL(),
		HomepageURL: r.GetHomepage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.GetLanguage(),
		Topics:      r.Topics,
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.Time
		s.UpdatedAt = &t
	}
	return s
}
