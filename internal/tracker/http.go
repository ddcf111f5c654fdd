package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"releasetrain/internal/domain"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

const (
	perPage  = 100
	maxPages = 10
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tracker %s %s: %s", strings.ToLower(e.Method), e.Path, e.Status)
}

// GitHub talks to the milestones endpoints of a GitHub-compatible API.
type GitHub struct {
	Base  string
	Token string
	HTTP  *http.Client
}

// NewGitHub returns a client for base (DefaultBaseURL when empty).
// A nil httpClient uses http.DefaultClient.
func NewGitHub(base, token string, httpClient *http.Client) *GitHub {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GitHub{Base: strings.TrimRight(base, "/"), Token: token, HTTP: httpClient}
}

type milestoneRequest struct {
	Title string     `json:"title"`
	State string     `json:"state,omitempty"`
	DueOn *time.Time `json:"due_on,omitempty"`
}

func (c *GitHub) ListMilestones(ctx context.Context, repo domain.RepositoryRef) ([]domain.Milestone, error) {
	var all []domain.Milestone
	for page := 1; page <= maxPages; page++ {
		q := url.Values{}
		q.Set("state", "open")
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", strconv.Itoa(page))

		var batch []domain.Milestone
		if err := c.getJSON(ctx, milestonesPath(repo)+"?"+q.Encode(), &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}

func (c *GitHub) CreateMilestone(
	ctx context.Context,
	repo domain.RepositoryRef,
	milestone domain.Milestone,
) (domain.Milestone, error) {
	in := milestoneRequest{
		Title: milestone.Title,
		State: string(milestone.State),
	}
	if !milestone.DueOn.IsZero() {
		due := milestone.DueOn.UTC()
		in.DueOn = &due
	}
	var out domain.Milestone
	if err := c.post(ctx, milestonesPath(repo), in, &out); err != nil {
		return domain.Milestone{}, err
	}
	return out, nil
}

type workflowDispatch struct {
	Ref string `json:"ref"`
}

// DispatchWorkflow POSTs a workflow_dispatch event. GitHub answers 204 with
// no body.
func (c *GitHub) DispatchWorkflow(ctx context.Context, repo domain.RepositoryRef, workflow, ref string) error {
	if workflow == "" || ref == "" {
		return fmt.Errorf("dispatch workflow in %s: workflow and ref are required", repo)
	}
	path := "/repos/" + url.PathEscape(repo.Owner) + "/" + url.PathEscape(repo.Name) +
		"/actions/workflows/" + url.PathEscape(workflow) + "/dispatches"
	return c.post(ctx, path, workflowDispatch{Ref: ref}, nil)
}

func milestonesPath(repo domain.RepositoryRef) string {
	return "/repos/" + url.PathEscape(repo.Owner) + "/" + url.PathEscape(repo.Name) + "/milestones"
}

func (c *GitHub) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "releasetrain")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *GitHub) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, buf)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *GitHub) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *GitHub) do(req *http.Request, path string, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var (
	_ domain.MilestoneTracker   = (*GitHub)(nil)
	_ domain.WorkflowDispatcher = (*GitHub)(nil)
)
