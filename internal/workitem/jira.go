package workitem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// bulkFetchFields are the issue fields requested from the tracker.
var bulkFetchFields = []string{"summary", "assignee", "status", "project"}

// JiraClient implements Service against the Jira Cloud REST API v3.
type JiraClient struct {
	baseURL  string
	email    string
	apiToken string
	client   *http.Client
}

// JiraConfig holds configuration for the Jira client.
type JiraConfig struct {
	BaseURL  string // e.g. https://example.atlassian.net
	Email    string // account email for basic auth
	APIToken string // API token (or read from JIRA_API_TOKEN env var)
}

// NewJiraClient creates a new Jira client.
func NewJiraClient(config JiraConfig) (*JiraClient, error) {
	token := config.APIToken
	if token == "" {
		token = os.Getenv("JIRA_API_TOKEN")
	}

	if token == "" {
		return nil, fmt.Errorf("%w: JIRA_API_TOKEN not set", ErrInvalidConfig)
	}

	if config.BaseURL == "" || config.Email == "" {
		return nil, fmt.Errorf("%w: base URL and email are required", ErrInvalidConfig)
	}

	return &JiraClient{
		baseURL:  strings.TrimRight(config.BaseURL, "/"),
		email:    config.Email,
		apiToken: token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// jiraIssue is the wire shape of one issue in a bulk-fetch response.
type jiraIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary  string `json:"summary"`
		Assignee *struct {
			AccountID string `json:"accountId"`
		} `json:"assignee"`
		Project *struct {
			Name string `json:"name"`
		} `json:"project"`
		Status *struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

// BulkFetch fetches issue fields for the given keys in one request.
func (j *JiraClient) BulkFetch(ctx context.Context, keys []string) ([]Issue, error) {
	payload := map[string]interface{}{
		"issueIdsOrKeys": keys,
		"fields":         bulkFetchFields,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := j.baseURL + "/rest/api/3/issue/bulkfetch"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	j.setHeaders(req)

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Issues []jiraIssue `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	issues := make([]Issue, 0, len(result.Issues))
	for _, ji := range result.Issues {
		issue := Issue{
			Key:     ji.Key,
			Summary: ji.Fields.Summary,
		}
		if ji.Fields.Assignee != nil {
			issue.Assignee = ji.Fields.Assignee.AccountID
		}
		if ji.Fields.Project != nil {
			issue.Project = ji.Fields.Project.Name
		}
		if ji.Fields.Status != nil {
			issue.Status = ji.Fields.Status.Name
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// SetDueDate writes the due-date field of one issue; empty clears it.
func (j *JiraClient) SetDueDate(ctx context.Context, key, dueDate string) error {
	var due *string
	if dueDate != "" {
		due = &dueDate
	}

	payload := struct {
		Fields struct {
			DueDate *string `json:"duedate"`
		} `json:"fields"`
	}{}
	payload.Fields.DueDate = due

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := j.baseURL + "/rest/api/3/issue/" + key
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	j.setHeaders(req)

	resp, err := j.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: tracker returned status %d: %s", ErrSyncFailed, resp.StatusCode, string(respBody))
	}

	return nil
}

func (j *JiraClient) setHeaders(req *http.Request) {
	req.SetBasicAuth(j.email, j.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
}
