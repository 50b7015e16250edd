package workitem

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient returns a JiraClient pointed at a stub tracker.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*JiraClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewJiraClient(JiraConfig{
		BaseURL:  srv.URL,
		Email:    "ops@example.com",
		APIToken: "token",
	})
	if err != nil {
		t.Fatalf("NewJiraClient failed: %v", err)
	}
	return client, srv
}

func TestNewJiraClient_MissingConfig(t *testing.T) {
	t.Setenv("JIRA_API_TOKEN", "")

	tests := []struct {
		name string
		cfg  JiraConfig
	}{
		{"no token", JiraConfig{BaseURL: "https://x.atlassian.net", Email: "a@b.c"}},
		{"no base URL", JiraConfig{Email: "a@b.c", APIToken: "t"}},
		{"no email", JiraConfig{BaseURL: "https://x.atlassian.net", APIToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJiraClient(tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestBulkFetch(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"issues": [
				{
					"key": "ABC-1",
					"fields": {
						"summary": "Water plants",
						"assignee": {"accountId": "acc-42"},
						"project": {"name": "Home"},
						"status": {"name": "To Do"}
					}
				},
				{
					"key": "ABC-2",
					"fields": {
						"summary": "Unassigned chore",
						"assignee": null,
						"project": {"name": "Home"},
						"status": {"name": "Done"}
					}
				}
			]
		}`)
	})

	issues, err := client.BulkFetch(context.Background(), []string{"ABC-1", "ABC-2"})
	if err != nil {
		t.Fatalf("BulkFetch failed: %v", err)
	}

	if gotPath != "/rest/api/3/issue/bulkfetch" {
		t.Errorf("request path = %q", gotPath)
	}

	keys, ok := gotBody["issueIdsOrKeys"].([]interface{})
	if !ok || len(keys) != 2 {
		t.Errorf("request body keys = %v", gotBody["issueIdsOrKeys"])
	}

	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	if issues[0].Key != "ABC-1" || issues[0].Summary != "Water plants" ||
		issues[0].Assignee != "acc-42" || issues[0].Project != "Home" ||
		issues[0].Status != "To Do" {
		t.Errorf("issue[0] = %+v", issues[0])
	}
	if issues[1].Assignee != "" {
		t.Errorf("unassigned issue should have empty assignee, got %q", issues[1].Assignee)
	}
}

func TestBulkFetch_TrackerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.BulkFetch(context.Background(), []string{"ABC-1"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestSetDueDate(t *testing.T) {
	tests := []struct {
		name     string
		dueDate  string
		wantJSON string
	}{
		{"set date", "2024-03-08", `{"fields":{"duedate":"2024-03-08"}}`},
		{"clear date", "", `{"fields":{"duedate":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotBody string

			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				body, _ := io.ReadAll(r.Body)
				gotBody = string(body)
				w.WriteHeader(http.StatusNoContent)
			})

			if err := client.SetDueDate(context.Background(), "ABC-1", tt.dueDate); err != nil {
				t.Fatalf("SetDueDate failed: %v", err)
			}

			if gotMethod != "PUT" {
				t.Errorf("method = %q, want PUT", gotMethod)
			}
			if gotPath != "/rest/api/3/issue/ABC-1" {
				t.Errorf("path = %q", gotPath)
			}
			if gotBody != tt.wantJSON {
				t.Errorf("body = %s, want %s", gotBody, tt.wantJSON)
			}
		})
	}
}

func TestSetDueDate_Failure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such issue", http.StatusNotFound)
	})

	err := client.SetDueDate(context.Background(), "GONE-1", "2024-03-08")
	if !errors.Is(err, ErrSyncFailed) {
		t.Errorf("error = %v, want ErrSyncFailed", err)
	}
}
