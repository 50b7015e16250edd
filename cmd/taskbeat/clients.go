package main

import (
	"fmt"

	"github.com/mhutton/taskbeat/internal/config"
	"github.com/mhutton/taskbeat/internal/store"
	"github.com/mhutton/taskbeat/internal/tasks"
	"github.com/mhutton/taskbeat/internal/workitem"
)

// newTaskService wires the synchronization service from config: the Redis
// metadata store and the work-item tracker client. The returned cleanup
// func closes the store connection.
func newTaskService() (*tasks.Service, func(), error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.NewRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	tracker, err := workitem.NewJiraClient(workitem.JiraConfig{
		BaseURL:  cfg.Jira.BaseURL,
		Email:    cfg.Jira.Email,
		APIToken: cfg.Jira.APIToken,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	cleanup := func() { st.Close() }
	return tasks.NewService(st, tracker), cleanup, nil
}
