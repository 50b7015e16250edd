package task

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    Metadata
		wantErr bool
	}{
		{
			name: "minimal valid record",
			meta: Metadata{IssueKey: "ABC-1"},
		},
		{
			name: "full valid record",
			meta: Metadata{
				IssueKey:          "ABC-1",
				IsActive:          true,
				Category:          "chores",
				RepeatGoalEnabled: true,
				DaysRepeat:        7,
				History:           []string{"2024-01-01", "2024-01-08", "2024-02-01"},
			},
		},
		{
			name:    "empty issue key",
			meta:    Metadata{},
			wantErr: true,
		},
		{
			name:    "negative repeat interval",
			meta:    Metadata{IssueKey: "ABC-1", DaysRepeat: -1},
			wantErr: true,
		},
		{
			name:    "category too long",
			meta:    Metadata{IssueKey: "ABC-1", Category: strings.Repeat("x", 101)},
			wantErr: true,
		},
		{
			name:    "malformed history entry",
			meta:    Metadata{IssueKey: "ABC-1", History: []string{"2024-13-01"}},
			wantErr: true,
		},
		{
			name:    "unsorted history",
			meta:    Metadata{IssueKey: "ABC-1", History: []string{"2024-02-01", "2024-01-01"}},
			wantErr: true,
		},
		{
			name:    "duplicate history entries",
			meta:    Metadata{IssueKey: "ABC-1", History: []string{"2024-01-01", "2024-01-01"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidationFailed) {
					t.Errorf("Validate() = %v, want ErrValidationFailed", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

func TestAddDone(t *testing.T) {
	m := Metadata{IssueKey: "ABC-1", History: []string{"2024-01-10"}}

	if !m.AddDone("2024-01-05") {
		t.Fatal("AddDone of a new date returned false")
	}
	if !reflect.DeepEqual(m.History, []string{"2024-01-05", "2024-01-10"}) {
		t.Errorf("history = %v, want sorted insert", m.History)
	}

	// Second insert of the same date must be a no-op.
	if m.AddDone("2024-01-05") {
		t.Error("AddDone of an existing date returned true")
	}
	if len(m.History) != 2 {
		t.Errorf("history length = %d after duplicate insert, want 2", len(m.History))
	}
}

func TestRemoveDone(t *testing.T) {
	m := Metadata{IssueKey: "ABC-1", History: []string{"2024-01-05", "2024-01-10"}}

	if m.RemoveDone("2024-01-07") {
		t.Error("RemoveDone of an absent date returned true")
	}
	if !m.RemoveDone("2024-01-05") {
		t.Fatal("RemoveDone of a present date returned false")
	}
	if !reflect.DeepEqual(m.History, []string{"2024-01-10"}) {
		t.Errorf("history = %v, want [2024-01-10]", m.History)
	}
}

func TestAddThenRemoveRestoresHistory(t *testing.T) {
	orig := []string{"2024-01-01", "2024-03-01"}
	m := Metadata{IssueKey: "ABC-1", History: append([]string(nil), orig...)}

	m.AddDone("2024-02-01")
	m.RemoveDone("2024-02-01")

	if !reflect.DeepEqual(m.History, orig) {
		t.Errorf("history = %v, want %v restored", m.History, orig)
	}
}

func TestApplyPatch(t *testing.T) {
	category := "errands"
	days := 14
	enabled := true

	m := Metadata{
		IssueKey:   "ABC-1",
		IsActive:   true,
		Category:   "old",
		DaysRepeat: 7,
		History:    []string{"2024-01-01"},
	}

	// Partial patch: only category changes.
	m.Apply(SettingsPatch{Category: &category})
	if m.Category != "errands" {
		t.Errorf("Category = %q, want %q", m.Category, "errands")
	}
	if m.DaysRepeat != 7 || m.RepeatGoalEnabled {
		t.Error("fields absent from patch were modified")
	}

	// Full patch, with history re-sorted on the way in.
	m.Apply(SettingsPatch{
		DaysRepeat:        &days,
		RepeatGoalEnabled: &enabled,
		History:           []string{"2024-02-01", "2024-01-15"},
	})
	if m.DaysRepeat != 14 || !m.RepeatGoalEnabled {
		t.Error("patched fields not applied")
	}
	if !reflect.DeepEqual(m.History, []string{"2024-01-15", "2024-02-01"}) {
		t.Errorf("history = %v, want sorted replacement", m.History)
	}
}

func TestApplyPatch_NilLeavesUntouched(t *testing.T) {
	m := Metadata{IssueKey: "ABC-1", Category: "keep", DaysRepeat: 3, History: []string{"2024-01-01"}}
	m.Apply(SettingsPatch{})
	if m.Category != "keep" || m.DaysRepeat != 3 || len(m.History) != 1 {
		t.Errorf("empty patch modified record: %+v", m)
	}
}
