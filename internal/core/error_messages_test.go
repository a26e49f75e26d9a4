package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/dblibsync/internal/schema"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing required fields",
			err:      &schema.ValidationError{Category: "Caps", Missing: []string{"Description"}},
			wantCode: "SCH001",
		},
		{
			name:     "empty header",
			err:      &schema.ValidationError{Category: "Caps", EmptyColumns: []int{3}},
			wantCode: "SCH002",
		},
		{
			name:     "collision",
			err:      &schema.CollisionError{Category: "Caps", StorageName: "foo_bar", DisplayNames: []string{"Foo Bar", "foo_bar"}},
			wantCode: "SCH003",
		},
		{
			name:     "sync in progress",
			err:      ErrSyncInProgress,
			wantCode: "SYNC001",
		},
		{
			name:     "cancelled sync",
			err:      fmt.Errorf("read spreadsheet: %w", context.Canceled),
			wantCode: "SYNC002",
		},
		{
			name:     "sync timeout wins over database timeout",
			err:      fmt.Errorf("insert components: %w", context.DeadlineExceeded),
			wantCode: "SYNC003",
		},
		{
			name:     "sheet not found",
			err:      errors.New("read spreadsheet metadata: googleapi: Error 404: Requested entity was not found., notFound"),
			wantCode: "SHEET002",
		},
		{
			name:     "sheet forbidden",
			err:      errors.New("googleapi: Error 403: The caller does not have permission, forbidden"),
			wantCode: "SHEET003",
		},
		{
			name:     "mysql access denied",
			err:      errors.New("Error 1045 (28000): Access denied for user 'lib'@'10.0.0.2'"),
			wantCode: "DB001",
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"),
			wantCode: "DB003",
		},
		{
			name:     "mysql unknown database",
			err:      errors.New("Error 1049 (42000): Unknown database 'parts'"),
			wantCode: "DB002",
		},
		{
			name:     "postgres unknown database",
			err:      errors.New(`failed to connect to host=db user=lib database=parts: FATAL: database "parts" does not exist (SQLSTATE 3D000)`),
			wantCode: "DB002",
		},
		{
			name:     "postgres missing relation is not a missing database",
			err:      errors.New(`create table "Caps": ERROR: relation "Caps" does not exist (SQLSTATE 42P01)`),
			wantCode: "ERR000",
		},
		{
			name:     "duplicate column is not reported as a duplicate component",
			err:      errors.New("Error 1060 (42S21): Duplicate column name 'value'"),
			wantCode: "ERR000",
		},
		{
			name:     "long link header",
			err:      errors.New(`category "Caps": link header(s) longer than 255 characters: xxx`),
			wantCode: "SCH005",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrSyncInProgress)
	want := "Another sync is already running (Code: SYNC001). Wait for it to finish and check the sync status"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrSyncInProgress, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
