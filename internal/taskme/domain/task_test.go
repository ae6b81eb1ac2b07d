package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/stretchr/testify/require"
)

func TestCustomFieldsMerge(t *testing.T) {
	prior := domain.CustomFields{"cf_team": "Red", "cf_size": float64(3)}
	update := domain.CustomFields{"cf_size": float64(5), "cf_priority_note": "urgent"}

	got := prior.Merge(update)
	require.Equal(t, domain.CustomFields{
		"cf_team":          "Red",
		"cf_size":          float64(5),
		"cf_priority_note": "urgent",
	}, got)

	// inputs untouched
	require.Equal(t, float64(3), prior["cf_size"])
	require.NotContains(t, prior, "cf_priority_note")

	t.Run("nil prior", func(t *testing.T) {
		var none domain.CustomFields
		require.Equal(t, update, none.Merge(update))
	})
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		sortBy, order string
		wantField     string
		wantDesc      bool
	}{
		{"due_date", "asc", "due_date", false},
		{"due_date", "desc", "due_date", true},
		{"priority", "", "priority", true},
		{"password_hash", "asc", "created_at", true},
		{"id; DROP TABLE tasks", "asc", "created_at", true},
		{"", "asc", "created_at", true},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+"/"+tt.order, func(t *testing.T) {
			var f domain.TaskFilter
			f.NormalizeSort(tt.sortBy, tt.order)
			require.Equal(t, tt.wantField, f.SortBy)
			require.Equal(t, tt.wantDesc, f.Desc)
		})
	}
}

func TestCoreColumns(t *testing.T) {
	cols := domain.CoreColumns(3)
	require.Len(t, cols, 8)

	for i, c := range cols {
		require.Equal(t, i, c.Position)
		require.Equal(t, int64(3), c.UserID)
		require.True(t, c.IsCore)
		require.True(t, c.IsVisible)
	}

	require.Equal(t, []string{"To Do", "In Progress", "Done", "Blocked"}, cols[6].Options)
	require.Equal(t, []string{"Low", "Medium", "High", "Critical"}, cols[7].Options)
	require.True(t, domain.IsProtectedColumn("status"))
	require.False(t, domain.IsProtectedColumn("owner"))
}

func TestSharedListExpired(t *testing.T) {
	now := time.Now()
	s := domain.SharedList{ExpiresAt: now}
	require.False(t, s.Expired(now))
	require.True(t, s.Expired(now.Add(time.Second)))
}
