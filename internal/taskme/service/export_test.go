package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

func TestExportExcel(t *testing.T) {
	st := newTestStore(t)
	u := newUser(t, st, "alice")
	bob := newUser(t, st, "bob")
	ctx := context.Background()

	cols := &ColumnService{Store: st}
	_, err := cols.Create(ctx, u.ID, taskmesdk.ColumnCreate{DisplayName: "Team", FieldType: "select", Options: json.RawMessage(`["Red","Blue"]`)})
	require.NoError(t, err)
	_, err = cols.Create(ctx, u.ID, taskmesdk.ColumnCreate{DisplayName: "Points", FieldType: "number"})
	require.NoError(t, err)

	tasks := &TaskService{Store: st}
	created, err := tasks.CreateMany(ctx, u.ID, []taskmesdk.TaskCreate{
		{TaskName: "open", Description: strp(strings.Repeat("d", 80))},
		{TaskName: "finished", Status: "Done", CustomFields: json.RawMessage(`{"cf_team":"Red","cf_points":3}`)},
	})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, bob.ID, taskmesdk.TaskCreate{TaskName: "bob done", Status: "Done"})
	require.NoError(t, err)

	now := time.Date(2025, 7, 9, 14, 3, 5, 0, time.UTC)
	svc := &ExportService{Store: st, Now: fixedClock(now)}

	open := func(t *testing.T, wb Workbook) *excelize.File {
		t.Helper()
		f, err := excelize.OpenReader(wb.Body)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		require.Equal(t, []string{"Tasks"}, f.GetSheetList())
		return f
	}

	wantHeader := []string{
		"ID", "Task Name", "Description", "Owner", "Email", "Start Date",
		"Due Date", "Status", "Priority", "Team", "Points", "Created At",
	}

	t.Run("status filter", func(t *testing.T) {
		wb, err := svc.Excel(ctx, u.ID, ExportFilter{Status: "Done"})
		require.NoError(t, err)
		require.Equal(t, "taskme_export_20250709_140305.xlsx", wb.Filename)

		rows, err := open(t, wb).GetRows("Tasks")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, wantHeader, rows[0])

		row := rows[1]
		require.Equal(t, strconv.FormatInt(created[1].ID, 10), row[0])
		require.Equal(t, "finished", row[1])
		require.Equal(t, "Done", row[7])
		require.Equal(t, "Red", row[9])
		require.Equal(t, "3", row[10])
		require.Equal(t, created[1].CreatedAt.Format("2006-01-02 15:04"), row[11])
	})

	t.Run("header style and widths", func(t *testing.T) {
		wb, err := svc.Excel(ctx, u.ID, ExportFilter{})
		require.NoError(t, err)
		f := open(t, wb)

		rows, err := f.GetRows("Tasks")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		styleID, err := f.GetCellStyle("Tasks", "A1")
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.True(t, style.Font.Bold)

		w, err := f.GetColWidth("Tasks", "A")
		require.NoError(t, err)
		require.Equal(t, float64(6), w)

		w, err = f.GetColWidth("Tasks", "C")
		require.NoError(t, err)
		require.Equal(t, float64(50), w)
	})

	t.Run("id filter", func(t *testing.T) {
		wb, err := svc.Excel(ctx, u.ID, ExportFilter{IDs: []int64{created[0].ID}})
		require.NoError(t, err)

		rows, err := open(t, wb).GetRows("Tasks")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "open", rows[1][1])
	})
}
