package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

const (
	exportSheet       = "Tasks"
	exportMaxWidth    = 50
	exportWidthPad    = 4
	exportCreatedAt   = "2006-01-02 15:04"
	exportStampLayout = "20060102_150405"

	// ExcelContentType is the MIME type of an .xlsx workbook.
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportCoreHeaders = []string{
	"ID", "Task Name", "Description", "Owner", "Email",
	"Start Date", "Due Date", "Status", "Priority",
}

// ExportFilter narrows an export. Zero values mean no constraint.
type ExportFilter struct {
	IDs      []int64
	Status   string
	Priority string
	Owner    string
}

// Workbook is a rendered export ready to stream.
type Workbook struct {
	Filename string
	Body     *bytes.Buffer
}

type ExportService struct {
	Store store.Store
	Now   Clock
}

// Excel renders the user's tasks, newest first, as a single sheet.
func (s *ExportService) Excel(ctx context.Context, userID int64, f ExportFilter) (Workbook, error) {
	log := slogx.FromContext(ctx)

	tasks, err := s.Store.Tasks().ListTasks(ctx, userID, domain.TaskFilter{
		IDs:      f.IDs,
		Status:   domain.TaskStatus(f.Status),
		Priority: domain.TaskPriority(f.Priority),
		Owner:    f.Owner,
		SortBy:   domain.SortCreatedAt,
		Desc:     true,
	})
	if err != nil {
		return Workbook{}, err
	}

	cols, err := s.Store.Columns().ListVisibleCustomColumns(ctx, userID)
	if err != nil {
		return Workbook{}, err
	}

	header := make([]any, 0, len(exportCoreHeaders)+len(cols)+1)
	for _, h := range exportCoreHeaders {
		header = append(header, h)
	}
	for _, c := range cols {
		header = append(header, c.DisplayName)
	}
	header = append(header, "Created At")

	rows := make([][]any, 0, len(tasks))
	for _, t := range tasks {
		row := []any{
			t.ID, t.TaskName, deref(t.Description), deref(t.Owner), deref(t.Email),
			deref(t.StartDate), deref(t.DueDate), string(t.Status), string(t.Priority),
		}
		for _, c := range cols {
			row = append(row, cellValue(t.CustomFields[c.FieldKey]))
		}
		row = append(row, t.CreatedAt.Format(exportCreatedAt))
		rows = append(rows, row)
	}

	body, err := renderSheet(header, rows)
	if err != nil {
		log.Error("failed to render export", slog.Int64("user_id", userID), slog.Any("error", err))
		return Workbook{}, err
	}

	log.Info("tasks exported", slog.Int64("user_id", userID), slog.Int("rows", len(rows)))
	return Workbook{
		Filename: "taskme_export_" + s.Now.now().Format(exportStampLayout) + ".xlsx",
		Body:     body,
	}, nil
}

func renderSheet(header []any, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
		return nil, err
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = cellWidth(h)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
		for i, v := range row {
			widths[i] = max(widths[i], cellWidth(v))
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, float64(min(w+exportWidthPad, exportMaxWidth))); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cellValue keeps scalars as they are and flattens anything else to JSON.
func cellValue(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case string, bool, float64:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

func cellWidth(v any) int {
	switch v := v.(type) {
	case string:
		return utf8.RuneCountInString(v)
	case int64:
		return len(strconv.FormatInt(v, 10))
	default:
		return utf8.RuneCountInString(fmt.Sprint(v))
	}
}
