package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrCoreColumnDelete = errors.New("cannot delete core column")
)

const maxDisplayName = 100

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a custom field key.
func Slugify(displayName string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(displayName)), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "field"
	}
	return domain.CustomFieldPrefix + s
}

type ColumnService struct {
	Store store.Store
}

// parseOptions decodes an options payload into a list of strings.
func parseOptions(raw json.RawMessage) ([]string, bool, error) {
	inner, err := unwrapJSONString(raw)
	if err != nil {
		return nil, true, err
	}
	if inner == nil {
		return nil, false, nil
	}

	var opts []string
	if err := json.Unmarshal(inner, &opts); err != nil {
		return nil, true, err
	}
	return opts, true, nil
}

func (s *ColumnService) List(ctx context.Context, userID int64) ([]domain.ColumnConfig, error) {
	return s.Store.Columns().ListColumns(ctx, userID)
}

// Create adds a custom column at the end of the user's grid.
func (s *ColumnService) Create(ctx context.Context, userID int64, req taskmesdk.ColumnCreate) (domain.ColumnConfig, error) {
	log := slogx.FromContext(ctx)

	name := strings.TrimSpace(req.DisplayName)
	if name == "" || len([]rune(name)) > maxDisplayName {
		return domain.ColumnConfig{}, invalid("display_name", "Display name must be between 1 and 100 characters")
	}

	ft := domain.FieldType(strings.TrimSpace(req.FieldType))
	if ft == "" {
		ft = domain.FieldText
	}
	if !ft.Valid() {
		return domain.ColumnConfig{}, invalid("field_type", "Invalid field_type. Must be one of: text, number, date, select")
	}

	var options []string
	if ft == domain.FieldSelect {
		opts, present, err := parseOptions(req.Options)
		if !present {
			return domain.ColumnConfig{}, invalid("options", "Select type requires options (JSON array)")
		}
		if err != nil || len(opts) == 0 {
			return domain.ColumnConfig{}, invalid("options", "Options must be a non-empty JSON array of strings")
		}
		options = opts
	}

	col := domain.ColumnConfig{
		UserID:      userID,
		DisplayName: name,
		FieldType:   ft,
		IsVisible:   true,
		Options:     options,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		key, err := uniqueFieldKey(ctx, tx, userID, Slugify(name))
		if err != nil {
			return err
		}
		col.FieldKey = key

		maxPos, err := tx.Columns().MaxPosition(ctx, userID)
		if err != nil {
			return err
		}
		col.Position = maxPos + 1

		return tx.Columns().CreateColumn(ctx, &col)
	})
	if err != nil {
		log.Error("failed to create column", slog.Int64("user_id", userID), slog.Any("error", err))
		return domain.ColumnConfig{}, err
	}

	log.Info("column created", slog.Int64("user_id", userID), slog.String("field_key", col.FieldKey))
	return col, nil
}

// uniqueFieldKey appends _2, _3, ... until base is free for the user. The
// unique index still guards against a concurrent insert.
func uniqueFieldKey(ctx context.Context, st store.Store, userID int64, base string) (string, error) {
	key := base
	for n := 2; ; n++ {
		exists, err := st.Columns().FieldKeyExists(ctx, userID, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
		key = fmt.Sprintf("%s_%d", base, n)
	}
}

// Update applies a partial update to one of the user's columns.
func (s *ColumnService) Update(ctx context.Context, userID, id int64, req taskmesdk.ColumnUpdate) (domain.ColumnConfig, error) {
	col, err := s.Store.Columns().GetColumn(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ColumnConfig{}, ErrColumnNotFound
		}
		return domain.ColumnConfig{}, err
	}

	if req.IsVisible != nil && !*req.IsVisible && domain.IsProtectedColumn(col.FieldKey) {
		return domain.ColumnConfig{}, &ValidationError{
			Field:   "is_visible",
			Message: fmt.Sprintf("Cannot hide '%s' column", col.DisplayName),
		}
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" || len([]rune(name)) > maxDisplayName {
			return domain.ColumnConfig{}, invalid("display_name", "Display name must be between 1 and 100 characters")
		}
		col.DisplayName = name
	}
	if req.Position != nil {
		col.Position = *req.Position
	}
	if req.IsVisible != nil {
		col.IsVisible = *req.IsVisible
	}
	if col.FieldType == domain.FieldSelect && len(req.Options) > 0 {
		opts, present, err := parseOptions(req.Options)
		if err != nil {
			return domain.ColumnConfig{}, invalid("options", "Options must be a JSON array")
		}
		if present {
			col.Options = opts
		}
	}

	if err := s.Store.Columns().UpdateColumn(ctx, &col); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ColumnConfig{}, ErrColumnNotFound
		}
		return domain.ColumnConfig{}, err
	}
	return col, nil
}

// Reorder applies the given positions. Ids the user does not own are
// skipped. Returns the full ordered list.
func (s *ColumnService) Reorder(ctx context.Context, userID int64, items []taskmesdk.ColumnPosition) ([]domain.ColumnConfig, error) {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, it := range items {
			err := tx.Columns().UpdatePosition(ctx, userID, it.ID, it.Position)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Store.Columns().ListColumns(ctx, userID)
}

func (s *ColumnService) Delete(ctx context.Context, userID, id int64) error {
	col, err := s.Store.Columns().GetColumn(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrColumnNotFound
		}
		return err
	}
	if col.IsCore {
		return ErrCoreColumnDelete
	}

	if err := s.Store.Columns().DeleteColumn(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrColumnNotFound
		}
		return err
	}
	return nil
}

// SeedCoreColumns inserts whichever core columns the user is missing and
// reports how many were added.
func SeedCoreColumns(ctx context.Context, st store.Store, userID int64) (int, error) {
	existing, err := st.Columns().ListColumns(ctx, userID)
	if err != nil {
		return 0, err
	}

	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.FieldKey] = struct{}{}
	}

	added := 0
	for _, c := range domain.CoreColumns(userID) {
		if _, ok := have[c.FieldKey]; ok {
			continue
		}
		if err := st.Columns().CreateColumn(ctx, &c); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
