package sqlite

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
)

type userRow struct {
	ID                    int64 `gorm:"primaryKey"`
	Username              string
	Email                 string
	PasswordHash          string
	EmailVerified         bool
	VerificationTokenHash *string
	VerificationExpiresAt *time.Time
	CreatedAt             time.Time
}

func (userRow) TableName() string { return "users" }

type taskRow struct {
	ID           int64 `gorm:"primaryKey"`
	UserID       *int64
	TaskName     string
	Description  *string
	Owner        *string
	Email        *string
	StartDate    *string
	DueDate      *string
	Status       string
	Priority     string
	CustomFields *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (taskRow) TableName() string { return "tasks" }

type columnRow struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      *int64
	FieldKey    string
	DisplayName string
	FieldType   string
	Position    int
	IsVisible   bool
	IsCore      bool
	IsRequired  bool
	Options     *string
}

func (columnRow) TableName() string { return "column_configs" }

type sharedListRow struct {
	ID        int64 `gorm:"primaryKey"`
	UserID    *int64
	TokenHash string
	TaskIDs   string `gorm:"column:task_ids"`
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (sharedListRow) TableName() string { return "shared_lists" }

func ownerID(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func ownerPtr(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:                    row.ID,
		Username:              row.Username,
		Email:                 row.Email,
		PasswordHash:          row.PasswordHash,
		EmailVerified:         row.EmailVerified,
		VerificationTokenHash: row.VerificationTokenHash,
		VerificationExpiresAt: utcPtr(row.VerificationExpiresAt),
		CreatedAt:             row.CreatedAt.UTC(),
	}
}

func toUserRow(u *domain.User) userRow {
	return userRow{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		EmailVerified:         u.EmailVerified,
		VerificationTokenHash: u.VerificationTokenHash,
		VerificationExpiresAt: utcPtr(u.VerificationExpiresAt),
		CreatedAt:             u.CreatedAt,
	}
}

// mapTask decodes custom_fields leniently: legacy rows with malformed JSON
// read as having no custom fields.
func mapTask(row taskRow) domain.Task {
	var cf domain.CustomFields
	if row.CustomFields != nil && *row.CustomFields != "" {
		if err := json.Unmarshal([]byte(*row.CustomFields), &cf); err != nil {
			cf = nil
		}
	}

	return domain.Task{
		ID:           row.ID,
		UserID:       ownerID(row.UserID),
		TaskName:     row.TaskName,
		Description:  row.Description,
		Owner:        row.Owner,
		Email:        row.Email,
		StartDate:    row.StartDate,
		DueDate:      row.DueDate,
		Status:       domain.TaskStatus(row.Status),
		Priority:     domain.TaskPriority(row.Priority),
		CustomFields: cf,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

func toTaskRow(t *domain.Task) taskRow {
	var cf *string
	if t.CustomFields != nil {
		s := t.CustomFields.String()
		cf = &s
	}

	return taskRow{
		ID:           t.ID,
		UserID:       ownerPtr(t.UserID),
		TaskName:     t.TaskName,
		Description:  t.Description,
		Owner:        t.Owner,
		Email:        t.Email,
		StartDate:    t.StartDate,
		DueDate:      t.DueDate,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		CustomFields: cf,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func mapColumn(row columnRow) domain.ColumnConfig {
	var opts []string
	if row.Options != nil && *row.Options != "" {
		if err := json.Unmarshal([]byte(*row.Options), &opts); err != nil {
			opts = nil
		}
	}

	return domain.ColumnConfig{
		ID:          row.ID,
		UserID:      ownerID(row.UserID),
		FieldKey:    row.FieldKey,
		DisplayName: row.DisplayName,
		FieldType:   domain.FieldType(row.FieldType),
		Position:    row.Position,
		IsVisible:   row.IsVisible,
		IsCore:      row.IsCore,
		IsRequired:  row.IsRequired,
		Options:     opts,
	}
}

func toColumnRow(c *domain.ColumnConfig) (columnRow, error) {
	var opts *string
	if c.Options != nil {
		b, err := json.Marshal(c.Options)
		if err != nil {
			return columnRow{}, err
		}
		s := string(b)
		opts = &s
	}

	return columnRow{
		ID:          c.ID,
		UserID:      ownerPtr(c.UserID),
		FieldKey:    c.FieldKey,
		DisplayName: c.DisplayName,
		FieldType:   string(c.FieldType),
		Position:    c.Position,
		IsVisible:   c.IsVisible,
		IsCore:      c.IsCore,
		IsRequired:  c.IsRequired,
		Options:     opts,
	}, nil
}

func mapSharedList(row sharedListRow) (domain.SharedList, error) {
	var ids []int64
	if err := json.Unmarshal([]byte(row.TaskIDs), &ids); err != nil {
		return domain.SharedList{}, err
	}

	return domain.SharedList{
		ID:        row.ID,
		UserID:    ownerID(row.UserID),
		TokenHash: row.TokenHash,
		TaskIDs:   ids,
		CreatedAt: row.CreatedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
