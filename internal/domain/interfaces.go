package domain

import (
	"context"
)

// Window is an optional inclusive date range applied to event timestamps.
// Bounds are ISO-8601 strings compared lexicographically; an empty bound is
// unbounded on that side.
type Window struct {
	Start string
	End   string
}

// Contains reports whether the timestamp falls inside the window.
func (w Window) Contains(timestamp string) bool {
	if w.Start != "" && timestamp < w.Start {
		return false
	}
	if w.End != "" && timestamp > w.End {
		return false
	}
	return true
}

// Stats summarizes a user's adherence over a window of history events.
type Stats struct {
	Total         int     `json:"total"`
	Taken         int     `json:"taken"`
	Rejected      int     `json:"rejected"`
	Missed        int     `json:"missed"`
	AdherenceRate float64 `json:"adherenceRate"`
}

// MedicineInput carries the caller-editable fields of a medicine.
type MedicineInput struct {
	Name        string
	Description string
	Usage       string
	StartDate   string
	ExpiryDate  string
}

// ReminderInput carries the caller-editable fields of a reminder.
type ReminderInput struct {
	MedicineID    *uint
	MedicineName  string
	Description   string
	RepeatEnabled bool
	RepeatMode    RepeatMode
	CustomDays    []int
	Times         []string
	Enabled       bool
	SelectedDate  string
}

// HistoryInput carries the fields of a new dose event.
type HistoryInput struct {
	ReminderID    *uint
	MedicineName  string
	ScheduledTime string
	Status        Status
	Timestamp     string
}

// IdentityResolver maps an external account id to its numeric id, assigning
// one on first use. Resolution is idempotent: once assigned, every call
// returns the same value.
type IdentityResolver interface {
	Resolve(ctx context.Context, externalID string) (UserID, error)
}

// UserService handles account records.
type UserService interface {
	Register(ctx context.Context, externalID, username, email string) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	UpdateAvatar(ctx context.Context, externalID, avatarURL string) error
}

// MedicineService handles medicine records, owner-gated.
type MedicineService interface {
	List(ctx context.Context, externalID string) ([]Medicine, error)
	Create(ctx context.Context, externalID string, input MedicineInput) (*Medicine, error)
	Update(ctx context.Context, externalID string, id uint, input MedicineInput) error
	Delete(ctx context.Context, externalID string, id uint) error
}

// ReminderService handles reminder records and schedule queries, owner-gated.
type ReminderService interface {
	List(ctx context.Context, externalID string) ([]Reminder, error)
	ListDueToday(ctx context.Context, externalID string) ([]Reminder, error)
	Create(ctx context.Context, externalID string, input ReminderInput) (*Reminder, error)
	Update(ctx context.Context, externalID string, id uint, input ReminderInput) error
	Delete(ctx context.Context, externalID string, id uint) error
	Toggle(ctx context.Context, externalID string, id uint) (bool, error)
}

// HistoryService handles the dose ledger and adherence statistics.
type HistoryService interface {
	Add(ctx context.Context, externalID string, input HistoryInput) (*HistoryEvent, error)
	List(ctx context.Context, externalID string, window Window) ([]HistoryEvent, error)
	Stats(ctx context.Context, externalID string, window Window) (Stats, error)
	Delete(ctx context.Context, externalID string, id uint) error
}
