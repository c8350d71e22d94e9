package domain

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// UserID is the compact numeric identifier assigned once per account and used
// as the owner foreign key on every Medicine, Reminder and HistoryEvent.
// It is produced only by the identity resolver; external provider ids stay
// plain strings so the two can never be compared by accident.
type UserID int64

// RepeatMode tags the recurrence policy of a reminder.
type RepeatMode string

const (
	RepeatDaily    RepeatMode = "daily"
	RepeatWeekdays RepeatMode = "weekdays"
	RepeatCustom   RepeatMode = "custom"
	RepeatOnce     RepeatMode = "once"
)

// Status of a logged dose event.
type Status string

const (
	StatusTaken    Status = "taken"
	StatusRejected Status = "rejected"
	StatusMissed   Status = "missed"
)

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	Owner() UserID
}

// User represents an account issued by the external identity provider.
// NumericID is zero until the resolver assigns one.
type User struct {
	gorm.Model
	ExternalID string `gorm:"uniqueIndex"`
	NumericID  UserID `gorm:"uniqueIndex;default:0"`
	Username   string
	Email      string
	AvatarURL  string `gorm:"default:preset_0"`
}

// Medicine represents a medicine registered by a user.
// Start and expiry are calendar dates ("2006-01-02"); the core does not
// enforce start <= expiry, the caller owns that.
type Medicine struct {
	gorm.Model
	UserID      UserID `gorm:"index"`
	Name        string
	Description string
	Usage       string
	StartDate   string
	ExpiryDate  string
}

func (m Medicine) Owner() UserID { return m.UserID }

// Reminder represents a recurring medication reminder.
type Reminder struct {
	gorm.Model
	UserID        UserID `gorm:"index"`
	MedicineID    *uint
	MedicineName  string
	Description   string
	RepeatEnabled bool
	RepeatMode    RepeatMode
	CustomDays    IntList    `gorm:"type:text"`
	Times         StringList `gorm:"type:text"`
	Enabled       bool
	SelectedDate  string
}

func (r Reminder) Owner() UserID { return r.UserID }

// HistoryEvent is one entry of the append-only dose ledger. Events are only
// ever created or deleted, never updated.
type HistoryEvent struct {
	gorm.Model
	UserID        UserID `gorm:"index"`
	ReminderID    *uint
	MedicineName  string
	ScheduledTime string
	Status        Status
	// Timestamp is a zero-padded UTC RFC3339 string so that lexicographic
	// order matches chronological order.
	Timestamp string
}

func (h HistoryEvent) Owner() UserID { return h.UserID }

// IntList stores a set of weekday indexes (Monday = 0 .. Sunday = 6) as a
// comma-joined column. Decoding happens here, at the storage boundary, so the
// rest of the code only ever sees []int.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ","), nil
}

func (l *IntList) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	*l = nil
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid int list element %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

// StringList stores an ordered list of "HH:MM" times as a comma-joined column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	*l = nil
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		*l = append(*l, strings.TrimSpace(part))
	}
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported column type %T", src)
	}
}
