package food

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Log visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// EpochMillis wraps time.Time to serialize as epoch milliseconds in JSON while
// scanning from PostgreSQL timestamptz columns.
type EpochMillis struct{ time.Time }

// FromMillis converts epoch milliseconds to an EpochMillis.
func FromMillis(ms int64) EpochMillis {
	return EpochMillis{time.UnixMilli(ms)}
}

func (e EpochMillis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(e.UnixMilli(), 10)), nil
}

func (e *EpochMillis) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	e.Time = time.UnixMilli(ms)
	return nil
}

// ScanTimestamptz implements pgtype.TimestamptzScanner. NULL zeroes the time.
func (e *EpochMillis) ScanTimestamptz(v pgtype.Timestamptz) error {
	if !v.Valid {
		e.Time = time.Time{}
		return nil
	}
	e.Time = v.Time
	return nil
}

// Log maps to meal_logs: one user eating one menu item at one point in time.
// Quantity is nullable for legacy rows; use Qty to read it.
type Log struct {
	ID         string      `json:"id"         db:"id"`
	UserID     int         `json:"user_id"    db:"user_id"`
	MenuID     string      `json:"menu_id"    db:"menu_id"`
	Faculty    string      `json:"faculty"    db:"faculty"`
	Visibility string      `json:"visibility" db:"visibility"`
	Quantity   *int        `json:"quantity"   db:"quantity"`
	Timestamp  EpochMillis `json:"timestamp"  db:"logged_at"`
}

// Qty returns the logged quantity, treating a missing or zero quantity as 1.
// Negative values pass through unchanged.
func (l Log) Qty() int {
	if l.Quantity == nil || *l.Quantity == 0 {
		return 1
	}
	return *l.Quantity
}

// IsPublic reports whether the log is visible on shared boards.
func (l Log) IsPublic() bool {
	return l.Visibility == VisibilityPublic
}

// Entry pairs a log with its resolved menu. Menu is nil when the reference
// could not be resolved against the catalog.
type Entry struct {
	Log  Log
	Menu *Menu
}

// Resolve joins logs to menus by id. Unresolvable logs keep a nil Menu.
func Resolve(logs []Log, idx map[string]Menu) []Entry {
	entries := make([]Entry, 0, len(logs))
	for _, l := range logs {
		e := Entry{Log: l}
		if m, ok := idx[l.MenuID]; ok {
			e.Menu = &m
		}
		entries = append(entries, e)
	}
	return entries
}
