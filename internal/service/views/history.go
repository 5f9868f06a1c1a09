package views

import (
	"sort"
	"strings"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	SortCheckIn  = "checkIn"
	SortCheckOut = "checkOut"
	SortTotal    = "total"
	SortGuest    = "guest"
	SortStatus   = "status"
)

// HistoryQuery selects reservations. Zero From/To leave that side of the
// date range open; a stay matches when it overlaps the range.
type HistoryQuery struct {
	Statuses []domain.ReservationStatus
	From     time.Time
	To       time.Time
	Search   string
	SortBy   string
	Desc     bool
	Page     int
	PageSize int
}

type HistoryPage struct {
	Rows     []Row `json:"rows"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Pages    int   `json:"pages"`
}

func (q *HistoryQuery) normalize() error {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = SortCheckIn
	}
	if _, ok := sorters[q.SortBy]; !ok {
		return domain.NewValidationError("sort", "unknown sort field "+q.SortBy)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return domain.NewValidationError("to", "must not be before from")
	}
	q.Search = strings.ToLower(strings.TrimSpace(q.Search))
	return nil
}

var sorters = map[string]func(a, b Row) int{
	SortCheckIn:  func(a, b Row) int { return a.CheckIn.Compare(b.CheckIn) },
	SortCheckOut: func(a, b Row) int { return a.CheckOut.Compare(b.CheckOut) },
	SortTotal:    func(a, b Row) int { return cmpInt(int64(a.TotalAmount), int64(b.TotalAmount)) },
	SortGuest:    func(a, b Row) int { return strings.Compare(strings.ToLower(a.GuestName), strings.ToLower(b.GuestName)) },
	SortStatus:   func(a, b Row) int { return strings.Compare(string(a.Status), string(b.Status)) },
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Filter returns every row matching q, sorted, without paging.
func Filter(snap state.Snapshot, q HistoryQuery) ([]Row, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}
	return filter(snap, q), nil
}

func filter(snap state.Snapshot, q HistoryQuery) []Row {
	ix := newIndex(snap)

	statuses := make(map[domain.ReservationStatus]bool, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses[s] = true
	}

	rows := []Row{}
	for _, r := range snap.Reservations {
		if len(statuses) > 0 && !statuses[r.Status] {
			continue
		}
		if !q.To.IsZero() && r.CheckIn.After(q.To) {
			continue
		}
		if !q.From.IsZero() && r.CheckOut.Before(q.From) {
			continue
		}
		row := ix.row(r)
		if q.Search != "" && !matches(row, q.Search) {
			continue
		}
		rows = append(rows, row)
	}

	less := sorters[q.SortBy]
	sort.SliceStable(rows, func(i, j int) bool {
		c := less(rows[i], rows[j])
		if q.Desc {
			return c > 0
		}
		return c < 0
	})
	return rows
}

func matches(row Row, needle string) bool {
	for _, hay := range []string{row.GuestName, row.RoomNumber, row.ReservationID} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// History returns one page of the rows matching q.
func History(snap state.Snapshot, q HistoryQuery) (HistoryPage, error) {
	if err := q.normalize(); err != nil {
		return HistoryPage{}, err
	}
	rows := filter(snap, q)

	page := HistoryPage{
		Total:    len(rows),
		Page:     q.Page,
		PageSize: q.PageSize,
		Pages:    (len(rows) + q.PageSize - 1) / q.PageSize,
	}
	start := (q.Page - 1) * q.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + q.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	page.Rows = rows[start:end]
	return page, nil
}

type Detail struct {
	Row
	Notes string               `json:"notes"`
	Audit []domain.AuditRecord `json:"audit"`
}

func ReservationDetail(snap state.Snapshot, id string) (Detail, error) {
	r, err := snap.Reservation(id)
	if err != nil {
		return Detail{}, err
	}
	audit := snap.AuditFor(id)
	if audit == nil {
		audit = []domain.AuditRecord{}
	}
	return Detail{Row: newIndex(snap).row(r), Notes: r.Notes, Audit: audit}, nil
}
