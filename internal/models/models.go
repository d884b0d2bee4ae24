package models

import "time"

// Setter is the person (or automated process) responsible for booking a meeting.
type Setter string

const (
	SetterDaniela Setter = "Daniela"
	SetterTeresa  Setter = "Teresa"
	SetterMatias  Setter = "Matias"
	SetterRobot   Setter = "Robot"
)

// AllSetters returns the fixed set of setters in reporting order.
func AllSetters() []Setter {
	return []Setter{SetterDaniela, SetterTeresa, SetterMatias, SetterRobot}
}

// RawEvent is one VEVENT as it comes off the public calendar feed.
// No ordering or dedup is guaranteed by the feed.
type RawEvent struct {
	Title  string
	Start  time.Time
	AllDay bool
	Color  string // Google color code, may be empty
}

// ClassifiedEvent is a raw event after setter assignment.
type ClassifiedEvent struct {
	Title    string `json:"title"`
	Time     string `json:"time"` // local wall-clock HH:MM
	Color    string `json:"color"`
	Attended bool   `json:"attended"`
}

// SetterMetrics holds one setter's meeting counts for a single day.
// Attended never exceeds Scheduled.
type SetterMetrics struct {
	Scheduled int               `json:"scheduled"`
	Attended  int               `json:"attended"`
	Events    []ClassifiedEvent `json:"events,omitempty"`
}

// ShowUpRate returns attended over scheduled as a percentage, 0 when nothing
// was scheduled.
func (m SetterMetrics) ShowUpRate() float64 {
	if m.Scheduled == 0 {
		return 0
	}
	return float64(m.Attended) / float64(m.Scheduled) * 100
}

// SetterDay is one setter's row pair in the daily spreadsheet. The sheet's
// attended column is populated by a manual process and may legitimately
// disagree with the calendar-derived SetterMetrics.
type SetterDay struct {
	Scheduled int `json:"scheduled"`
	Attended  int `json:"attended"`
	Calls     int `json:"calls"`
}

// Totals are the aggregate rows at the top of a sheet column.
type Totals struct {
	MeetingsScheduled int `json:"meetings_scheduled"`
	MeetingsAttended  int `json:"meetings_attended"`
	ReservationsHeld  int `json:"reservations_held"`
	ReservationsMade  int `json:"reservations_made"`
}

// DailyRecord is one fully reconciled day. Numeric fields are always present
// and default to zero; a record is never partially shaped.
type DailyRecord struct {
	Date                   string               `json:"date"` // YYYY-MM-DD
	LeadsCreated           int                  `json:"leads_created"`
	CallsMade              int                  `json:"calls_made"`
	MeetingsScheduledTotal int                  `json:"meetings_scheduled_total"`
	CampaignSpend          int                  `json:"campaign_spend"`
	CostPerLead            float64              `json:"cost_per_lead"`
	Setters                map[Setter]SetterDay `json:"setters"`
	Totals                 Totals               `json:"totals"`
}

// NewDailyRecord returns a record with every setter bucket present so callers
// can rely on the full shape.
func NewDailyRecord(date string) DailyRecord {
	setters := make(map[Setter]SetterDay, len(AllSetters()))
	for _, s := range AllSetters() {
		setters[s] = SetterDay{}
	}
	return DailyRecord{Date: date, Setters: setters}
}

// Report is the consolidated output artifact: one chronological entry per
// valid date column. Absent days are simply absent, never gap-filled.
type Report struct {
	GeneratedAt  string        `json:"generated_at"`
	LastDataDate string        `json:"last_data_date"`
	DayCount     int           `json:"day_count"`
	Days         []DailyRecord `json:"days"`
}
