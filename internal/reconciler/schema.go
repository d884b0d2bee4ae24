package reconciler

import "revops/internal/models"

// Kind selects how a cell's text is coerced into a number.
type Kind int

const (
	KindInt      Kind = iota // plain integer, blank or unparseable → 0
	KindCurrency             // CLP amount: strip $, thousands dots and commas
	KindDecimal              // comma-decimal value, rounded to 3 places
)

// Field binds one sheet row to one output field. The schema below is the
// single place that knows the sheet's row layout; extraction never touches
// a numeric row literal directly.
type Field struct {
	Name string
	Row  int // zero-based
	Kind Kind
	set  func(r *models.DailyRecord, i int, f float64)
}

// Row indexes of the "ACT comercial" layout (zero-based; the sheet UI shows
// them one higher).
const (
	rowMeetingsScheduled    = 2
	rowMeetingsAttended     = 3
	rowReservationsHeld     = 4
	rowReservationsMade     = 5
	rowDanielaCalls         = 9
	rowDanielaMeetings      = 10
	rowTeresaCalls          = 11
	rowTeresaMeetings       = 12
	rowMatiasCalls          = 13
	rowMatiasMeetings       = 14
	rowRobotCalls           = 15
	rowRobotMeetings        = 16
	rowLeadsCreated         = 20
	rowCallsMade            = 21
	rowMeetingsScheduledDay = 22
	rowCampaignSpend        = 23
	rowCostPerLead          = 24
)

// Schema maps every declared output field to exactly one source row.
// The per-setter attended fields read the same row as scheduled: the sheet
// has no dedicated attended row today, and this keeps that a one-line
// change if one is ever added.
var Schema = []Field{
	{"leads_created", rowLeadsCreated, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.LeadsCreated = i }},
	{"calls_made", rowCallsMade, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.CallsMade = i }},
	{"meetings_scheduled_total", rowMeetingsScheduledDay, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.MeetingsScheduledTotal = i }},
	{"campaign_spend", rowCampaignSpend, KindCurrency,
		func(r *models.DailyRecord, i int, _ float64) { r.CampaignSpend = i }},
	{"cost_per_lead", rowCostPerLead, KindDecimal,
		func(r *models.DailyRecord, _ int, f float64) { r.CostPerLead = f }},

	{"totals.meetings_scheduled", rowMeetingsScheduled, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.Totals.MeetingsScheduled = i }},
	{"totals.meetings_attended", rowMeetingsAttended, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.Totals.MeetingsAttended = i }},
	{"totals.reservations_held", rowReservationsHeld, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.Totals.ReservationsHeld = i }},
	{"totals.reservations_made", rowReservationsMade, KindInt,
		func(r *models.DailyRecord, i int, _ float64) { r.Totals.ReservationsMade = i }},

	{"setters.Daniela.calls", rowDanielaCalls, KindInt, setSetter(models.SetterDaniela, setCalls)},
	{"setters.Daniela.scheduled", rowDanielaMeetings, KindInt, setSetter(models.SetterDaniela, setScheduled)},
	{"setters.Daniela.attended", rowDanielaMeetings, KindInt, setSetter(models.SetterDaniela, setAttended)},
	{"setters.Teresa.calls", rowTeresaCalls, KindInt, setSetter(models.SetterTeresa, setCalls)},
	{"setters.Teresa.scheduled", rowTeresaMeetings, KindInt, setSetter(models.SetterTeresa, setScheduled)},
	{"setters.Teresa.attended", rowTeresaMeetings, KindInt, setSetter(models.SetterTeresa, setAttended)},
	{"setters.Matias.calls", rowMatiasCalls, KindInt, setSetter(models.SetterMatias, setCalls)},
	{"setters.Matias.scheduled", rowMatiasMeetings, KindInt, setSetter(models.SetterMatias, setScheduled)},
	{"setters.Matias.attended", rowMatiasMeetings, KindInt, setSetter(models.SetterMatias, setAttended)},
	{"setters.Robot.calls", rowRobotCalls, KindInt, setSetter(models.SetterRobot, setCalls)},
	{"setters.Robot.scheduled", rowRobotMeetings, KindInt, setSetter(models.SetterRobot, setScheduled)},
	{"setters.Robot.attended", rowRobotMeetings, KindInt, setSetter(models.SetterRobot, setAttended)},
}

func setCalls(d *models.SetterDay, v int)     { d.Calls = v }
func setScheduled(d *models.SetterDay, v int) { d.Scheduled = v }
func setAttended(d *models.SetterDay, v int)  { d.Attended = v }

func setSetter(s models.Setter, apply func(*models.SetterDay, int)) func(*models.DailyRecord, int, float64) {
	return func(r *models.DailyRecord, i int, _ float64) {
		d := r.Setters[s]
		apply(&d, i)
		r.Setters[s] = d
	}
}
