package entity

import (
	"time"

	"cloud.google.com/go/civil"
)

// DutySnapshot is the persisted evaluation of one duty
type DutySnapshot struct {
	ID            string    `bson:"_id,omitempty"`
	DutyKey       string    `bson:"dutyKey"` // {employeeName}:{date} - unique index
	RunID         string    `bson:"runId"`
	EmployeeName  string    `bson:"employeeName"`
	Date          string    `bson:"date"`
	Code          string    `bson:"code"`
	Start         time.Time `bson:"start,omitempty"`
	End           time.Time `bson:"end,omitempty"`
	FlightNumbers []string  `bson:"flightNumbers,omitempty"`

	FlightDutyMinutes     int  `bson:"flightDutyMinutes"`
	OverMaxFDP            int  `bson:"overMaxFdp"`
	RestLack              int  `bson:"restLack"`
	HomeBaseInconvenience int  `bson:"homeBaseInconvenience"`
	GroundOverlap         int  `bson:"groundOverlap"`
	DayOffEncroachment    int  `bson:"dayOffEncroachment"`
	LateArrival           bool `bson:"lateArrival"`
	NightDuty             bool `bson:"nightDuty"`
	NoLocalNight          bool `bson:"noLocalNight"`
	DayAfterGroundOrOff   bool `bson:"dayAfterGroundOrOff"`
	DayBeforeGroundOrOff  bool `bson:"dayBeforeGroundOrOff"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// DutySnapshotKey returns the unique key of the snapshot of an employee's
// duty on a date
func DutySnapshotKey(employeeName string, date civil.Date) string {
	return employeeName + ":" + date.String()
}
