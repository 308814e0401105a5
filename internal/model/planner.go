package model

import (
	"fmt"
	"time"
)

var dayOfWeekNames = [...]string{
	1: "MONDAY",
	2: "TUESDAY",
	3: "WEDNESDAY",
	4: "THURSDAY",
	5: "FRIDAY",
	6: "SATURDAY",
	7: "SUNDAY",
}

// DayOfWeekName maps an ISO weekday to the solver's enum name, "" when out of range.
func DayOfWeekName(isoDay int) string {
	if isoDay < 1 || isoDay > 7 {
		return ""
	}
	return dayOfWeekNames[isoDay]
}

// Grid is the width in minutes of time slots and event parts.
type Grid int

const (
	GridFull Grid = 15
	GridLite Grid = 30
)

func (g Grid) Duration() time.Duration {
	return time.Duration(g) * time.Minute
}

// Snap rounds minute down to the grid line it falls on, so [0,g) maps to 0, [g,2g) to g and so on.
func (g Grid) Snap(minute int) int {
	return minute - minute%int(g)
}

// DayWindow is one day's work hours as read on a wall clock.
type DayWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

func (w DayWindow) StartMinutes() int {
	return w.StartHour*60 + w.StartMinute
}

func (w DayWindow) EndMinutes() int {
	return w.EndHour*60 + w.EndMinute
}

func (w DayWindow) Hours() float64 {
	return float64(w.EndMinutes()-w.StartMinutes()) / 60
}

func (w DayWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
}

// Bounds places the window on the calendar day of ref.
func (w DayWindow) Bounds(ref WallClock) (WallClock, WallClock) {
	return ref.At(w.StartHour, w.StartMinute), ref.At(w.EndHour, w.EndMinute)
}

type TimeSlot struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	HostID    string `json:"hostId"`
	MonthDay  string `json:"monthDay"`
	Date      string `json:"date"`
}

type WorkTime struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	HostID    string `json:"hostId"`
	UserID    string `json:"userId"`
}

type PlannerUser struct {
	ID                  string     `json:"id"`
	MaxWorkLoadPercent  int        `json:"maxWorkLoadPercent"`
	BackToBackMeetings  bool       `json:"backToBackMeetings"`
	MaxNumberOfMeetings int        `json:"maxNumberOfMeetings"`
	MinNumberOfBreaks   int        `json:"minNumberOfBreaks"`
	WorkTimes           []WorkTime `json:"workTimes"`
	HostID              string     `json:"hostId"`
}

// EventPart is one grid-sized slice of an event while parts are being built and stitched.
type EventPart struct {
	GroupID         string
	EventID         EventKey
	Part            int
	LastPart        int
	MeetingPart     int
	MeetingLastPart int
	HostID          string
	Event           *Event
}

type PlannerTimeRange struct {
	DayOfWeek string   `json:"dayOfWeek,omitempty"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	EventID   EventKey `json:"eventId"`
	UserID    string   `json:"userId"`
	HostID    string   `json:"hostId"`
}

type PlannerEvent struct {
	ID                  EventKey           `json:"id"`
	UserID              string             `json:"userId"`
	HostID              string             `json:"hostId"`
	PreferredTimeRanges []PlannerTimeRange `json:"preferredTimeRanges"`
	EventType           string             `json:"eventType,omitempty"`
}

// PlannerEventPart is the solver-facing form of an EventPart.
type PlannerEventPart struct {
	GroupID                 string       `json:"groupId"`
	EventID                 EventKey     `json:"eventId"`
	Part                    int          `json:"part"`
	LastPart                int          `json:"lastPart"`
	MeetingPart             int          `json:"meetingPart"`
	MeetingLastPart         int          `json:"meetingLastPart"`
	MeetingID               string       `json:"meetingId,omitempty"`
	HostID                  string       `json:"hostId"`
	UserID                  string       `json:"userId"`
	User                    PlannerUser  `json:"user"`
	StartDate               string       `json:"startDate"`
	EndDate                 string       `json:"endDate"`
	Priority                int          `json:"priority"`
	IsPreEvent              bool         `json:"isPreEvent"`
	IsPostEvent             bool         `json:"isPostEvent"`
	ForEventID              EventKey     `json:"forEventId,omitempty"`
	Modifiable              bool         `json:"modifiable"`
	IsMeeting               bool         `json:"isMeeting"`
	IsExternalMeeting       bool         `json:"isExternalMeeting"`
	Gap                     bool         `json:"gap"`
	PreferredDayOfWeek      string       `json:"preferredDayOfWeek,omitempty"`
	PreferredTime           string       `json:"preferredTime,omitempty"`
	PreferredStartTimeRange string       `json:"preferredStartTimeRange,omitempty"`
	PreferredEndTimeRange   string       `json:"preferredEndTimeRange,omitempty"`
	TotalWorkingHours       float64      `json:"totalWorkingHours"`
	RecurringEventID        EventKey     `json:"recurringEventId,omitempty"`
	Event                   PlannerEvent `json:"event"`
}

type PlanTier string

const (
	PlanTierFree    PlanTier = "free"
	PlanTierPro     PlanTier = "pro"
	PlanTierPremium PlanTier = "premium"
)

// SolverRequest is the body dispatched to the solver.
type SolverRequest struct {
	SingletonID string             `json:"singletonId"`
	HostID      string             `json:"hostId"`
	Timeslots   []TimeSlot         `json:"timeslots"`
	UserList    []PlannerUser      `json:"userList"`
	EventParts  []PlannerEventPart `json:"eventParts"`
	FileKey     string             `json:"fileKey"`
	Delay       int64              `json:"delay"`
	CallBackURL string             `json:"callBackUrl"`
}

// PlannerArchive is the fuller payload stored next to a solver run.
type PlannerArchive struct {
	SingletonID           string             `json:"singletonId"`
	HostID                string             `json:"hostId"`
	EventParts            []PlannerEventPart `json:"eventParts"`
	AllEvents             []*Event           `json:"allEvents"`
	Breaks                []*Event           `json:"breaks"`
	OldEvents             []*Event           `json:"oldEvents"`
	OldAttendeeEvents     []*Event           `json:"oldAttendeeEvents"`
	NewHostBufferTimes    []BufferEvents     `json:"newHostBufferTimes"`
	NewHostReminders      []EventReminders   `json:"newHostReminders"`
	HostTimezone          string             `json:"hostTimezone"`
	IsReplan              bool               `json:"isReplan,omitempty"`
	OriginalGoogleEventID string             `json:"originalGoogleEventId,omitempty"`
	OriginalCalendarID    string             `json:"originalCalendarId,omitempty"`
}

type EventReminders struct {
	EventID   EventKey   `json:"eventId"`
	Reminders []Reminder `json:"reminders"`
}
