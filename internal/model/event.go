package model

import (
	"fmt"
	"strings"
	"time"
)

// EventKey identifies an event across calendars.
// Its text form is "<id>#<calendarId>", the form stored in the events table.
type EventKey struct {
	ID         string
	CalendarID string
}

const eventKeySeparator = "#"

func ParseEventKey(s string) EventKey {
	id, calendarID, _ := strings.Cut(s, eventKeySeparator)
	return EventKey{ID: id, CalendarID: calendarID}
}

func (k EventKey) IsZero() bool {
	return k.ID == "" && k.CalendarID == ""
}

func (k EventKey) String() string {
	if k.IsZero() {
		return ""
	}
	if k.CalendarID == "" {
		return k.ID
	}
	return k.ID + eventKeySeparator + k.CalendarID
}

func (k EventKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKey) UnmarshalText(text []byte) error {
	*k = ParseEventKey(string(text))
	return nil
}

type Transparency string

const (
	TransparencyOpaque      Transparency = "opaque"
	TransparencyTransparent Transparency = "transparent"
)

type Method string

const (
	MethodCreate Method = "create"
	MethodUpdate Method = "update"
)

const (
	BufferTitle = "Buffer time"
	BreakTitle  = "Break"
)

type BufferTimes struct {
	BeforeEvent int `json:"beforeEvent,omitempty"`
	AfterEvent  int `json:"afterEvent,omitempty"`
}

func (b *BufferTimes) IsZero() bool {
	return b == nil || (b.BeforeEvent == 0 && b.AfterEvent == 0)
}

// BufferEvents are the placeholder events minted around one event.
type BufferEvents struct {
	BeforeEvent *Event `json:"beforeEvent,omitempty"`
	AfterEvent  *Event `json:"afterEvent,omitempty"`
}

func (b *BufferEvents) IsZero() bool {
	return b == nil || (b.BeforeEvent == nil && b.AfterEvent == nil)
}

// PreferredTimeRange times are "HH:mm" or "HH:mm:ss" in the owning event's zone.
type PreferredTimeRange struct {
	ID        string   `json:"id"`
	EventID   EventKey `json:"eventId"`
	UserID    string   `json:"userId"`
	DayOfWeek int      `json:"dayOfWeek,omitempty"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

type Reminder struct {
	ID         string   `json:"id"`
	EventID    EventKey `json:"eventId"`
	UserID     string   `json:"userId"`
	Minutes    int      `json:"minutes"`
	Timezone   string   `json:"timezone"`
	UseDefault bool     `json:"useDefault"`
	Deleted    bool     `json:"deleted"`
}

// CopyFlags say which attributes propagate from a source to events linked to it.
// Events, categories and preferences all carry them.
type CopyFlags struct {
	CopyAvailability      bool `json:"copyAvailability"`
	CopyTimeBlocking      bool `json:"copyTimeBlocking"`
	CopyTimePreference    bool `json:"copyTimePreference"`
	CopyReminders         bool `json:"copyReminders"`
	CopyPriorityLevel     bool `json:"copyPriorityLevel"`
	CopyModifiable        bool `json:"copyModifiable"`
	CopyCategories        bool `json:"copyCategories"`
	CopyIsBreak           bool `json:"copyIsBreak"`
	CopyIsMeeting         bool `json:"copyIsMeeting"`
	CopyIsExternalMeeting bool `json:"copyIsExternalMeeting"`
	CopyDuration          bool `json:"copyDuration"`
	CopyColor             bool `json:"copyColor"`
}

// UserModified marks attributes the user set by hand, those are never overwritten by defaults.
type UserModified struct {
	UserModifiedAvailability      bool `json:"userModifiedAvailability"`
	UserModifiedTimeBlocking      bool `json:"userModifiedTimeBlocking"`
	UserModifiedTimePreference    bool `json:"userModifiedTimePreference"`
	UserModifiedReminders         bool `json:"userModifiedReminders"`
	UserModifiedPriorityLevel     bool `json:"userModifiedPriorityLevel"`
	UserModifiedCategories        bool `json:"userModifiedCategories"`
	UserModifiedModifiable        bool `json:"userModifiedModifiable"`
	UserModifiedIsBreak           bool `json:"userModifiedIsBreak"`
	UserModifiedIsMeeting         bool `json:"userModifiedIsMeeting"`
	UserModifiedIsExternalMeeting bool `json:"userModifiedIsExternalMeeting"`
	UserModifiedDuration          bool `json:"userModifiedDuration"`
	UserModifiedColor             bool `json:"userModifiedColor"`
}

type Event struct {
	ID               EventKey  `json:"id"`
	UserID           string    `json:"userId"`
	CalendarID       string    `json:"calendarId"`
	MeetingID        string    `json:"meetingId,omitempty"`
	Title            string    `json:"title"`
	Notes            string    `json:"notes"`
	StartDate        WallClock `json:"startDate"`
	EndDate          WallClock `json:"endDate"`
	AllDay           bool      `json:"allDay"`
	Timezone         string    `json:"timezone"`
	RecurringEventID EventKey  `json:"recurringEventId,omitempty"`
	RecurrenceRule   string    `json:"-"`

	Priority     int          `json:"priority"`
	Transparency Transparency `json:"transparency,omitempty"`
	Modifiable   bool         `json:"modifiable"`
	Duration     int          `json:"duration,omitempty"`
	Color        string       `json:"color,omitempty"`
	EventType    string       `json:"eventType,omitempty"`

	IsBreak           bool `json:"isBreak"`
	IsMeeting         bool `json:"isMeeting"`
	IsExternalMeeting bool `json:"isExternalMeeting"`
	IsPreEvent        bool `json:"isPreEvent"`
	IsPostEvent       bool `json:"isPostEvent"`

	PreEventID   EventKey     `json:"preEventId,omitempty"`
	PostEventID  EventKey     `json:"postEventId,omitempty"`
	ForEventID   EventKey     `json:"forEventId,omitempty"`
	TimeBlocking *BufferTimes `json:"timeBlocking,omitempty"`

	PreferredDayOfWeek      int                  `json:"preferredDayOfWeek,omitempty"`
	PreferredTime           string               `json:"preferredTime,omitempty"`
	PreferredStartTimeRange string               `json:"preferredStartTimeRange,omitempty"`
	PreferredEndTimeRange   string               `json:"preferredEndTimeRange,omitempty"`
	PreferredTimeRanges     []PreferredTimeRange `json:"preferredTimeRanges,omitempty"`

	CopyFlags
	UserModified
	Unlink bool `json:"unlink"`

	Method  Method `json:"method,omitempty"`
	Deleted bool   `json:"deleted"`
}

// Clone returns a copy that shares nothing mutable with e.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}

	c := *e
	if e.TimeBlocking != nil {
		tb := *e.TimeBlocking
		c.TimeBlocking = &tb
	}
	if e.PreferredTimeRanges != nil {
		c.PreferredTimeRanges = append([]PreferredTimeRange(nil), e.PreferredTimeRanges...)
	}

	return &c
}

// Length is the wall-clock length of the event in its own zone.
func (e *Event) Length() time.Duration {
	return e.EndDate.Sub(e.StartDate)
}

// HostRange converts start and end to the wall clock of zone.
func (e *Event) HostRange(zone string) (WallClock, WallClock, error) {
	start, err := e.StartDate.Retag(e.Timezone).In(zone)
	if err != nil {
		return WallClock{}, WallClock{}, fmt.Errorf("convert start of %v: %w", e.ID, err)
	}
	end, err := e.EndDate.Retag(e.Timezone).In(zone)
	if err != nil {
		return WallClock{}, WallClock{}, fmt.Errorf("convert end of %v: %w", e.ID, err)
	}

	return start, end, nil
}

type EventsFilter struct {
	UserID   string
	From     WallClock
	To       WallClock
	Timezone string
	// AllDay includes all-day events when set.
	AllDay bool
}
