package events

import (
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// Start and end dates are stored as timestamps without zone, read on the clock of the timezone column.
type eventDTO struct {
	ID                      string
	UserID                  string
	CalendarID              string
	MeetingID               *string
	Title                   string
	Notes                   string
	StartDate               time.Time
	EndDate                 time.Time
	AllDay                  bool
	Timezone                string
	RecurringEventID        *string
	RecurrenceRule          *string
	Priority                int
	Transparency            *string
	Modifiable              bool
	Duration                *int
	Color                   *string
	EventType               *string
	IsBreak                 bool
	IsMeeting               bool
	IsExternalMeeting       bool
	IsPreEvent              bool
	IsPostEvent             bool
	PreEventID              *string
	PostEventID             *string
	ForEventID              *string
	TimeBlocking            *model.BufferTimes
	PreferredDayOfWeek      *int
	PreferredTime           *string
	PreferredStartTimeRange *string
	PreferredEndTimeRange   *string
	CopyFlags               model.CopyFlags
	UserModified            model.UserModified
	Unlink                  bool
	Deleted                 bool
}

type rangeDTO struct {
	ID        string
	EventID   string
	UserID    string
	DayOfWeek *int
	StartTime string
	EndTime   string
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID:                      model.ParseEventKey(dto.ID),
		UserID:                  dto.UserID,
		CalendarID:              dto.CalendarID,
		MeetingID:               str(dto.MeetingID),
		Title:                   dto.Title,
		Notes:                   dto.Notes,
		StartDate:               model.WallClockOf(dto.StartDate, dto.Timezone),
		EndDate:                 model.WallClockOf(dto.EndDate, dto.Timezone),
		AllDay:                  dto.AllDay,
		Timezone:                dto.Timezone,
		RecurringEventID:        model.ParseEventKey(str(dto.RecurringEventID)),
		RecurrenceRule:          str(dto.RecurrenceRule),
		Priority:                dto.Priority,
		Transparency:            model.Transparency(str(dto.Transparency)),
		Modifiable:              dto.Modifiable,
		Duration:                num(dto.Duration),
		Color:                   str(dto.Color),
		EventType:               str(dto.EventType),
		IsBreak:                 dto.IsBreak,
		IsMeeting:               dto.IsMeeting,
		IsExternalMeeting:       dto.IsExternalMeeting,
		IsPreEvent:              dto.IsPreEvent,
		IsPostEvent:             dto.IsPostEvent,
		PreEventID:              model.ParseEventKey(str(dto.PreEventID)),
		PostEventID:             model.ParseEventKey(str(dto.PostEventID)),
		ForEventID:              model.ParseEventKey(str(dto.ForEventID)),
		TimeBlocking:            dto.TimeBlocking,
		PreferredDayOfWeek:      num(dto.PreferredDayOfWeek),
		PreferredTime:           str(dto.PreferredTime),
		PreferredStartTimeRange: str(dto.PreferredStartTimeRange),
		PreferredEndTimeRange:   str(dto.PreferredEndTimeRange),
		CopyFlags:               dto.CopyFlags,
		UserModified:            dto.UserModified,
		Unlink:                  dto.Unlink,
		Deleted:                 dto.Deleted,
	}
}

func mapToRange(dto *rangeDTO) model.PreferredTimeRange {
	return model.PreferredTimeRange{
		ID:        dto.ID,
		EventID:   model.ParseEventKey(dto.EventID),
		UserID:    dto.UserID,
		DayOfWeek: num(dto.DayOfWeek),
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
	}
}

// eventValues lines up with eventColumns.
func eventValues(e *model.Event) []interface{} {
	return []interface{}{
		e.ID.String(),
		e.UserID,
		e.CalendarID,
		nullable(e.MeetingID),
		e.Title,
		e.Notes,
		e.StartDate.Clock,
		e.EndDate.Clock,
		e.AllDay,
		e.Timezone,
		nullable(e.RecurringEventID.String()),
		nullable(e.RecurrenceRule),
		e.Priority,
		nullable(string(e.Transparency)),
		e.Modifiable,
		e.Duration,
		nullable(e.Color),
		nullable(e.EventType),
		e.IsBreak,
		e.IsMeeting,
		e.IsExternalMeeting,
		e.IsPreEvent,
		e.IsPostEvent,
		nullable(e.PreEventID.String()),
		nullable(e.PostEventID.String()),
		nullable(e.ForEventID.String()),
		e.TimeBlocking,
		e.PreferredDayOfWeek,
		nullable(e.PreferredTime),
		nullable(e.PreferredStartTimeRange),
		nullable(e.PreferredEndTimeRange),
		e.CopyFlags,
		e.UserModified,
		e.Unlink,
		e.Deleted,
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
