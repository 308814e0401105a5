package model

type Attendee struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	HostID     string `json:"hostId"`
	MeetingID  string `json:"meetingId,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Timezone   string `json:"timezone"`
	IsExternal bool   `json:"externalAttendee"`
}

// AddedAttendee is an attendee joining an event that is being replanned.
type AddedAttendee struct {
	UserID     string `json:"userId,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	IsExternal *bool  `json:"externalAttendee,omitempty"`
}

type Replan struct {
	OriginalEventID  EventKey        `json:"originalEventId"`
	GoogleEventID    string          `json:"googleEventId"`
	CalendarID       string          `json:"calendarId"`
	RemovedAttendees []string        `json:"removedAttendeeEmailsOrIds,omitempty"`
	AddedAttendees   []AddedAttendee `json:"addedAttendees,omitempty"`
	Attendees        []Attendee      `json:"originalAttendees"`
}

// PlanRequest is everything a planner run needs besides what is read from storage.
type PlanRequest struct {
	HostID             string
	HostTimezone       string
	WindowStart        WallClock
	WindowEnd          WallClock
	Tier               PlanTier
	InternalAttendees  []Attendee
	ExternalAttendees  []Attendee
	MeetingEvents      []*Event
	NewMeetingEvents   []*Event
	NewHostBufferTimes []BufferEvents
	NewHostReminders   []EventReminders
	Replan             *Replan
}
