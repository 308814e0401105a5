package database

import sq "github.com/Masterminds/squirrel"

// PSQL builds statements with postgres placeholders.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable              = "events"
	PreferredTimeRangesTable = "preferred_time_ranges"
	PreferencesTable         = "user_preferences"
	CategoriesTable          = "categories"
	CategoryEventsTable      = "category_events"
	CalendarsTable           = "calendars"
	RemindersTable           = "reminders"
	AttendeesTable           = "attendees"
	MeetingAssistEventsTable = "meeting_assist_events"
)
