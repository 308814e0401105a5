package events

import "github.com/SergeyKozhin/schedule-assist/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var eventColumns = []string{
	"id",
	"user_id",
	"calendar_id",
	"meeting_id",
	"title",
	"notes",
	"start_date",
	"end_date",
	"all_day",
	"timezone",
	"recurring_event_id",
	"recurrence_rule",
	"priority",
	"transparency",
	"modifiable",
	"duration",
	"color",
	"event_type",
	"is_break",
	"is_meeting",
	"is_external_meeting",
	"is_pre_event",
	"is_post_event",
	"pre_event_id",
	"post_event_id",
	"for_event_id",
	"time_blocking",
	"preferred_day_of_week",
	"preferred_time",
	"preferred_start_time_range",
	"preferred_end_time_range",
	"copy_flags",
	"user_modified",
	"unlink",
	"deleted",
}

var baseQuery = database.PSQL.
	Select(eventColumns...).
	From(database.EventsTable)

var rangesQuery = database.PSQL.
	Select(
		"id",
		"event_id",
		"user_id",
		"day_of_week",
		"start_time",
		"end_time",
	).
	From(database.PreferredTimeRangesTable)
