package attendees

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// meetingAssistEventDTO is an event imported from an external attendee's calendar.
type meetingAssistEventDTO struct {
	ID         string
	AttendeeID string
	HostID     string
	CalendarID string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	AllDay     bool
	Timezone   string
}

// GetAttendeeEvents returns the attendee's imported events starting inside the window read on
// each event's own clock, widened by a day on each side. All-day events are left out.
func (*Repository) GetAttendeeEvents(ctx context.Context, q database.Queryable, attendeeID string, from, to model.WallClock) ([]*model.Event, error) {
	qb := database.PSQL.
		Select("id", "attendee_id", "host_id", "calendar_id", "title", "start_date", "end_date", "all_day", "timezone").
		From(database.MeetingAssistEventsTable).
		Where(sq.Eq{"attendee_id": attendeeID, "all_day": false}).
		Where(sq.GtOrEq{"start_date": from.AddDays(-1).Clock}).
		Where(sq.Lt{"start_date": to.AddDays(1).Clock}).
		OrderBy("start_date")

	var dtos []*meetingAssistEventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = &model.Event{
			ID:         model.EventKey{ID: d.ID, CalendarID: d.CalendarID},
			UserID:     d.AttendeeID,
			CalendarID: d.CalendarID,
			Title:      d.Title,
			StartDate:  model.WallClockOf(d.StartDate, d.Timezone),
			EndDate:    model.WallClockOf(d.EndDate, d.Timezone),
			AllDay:     d.AllDay,
			Timezone:   d.Timezone,
		}
	}

	return res, nil
}
