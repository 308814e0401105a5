package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type eventsFake struct {
	byUser  map[string][]*model.Event
	saved   []*model.Event
	saveErr error
}

func (f *eventsFake) SaveEvents(_ context.Context, events []*model.Event) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, events...)
	return nil
}

func (f *eventsFake) ListEventsForUserGivenDates(_ context.Context, userID string, _, _ model.WallClock) ([]*model.Event, error) {
	var res []*model.Event
	for _, e := range f.byUser[userID] {
		res = append(res, e.Clone())
	}
	return res, nil
}

type preferencesFake struct {
	prefs map[string]*model.UserPreference
}

func (f *preferencesFake) GetPreference(_ context.Context, userID string) (*model.UserPreference, error) {
	pref, ok := f.prefs[userID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return pref, nil
}

type breaksFake struct{}

func (breaksFake) GenerateForWindow(context.Context, *model.UserPreference, model.WallClock, model.WallClock, string) ([]*model.Event, error) {
	return nil, nil
}

type calendarsFake struct{}

func (calendarsFake) GetGlobalCalendar(_ context.Context, _ database.Queryable, userID string) (*model.Calendar, error) {
	return &model.Calendar{ID: "cal-" + userID, UserID: userID, GlobalPrimary: true}, nil
}

type attendeesFake struct {
	byAttendee map[string][]*model.Event
}

func (f *attendeesFake) GetAttendeeEvents(_ context.Context, _ database.Queryable, attendeeID string, _, _ model.WallClock) ([]*model.Event, error) {
	var res []*model.Event
	for _, e := range f.byAttendee[attendeeID] {
		res = append(res, e.Clone())
	}
	return res, nil
}

type archiveFake struct {
	objects map[string]interface{}
	err     error
}

func (f *archiveFake) Put(_ context.Context, key string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.objects[key] = payload
	return nil
}

func (f *archiveFake) Get(_ context.Context, key string) ([]byte, error) {
	if _, ok := f.objects[key]; !ok {
		return nil, model.ErrNoRecord
	}
	return []byte("{}"), nil
}

type solverFake struct {
	requests []*model.SolverRequest
	err      error
}

func (f *solverFake) Submit(_ context.Context, req *model.SolverRequest) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, req)
	return nil
}

func weekdayPreference(userID string) *model.UserPreference {
	pref := &model.UserPreference{
		UserID:              userID,
		MaxWorkLoadPercent:  80,
		MaxNumberOfMeetings: 6,
		MinNumberOfBreaks:   1,
	}
	for day := 1; day <= 5; day++ {
		pref.StartTimes = append(pref.StartTimes, model.DayTime{Day: day, Hour: 9})
		pref.EndTimes = append(pref.EndTimes, model.DayTime{Day: day, Hour: 17})
	}
	return pref
}

func event(id, userID, start, end, zone string) *model.Event {
	return &model.Event{
		ID:         model.EventKey{ID: id, CalendarID: "cal-" + userID},
		UserID:     userID,
		CalendarID: "cal-" + userID,
		StartDate:  model.MustParseWallClock(start, zone),
		EndDate:    model.MustParseWallClock(end, zone),
		Timezone:   zone,
		Priority:   2,
		Modifiable: true,
	}
}

type fixture struct {
	events    *eventsFake
	prefs     *preferencesFake
	attendees *attendeesFake
	archive   *archiveFake
	solver    *solverFake
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		events: &eventsFake{byUser: map[string][]*model.Event{
			"host-1": {event("e1", "host-1", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "UTC")},
		}},
		prefs:     &preferencesFake{prefs: map[string]*model.UserPreference{"host-1": weekdayPreference("host-1")}},
		attendees: &attendeesFake{byAttendee: map[string][]*model.Event{}},
		archive:   &archiveFake{objects: map[string]interface{}{}},
		solver:    &solverFake{},
	}

	f.service = NewService(nil, zap.NewNop().Sugar(), f.events, f.prefs, breaksFake{}, calendarsFake{},
		f.attendees, f.archive, f.solver, Settings{
			Concurrency: 2,
			CallbackURL: "https://planner.example.com/callback",
			Delays: map[model.PlanTier]time.Duration{
				model.PlanTierFree:    10 * time.Minute,
				model.PlanTierPro:     5 * time.Minute,
				model.PlanTierPremium: 2 * time.Minute,
			},
		})

	return f
}

func request() *model.PlanRequest {
	return &model.PlanRequest{
		HostID:       "host-1",
		HostTimezone: "UTC",
		WindowStart:  model.MustParseWallClock("2024-01-01T09:00:00", "UTC"),
		WindowEnd:    model.MustParseWallClock("2024-01-02T17:00:00", "UTC"),
	}
}

func TestRunHostOnly(t *testing.T) {
	f := newFixture()

	res, err := f.service.Run(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 2, res.EventParts)
	assert.Equal(t, 32, res.Timeslots)
	assert.Equal(t, 1, res.Users)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "host-1/"+res.SingletonID+".json", res.FileKey)

	require.Len(t, f.solver.requests, 1)
	req := f.solver.requests[0]
	assert.Equal(t, res.FileKey, req.FileKey)
	assert.Equal(t, int64(600000), req.Delay)
	assert.Equal(t, "https://planner.example.com/callback", req.CallBackURL)

	first := req.EventParts[0]
	assert.Equal(t, 1, first.Part)
	assert.Equal(t, 2, first.LastPart)
	assert.Equal(t, "2024-01-01T10:00:00", first.StartDate)
	assert.Equal(t, 8.0, first.TotalWorkingHours)
	assert.Equal(t, 80, first.User.MaxWorkLoadPercent)
	assert.Len(t, first.User.WorkTimes, 5)

	archived, ok := f.archive.objects[res.FileKey].(*model.PlannerArchive)
	require.True(t, ok)
	assert.Equal(t, "UTC", archived.HostTimezone)
	assert.Len(t, archived.OldEvents, 1)
	assert.False(t, archived.IsReplan)
}

func TestRunTierDelay(t *testing.T) {
	f := newFixture()
	req := request()
	req.Tier = model.PlanTierPremium

	_, err := f.service.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, f.solver.requests, 1)
	assert.Equal(t, int64(120000), f.solver.requests[0].Delay)
}

func TestRunNothingToPlan(t *testing.T) {
	f := newFixture()
	f.events.byUser = nil

	_, err := f.service.Run(context.Background(), request())
	require.Error(t, err)
	assert.Equal(t, model.ErrorTypeAssembly, model.GetErrorType(err))
	assert.Contains(t, err.Error(), "eventParts")
	assert.Empty(t, f.solver.requests)
	assert.Empty(t, f.archive.objects)
}

func TestRunSkipsFailingAttendee(t *testing.T) {
	f := newFixture()
	req := request()
	req.InternalAttendees = []model.Attendee{
		{ID: "a-host", UserID: "host-1", Timezone: "UTC"},
		{ID: "a-2", UserID: "user-2", Timezone: "UTC"},
	}

	res, err := f.service.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Users)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "user-2")
}

func TestRunReportsAttendeeWhenNothingLeft(t *testing.T) {
	f := newFixture()
	f.prefs.prefs = nil

	_, err := f.service.Run(context.Background(), request())
	require.Error(t, err)
	assert.Equal(t, model.ErrorTypeAssembly, model.GetErrorType(err))
	assert.Contains(t, err.Error(), "host-1")
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestRunExternalAttendees(t *testing.T) {
	f := newFixture()
	f.attendees.byAttendee["ext-1"] = []*model.Event{
		event("x1", "ext-1", "2024-01-01T13:00:00", "2024-01-01T14:00:00", "UTC"),
	}
	req := request()
	req.ExternalAttendees = []model.Attendee{{ID: "ext-1", Email: "guest@example.com", Timezone: "UTC", IsExternal: true}}

	res, err := f.service.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, res.EventParts)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, 32, res.Timeslots, "external slots repeat host slots")

	req2 := f.solver.requests[0]
	var external model.PlannerUser
	for _, u := range req2.UserList {
		if u.ID == "ext-1" {
			external = u
		}
	}
	assert.Equal(t, 99, external.MaxNumberOfMeetings)
	assert.Equal(t, 100, external.MaxWorkLoadPercent)

	archived := f.archive.objects[res.FileKey].(*model.PlannerArchive)
	assert.Len(t, archived.OldAttendeeEvents, 1)
}

func TestRunReplan(t *testing.T) {
	f := newFixture()
	req := request()
	req.Replan = &model.Replan{
		GoogleEventID: "g1",
		CalendarID:    "primary",
		Attendees:     []model.Attendee{{ID: "a-host", UserID: "host-1", Email: "host@example.com", Timezone: "UTC"}},
		AddedAttendees: []model.AddedAttendee{
			{Email: "new@example.com"},
		},
	}

	res, err := f.service.Run(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.FileKey, "_REPLAN_g1.json"))
	assert.Equal(t, 2, res.Users)

	archived := f.archive.objects[res.FileKey].(*model.PlannerArchive)
	assert.True(t, archived.IsReplan)
	assert.Equal(t, "g1", archived.OriginalGoogleEventID)
	assert.Equal(t, "primary", archived.OriginalCalendarID)
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *model.PlanRequest) *model.PlanRequest
	}{
		{name: "nil request", modify: func(*model.PlanRequest) *model.PlanRequest { return nil }},
		{name: "no host", modify: func(r *model.PlanRequest) *model.PlanRequest { r.HostID = ""; return r }},
		{name: "unknown zone", modify: func(r *model.PlanRequest) *model.PlanRequest { r.HostTimezone = "Mars/Olympus"; return r }},
		{name: "reversed window", modify: func(r *model.PlanRequest) *model.PlanRequest {
			r.WindowStart, r.WindowEnd = r.WindowEnd, r.WindowStart
			return r
		}},
		{name: "unknown tier", modify: func(r *model.PlanRequest) *model.PlanRequest { r.Tier = "gold"; return r }},
		{name: "replan without event", modify: func(r *model.PlanRequest) *model.PlanRequest { r.Replan = &model.Replan{}; return r }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.service.Run(context.Background(), tt.modify(request()))
			require.Error(t, err)
			assert.Equal(t, model.ErrorTypeValidation, model.GetErrorType(err))
			assert.Empty(t, f.solver.requests)
		})
	}
}

func TestRunCollaboratorFailures(t *testing.T) {
	t.Run("archive", func(t *testing.T) {
		f := newFixture()
		f.archive.err = errors.New("no responders")

		_, err := f.service.Run(context.Background(), request())
		require.Error(t, err)
		assert.Equal(t, model.ErrorTypeCollaborator, model.GetErrorType(err))
		assert.Empty(t, f.solver.requests)
	})

	t.Run("saving generated events", func(t *testing.T) {
		f := newFixture()
		f.events.saveErr = errors.New("conn reset")

		_, err := f.service.Run(context.Background(), request())
		require.Error(t, err)
		assert.Equal(t, model.ErrorTypeCollaborator, model.GetErrorType(err))
		assert.Empty(t, f.solver.requests)
	})

	t.Run("solver", func(t *testing.T) {
		f := newFixture()
		f.solver.err = errors.New("503")

		_, err := f.service.Run(context.Background(), request())
		require.Error(t, err)
		assert.Equal(t, model.ErrorTypeCollaborator, model.GetErrorType(err))
	})
}

func TestRunSavesMintedBuffers(t *testing.T) {
	f := newFixture()

	meeting := event("m1", "host-1", "2024-01-01T13:00:00", "2024-01-01T14:00:00", "UTC")
	meeting.IsMeeting = true
	meeting.TimeBlocking = &model.BufferTimes{BeforeEvent: 15, AfterEvent: 15}

	req := request()
	req.NewMeetingEvents = []*model.Event{meeting}

	_, err := f.service.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.events.saved, 2)
	for _, e := range f.events.saved {
		assert.Equal(t, meeting.ID, e.ForEventID)
	}
	assert.True(t, f.events.saved[0].IsPreEvent)
	assert.True(t, f.events.saved[1].IsPostEvent)
}

func TestGetRun(t *testing.T) {
	f := newFixture()
	f.archive.objects["host-1/run-1.json"] = struct{}{}
	f.archive.objects["host-1/run-2_REPLAN_g1.json"] = struct{}{}

	_, err := f.service.GetRun(context.Background(), "host-1", "run-1", "")
	require.NoError(t, err)

	_, err = f.service.GetRun(context.Background(), "host-1", "run-2", "g1")
	require.NoError(t, err)

	_, err = f.service.GetRun(context.Background(), "host-1", "run-3", "")
	require.Error(t, err)
	assert.Equal(t, model.ErrorTypeNotFound, model.GetErrorType(err))
}
