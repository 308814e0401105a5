package planner

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/business/parts"
	"github.com/SergeyKozhin/schedule-assist/internal/business/slots"
	"github.com/SergeyKozhin/schedule-assist/internal/business/worktime"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"golang.org/x/sync/errgroup"
)

// output is what one pipeline contributes to a run.
type output struct {
	eventParts        []model.PlannerEventPart
	allEvents         []*model.Event
	breaks            []*model.Event
	oldEvents         []*model.Event
	oldAttendeeEvents []*model.Event
	timeslots         []model.TimeSlot
	userList          []model.PlannerUser
}

func (o *output) append(other output) {
	o.eventParts = append(o.eventParts, other.eventParts...)
	o.allEvents = append(o.allEvents, other.allEvents...)
	o.breaks = append(o.breaks, other.breaks...)
	o.oldEvents = append(o.oldEvents, other.oldEvents...)
	o.oldAttendeeEvents = append(o.oldAttendeeEvents, other.oldAttendeeEvents...)
	o.timeslots = append(o.timeslots, other.timeslots...)
	o.userList = append(o.userList, other.userList...)
}

func (o *output) dedup() {
	o.eventParts = dedup(o.eventParts)
	o.allEvents = dedup(o.allEvents)
	o.breaks = dedup(o.breaks)
	o.oldEvents = dedup(o.oldEvents)
	o.oldAttendeeEvents = dedup(o.oldAttendeeEvents)
	o.timeslots = dedup(o.timeslots)
	o.userList = dedup(o.userList)
}

// missing names the parts of the solver payload that came out empty.
func (o *output) missing() []string {
	var res []string
	if len(o.eventParts) == 0 {
		res = append(res, "eventParts")
	}
	if len(o.timeslots) == 0 {
		res = append(res, "timeslots")
	}
	if len(o.userList) == 0 {
		res = append(res, "userList")
	}
	return res
}

// attendeeData is everything read and derived for one attendee before parts are cut.
type attendeeData struct {
	attendee  model.Attendee
	userID    string
	pref      *model.UserPreference
	stored    []*model.Event
	events    []*model.Event
	breaks    []*model.Event
	workTimes []model.WorkTime
	timeslots []model.TimeSlot
}

// fanOut loads every attendee with at most limit loads in flight. A failed attendee gets a nil
// result and an error naming it, the others are not affected.
func fanOut(
	ctx context.Context,
	limit int,
	attendees []model.Attendee,
	load func(context.Context, model.Attendee) (*attendeeData, error),
) ([]*attendeeData, []error) {
	results := make([]*attendeeData, len(attendees))
	failures := make([]error, len(attendees))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, a := range attendees {
		i, a := i, a
		g.Go(func() error {
			res, err := load(ctx, a)
			if err != nil {
				failures[i] = fmt.Errorf("attendee %s: %w", attendeeName(a), err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	// workers always return nil, failures are kept per attendee
	_ = g.Wait()

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errs
}

func attendeeName(a model.Attendee) string {
	switch {
	case a.UserID != "":
		return a.UserID
	case a.Email != "":
		return a.Email
	default:
		return a.ID
	}
}

// externalUserID is the id an external attendee's events and parts are filed under.
func externalUserID(a model.Attendee) string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.ID
}

func (s *Service) loadInternal(ctx context.Context, p *plan, a model.Attendee) (*attendeeData, error) {
	pref, err := s.preferences.GetPreference(ctx, a.UserID)
	if err != nil {
		return nil, model.NewCollaboratorError("get preference", err)
	}

	calendar, err := s.calendarsRepository.GetGlobalCalendar(ctx, s.db, a.UserID)
	if err != nil {
		return nil, model.NewCollaboratorError("get global calendar", err)
	}

	stored, err := s.events.ListEventsForUserGivenDates(ctx, a.UserID, p.start, p.end)
	if err != nil {
		return nil, model.NewCollaboratorError("list events", err)
	}

	breaks, err := s.breaks.GenerateForWindow(ctx, pref, p.start, p.end, calendar.ID)
	if err != nil {
		return nil, fmt.Errorf("breaksService.GenerateForWindow: %w", err)
	}

	zone := p.zoneOf(a)
	workTimes, err := worktime.FromPreference(pref, a.UserID, p.req.HostID, p.start, zone)
	if err != nil {
		return nil, fmt.Errorf("work times: %w", err)
	}

	var timeslots []model.TimeSlot
	for i, day := range model.Days(p.start, p.end) {
		ts, err := slots.ForPreference(day, pref, p.req.HostID, zone, i == 0, model.GridLite)
		if err != nil {
			return nil, fmt.Errorf("timeslots for %s: %w", day.Date(), err)
		}
		timeslots = append(timeslots, ts...)
	}

	return &attendeeData{
		attendee:  a,
		userID:    a.UserID,
		pref:      pref,
		stored:    stored,
		events:    p.eventsFor(a.UserID, stored, breaks),
		breaks:    breaks,
		workTimes: workTimes,
		timeslots: timeslots,
	}, nil
}

func (s *Service) loadExternal(ctx context.Context, p *plan, a model.Attendee) (*attendeeData, error) {
	stored, err := s.attendeesRepository.GetAttendeeEvents(ctx, s.db, a.ID, p.start, p.end)
	if err != nil {
		return nil, model.NewCollaboratorError("list attendee events", err)
	}

	userID := externalUserID(a)
	for _, e := range stored {
		e.UserID = userID
	}
	events := p.eventsFor(userID, stored, nil)

	workTimes, err := worktime.FromEvents(events, userID, p.req.HostID, p.req.HostTimezone)
	if err != nil {
		return nil, fmt.Errorf("work times: %w", err)
	}

	var timeslots []model.TimeSlot
	for i, day := range model.Days(p.start, p.end) {
		ts, err := slots.ForEvents(day, events, p.req.HostID, i == 0, model.GridLite)
		if err != nil {
			return nil, fmt.Errorf("timeslots for %s: %w", day.Date(), err)
		}
		timeslots = append(timeslots, ts...)
	}

	return &attendeeData{
		attendee:  a,
		userID:    userID,
		stored:    stored,
		events:    events,
		workTimes: workTimes,
		timeslots: timeslots,
	}, nil
}

// internalPipeline plans attendees with stored preferences. With only the host in attendees it is
// the host pipeline.
func (s *Service) internalPipeline(ctx context.Context, p *plan, attendees []model.Attendee) (output, []error) {
	loaded, errs := fanOut(ctx, s.settings.Concurrency, attendees, func(ctx context.Context, a model.Attendee) (*attendeeData, error) {
		return s.loadInternal(ctx, p, a)
	})

	var out output
	var workTimes []model.WorkTime
	var valid []*model.Event
	for _, d := range loaded {
		if d == nil {
			continue
		}
		workTimes = append(workTimes, d.workTimes...)
		out.timeslots = append(out.timeslots, d.timeslots...)
		out.breaks = append(out.breaks, d.breaks...)
		out.oldEvents = append(out.oldEvents, d.stored...)
		valid = append(valid, parts.FilterValid(d.events, d.pref)...)
	}
	workTimes = dedup(workTimes)

	bodies := make(map[string]attendeeBody)
	for _, d := range loaded {
		if d == nil {
			continue
		}
		pref := d.pref
		user := internalUser(pref, d.userID, p.req.HostID, workTimes)
		bodies[d.userID] = attendeeBody{
			user: user,
			workingHours: func(isoDay int) float64 {
				return worktime.WorkingHours(pref, isoDay)
			},
		}
		out.userList = append(out.userList, user)
	}

	out.allEvents = uniqueByID(valid)
	formatted, ferrs := s.cut(p, out.allEvents, bodies)
	out.eventParts = formatted

	return out, append(errs, ferrs...)
}

// externalPipeline plans attendees known only through the events imported from their calendars.
func (s *Service) externalPipeline(ctx context.Context, p *plan) (output, []error) {
	loaded, errs := fanOut(ctx, s.settings.Concurrency, p.external, func(ctx context.Context, a model.Attendee) (*attendeeData, error) {
		return s.loadExternal(ctx, p, a)
	})

	var out output
	var workTimes []model.WorkTime
	var valid []*model.Event
	for _, d := range loaded {
		if d == nil {
			continue
		}
		workTimes = append(workTimes, d.workTimes...)
		out.timeslots = append(out.timeslots, d.timeslots...)
		out.oldAttendeeEvents = append(out.oldAttendeeEvents, d.stored...)
		valid = append(valid, parts.FilterValid(d.events, nil)...)
	}
	workTimes = dedup(workTimes)

	bodies := make(map[string]attendeeBody)
	for _, d := range loaded {
		if d == nil {
			continue
		}
		events := d.events
		user := externalUser(d.userID, p.req.HostID, workTimes)
		bodies[d.userID] = attendeeBody{
			user: user,
			workingHours: func(isoDay int) float64 {
				w, ok, err := worktime.EventsWindow(events, isoDay, p.req.HostTimezone)
				if err != nil || !ok {
					return 0
				}
				return w.Hours()
			},
		}
		out.userList = append(out.userList, user)
	}

	out.allEvents = uniqueByID(valid)
	formatted, ferrs := s.cut(p, out.allEvents, bodies)
	out.eventParts = formatted

	return out, append(errs, ferrs...)
}

// cut partitions events, stitches their buffers in and formats the parts of every known owner.
// A part that fails to format drops its whole group so no chain is left with holes in it.
func (s *Service) cut(p *plan, events []*model.Event, bodies map[string]attendeeBody) ([]model.PlannerEventPart, []error) {
	stitched := parts.StitchAllPost(parts.StitchAllPre(parts.GenerateAll(events, p.req.HostID, model.GridLite)))

	type cutPart struct {
		groupID string
		part    model.PlannerEventPart
	}

	var kept []cutPart
	var errs []error
	failed := make(map[string]struct{})
	for _, part := range stitched {
		body, ok := bodies[part.Event.UserID]
		if !ok {
			continue
		}

		formatted, ok, err := formatPart(part, body, p.req.HostTimezone)
		if err != nil {
			errs = append(errs, fmt.Errorf("format part %d of %v: %w", part.Part, part.EventID, err))
			failed[part.GroupID] = struct{}{}
			continue
		}
		if ok {
			kept = append(kept, cutPart{groupID: part.GroupID, part: formatted})
		}
	}

	var res []model.PlannerEventPart
	for _, c := range kept {
		if _, ok := failed[c.groupID]; !ok {
			res = append(res, c.part)
		}
	}

	return dedup(res), errs
}
