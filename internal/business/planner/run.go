package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// Result identifies a queued solver run.
type Result struct {
	SingletonID string   `json:"singletonId"`
	FileKey     string   `json:"fileKey"`
	EventParts  int      `json:"eventParts"`
	Timeslots   int      `json:"timeslots"`
	Users       int      `json:"users"`
	Skipped     []string `json:"skipped,omitempty"`
}

// Run assembles the solver request for the host and attendees of req, archives it and queues it
// with the solver. Attendees that cannot be read are skipped and reported in the result; the run
// fails only when nothing plannable is left.
func (s *Service) Run(ctx context.Context, req *model.PlanRequest) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	delay, err := s.delay(req.Tier)
	if err != nil {
		return nil, err
	}

	p := newPlan(req)

	var out output
	var errs []error

	internal := []model.Attendee{p.host()}
	if p.hostIsInternal() {
		internal = p.internal
	}
	o, e := s.internalPipeline(ctx, p, internal)
	out.append(o)
	errs = append(errs, e...)

	if len(p.external) > 0 {
		o, e := s.externalPipeline(ctx, p)
		out.append(o)
		errs = append(errs, e...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.dedup()

	for _, err := range errs {
		s.logger.Warnw("attendee left out of planner run", "hostId", req.HostID, "err", err)
	}

	if missing := out.missing(); len(missing) > 0 {
		return nil, model.NewAssemblyError(
			fmt.Sprintf("nothing to plan for host %s: empty %s", req.HostID, strings.Join(missing, ", ")),
			errs...,
		)
	}

	singletonID := uuid.NewString()
	key := p.fileKey(singletonID)

	if err := s.archive.Put(ctx, key, p.archive(singletonID, out)); err != nil {
		return nil, model.NewCollaboratorError("archive planner request", err)
	}

	if err := s.events.SaveEvents(ctx, p.minted(out)); err != nil {
		return nil, model.NewCollaboratorError("save generated events", err)
	}

	solverReq := &model.SolverRequest{
		SingletonID: singletonID,
		HostID:      req.HostID,
		Timeslots:   out.timeslots,
		UserList:    out.userList,
		EventParts:  out.eventParts,
		FileKey:     key,
		Delay:       delay.Milliseconds(),
		CallBackURL: s.settings.CallbackURL,
	}
	if err := s.solver.Submit(ctx, solverReq); err != nil {
		return nil, model.NewCollaboratorError("submit planner request", err)
	}

	s.logger.Infow("planner run queued",
		"hostId", req.HostID,
		"singletonId", singletonID,
		"eventParts", len(out.eventParts),
		"timeslots", len(out.timeslots),
		"users", len(out.userList),
		"skipped", len(errs),
	)

	res := &Result{
		SingletonID: singletonID,
		FileKey:     key,
		EventParts:  len(out.eventParts),
		Timeslots:   len(out.timeslots),
		Users:       len(out.userList),
	}
	for _, err := range errs {
		res.Skipped = append(res.Skipped, err.Error())
	}

	return res, nil
}

// GetRun returns the archived payload of a run. replanOf is the google event id of a replan run,
// empty otherwise.
func (s *Service) GetRun(ctx context.Context, hostID, singletonID, replanOf string) ([]byte, error) {
	req := &model.PlanRequest{HostID: hostID}
	if replanOf != "" {
		req.Replan = &model.Replan{GoogleEventID: replanOf}
	}
	key := (&plan{req: req}).fileKey(singletonID)

	data, err := s.archive.Get(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, model.NewNotFoundError(fmt.Sprintf("planner run %s", key), err)
		}
		return nil, model.NewCollaboratorError("read planner request", err)
	}

	return data, nil
}

func (s *Service) delay(tier model.PlanTier) (time.Duration, error) {
	if tier == "" {
		tier = model.PlanTierFree
	}

	d, ok := s.settings.Delays[tier]
	if !ok {
		return 0, model.NewValidationError(fmt.Sprintf("unknown plan tier %q", tier))
	}
	return d, nil
}

func (p *plan) archive(singletonID string, out output) *model.PlannerArchive {
	res := &model.PlannerArchive{
		SingletonID:        singletonID,
		HostID:             p.req.HostID,
		EventParts:         out.eventParts,
		AllEvents:          out.allEvents,
		Breaks:             out.breaks,
		OldEvents:          out.oldEvents,
		OldAttendeeEvents:  out.oldAttendeeEvents,
		NewHostBufferTimes: p.buffers,
		NewHostReminders:   p.req.NewHostReminders,
		HostTimezone:       p.req.HostTimezone,
	}

	if r := p.req.Replan; r != nil {
		res.IsReplan = true
		res.OriginalGoogleEventID = r.GoogleEventID
		res.OriginalCalendarID = r.CalendarID
	}

	return res
}

// minted are the events generated for the run that storage does not know yet: breaks and buffers.
func (p *plan) minted(out output) []*model.Event {
	res := append([]*model.Event(nil), out.breaks...)
	for _, bufs := range p.buffers {
		if bufs.BeforeEvent != nil {
			res = append(res, bufs.BeforeEvent)
		}
		if bufs.AfterEvent != nil {
			res = append(res, bufs.AfterEvent)
		}
	}
	return uniqueByID(res)
}
