package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/business/buffers"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// plan is a validated request with its attendee lists settled.
type plan struct {
	req      *model.PlanRequest
	start    model.WallClock
	end      model.WallClock
	internal []model.Attendee
	external []model.Attendee
	// extra are events that do not come from storage: meeting events and buffers minted for them.
	extra   []*model.Event
	buffers []model.BufferEvents
}

func validateRequest(req *model.PlanRequest) error {
	if req == nil {
		return model.NewValidationError("plan request is required")
	}
	if req.HostID == "" {
		return model.NewValidationError("host id is required")
	}
	if req.HostTimezone == "" {
		return model.NewValidationError("host timezone is required")
	}
	if _, err := time.LoadLocation(req.HostTimezone); err != nil {
		return model.NewValidationError(fmt.Sprintf("unknown host timezone %q", req.HostTimezone), err)
	}
	if req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return model.NewValidationError("window start and end are required")
	}
	if !req.WindowStart.Before(req.WindowEnd) {
		return model.NewValidationError("window end must be after its start")
	}
	if req.Replan != nil && req.Replan.GoogleEventID == "" {
		return model.NewValidationError("replan needs the google event id")
	}
	return nil
}

func newPlan(req *model.PlanRequest) *plan {
	p := &plan{
		req:      req,
		start:    req.WindowStart.Retag(req.HostTimezone),
		end:      req.WindowEnd.Retag(req.HostTimezone),
		internal: req.InternalAttendees,
		external: req.ExternalAttendees,
	}

	if req.Replan != nil {
		p.internal, p.external = replanAttendees(req.Replan, req.HostID, req.HostTimezone)
	}

	for _, e := range req.MeetingEvents {
		p.extra = append(p.extra, e.Clone())
	}

	for _, e := range req.NewMeetingEvents {
		linked, bufs := buffers.Mint(e, e.TimeBlocking)
		p.extra = append(p.extra, linked)
		p.addBuffers(bufs)
	}

	for _, bufs := range req.NewHostBufferTimes {
		p.addBuffers(bufs)
	}

	return p
}

func (p *plan) addBuffers(bufs model.BufferEvents) {
	if bufs.IsZero() {
		return
	}
	if bufs.BeforeEvent != nil {
		p.extra = append(p.extra, bufs.BeforeEvent)
	}
	if bufs.AfterEvent != nil {
		p.extra = append(p.extra, bufs.AfterEvent)
	}
	p.buffers = append(p.buffers, bufs)
}

func (p *plan) hostIsInternal() bool {
	for _, a := range p.internal {
		if a.UserID == p.req.HostID {
			return true
		}
	}
	return false
}

func (p *plan) host() model.Attendee {
	return model.Attendee{
		ID:       p.req.HostID,
		UserID:   p.req.HostID,
		HostID:   p.req.HostID,
		Timezone: p.req.HostTimezone,
	}
}

func (p *plan) zoneOf(a model.Attendee) string {
	if a.Timezone == "" {
		return p.req.HostTimezone
	}
	return a.Timezone
}

// eventsFor merges the in-memory events of userID with what storage returned and swaps in the
// new breaks. In-memory versions win over stored ones with the same id.
func (p *plan) eventsFor(userID string, stored, breaks []*model.Event) []*model.Event {
	var res []*model.Event
	for _, e := range p.extra {
		if e.UserID == userID {
			res = append(res, e)
		}
	}
	res = uniqueByID(append(res, stored...))

	return append(withoutIDs(res, breaks), breaks...)
}

func (p *plan) fileKey(singletonID string) string {
	if p.req.Replan != nil {
		return fmt.Sprintf("%s/%s_REPLAN_%s.json", p.req.HostID, singletonID, p.req.Replan.GoogleEventID)
	}
	return fmt.Sprintf("%s/%s.json", p.req.HostID, singletonID)
}

// replanAttendees applies the attendee changes of a replan to its original attendees and splits
// the result into internal and external ones.
func replanAttendees(r *model.Replan, hostID, hostZone string) ([]model.Attendee, []model.Attendee) {
	removed := make(map[string]bool, len(r.RemovedAttendees))
	for _, id := range r.RemovedAttendees {
		if id != "" {
			removed[id] = true
		}
	}

	var attendees []model.Attendee
	for _, a := range r.Attendees {
		if removed[a.Email] || removed[a.ID] || removed[a.UserID] {
			continue
		}
		attendees = append(attendees, a)
	}

	for _, added := range r.AddedAttendees {
		if hasAttendee(attendees, added) {
			continue
		}
		attendees = append(attendees, newAttendee(added, hostID, hostZone))
	}

	var internal, external []model.Attendee
	for _, a := range attendees {
		if a.IsExternal {
			external = append(external, a)
		} else {
			internal = append(internal, a)
		}
	}

	return internal, external
}

func hasAttendee(attendees []model.Attendee, added model.AddedAttendee) bool {
	for _, a := range attendees {
		if added.Email != "" && a.Email == added.Email {
			return true
		}
		if added.UserID != "" && a.UserID == added.UserID {
			return true
		}
	}
	return false
}

func newAttendee(added model.AddedAttendee, hostID, hostZone string) model.Attendee {
	a := model.Attendee{
		ID:         uuid.NewString(),
		UserID:     added.UserID,
		HostID:     hostID,
		Name:       added.Name,
		Email:      added.Email,
		Timezone:   added.Timezone,
		IsExternal: added.UserID == "",
	}
	if added.IsExternal != nil {
		a.IsExternal = *added.IsExternal
	}
	if a.Name == "" {
		a.Name, _, _ = strings.Cut(added.Email, "@")
	}
	if a.Timezone == "" {
		a.Timezone = hostZone
	}
	return a
}
