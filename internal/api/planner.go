package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/SergeyKozhin/schedule-assist/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type planRunReq struct {
	HostID             string                 `json:"hostId"`
	HostTimezone       string                 `json:"hostTimezone"`
	WindowStartDate    model.WallClock        `json:"windowStartDate"`
	WindowEndDate      model.WallClock        `json:"windowEndDate"`
	Tier               model.PlanTier         `json:"tier"`
	InternalAttendees  []model.Attendee       `json:"internalAttendees"`
	ExternalAttendees  []model.Attendee       `json:"externalAttendees"`
	MeetingEvents      []*model.Event         `json:"meetingEvents"`
	NewMeetingEvents   []*model.Event         `json:"newMeetingEvents"`
	NewHostBufferTimes []model.BufferEvents   `json:"newHostBufferTimes"`
	NewHostReminders   []model.EventReminders `json:"newHostReminders"`
	Replan             *model.Replan          `json:"replan"`
}

func (a *Api) createRunHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &planRunReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(req.HostID != "", "hostId", "hostId must be provided")
	v.Check(req.HostTimezone != "", "hostTimezone", "hostTimezone must be provided")
	if req.HostTimezone != "" {
		_, err := time.LoadLocation(req.HostTimezone)
		v.Check(err == nil, "hostTimezone", "hostTimezone must be an IANA zone name")
	}
	v.Check(!req.WindowStartDate.IsZero(), "windowStartDate", "windowStartDate must be provided")
	v.Check(!req.WindowEndDate.IsZero(), "windowEndDate", "windowEndDate must be provided")
	v.Check(req.Tier == "" || validator.In(req.Tier, model.PlanTierFree, model.PlanTierPro, model.PlanTierPremium),
		"tier", "tier must be one of free, pro, premium")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if req.HostID != id {
		a.forbiddenResponse(w, r, "runs can only be requested by their host")
		return
	}

	res, err := a.planner.Run(r.Context(), mapToPlanRequest(req))
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("run planner: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusAccepted, res, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getRunHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	archived, err := a.planner.GetRun(r.Context(), id, chi.URLParam(r, "singletonID"), r.URL.Query().Get("replanOf"))
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("get run: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, json.RawMessage(archived), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// mapToPlanRequest tags every decoded wall clock with the zone it is read in.
func mapToPlanRequest(req *planRunReq) *model.PlanRequest {
	res := &model.PlanRequest{
		HostID:             req.HostID,
		HostTimezone:       req.HostTimezone,
		WindowStart:        req.WindowStartDate.Retag(req.HostTimezone),
		WindowEnd:          req.WindowEndDate.Retag(req.HostTimezone),
		Tier:               req.Tier,
		InternalAttendees:  req.InternalAttendees,
		ExternalAttendees:  req.ExternalAttendees,
		MeetingEvents:      retagEvents(req.MeetingEvents),
		NewMeetingEvents:   retagEvents(req.NewMeetingEvents),
		NewHostBufferTimes: req.NewHostBufferTimes,
		NewHostReminders:   req.NewHostReminders,
		Replan:             req.Replan,
	}

	for i := range res.NewHostBufferTimes {
		retagEvent(res.NewHostBufferTimes[i].BeforeEvent)
		retagEvent(res.NewHostBufferTimes[i].AfterEvent)
	}

	return res
}

func retagEvents(events []*model.Event) []*model.Event {
	for _, e := range events {
		retagEvent(e)
	}
	return events
}

func retagEvent(e *model.Event) {
	if e == nil {
		return
	}
	e.StartDate = e.StartDate.Retag(e.Timezone)
	e.EndDate = e.EndDate.Retag(e.Timezone)
}
