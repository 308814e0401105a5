package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/SergeyKozhin/schedule-assist/internal/business/cascade"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/go-chi/chi/v5"
)

type defaultsResp struct {
	Event      *model.Event       `json:"event"`
	Reminders  []model.Reminder   `json:"reminders"`
	Buffers    model.BufferEvents `json:"bufferEvents"`
	Categories []string           `json:"categoryIds"`
}

func mapToDefaultsResp(res *cascade.Result) *defaultsResp {
	ids, _ := mapSlice(res.Categories, func(c *model.Category) (string, error) {
		return c.ID, nil
	})

	return &defaultsResp{
		Event:      res.Event,
		Reminders:  res.Reminders,
		Buffers:    res.Buffers,
		Categories: ids,
	}
}

// applyDefaultsHandler takes the escaped "<id>#<calendarId>" event key as the path parameter
// and the previous event key in the previousEventId query parameter.
func (a *Api) applyDefaultsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	raw, err := url.PathUnescape(chi.URLParam(r, "eventID"))
	if err != nil {
		a.badRequestResponse(w, r, fmt.Errorf("invalid event id: %w", err))
		return
	}

	eventID := model.ParseEventKey(raw)
	if eventID.ID == "" {
		a.notFoundResponse(w, r)
		return
	}
	previousID := model.ParseEventKey(r.URL.Query().Get("previousEventId"))

	res, err := a.defaults.ApplyDefaults(r.Context(), id, eventID, previousID)
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("apply defaults: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToDefaultsResp(res), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
