package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type EventsHandler struct {
	EventService *service.EventService
}

// HandleList lists a semester's events.
//
//	@Summary		List events
//	@Tags			Events
//	@Produce		json
//	@Param			semester_id			query		string							false	"Semester (default current)"
//	@Param			include_archived	query		bool							false	"Include archived events"
//	@Success		200					{object}	treasurysdk.ListEventsResponse	"Events"
//	@Failure		403					{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.List(r.Context(), actorFrom(r.Context()),
		r.URL.Query().Get("semester_id"), httpx.QueryBool(r, "include_archived"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListEventsResponse{Events: make([]treasurysdk.EventInfo, len(events))}
	for i, e := range events {
		out.Events[i] = toEventInfo(e)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate creates an event.
//
//	@Summary		Create an event
//	@Description	Committee events require managing that committee; chapter-wide events require create_events.
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.EventRequest	true	"Event"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Event id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse	"Invalid event"
//	@Failure		403		{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.EventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.EventService.Create(r.Context(), actorFrom(r.Context()), service.EventParams{
		Title:              req.Title,
		Description:        req.Description,
		Location:           req.Location,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		CommitteeID:        req.CommitteeID,
		Status:             domain.EventStatus(req.Status),
		EstimatedCostCents: req.EstimatedCostCents,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleDelete soft-deletes an event.
//
//	@Summary		Delete an event
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		string						true	"Event ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the event was deleted"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"Event not found"
//	@Security		BearerAuth
//	@Router			/v1/events/{id} [delete].
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	changed, err := h.EventService.Delete(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleLinkCalendar links an event to an external calendar.
//
//	@Summary		Link an event to a calendar
//	@Description	Creates or replaces the event's calendar link and marks it pending sync.
//	@Tags			Events
//	@Accept			json
//	@Param			id		path	string							true	"Event ID"
//	@Param			request	body	treasurysdk.CalendarLinkRequest	true	"Calendar link"
//	@Success		204		"Linked"
//	@Failure		400		{object}	treasurysdk.ErrorResponse	"Missing calendar ids"
//	@Failure		403		{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse	"Event not found"
//	@Security		BearerAuth
//	@Router			/v1/events/{id}/calendar-link [put].
func (h *EventsHandler) HandleLinkCalendar(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.CalendarLinkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	err := h.EventService.LinkCalendar(r.Context(), actorFrom(r.Context()),
		r.PathValue("id"), req.CalendarID, req.ExternalEventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
