package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type SemestersHandler struct {
	SemesterService *service.SemesterService
}

// HandleList lists semesters.
//
//	@Summary		List semesters
//	@Tags			Semesters
//	@Produce		json
//	@Success		200	{object}	treasurysdk.ListSemestersResponse	"Semesters"
//	@Security		BearerAuth
//	@Router			/v1/semesters [get].
func (h *SemestersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sems, err := h.SemesterService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListSemestersResponse{Semesters: make([]treasurysdk.SemesterInfo, len(sems))}
	for i, s := range sems {
		out.Semesters[i] = toSemesterInfo(s)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCurrent returns the open semester.
//
//	@Summary		Current semester
//	@Tags			Semesters
//	@Produce		json
//	@Success		200	{object}	treasurysdk.SemesterInfo	"Current semester"
//	@Failure		400	{object}	treasurysdk.ErrorResponse	"No current semester"
//	@Security		BearerAuth
//	@Router			/v1/semesters/current [get].
func (h *SemestersHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	sem, err := h.SemesterService.Current(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSemesterInfo(sem))
}

// HandleRollover closes the current semester and opens the next.
//
//	@Summary		Roll over the semester
//	@Description	Archives the current semester and its events, then makes the requested semester current. Requires vice_president or president and confirmation "ROLL_OVER".
//	@Tags			Semesters
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.RolloverRequest	true	"Next semester"
//	@Success		200		{object}	treasurysdk.ChangedResponse	"Rolled over"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Confirmation mismatch, invalid season or semester exists"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/semesters/rollover [post].
func (h *SemestersHandler) HandleRollover(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.RolloverRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	changed, err := h.SemesterService.Rollover(r.Context(), actorFrom(r.Context()), service.NewSemester{
		Name:     req.Name,
		Season:   domain.Season(req.Season),
		Year:     req.Year,
		StartsOn: req.StartsOn,
		EndsOn:   req.EndsOn,
	}, req.Confirmation)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}
