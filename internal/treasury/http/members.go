package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type MembersHandler struct {
	MemberService *service.MemberService
}

// HandleList lists the roster.
//
//	@Summary		List members
//	@Tags			Members
//	@Produce		json
//	@Param			semester_id	query		string							false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.ListMembersResponse	"Members"
//	@Failure		403			{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ms, err := h.MemberService.List(r.Context(), actorFrom(r.Context()), r.URL.Query().Get("semester_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListMembersResponse{Members: make([]treasurysdk.MemberInfo, len(ms))}
	for i, m := range ms {
		out.Members[i] = toMemberInfo(m)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAdd adds a roster member.
//
//	@Summary		Add a member
//	@Description	Adds a member with a payment plan: semester, bimonthly, monthly or custom. Custom installments must sum to the dues. Requires manage_dues.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.MemberRequest	true	"Member"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Member id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse	"Invalid member or plan"
//	@Failure		403		{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/members [post].
func (h *MembersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.MemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.MemberService.AddMember(r.Context(), actorFrom(r.Context()), service.MemberParams{
		UserID:       req.UserID,
		Name:         req.Name,
		Contact:      req.Contact,
		ContactType:  domain.ContactType(req.ContactType),
		DuesCents:    req.DuesCents,
		SemesterID:   req.SemesterID,
		Plan:         domain.PlanKind(req.Plan),
		Installments: fromInstallments(req.Installments),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleGet returns a member statement.
//
//	@Summary		Member statement
//	@Description	Payments, balance and schedule progress. Readable with manage_dues or by the linked user.
//	@Tags			Members
//	@Produce		json
//	@Param			id	path		string								true	"Member ID"
//	@Success		200	{object}	treasurysdk.MemberStatementResponse	"Statement"
//	@Failure		403	{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse			"Member not found"
//	@Security		BearerAuth
//	@Router			/v1/members/{id} [get].
func (h *MembersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.MemberService.Get(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStatement(st))
}

// HandleRecordPayment records a member payment.
//
//	@Summary		Record a member payment
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Member ID"
//	@Param			request	body		treasurysdk.MemberPaymentRequest	true	"Payment"
//	@Success		201		{object}	treasurysdk.CreatedResponse		"Payment id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse			"Invalid amount or method"
//	@Failure		403		{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse			"Member not found"
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/payments [post].
func (h *MembersHandler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.MemberPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.MemberService.RecordPayment(r.Context(), actorFrom(r.Context()), r.PathValue("id"), service.MemberPaymentParams{
		AmountCents: req.AmountCents,
		Method:      domain.PaymentMethod(req.Method),
		PaidAt:      req.PaidAt,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleSummary reports roster collection.
//
//	@Summary		Member dues summary
//	@Tags			Members
//	@Produce		json
//	@Param			semester_id	query		string								false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.MemberSummaryResponse	"Summary"
//	@Failure		403			{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/members/summary [get].
func (h *MembersHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.MemberService.DuesSummary(r.Context(), actorFrom(r.Context()), r.URL.Query().Get("semester_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.MemberSummaryResponse{
		SemesterID:       s.SemesterID,
		MemberCount:      s.MemberCount,
		PaidUpCount:      s.PaidUpCount,
		ProjectedCents:   s.ProjectedCents,
		CollectedCents:   s.CollectedCents,
		OutstandingCents: s.OutstandingCents,
		CollectionRate:   s.CollectionRate,
	})
}
