package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type DuesHandler struct {
	DuesService *service.DuesService
}

// HandleChargeBatch charges every active user.
//
//	@Summary		Batch charge dues
//	@Description	Creates one charge per active user for the semester (default current) and writes a single audit entry with the count. Requires manage_dues.
//	@Tags			Dues
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.ChargeBatchRequest	true	"Charge"
//	@Success		201		{object}	treasurysdk.ChargeBatchResponse	"Charges issued"
//	@Failure		400		{object}	treasurysdk.ErrorResponse			"Invalid amount or no current semester"
//	@Failure		403		{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/dues/charges/batch [post].
func (h *DuesHandler) HandleChargeBatch(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.ChargeBatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	n, err := h.DuesService.CreateChargeBatch(r.Context(), actorFrom(r.Context()), service.ChargeBatchParams{
		SemesterID:  req.SemesterID,
		AmountCents: req.AmountCents,
		Reason:      req.Reason,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, treasurysdk.ChargeBatchResponse{Count: n})
}

// HandleDeleteCharge soft-deletes a charge.
//
//	@Summary		Delete a charge
//	@Tags			Dues
//	@Produce		json
//	@Param			id	path		string						true	"Charge ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the charge was deleted"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"Charge not found"
//	@Security		BearerAuth
//	@Router			/v1/dues/charges/{id} [delete].
func (h *DuesHandler) HandleDeleteCharge(w http.ResponseWriter, r *http.Request) {
	changed, err := h.DuesService.DeleteCharge(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleRecordPayment records a dues payment.
//
//	@Summary		Record a payment
//	@Description	Records money received from a user. The payment is not applied to any charge until allocated. Requires manage_dues.
//	@Tags			Dues
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.PaymentRequest		true	"Payment"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Payment id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Invalid amount or method"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/v1/dues/payments [post].
func (h *DuesHandler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.PaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.DuesService.RecordPayment(r.Context(), actorFrom(r.Context()), service.PaymentParams{
		UserID:      req.UserID,
		AmountCents: req.AmountCents,
		Method:      domain.PaymentMethod(req.Method),
		ExternalRef: req.ExternalRef,
		Notes:       req.Notes,
		PaidAt:      req.PaidAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleDeletePayment soft-deletes a payment.
//
//	@Summary		Delete a payment
//	@Description	Soft-deletes a payment. Its allocations stop counting toward the charges they covered.
//	@Tags			Dues
//	@Produce		json
//	@Param			id	path		string						true	"Payment ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the payment was deleted"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"Payment not found"
//	@Security		BearerAuth
//	@Router			/v1/dues/payments/{id} [delete].
func (h *DuesHandler) HandleDeletePayment(w http.ResponseWriter, r *http.Request) {
	changed, err := h.DuesService.DeletePayment(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleAllocate applies part of a payment to a charge.
//
//	@Summary		Allocate a payment
//	@Description	Applies cents from a payment to one charge of the same user. The allocation may exceed neither the payment's unallocated remainder nor the charge's outstanding amount.
//	@Tags			Dues
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Payment ID"
//	@Param			request	body		treasurysdk.AllocationRequest	true	"Allocation"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Allocation id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Allocation exceeds payment or charge"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse		"Payment or charge not found"
//	@Security		BearerAuth
//	@Router			/v1/dues/payments/{id}/allocations [post].
func (h *DuesHandler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.AllocationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.DuesService.AllocatePayment(r.Context(), actorFrom(r.Context()),
		r.PathValue("id"), req.ChargeID, req.AllocatedCents)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleAutoAllocate spreads a payment over open charges.
//
//	@Summary		Auto-allocate a payment
//	@Description	Applies the payment's unallocated remainder to the user's open charges, oldest first.
//	@Tags			Dues
//	@Produce		json
//	@Param			id	path		string								true	"Payment ID"
//	@Success		200	{object}	treasurysdk.AutoAllocateResponse	"Cents allocated"
//	@Failure		403	{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse			"Payment not found"
//	@Security		BearerAuth
//	@Router			/v1/dues/payments/{id}/auto-allocate [post].
func (h *DuesHandler) HandleAutoAllocate(w http.ResponseWriter, r *http.Request) {
	n, err := h.DuesService.AutoAllocate(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.AutoAllocateResponse{AllocatedCents: n})
}

// HandleSummary reports collection for a semester.
//
//	@Summary		Dues summary
//	@Tags			Dues
//	@Produce		json
//	@Param			semester_id	query		string							false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.DuesSummaryResponse	"Summary"
//	@Failure		403			{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/dues/summary [get].
func (h *DuesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.DuesService.SemesterSummary(r.Context(), actorFrom(r.Context()), r.URL.Query().Get("semester_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.DuesSummaryResponse{
		SemesterID:       s.SemesterID,
		ChargeCount:      s.ChargeCount,
		ChargedCents:     s.ChargedCents,
		AllocatedCents:   s.AllocatedCents,
		OutstandingCents: s.OutstandingCents,
		CollectionRate:   s.CollectionRate,
	})
}
