package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type CommitteesHandler struct {
	CommitteeService *service.CommitteeService
}

// HandleList lists committees.
//
//	@Summary		List committees
//	@Tags			Committees
//	@Produce		json
//	@Success		200	{object}	treasurysdk.ListCommitteesResponse	"Committees"
//	@Security		BearerAuth
//	@Router			/v1/committees [get].
func (h *CommitteesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.CommitteeService.ListCommittees(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListCommitteesResponse{Committees: make([]treasurysdk.CommitteeInfo, len(cs))}
	for i, c := range cs {
		out.Committees[i] = treasurysdk.CommitteeInfo{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleBudget reports a committee's remaining budget.
//
//	@Summary		Committee budget
//	@Description	Latest allocation minus spending plus credits. Readable by the committee's chair, executives and anyone who allocates budgets.
//	@Tags			Committees
//	@Produce		json
//	@Param			id			path		string						true	"Committee ID"
//	@Param			semester_id	query		string						false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.BudgetResponse	"Budget"
//	@Failure		403			{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404			{object}	treasurysdk.ErrorResponse	"Committee not found"
//	@Security		BearerAuth
//	@Router			/v1/committees/{id}/budget [get].
func (h *CommitteesHandler) HandleBudget(w http.ResponseWriter, r *http.Request) {
	b, err := h.CommitteeService.Budget(r.Context(), actorFrom(r.Context()),
		r.URL.Query().Get("semester_id"), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBudget(b))
}

// HandleSetAllocation sets a committee's budget.
//
//	@Summary		Set a committee allocation
//	@Description	Records a new allocation; the most recent one is the committee's budget. Requires manage_committee_allocations.
//	@Tags			Committees
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Committee ID"
//	@Param			request	body		treasurysdk.AllocationSetRequest	true	"Allocation"
//	@Success		201		{object}	treasurysdk.CreatedResponse		"Allocation id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse			"Invalid amount"
//	@Failure		403		{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse			"Committee not found"
//	@Security		BearerAuth
//	@Router			/v1/committees/{id}/allocations [post].
func (h *CommitteesHandler) HandleSetAllocation(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.AllocationSetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.CommitteeService.SetAllocation(r.Context(), actorFrom(r.Context()),
		req.SemesterID, r.PathValue("id"), req.AllocatedCents, req.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleListTransactions lists committee transactions.
//
//	@Summary		List committee transactions
//	@Tags			Committees
//	@Produce		json
//	@Param			id			path		string								true	"Committee ID"
//	@Param			semester_id	query		string								false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.ListTransactionsResponse	"Transactions"
//	@Failure		403			{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/committees/{id}/transactions [get].
func (h *CommitteesHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.CommitteeService.ListTransactions(r.Context(), actorFrom(r.Context()),
		r.URL.Query().Get("semester_id"), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListTransactionsResponse{Transactions: make([]treasurysdk.TransactionInfo, len(txs))}
	for i, t := range txs {
		out.Transactions[i] = toTransactionInfo(t)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreateTransaction records committee spending or a credit.
//
//	@Summary		Record a committee transaction
//	@Description	The amount is always positive; direction "spend" stores it negative and "credit" positive. Requires managing the committee.
//	@Tags			Committees
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Committee ID"
//	@Param			request	body		treasurysdk.TransactionRequest	true	"Transaction"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Transaction id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Invalid amount or direction"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/committees/{id}/transactions [post].
func (h *CommitteesHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.CommitteeService.CreateTransaction(r.Context(), actorFrom(r.Context()), service.TransactionParams{
		CommitteeID: r.PathValue("id"),
		SemesterID:  req.SemesterID,
		AmountCents: req.AmountCents,
		Direction:   domain.Direction(req.Direction),
		Vendor:      req.Vendor,
		Category:    req.Category,
		Memo:        req.Memo,
		EventID:     req.EventID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleDeleteTransaction soft-deletes a committee transaction.
//
//	@Summary		Delete a committee transaction
//	@Description	Executives may delete any transaction; chairs only their own.
//	@Tags			Committees
//	@Produce		json
//	@Param			id	path		string						true	"Transaction ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the transaction was deleted"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"Transaction not found"
//	@Security		BearerAuth
//	@Router			/v1/committee-transactions/{id} [delete].
func (h *CommitteesHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	changed, err := h.CommitteeService.DeleteTransaction(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleSummary lists every committee's budget.
//
//	@Summary		Budget summary
//	@Tags			Committees
//	@Produce		json
//	@Param			semester_id	query		string								false	"Semester (default current)"
//	@Success		200			{object}	treasurysdk.BudgetSummaryResponse	"Budgets"
//	@Failure		403			{object}	treasurysdk.ErrorResponse			"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/budget/summary [get].
func (h *CommitteesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	semesterID := r.URL.Query().Get("semester_id")
	budgets, err := h.CommitteeService.BudgetSummary(r.Context(), actorFrom(r.Context()), semesterID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.BudgetSummaryResponse{SemesterID: semesterID, Budgets: make([]treasurysdk.BudgetResponse, len(budgets))}
	for i, b := range budgets {
		out.Budgets[i] = toBudget(b)
		out.SemesterID = b.SemesterID
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
