package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/moneyx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type LedgerHandler struct {
	LedgerService *service.LedgerService
}

// HandleList returns master ledger entries and the balance.
//
//	@Summary		Master ledger
//	@Description	A page of live entries, newest first, with the chapter-wide balance. Requires manage_master_budget.
//	@Tags			Ledger
//	@Produce		json
//	@Param			limit	query		int							false	"Page size (max 200)"
//	@Param			offset	query		int							false	"Offset"
//	@Success		200		{object}	treasurysdk.LedgerResponse	"Entries and balance"
//	@Failure		403		{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/ledger [get].
func (h *LedgerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := actorFrom(ctx)

	entries, err := h.LedgerService.List(ctx, actor, httpx.QueryInt(r, "limit", 0), httpx.QueryInt(r, "offset", 0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	balance, err := h.LedgerService.Balance(ctx, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.LedgerResponse{
		BalanceCents: balance,
		Display:      moneyx.Format(balance),
		Entries:      make([]treasurysdk.LedgerEntryInfo, len(entries)),
	}
	for i, e := range entries {
		out.Entries[i] = toLedgerEntryInfo(e)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAdd appends a master ledger entry.
//
//	@Summary		Add a ledger entry
//	@Tags			Ledger
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.LedgerEntryRequest	true	"Entry"
//	@Success		201		{object}	treasurysdk.CreatedResponse	"Entry id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Zero amount"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/ledger [post].
func (h *LedgerHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.LedgerEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.LedgerService.AddEntry(r.Context(), actorFrom(r.Context()), service.LedgerParams{
		AmountCents: req.AmountCents,
		Category:    req.Category,
		Memo:        req.Memo,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleDelete soft-deletes a master ledger entry.
//
//	@Summary		Delete a ledger entry
//	@Tags			Ledger
//	@Produce		json
//	@Param			id	path		string						true	"Entry ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the entry was deleted"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"Entry not found"
//	@Security		BearerAuth
//	@Router			/v1/ledger/{id} [delete].
func (h *LedgerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	changed, err := h.LedgerService.DeleteEntry(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

type AuditHandler struct {
	AuditService *service.AuditService
}

// HandleList lists audit entries.
//
//	@Summary		Audit log
//	@Description	Audit entries newest first. Requires manage_roles.
//	@Tags			Audit
//	@Produce		json
//	@Param			actor_id	query		string							false	"Actor"
//	@Param			action		query		string							false	"Action, e.g. ROLE_GRANTED"
//	@Param			target_type	query		string							false	"Target type"
//	@Param			target_id	query		string							false	"Target id"
//	@Param			since		query		string							false	"RFC3339 lower bound"
//	@Param			until		query		string							false	"RFC3339 upper bound"
//	@Param			limit		query		int								false	"Page size (default 50, max 200)"
//	@Param			offset		query		int								false	"Offset"
//	@Success		200			{object}	treasurysdk.AuditLogResponse	"Entries"
//	@Failure		400			{object}	treasurysdk.ErrorResponse		"Malformed filter"
//	@Failure		403			{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/audit [get].
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.AuditFilter{
		ActorID:    q.Get("actor_id"),
		Action:     domain.AuditAction(q.Get("action")),
		TargetType: q.Get("target_type"),
		TargetID:   q.Get("target_id"),
		Limit:      httpx.QueryInt(r, "limit", 0),
		Offset:     httpx.QueryInt(r, "offset", 0),
	}
	var err error
	if f.Since, err = queryTime(r, "since"); err != nil {
		writeBadRequest(w, "since must be RFC3339")
		return
	}
	if f.Until, err = queryTime(r, "until"); err != nil {
		writeBadRequest(w, "until must be RFC3339")
		return
	}

	entries, err := h.AuditService.List(r.Context(), actorFrom(r.Context()), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.AuditLogResponse{Entries: make([]treasurysdk.AuditEntryInfo, len(entries))}
	for i, e := range entries {
		out.Entries[i] = toAuditEntryInfo(e)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
