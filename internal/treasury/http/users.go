package http

import (
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type UsersHandler struct {
	UserService  *service.UserService
	RolesService *service.RolesService
	DuesService  *service.DuesService
}

// HandleList lists accounts.
//
//	@Summary		List users
//	@Description	Lists accounts, optionally filtered by status. Requires an executive role.
//	@Tags			Users
//	@Produce		json
//	@Param			status	query		string							false	"pending, active or suspended"
//	@Success		200		{object}	treasurysdk.ListUsersResponse	"Users"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := domain.UserStatus(r.URL.Query().Get("status"))
	users, err := h.UserService.List(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := treasurysdk.ListUsersResponse{Users: make([]treasurysdk.UserInfo, len(users))}
	for i, u := range users {
		out.Users[i] = toUserInfo(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleApprove activates a pending account.
//
//	@Summary		Approve a user
//	@Description	Activates a pending account and grants it the brother role. Requires vice_president, president or admin.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string						true	"User ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the account changed"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse	"User not found"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/approve [post].
func (h *UsersHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	changed, err := h.UserService.Approve(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleSuspend blocks an account.
//
//	@Summary		Suspend a user
//	@Description	Suspends an account. Suspended users keep their roles but are denied everything. Callers cannot suspend themselves.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string						true	"User ID"
//	@Success		200	{object}	treasurysdk.ChangedResponse	"Whether the account changed"
//	@Failure		400	{object}	treasurysdk.ErrorResponse	"Self suspension"
//	@Failure		403	{object}	treasurysdk.ErrorResponse	"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/suspend [post].
func (h *UsersHandler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	changed, err := h.UserService.Suspend(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleDues returns a user's dues balance.
//
//	@Summary		Dues balance
//	@Description	Returns charges minus payments, split into the current semester and prior arrears. Users may read their own; manage_dues may read anyone's.
//	@Tags			Dues
//	@Produce		json
//	@Param			id	path		string							true	"User ID"
//	@Success		200	{object}	treasurysdk.DuesBalanceResponse	"Balance"
//	@Failure		403	{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/dues [get].
func (h *UsersHandler) HandleDues(w http.ResponseWriter, r *http.Request) {
	bal, err := h.DuesService.Balance(r.Context(), actorFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBalance(bal))
}
