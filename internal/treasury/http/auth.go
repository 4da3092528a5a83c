package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type AuthHandler struct {
	UserService      *service.UserService
	RolesService     *service.RolesService
	BootstrapService *service.BootstrapService
	Issuer           tokenIssuer
}

func registerParams(req treasurysdk.RegisterRequest) service.RegisterParams {
	return service.RegisterParams{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
}

// HandleRegister creates a pending account.
//
//	@Summary		Register an account
//	@Description	Creates a pending account. It holds no roles and cannot sign in until an executive approves it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.RegisterRequest		true	"Account details"
//	@Success		201		{object}	treasurysdk.CreatedResponse		"Created user id"
//	@Failure		400		{object}	treasurysdk.ErrorResponse		"Invalid email or weak password"
//	@Failure		409		{object}	treasurysdk.ErrorResponse		"Email or phone already registered"
//	@Failure		429		{object}	treasurysdk.ErrorResponse		"Too many attempts"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.UserService.Register(r.Context(), registerParams(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, id)
}

// HandleLogin exchanges credentials for an access token.
//
//	@Summary		Sign in
//	@Description	Verifies an email and password and issues an EdDSA access token. Pending and suspended accounts are refused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		treasurysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	treasurysdk.TokenResponse	"Access token"
//	@Failure		401		{object}	treasurysdk.ErrorResponse	"Invalid credentials"
//	@Failure		403		{object}	treasurysdk.ErrorResponse	"Account is not active"
//	@Failure		429		{object}	treasurysdk.ErrorResponse	"Too many attempts"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req treasurysdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	u, err := h.UserService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		slogx.FromContext(ctx).Info("login refused", "error", err)
		writeServiceError(w, r, err)
		return
	}

	tok, err := h.Issuer.issue(ctx, u.ID, u.Email, u.FullName())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tok)
}

// HandleBootstrap creates the first account.
//
//	@Summary		Bootstrap the treasury
//	@Description	Creates the first account holding president and admin. Requires the X-Bootstrap-Token header and an empty users table.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string							true	"Bootstrap token"
//	@Param			request				body		treasurysdk.BootstrapRequest	true	"First account"
//	@Success		201					{object}	treasurysdk.BootstrapResponse	"Created user and token"
//	@Failure		400					{object}	treasurysdk.ErrorResponse		"Invalid account details"
//	@Failure		403					{object}	treasurysdk.ErrorResponse		"Invalid bootstrap token"
//	@Failure		409					{object}	treasurysdk.ErrorResponse		"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *AuthHandler) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req treasurysdk.BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	id, err := h.BootstrapService.Bootstrap(ctx, token, registerParams(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.FirstName + " " + req.LastName)
	tok, err := h.Issuer.issue(ctx, id, strings.ToLower(strings.TrimSpace(req.Email)), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, treasurysdk.BootstrapResponse{UserID: id, Token: tok})
}

// HandleMe describes the caller.
//
//	@Summary		Current user
//	@Description	Returns the caller's account, active roles, primary role, resolved permissions and the committees they manage.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	treasurysdk.MeResponse		"Caller"
//	@Failure		401	{object}	treasurysdk.ErrorResponse	"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := actorFrom(ctx)

	u, err := h.UserService.Get(ctx, actor, actor.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	roles := actor.Roles
	if roles == nil {
		roles = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.MeResponse{
		User:        toUserInfo(u),
		Roles:       roles,
		PrimaryRole: actor.PrimaryRole(),
		Permissions: actor.Permissions().List(),
		Committees:  actor.ManagedCommittees(),
	})
}
