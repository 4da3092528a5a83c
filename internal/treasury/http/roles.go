package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList lists the role catalogue.
//
//	@Summary		List all roles
//	@Description	Returns every catalogued role with the permissions it grants.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	treasurysdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	treasurysdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		500	{object}	treasurysdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListRoles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := treasurysdk.ListRolesResponse{
		Roles: make([]treasurysdk.RoleInfo, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = treasurysdk.RoleInfo{
			Name:        role.Role.Name,
			Description: role.Role.Description,
			Permissions: role.Permissions,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleUserRoles lists a user's active roles.
//
//	@Summary		List a user's roles
//	@Description	Returns the roles a user currently holds. Users may read their own; executives may read anyone's.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string							true	"User ID"
//	@Success		200	{object}	treasurysdk.UserRolesResponse	"Active roles"
//	@Failure		403	{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Failure		404	{object}	treasurysdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/roles [get].
func (h *RolesHandler) HandleUserRoles(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	userID := r.PathValue("id")
	if actor.UserID != userID && !actor.IsExecutive() {
		writeServiceError(w, r, fmt.Errorf("%w: list_user_roles", service.ErrForbidden))
		return
	}

	roles, err := h.RolesService.ActiveRoles(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if roles == nil {
		roles = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.UserRolesResponse{UserID: userID, Roles: roles})
}

// HandleGrant grants a role to a user.
//
//	@Summary		Grant a role
//	@Description	Grants a role. Requires vice_president, president or admin. Repeating a grant, or naming an unknown role, reports changed=false.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		treasurysdk.GrantRoleRequest	true	"Role to grant"
//	@Success		200		{object}	treasurysdk.ChangedResponse	"Whether the grant changed anything"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Failure		404		{object}	treasurysdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/roles [post].
func (h *RolesHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	var req treasurysdk.GrantRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	changed, err := h.RolesService.GrantRole(r.Context(), actorFrom(r.Context()), r.PathValue("id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}

// HandleRevoke revokes a role from a user.
//
//	@Summary		Revoke a role
//	@Description	Revokes an active role assignment. Requires vice_president, president or admin. Revoking a role that is not held reports changed=false.
//	@Tags			Roles
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			role	path		string						true	"Role name"
//	@Success		200		{object}	treasurysdk.ChangedResponse	"Whether the revoke changed anything"
//	@Failure		403		{object}	treasurysdk.ErrorResponse		"Forbidden"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/roles/{role} [delete].
func (h *RolesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	changed, err := h.RolesService.RevokeRole(r.Context(), actorFrom(r.Context()), r.PathValue("id"), r.PathValue("role"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeChanged(w, changed)
}
