package treasurysdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles retrieves every catalogued role with its permissions.
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	var out ListRolesResponse
	if err := s.get(ctx, "/v1/roles", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers lists accounts, optionally filtered by status (pending, active,
// suspended). Requires an executive role.
func (s *Session) ListUsers(ctx context.Context, status string) (*ListUsersResponse, error) {
	path := "/v1/users"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out ListUsersResponse
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveUser activates a pending account and grants it the brother role.
func (s *Session) ApproveUser(ctx context.Context, userID string) (bool, error) {
	return s.changed(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(userID)+"/approve", nil)
}

// SuspendUser blocks an account from signing in.
func (s *Session) SuspendUser(ctx context.Context, userID string) (bool, error) {
	return s.changed(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(userID)+"/suspend", nil)
}

// UserRoles lists a user's active roles.
func (s *Session) UserRoles(ctx context.Context, userID string) (*UserRolesResponse, error) {
	var out UserRolesResponse
	if err := s.get(ctx, "/v1/users/"+url.PathEscape(userID)+"/roles", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrantRole grants role to userID. It reports false when the user already
// holds the role or the role is unknown.
func (s *Session) GrantRole(ctx context.Context, userID, role string) (bool, error) {
	return s.changed(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(userID)+"/roles",
		GrantRoleRequest{Role: role})
}

// RevokeRole revokes role from userID. It reports false when there was no
// active assignment.
func (s *Session) RevokeRole(ctx context.Context, userID, role string) (bool, error) {
	return s.changed(ctx, http.MethodDelete,
		"/v1/users/"+url.PathEscape(userID)+"/roles/"+url.PathEscape(role), nil)
}

// DuesBalance returns a user's dues position. Users may read their own.
func (s *Session) DuesBalance(ctx context.Context, userID string) (*DuesBalanceResponse, error) {
	var out DuesBalanceResponse
	if err := s.get(ctx, "/v1/users/"+url.PathEscape(userID)+"/dues", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
