package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/idx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
)

type UserService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type RegisterParams struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Password  string
}

func (s *UserService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

// Register creates a pending account. It carries no roles until approved.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (string, error) {
	u, err := newUser(p, domain.UserPending)
	if err != nil {
		return "", err
	}
	err = s.Store.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return u.ID, nil
}

// Provision creates an active account holding roles. The audit trail shows
// one approval followed by one grant per role.
func (s *UserService) Provision(ctx context.Context, actor rbac.AuthContext, p RegisterParams, roles []string) (string, error) {
	if !actor.HasAnyRole(rbac.RoleAdmins...) {
		return "", s.auditor().deny(ctx, actor, "provision_user")
	}
	var (
		id      string
		entries journal
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		entries = entries[:0]
		var err error
		id, err = provision(ctx, tx, &entries, actor, p, roles)
		return err
	})
	if err != nil {
		return "", err
	}
	s.auditor().committed(ctx, entries...)
	return id, nil
}

func provision(ctx context.Context, tx store.Store, j *journal, actor rbac.AuthContext, p RegisterParams, roles []string) (string, error) {
	for _, role := range roles {
		if _, ok := rbac.PermissionsFor(role); !ok {
			return "", invalid("unknown role %q", role)
		}
	}
	u, err := newUser(p, domain.UserActive)
	if err != nil {
		return "", err
	}
	at := now()
	u.ApprovedBy = actor.UserID
	u.ApprovedAt = &at

	err = tx.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if err := j.record(ctx, tx, actor, domain.AuditEntry{
		Action:     domain.AuditUserApproved,
		TargetType: "user",
		TargetID:   u.ID,
		Details:    map[string]any{"email": u.Email},
	}); err != nil {
		return "", err
	}

	for _, role := range roles {
		err := grant(ctx, tx, actor, u.ID, role)
		if errors.Is(err, errNoChange) {
			continue
		}
		if err != nil {
			return "", err
		}
		if err := j.record(ctx, tx, actor, domain.AuditEntry{
			Action:     domain.AuditRoleGranted,
			TargetType: "user",
			TargetID:   u.ID,
			Details:    map[string]any{"role": role},
		}); err != nil {
			return "", err
		}
	}
	return u.ID, nil
}

// Approve activates a pending or suspended account and grants brother.
func (s *UserService) Approve(ctx context.Context, actor rbac.AuthContext, userID string) (bool, error) {
	a := s.auditor()
	if !actor.HasAnyRole(rbac.RoleAdmins...) {
		return false, a.deny(ctx, actor, "approve_user")
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return false, notFound("user", err)
	}
	if u.IsActive() {
		return false, nil
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		if err := tx.Users().SetStatus(ctx, userID, domain.UserActive, actor.UserID, now()); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("activate user: %w", err)
		}
		if err := grant(ctx, tx, actor, userID, rbac.RoleBrother); err != nil && !errors.Is(err, errNoChange) {
			return domain.AuditEntry{}, err
		}
		return domain.AuditEntry{
			Action:     domain.AuditUserApproved,
			TargetType: "user",
			TargetID:   userID,
			Details:    map[string]any{"previous_status": string(u.Status)},
		}, nil
	})
}

// Suspend blocks an account. Its roles are kept but ignored while suspended.
func (s *UserService) Suspend(ctx context.Context, actor rbac.AuthContext, userID string) (bool, error) {
	a := s.auditor()
	if !actor.HasAnyRole(rbac.RoleAdmins...) {
		return false, a.deny(ctx, actor, "suspend_user")
	}
	if userID == actor.UserID {
		return false, invalid("cannot suspend yourself")
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return false, notFound("user", err)
	}
	if u.Status == domain.UserSuspended {
		return false, nil
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		if err := tx.Users().SetStatus(ctx, userID, domain.UserSuspended, actor.UserID, now()); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("suspend user: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditUserSuspended,
			TargetType: "user",
			TargetID:   userID,
			Details:    map[string]any{"previous_status": string(u.Status)},
		}, nil
	})
}

// Authenticate checks an email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)
	u, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return domain.User{}, ErrAccountInactive
	}

	at := now()
	if err := s.Store.Users().TouchLastLogin(ctx, u.ID, at); err != nil {
		l.Warn("failed to record login time", slog.String("user_id", u.ID), slog.Any("error", err))
	} else {
		u.LastLoginAt = &at
	}
	return u, nil
}

// Get returns a user. Callers may read themselves; executives may read
// anyone.
func (s *UserService) Get(ctx context.Context, actor rbac.AuthContext, userID string) (domain.User, error) {
	if actor.UserID != userID && !actor.IsExecutive() {
		return domain.User{}, s.auditor().deny(ctx, actor, "get_user")
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	return u, notFound("user", err)
}

// List returns users filtered by status; an empty status lists everyone.
func (s *UserService) List(ctx context.Context, actor rbac.AuthContext, status domain.UserStatus) ([]domain.User, error) {
	if !actor.IsExecutive() {
		return nil, s.auditor().deny(ctx, actor, "list_users")
	}
	switch status {
	case "", domain.UserPending, domain.UserActive, domain.UserSuspended:
	default:
		return nil, invalid("unknown status %q", status)
	}
	return s.Store.Users().ListUsers(ctx, status)
}

func newUser(p RegisterParams, status domain.UserStatus) (domain.User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(p.Email))
	if err != nil || addr.Address != strings.TrimSpace(p.Email) {
		return domain.User{}, invalid("invalid email address")
	}
	first, last := strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName)
	if first == "" || last == "" {
		return domain.User{}, invalid("first and last name are required")
	}
	if err := cryptox.ValidatePassword(p.Password); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(addr.Address),
		Phone:        strings.TrimSpace(p.Phone),
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
		Status:       status,
		CreatedAt:    now(),
	}, nil
}
