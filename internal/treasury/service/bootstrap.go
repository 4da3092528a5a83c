package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
)

type BootstrapService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Token   string // pre-configured bootstrap token; empty disables bootstrap
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Users().Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates the first account, active and holding president and
// admin. It only works on an empty users table with the configured token.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, p RegisterParams) (string, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" || !cryptox.TokensEqual(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	var (
		id      string
		entries journal
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		entries = entries[:0]
		n, err := tx.Users().Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if n > 0 {
			return ErrBootstrapAlready
		}
		id, err = provision(ctx, tx, &entries, rbac.AuthContext{UserID: domain.SystemActor},
			p, []string{rbac.RolePresident, rbac.RoleAdmin})
		return err
	})
	if err != nil {
		l.Warn("bootstrap failed", slog.Any("error", err))
		return "", err
	}

	auditor{store: s.Store, metrics: s.Metrics}.committed(ctx, entries...)
	l.Info("successfully bootstrapped system", slog.String("user_id", id))
	return id, nil
}
