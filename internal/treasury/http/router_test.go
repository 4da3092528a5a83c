package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/jwtx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer     = "treasury-test"
	bootstrapToken = "boot-token"
	testPassword   = "correct-horse-battery"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "treasury-http")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	srv    *httptest.Server
	client *treasurysdk.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	st, err := sqlstore.NewSQLite(filepath.Join(dir, "treasury.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.LoadOrGenerateSigner(filepath.Join(dir, "signing.pem"))
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewCommonEdDSA(keys, testIssuer, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()

	r := NewRouter(keys, verifier, signer, testIssuer, "test", st, logger)
	r.Metrics = m
	r.UserService = &service.UserService{Store: st, Metrics: m}
	r.RolesService = &service.RolesService{Store: st, Metrics: m}
	r.BootstrapService = &service.BootstrapService{Store: st, Metrics: m, Token: bootstrapToken}
	r.SemesterService = &service.SemesterService{Store: st, Metrics: m}
	r.DuesService = &service.DuesService{Store: st, Metrics: m}
	r.CommitteeService = &service.CommitteeService{Store: st, Metrics: m}
	r.LedgerService = &service.LedgerService{Store: st, Metrics: m}
	r.EventService = &service.EventService{Store: st, Metrics: m}
	r.MemberService = &service.MemberService{Store: st, Metrics: m}
	r.AuditService = &service.AuditService{Store: st, Metrics: m}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, client: treasurysdk.NewClient(srv.URL)}
}

func (e *testEnv) bootstrap(t *testing.T) *treasurysdk.Session {
	t.Helper()
	resp, err := e.client.Bootstrap(context.Background(), bootstrapToken, treasurysdk.BootstrapRequest{
		Email:     "president@example.edu",
		FirstName: "Pat",
		LastName:  "President",
		Password:  testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.UserID)
	session := e.client.NewSession(&resp.Token)
	require.Equal(t, resp.UserID, session.UserID())
	return session
}

// brother registers a new account, has it approved and logs it in.
func (e *testEnv) brother(t *testing.T, admin *treasurysdk.Session, email string) *treasurysdk.Session {
	t.Helper()
	ctx := context.Background()

	created, err := e.client.Register(ctx, treasurysdk.RegisterRequest{
		Email:     email,
		FirstName: "Bro",
		LastName:  "Member",
		Password:  testPassword,
	})
	require.NoError(t, err)

	ok, err := admin.ApproveUser(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	s, err := e.client.AuthenticateWithPassword(ctx, email, testPassword)
	require.NoError(t, err)
	require.Equal(t, created.ID, s.UserID())
	return s
}

func TestBootstrapAndMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.Bootstrap(ctx, "wrong", treasurysdk.BootstrapRequest{
		Email: "x@example.edu", FirstName: "X", LastName: "Y", Password: testPassword,
	})
	require.True(t, treasurysdk.IsAccessDenied(err))

	president := env.bootstrap(t)

	me, err := president.Me(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"president", "admin"}, me.Roles)
	require.Equal(t, "president", me.PrimaryRole)
	require.Contains(t, me.Permissions, "manage_dues")
	require.Equal(t, "active", me.User.Status)

	_, err = env.client.Bootstrap(ctx, bootstrapToken, treasurysdk.BootstrapRequest{
		Email: "second@example.edu", FirstName: "S", LastName: "T", Password: testPassword,
	})
	require.True(t, treasurysdk.IsConflict(err))
}

func TestRegisterApproveLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	president := env.bootstrap(t)

	created, err := env.client.Register(ctx, treasurysdk.RegisterRequest{
		Email:     "pledge@example.edu",
		FirstName: "New",
		LastName:  "Pledge",
		Password:  testPassword,
	})
	require.NoError(t, err)

	_, err = env.client.Login(ctx, "pledge@example.edu", testPassword)
	require.True(t, treasurysdk.IsAccessDenied(err), "pending accounts cannot log in")

	pending, err := president.ListUsers(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending.Users, 1)
	require.Equal(t, created.ID, pending.Users[0].ID)

	ok, err := president.ApproveUser(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = president.ApproveUser(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = env.client.Login(ctx, "pledge@example.edu", "not-the-password")
	var apiErr *treasurysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	s, err := env.client.AuthenticateWithPassword(ctx, "pledge@example.edu", testPassword)
	require.NoError(t, err)
	me, err := s.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"brother"}, me.Roles)

	_, err = s.ListUsers(ctx, "")
	require.True(t, treasurysdk.IsAccessDenied(err))
}

func TestChairGrantOpensCommitteeBudget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	president := env.bootstrap(t)
	bro := env.brother(t, president, "social@example.edu")

	ok, err := president.Rollover(ctx, treasurysdk.RolloverRequest{
		Season: "fall", Year: 2024, Confirmation: "ROLL_OVER",
	})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = bro.CommitteeBudget(ctx, "social", "")
	require.True(t, treasurysdk.IsAccessDenied(err))

	ok, err = president.GrantRole(ctx, bro.UserID(), "chair_social")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = president.GrantRole(ctx, bro.UserID(), "chair_social")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = president.SetAllocation(ctx, "social", treasurysdk.AllocationSetRequest{AllocatedCents: 200000})
	require.NoError(t, err)
	_, err = bro.CreateTransaction(ctx, "social", treasurysdk.TransactionRequest{
		AmountCents: 50000, Direction: "spend", Vendor: "Pizza Place",
	})
	require.NoError(t, err)

	budget, err := bro.CommitteeBudget(ctx, "social", "")
	require.NoError(t, err)
	require.Equal(t, "fall_2024", budget.SemesterID)
	require.Equal(t, int64(150000), budget.RemainingCents)
	require.Equal(t, "$1,500.00", budget.Display)

	_, err = bro.CommitteeBudget(ctx, "brotherhood", "")
	require.True(t, treasurysdk.IsAccessDenied(err))

	log, err := president.AuditLog(ctx, treasurysdk.AuditQuery{Action: "ROLE_GRANTED", TargetID: bro.UserID()})
	require.NoError(t, err)
	require.NotEmpty(t, log.Entries)
	for _, e := range log.Entries {
		require.Equal(t, "ROLE_GRANTED", e.Action)
	}

	_, err = bro.AuditLog(ctx, treasurysdk.AuditQuery{})
	require.True(t, treasurysdk.IsAccessDenied(err))
}

func TestDuesFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	president := env.bootstrap(t)
	bro := env.brother(t, president, "dues@example.edu")

	_, err := president.CreateChargeBatch(ctx, treasurysdk.ChargeBatchRequest{AmountCents: 50000})
	var apiErr *treasurysdk.APIError
	require.ErrorAs(t, err, &apiErr, "no current semester yet")
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	ok, err := president.Rollover(ctx, treasurysdk.RolloverRequest{
		Season: "fall", Year: 2024, Confirmation: "roll over",
	})
	require.Error(t, err)
	require.False(t, ok)

	ok, err = president.Rollover(ctx, treasurysdk.RolloverRequest{
		Season: "fall", Year: 2024, Confirmation: "ROLL_OVER",
	})
	require.NoError(t, err)
	require.True(t, ok)

	count, err := president.CreateChargeBatch(ctx, treasurysdk.ChargeBatchRequest{AmountCents: 50000})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	paymentID, err := president.RecordPayment(ctx, treasurysdk.PaymentRequest{
		UserID: bro.UserID(), AmountCents: 30000, Method: "venmo",
	})
	require.NoError(t, err)

	allocated, err := president.AutoAllocate(ctx, paymentID)
	require.NoError(t, err)
	require.Equal(t, int64(30000), allocated)

	bal, err := bro.DuesBalance(ctx, bro.UserID())
	require.NoError(t, err)
	require.Equal(t, int64(20000), bal.TotalCents)
	require.Equal(t, int64(20000), bal.CurrentCents)
	require.Equal(t, int64(0), bal.UnallocatedCents)
	require.Equal(t, "$200.00", bal.Display)

	_, err = bro.DuesBalance(ctx, president.UserID())
	require.True(t, treasurysdk.IsAccessDenied(err))

	summary, err := president.DuesSummary(ctx, "")
	require.NoError(t, err)
	require.Equal(t, int64(100000), summary.ChargedCents)
	require.Equal(t, int64(30000), summary.AllocatedCents)
}

func TestLedgerBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	president := env.bootstrap(t)

	_, err := president.AddLedgerEntry(ctx, treasurysdk.LedgerEntryRequest{AmountCents: 250000, Category: "dues"})
	require.NoError(t, err)
	outflow, err := president.AddLedgerEntry(ctx, treasurysdk.LedgerEntryRequest{AmountCents: -75050, Category: "rent"})
	require.NoError(t, err)

	page, err := president.Ledger(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	require.Equal(t, int64(174950), page.BalanceCents)
	require.Equal(t, "$1,749.50", page.Display)

	ok, err := president.DeleteLedgerEntry(ctx, outflow)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = president.DeleteLedgerEntry(ctx, outflow)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRequestRejections(t *testing.T) {
	env := newTestEnv(t)
	president := env.bootstrap(t)

	resp, err := http.Get(env.srv.URL + "/v1/me")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/v1/ledger",
		strings.NewReader(`{"amount_cents": 100, "surprise": true}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+president.AccessToken())
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	live, err := env.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := env.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "none", ready.Checks.Semester)

	jwks, err := env.client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)

	env.bootstrap(t)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(env.srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "treasury_audit_entries_total")
	require.Contains(t, string(body), "treasury_http_requests_total")
}
