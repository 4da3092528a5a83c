package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/jwtx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"

	_ "github.com/aussiebroadwan/treasury/api/treasury" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	signer       jwtx.Signer
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// AccessTTL is the lifetime of tokens issued by login and bootstrap.
	AccessTTL time.Duration

	store            store.Store
	Metrics          *metrics.Metrics
	UserService      *service.UserService
	RolesService     *service.RolesService
	BootstrapService *service.BootstrapService
	SemesterService  *service.SemesterService
	DuesService      *service.DuesService
	CommitteeService *service.CommitteeService
	LedgerService    *service.LedgerService
	EventService     *service.EventService
	MemberService    *service.MemberService
	AuditService     *service.AuditService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	signer jwtx.Signer,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		signer:       signer,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		AccessTTL:    jwtx.DefaultAccessTokenTTL,
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.Metrics != nil {
		r.middlewares = append(r.middlewares, r.Metrics.Middleware)
	}

	r.registerAuth()
	r.registerUsers()
	r.registerSemesters()
	r.registerDues()
	r.registerCommittees()
	r.registerLedger()
	r.registerEvents()
	r.registerMembers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Chapter Treasury API
//	@version		0.1.0
//	@description	Dues, committee budgets, the master ledger and semester rollover for a fraternity chapter.
//	@description
//	@description				Amounts are integer cents. Every privileged change writes one audit entry.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/treasury
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				EdDSA access token from /v1/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// read wraps an authenticated read endpoint.
func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		ActorMiddleware(r.RolesService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

// write wraps an authenticated endpoint that changes the ledger.
func (r *Router) write(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		ActorMiddleware(r.RolesService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService:      r.UserService,
		RolesService:     r.RolesService,
		BootstrapService: r.BootstrapService,
		Issuer:           r.newTokenIssuer(),
	}

	// Credentials endpoints are limited by IP + email to slow guessing.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleBootstrap),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /v1/me", r.read(h.HandleMe))
}

func (r *Router) registerUsers() {
	roles := &RolesHandler{RolesService: r.RolesService}
	users := &UsersHandler{
		UserService:  r.UserService,
		RolesService: r.RolesService,
		DuesService:  r.DuesService,
	}

	r.Mux.Handle("GET /v1/roles", r.read(roles.HandleList))
	r.Mux.Handle("GET /v1/users", r.read(users.HandleList))
	r.Mux.Handle("POST /v1/users/{id}/approve", r.write(users.HandleApprove))
	r.Mux.Handle("POST /v1/users/{id}/suspend", r.write(users.HandleSuspend))
	r.Mux.Handle("GET /v1/users/{id}/roles", r.read(roles.HandleUserRoles))
	r.Mux.Handle("POST /v1/users/{id}/roles", r.write(roles.HandleGrant))
	r.Mux.Handle("DELETE /v1/users/{id}/roles/{role}", r.write(roles.HandleRevoke))
	r.Mux.Handle("GET /v1/users/{id}/dues", r.read(users.HandleDues))
}

func (r *Router) registerSemesters() {
	h := &SemestersHandler{SemesterService: r.SemesterService}

	r.Mux.Handle("GET /v1/semesters", r.read(h.HandleList))
	r.Mux.Handle("GET /v1/semesters/current", r.read(h.HandleCurrent))
	// Rollover is rare and destructive; hold it to the strict profile.
	r.Mux.Handle("POST /v1/semesters/rollover",
		httpx.Chain(http.HandlerFunc(h.HandleRollover),
			httpx.AuthnMiddleware(r.verifier),
			ActorMiddleware(r.RolesService),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDues() {
	h := &DuesHandler{DuesService: r.DuesService}

	r.Mux.Handle("POST /v1/dues/charges/batch", r.write(h.HandleChargeBatch))
	r.Mux.Handle("DELETE /v1/dues/charges/{id}", r.write(h.HandleDeleteCharge))
	r.Mux.Handle("POST /v1/dues/payments", r.write(h.HandleRecordPayment))
	r.Mux.Handle("DELETE /v1/dues/payments/{id}", r.write(h.HandleDeletePayment))
	r.Mux.Handle("POST /v1/dues/payments/{id}/allocations", r.write(h.HandleAllocate))
	r.Mux.Handle("POST /v1/dues/payments/{id}/auto-allocate", r.write(h.HandleAutoAllocate))
	r.Mux.Handle("GET /v1/dues/summary", r.read(h.HandleSummary))
}

func (r *Router) registerCommittees() {
	h := &CommitteesHandler{CommitteeService: r.CommitteeService}

	r.Mux.Handle("GET /v1/committees", r.read(h.HandleList))
	r.Mux.Handle("GET /v1/committees/{id}/budget", r.read(h.HandleBudget))
	r.Mux.Handle("POST /v1/committees/{id}/allocations", r.write(h.HandleSetAllocation))
	r.Mux.Handle("GET /v1/committees/{id}/transactions", r.read(h.HandleListTransactions))
	r.Mux.Handle("POST /v1/committees/{id}/transactions", r.write(h.HandleCreateTransaction))
	r.Mux.Handle("DELETE /v1/committee-transactions/{id}", r.write(h.HandleDeleteTransaction))
	r.Mux.Handle("GET /v1/budget/summary", r.read(h.HandleSummary))
}

func (r *Router) registerLedger() {
	ledger := &LedgerHandler{LedgerService: r.LedgerService}
	audit := &AuditHandler{AuditService: r.AuditService}

	r.Mux.Handle("GET /v1/ledger", r.read(ledger.HandleList))
	r.Mux.Handle("POST /v1/ledger", r.write(ledger.HandleAdd))
	r.Mux.Handle("DELETE /v1/ledger/{id}", r.write(ledger.HandleDelete))
	r.Mux.Handle("GET /v1/audit", r.read(audit.HandleList))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{EventService: r.EventService}

	r.Mux.Handle("GET /v1/events", r.read(h.HandleList))
	r.Mux.Handle("POST /v1/events", r.write(h.HandleCreate))
	r.Mux.Handle("DELETE /v1/events/{id}", r.write(h.HandleDelete))
	r.Mux.Handle("PUT /v1/events/{id}/calendar-link", r.write(h.HandleLinkCalendar))
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MemberService: r.MemberService}

	r.Mux.Handle("GET /v1/members", r.read(h.HandleList))
	r.Mux.Handle("POST /v1/members", r.write(h.HandleAdd))
	r.Mux.Handle("GET /v1/members/summary", r.read(h.HandleSummary))
	r.Mux.Handle("GET /v1/members/{id}", r.read(h.HandleGet))
	r.Mux.Handle("POST /v1/members/{id}/payments", r.write(h.HandleRecordPayment))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics",
			httpx.Chain(r.Metrics.Handler(),
				httpx.RateLimitByIP(httpx.PublicLimit),
			),
		)
	}
}
