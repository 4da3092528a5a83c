package treasurysdk

import (
	"time"

	"github.com/aussiebroadwan/treasury/pkg/jwtx"
)

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "access_denied", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ChangedResponse reports whether an idempotent operation changed anything.
// Repeating a grant, revoke, delete or rollover returns changed=false.
type ChangedResponse struct {
	Changed bool `json:"changed"`
}

// CreatedResponse carries the id of a newly created row.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a pending account that an executive must approve.
type RegisterRequest struct {
	Email     string `json:"email" example:"pledge@example.edu"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// LoginRequest exchanges an email and password for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and bootstrap.
type TokenResponse struct {
	// AccessToken is the EdDSA-signed JWT used as a Bearer token
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// UserID of the authenticated account
	UserID string `json:"user_id"`
}

// BootstrapRequest creates the first account, holding president and admin.
// It is accepted exactly once, while no users exist.
type BootstrapRequest = RegisterRequest

// BootstrapResponse carries the created user and a token for it.
type BootstrapResponse struct {
	UserID string        `json:"user_id"`
	Token  TokenResponse `json:"token"`
}

// MeResponse describes the caller.
type MeResponse struct {
	User        UserInfo `json:"user"`
	Roles       []string `json:"roles"`
	PrimaryRole string   `json:"primary_role,omitempty"`
	Permissions []string `json:"permissions"`
	Committees  []string `json:"committees"`
}

// ============================================================================
// Role and User Types
// ============================================================================

// RoleInfo is one catalogued role with its resolved permission set.
type RoleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// ListRolesResponse contains the list of all roles.
type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// UserRolesResponse lists a user's active roles.
type UserRolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// GrantRoleRequest grants a role to a user.
type GrantRoleRequest struct {
	Role string `json:"role" example:"chair_social"`
}

// UserInfo is the public view of an account.
type UserInfo struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// ListUsersResponse contains users filtered by status.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// ============================================================================
// Semester Types
// ============================================================================

// SemesterInfo is a term of the chapter's year.
type SemesterInfo struct {
	ID        string     `json:"id" example:"fall_2024"`
	Name      string     `json:"name" example:"Fall 2024"`
	Season    string     `json:"season"`
	Year      int        `json:"year"`
	StartsOn  *time.Time `json:"starts_on,omitempty"`
	EndsOn    *time.Time `json:"ends_on,omitempty"`
	IsCurrent bool       `json:"is_current"`
	Archived  bool       `json:"archived"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListSemestersResponse lists semesters, newest first.
type ListSemestersResponse struct {
	Semesters []SemesterInfo `json:"semesters"`
}

// RolloverRequest archives the current semester and opens the next one.
// Confirmation must equal "ROLL_OVER".
type RolloverRequest struct {
	Season       string     `json:"season" example:"spring"`
	Year         int        `json:"year" example:"2025"`
	Name         string     `json:"name,omitempty"`
	StartsOn     *time.Time `json:"starts_on,omitempty"`
	EndsOn       *time.Time `json:"ends_on,omitempty"`
	Confirmation string     `json:"confirmation" example:"ROLL_OVER"`
}

// ============================================================================
// Dues Types
// ============================================================================

// ChargeBatchRequest charges every active user the same amount.
type ChargeBatchRequest struct {
	SemesterID  string     `json:"semester_id,omitempty"`
	AmountCents int64      `json:"amount_cents" example:"50000"`
	Reason      string     `json:"reason,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ChargeBatchResponse reports how many charges were issued.
type ChargeBatchResponse struct {
	Count int `json:"count"`
}

// PaymentRequest records money received from a user.
type PaymentRequest struct {
	UserID      string     `json:"user_id"`
	AmountCents int64      `json:"amount_cents"`
	Method      string     `json:"method" example:"venmo"`
	ExternalRef string     `json:"external_ref,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// AllocationRequest applies part of a payment to one charge.
type AllocationRequest struct {
	ChargeID       string `json:"charge_id"`
	AllocatedCents int64  `json:"allocated_cents"`
}

// AutoAllocateResponse reports the total applied across open charges.
type AutoAllocateResponse struct {
	AllocatedCents int64 `json:"allocated_cents"`
}

// DuesBalanceResponse is a user's dues position.
type DuesBalanceResponse struct {
	UserID           string `json:"user_id"`
	ChargedCents     int64  `json:"charged_cents"`
	PaidCents        int64  `json:"paid_cents"`
	TotalCents       int64  `json:"total_cents"`
	CurrentCents     int64  `json:"current_cents"`
	PriorCents       int64  `json:"prior_cents"`
	UnallocatedCents int64  `json:"unallocated_cents"`
	Display          string `json:"display" example:"$500.00"`
}

// DuesSummaryResponse is the charge-side collection picture for a semester.
type DuesSummaryResponse struct {
	SemesterID       string  `json:"semester_id"`
	ChargeCount      int     `json:"charge_count"`
	ChargedCents     int64   `json:"charged_cents"`
	AllocatedCents   int64   `json:"allocated_cents"`
	OutstandingCents int64   `json:"outstanding_cents"`
	CollectionRate   float64 `json:"collection_rate"`
}

// ============================================================================
// Committee Types
// ============================================================================

// CommitteeInfo is one catalogued committee.
type CommitteeInfo struct {
	ID       string `json:"id" example:"social"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ListCommitteesResponse lists committees ordered by name.
type ListCommitteesResponse struct {
	Committees []CommitteeInfo `json:"committees"`
}

// AllocationSetRequest sets a committee's budget for a semester. The most
// recent allocation wins.
type AllocationSetRequest struct {
	SemesterID     string `json:"semester_id,omitempty"`
	AllocatedCents int64  `json:"allocated_cents" example:"200000"`
	Notes          string `json:"notes,omitempty"`
}

// TransactionRequest records committee spending or a credit back.
type TransactionRequest struct {
	SemesterID  string `json:"semester_id,omitempty"`
	AmountCents int64  `json:"amount_cents" example:"50000"`
	Direction   string `json:"direction" example:"spend"`
	Vendor      string `json:"vendor,omitempty"`
	Category    string `json:"category,omitempty"`
	Memo        string `json:"memo,omitempty"`
	EventID     string `json:"event_id,omitempty"`
}

// TransactionInfo is one committee transaction. Spends are negative.
type TransactionInfo struct {
	ID          string    `json:"id"`
	SemesterID  string    `json:"semester_id"`
	CommitteeID string    `json:"committee_id"`
	AmountCents int64     `json:"amount_cents"`
	Vendor      string    `json:"vendor,omitempty"`
	Category    string    `json:"category,omitempty"`
	Memo        string    `json:"memo,omitempty"`
	EventID     string    `json:"event_id,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListTransactionsResponse lists live transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionInfo `json:"transactions"`
}

// BudgetResponse is a committee's position for a semester.
type BudgetResponse struct {
	SemesterID     string  `json:"semester_id"`
	CommitteeID    string  `json:"committee_id"`
	AllocatedCents int64   `json:"allocated_cents"`
	SpentCents     int64   `json:"spent_cents"`
	CreditCents    int64   `json:"credit_cents"`
	RemainingCents int64   `json:"remaining_cents"`
	PercentUsed    float64 `json:"percent_used"`
	Display        string  `json:"display" example:"$1,500.00"`
}

// BudgetSummaryResponse lists every committee's budget for a semester.
type BudgetSummaryResponse struct {
	SemesterID string           `json:"semester_id"`
	Budgets    []BudgetResponse `json:"budgets"`
}

// ============================================================================
// Master Ledger Types
// ============================================================================

// LedgerEntryRequest adds a chapter-wide ledger line. Negative is outflow.
type LedgerEntryRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

// LedgerEntryInfo is one master ledger line.
type LedgerEntryInfo struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category,omitempty"`
	Memo        string    `json:"memo,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// LedgerResponse is a page of entries with the running balance.
type LedgerResponse struct {
	BalanceCents int64             `json:"balance_cents"`
	Display      string            `json:"display"`
	Entries      []LedgerEntryInfo `json:"entries"`
}

// ============================================================================
// Audit Types
// ============================================================================

// AuditEntryInfo is one immutable audit record.
type AuditEntryInfo struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action" example:"ROLE_GRANTED"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AuditLogResponse is a page of audit entries, newest first.
type AuditLogResponse struct {
	Entries []AuditEntryInfo `json:"entries"`
}

// AuditQuery filters GET /v1/audit.
type AuditQuery struct {
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// ============================================================================
// Event Types
// ============================================================================

// EventRequest creates an event in the current semester.
type EventRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Location           string     `json:"location,omitempty"`
	StartsAt           *time.Time `json:"starts_at,omitempty"`
	EndsAt             *time.Time `json:"ends_at,omitempty"`
	CommitteeID        string     `json:"committee_id,omitempty"`
	Status             string     `json:"status,omitempty" example:"planned"`
	EstimatedCostCents int64      `json:"estimated_cost_cents,omitempty"`
}

// EventInfo is one chapter event.
type EventInfo struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Location           string     `json:"location,omitempty"`
	StartsAt           *time.Time `json:"starts_at,omitempty"`
	EndsAt             *time.Time `json:"ends_at,omitempty"`
	CommitteeID        string     `json:"committee_id,omitempty"`
	SemesterID         string     `json:"semester_id"`
	Status             string     `json:"status"`
	EstimatedCostCents int64      `json:"estimated_cost_cents"`
	IsArchived         bool       `json:"is_archived"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ListEventsResponse lists events ordered by start time.
type ListEventsResponse struct {
	Events []EventInfo `json:"events"`
}

// CalendarLinkRequest links an event to an external calendar entry.
type CalendarLinkRequest struct {
	CalendarID      string `json:"calendar_id"`
	ExternalEventID string `json:"external_event_id,omitempty"`
}

// ============================================================================
// Member Types
// ============================================================================

// InstallmentInfo is one planned payment.
type InstallmentInfo struct {
	DueDate     time.Time `json:"due_date"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description,omitempty"`
	PaidCents   int64     `json:"paid_cents"`
	DueCents    int64     `json:"due_cents"`
	Status      string    `json:"status,omitempty"`
}

// MemberRequest adds a roster member with a payment plan.
type MemberRequest struct {
	UserID       string            `json:"user_id,omitempty"`
	Name         string            `json:"name"`
	Contact      string            `json:"contact"`
	ContactType  string            `json:"contact_type" example:"email"`
	DuesCents    int64             `json:"dues_cents"`
	SemesterID   string            `json:"semester_id,omitempty"`
	Plan         string            `json:"plan,omitempty" example:"monthly"`
	Installments []InstallmentInfo `json:"installments,omitempty"`
}

// MemberInfo is one roster member.
type MemberInfo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	ContactType string    `json:"contact_type"`
	DuesCents   int64     `json:"dues_cents"`
	SemesterID  string    `json:"semester_id"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMembersResponse lists the roster for a semester.
type ListMembersResponse struct {
	Members []MemberInfo `json:"members"`
}

// MemberPaymentRequest records a member payment.
type MemberPaymentRequest struct {
	AmountCents int64      `json:"amount_cents"`
	Method      string     `json:"method"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// MemberPaymentInfo is one recorded member payment.
type MemberPaymentInfo struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
	Notes       string    `json:"notes,omitempty"`
}

// MemberStatementResponse is a member with payments and schedule progress.
type MemberStatementResponse struct {
	Member       MemberInfo          `json:"member"`
	Payments     []MemberPaymentInfo `json:"payments"`
	PaidCents    int64               `json:"paid_cents"`
	BalanceCents int64               `json:"balance_cents"`
	PaidUp       bool                `json:"paid_up"`
	Schedule     []InstallmentInfo   `json:"schedule"`
}

// MemberSummaryResponse is the roster collection picture for a semester.
type MemberSummaryResponse struct {
	SemesterID       string  `json:"semester_id"`
	MemberCount      int     `json:"member_count"`
	PaidUpCount      int     `json:"paid_up_count"`
	ProjectedCents   int64   `json:"projected_cents"`
	CollectedCents   int64   `json:"collected_cents"`
	OutstandingCents int64   `json:"outstanding_cents"`
	CollectionRate   float64 `json:"collection_rate"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`

	// Semester reports whether a current semester is open
	Semester string `json:"semester"`
}

// JWKSResponse contains the public keys used to verify access tokens.
type JWKSResponse jwtx.JWKS
