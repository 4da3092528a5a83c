package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so that a transaction-scoped
// Store hands out the same repositories bound to the transaction, and nested
// transactions are refused rather than silently started.
type Store interface {
	Users() Users
	Roles() Roles
	Semesters() Semesters
	Members() Members
	Dues() Dues
	Committees() Committees
	Ledger() Ledger
	Events() Events
	Audit() Audit

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context, status domain.UserStatus) ([]domain.User, error)

	// ListActiveUserIDs returns the ids of every active user, oldest first.
	ListActiveUserIDs(ctx context.Context) ([]string, error)

	SetStatus(ctx context.Context, userID string, status domain.UserStatus, actorID string, at time.Time) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type Roles interface {
	// EnsureRole inserts the role if it is not already catalogued.
	EnsureRole(ctx context.Context, r domain.Role) error
	GetRole(ctx context.Context, name string) (domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// CreateAssignment reports false when the user already holds an
	// active assignment of the role.
	CreateAssignment(ctx context.Context, a domain.RoleAssignment) (bool, error)

	// RevokeAssignment soft-revokes the active assignment. It reports false
	// when there was nothing to revoke.
	RevokeAssignment(ctx context.Context, userID, roleName, actorID string, at time.Time) (bool, error)

	ActiveRoleNames(ctx context.Context, userID string) ([]string, error)
	ListAssignments(ctx context.Context, userID string) ([]domain.RoleAssignment, error)
	CountActiveAssignments(ctx context.Context) (int, error)
}

type Semesters interface {
	CreateSemester(ctx context.Context, s domain.Semester) error
	GetSemester(ctx context.Context, id string) (domain.Semester, error)

	// GetCurrent returns ErrNotFound when no semester is current.
	GetCurrent(ctx context.Context) (domain.Semester, error)
	ListSemesters(ctx context.Context) ([]domain.Semester, error)

	// ArchiveCurrent clears is_current on the current semester and marks it
	// archived.
	ArchiveCurrent(ctx context.Context, id string) error
}

type Members interface {
	CreateMember(ctx context.Context, m domain.Member) error
	GetMember(ctx context.Context, id string) (domain.Member, error)
	ListMembers(ctx context.Context, semesterID string) ([]domain.Member, error)

	CreatePayment(ctx context.Context, p domain.MemberPayment) error
	ListPayments(ctx context.Context, memberID string) ([]domain.MemberPayment, error)

	// PaidBySemester sums payments per member for every member of a semester.
	PaidBySemester(ctx context.Context, semesterID string) (map[string]int64, error)
}

type Dues interface {
	CreateCharge(ctx context.Context, c domain.DuesCharge) error
	GetCharge(ctx context.Context, id string) (domain.DuesCharge, error)
	SoftDeleteCharge(ctx context.Context, id, actorID string, at time.Time) (bool, error)

	CreatePayment(ctx context.Context, p domain.DuesPayment) error
	GetPayment(ctx context.Context, id string) (domain.DuesPayment, error)
	SoftDeletePayment(ctx context.Context, id, actorID string, at time.Time) (bool, error)
	ListPayments(ctx context.Context, userID string) ([]domain.DuesPayment, error)

	CreateAllocation(ctx context.Context, a domain.DuesPaymentAllocation) error

	// AllocatedFromPayment sums every allocation drawn from a payment.
	AllocatedFromPayment(ctx context.Context, paymentID string) (int64, error)

	// AllocatedToCharge sums allocations against a charge, counting only
	// allocations whose payment is not deleted.
	AllocatedToCharge(ctx context.Context, chargeID string) (int64, error)

	// SumCharges and SumPayments total the user's non-deleted rows.
	SumCharges(ctx context.Context, userID string) (int64, error)
	SumPayments(ctx context.Context, userID string) (int64, error)

	// UnallocatedForUser sums the unallocated remainder of the user's
	// non-deleted payments.
	UnallocatedForUser(ctx context.Context, userID string) (int64, error)

	// OpenCharges lists the user's non-deleted charges with their remaining
	// cents, oldest first. Fully covered charges are included with zero
	// remaining.
	OpenCharges(ctx context.Context, userID string) ([]domain.OpenCharge, error)

	SemesterSummary(ctx context.Context, semesterID string) (domain.DuesSemesterSummary, error)
}

type Committees interface {
	EnsureCommittee(ctx context.Context, c domain.Committee) error
	GetCommittee(ctx context.Context, id string) (domain.Committee, error)
	ListCommittees(ctx context.Context) ([]domain.Committee, error)

	CreateAllocation(ctx context.Context, a domain.CommitteeBudgetAllocation) error

	// LatestAllocation returns ErrNotFound when the committee has no
	// allocation for the semester.
	LatestAllocation(ctx context.Context, semesterID, committeeID string) (domain.CommitteeBudgetAllocation, error)

	CreateTransaction(ctx context.Context, t domain.CommitteeTransaction) error
	GetTransaction(ctx context.Context, id string) (domain.CommitteeTransaction, error)
	SoftDeleteTransaction(ctx context.Context, id, actorID string, at time.Time) (bool, error)
	ListTransactions(ctx context.Context, semesterID, committeeID string) ([]domain.CommitteeTransaction, error)

	// TransactionTotals returns the sums of negative and positive non-deleted
	// amounts. spent is returned as a positive number.
	TransactionTotals(ctx context.Context, semesterID, committeeID string) (spent, credits int64, err error)
}

type Ledger interface {
	CreateEntry(ctx context.Context, e domain.LedgerEntry) error
	GetEntry(ctx context.Context, id string) (domain.LedgerEntry, error)
	SoftDeleteEntry(ctx context.Context, id, actorID string, at time.Time) (bool, error)
	ListEntries(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error)
	Balance(ctx context.Context) (int64, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context, semesterID string, includeArchived bool) ([]domain.Event, error)
	SoftDeleteEvent(ctx context.Context, id, actorID string, at time.Time) (bool, error)

	// ArchiveSemesterEvents marks every event of the semester archived and
	// returns how many rows changed.
	ArchiveSemesterEvents(ctx context.Context, semesterID string) (int, error)

	UpsertCalendarLink(ctx context.Context, l domain.CalendarLink) error
	GetCalendarLink(ctx context.Context, eventID string) (domain.CalendarLink, error)
	SetSyncResult(ctx context.Context, eventID string, status domain.SyncStatus, lastError string, at time.Time) error
	ListLinksByStatus(ctx context.Context, status domain.SyncStatus) ([]domain.CalendarLink, error)
}

// Audit is append-only: it has no update or delete.
type Audit interface {
	Append(ctx context.Context, e domain.AuditEntry) error
	List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error)
}
