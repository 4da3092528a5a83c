package domain

import "time"

type AuditAction string

const (
	AuditRoleGranted             AuditAction = "ROLE_GRANTED"
	AuditRoleRevoked             AuditAction = "ROLE_REVOKED"
	AuditDuesChargeBatchCreated  AuditAction = "DUES_CHARGE_BATCH_CREATED"
	AuditDuesChargeDeleted       AuditAction = "DUES_CHARGE_DELETED"
	AuditDuesPaymentRecorded     AuditAction = "DUES_PAYMENT_RECORDED"
	AuditDuesPaymentDeleted      AuditAction = "DUES_PAYMENT_DELETED"
	AuditDuesPaymentAllocated    AuditAction = "DUES_PAYMENT_ALLOCATED"
	AuditDuesPaymentAutoAllocate AuditAction = "DUES_PAYMENT_AUTO_ALLOCATED"
	AuditAllocationCreated       AuditAction = "ALLOCATION_CREATED"
	AuditTxCreated               AuditAction = "TX_CREATED"
	AuditTxDeleted               AuditAction = "TX_DELETED"
	AuditSemesterRollover        AuditAction = "SEMESTER_ROLLOVER"
	AuditLedgerEntryCreated      AuditAction = "LEDGER_ENTRY_CREATED"
	AuditLedgerEntryDeleted      AuditAction = "LEDGER_ENTRY_DELETED"
	AuditEventCreated            AuditAction = "EVENT_CREATED"
	AuditEventDeleted            AuditAction = "EVENT_DELETED"
	AuditUserApproved            AuditAction = "USER_APPROVED"
	AuditUserSuspended           AuditAction = "USER_SUSPENDED"
	AuditMemberAdded             AuditAction = "MEMBER_ADDED"
	AuditMemberPaymentRecorded   AuditAction = "MEMBER_PAYMENT_RECORDED"
)

// SystemActor is recorded as the actor for changes made from the CLI.
const SystemActor = "system"

// AuditEntry is an append-only record of a privileged change.
type AuditEntry struct {
	ID         string
	ActorID    string
	Action     AuditAction
	TargetType string
	TargetID   string
	Details    map[string]any
	CreatedAt  time.Time
}

type AuditFilter struct {
	ActorID    string
	Action     AuditAction
	TargetType string
	TargetID   string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}
