package treasurysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ============================================================================
// Semesters
// ============================================================================

// ListSemesters lists every semester, newest first.
func (s *Session) ListSemesters(ctx context.Context) (*ListSemestersResponse, error) {
	var out ListSemestersResponse
	if err := s.get(ctx, "/v1/semesters", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentSemester returns the open semester.
func (s *Session) CurrentSemester(ctx context.Context) (*SemesterInfo, error) {
	var out SemesterInfo
	if err := s.get(ctx, "/v1/semesters/current", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rollover archives the current semester and opens the requested one.
func (s *Session) Rollover(ctx context.Context, req RolloverRequest) (bool, error) {
	return s.changed(ctx, http.MethodPost, "/v1/semesters/rollover", req)
}

// ============================================================================
// Dues
// ============================================================================

// CreateChargeBatch charges every active user.
func (s *Session) CreateChargeBatch(ctx context.Context, req ChargeBatchRequest) (int, error) {
	var out ChargeBatchResponse
	if err := s.send(ctx, http.MethodPost, "/v1/dues/charges/batch", req, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// DeleteCharge soft-deletes a charge.
func (s *Session) DeleteCharge(ctx context.Context, chargeID string) (bool, error) {
	return s.changed(ctx, http.MethodDelete, "/v1/dues/charges/"+url.PathEscape(chargeID), nil)
}

// RecordPayment records money received and returns the payment id.
func (s *Session) RecordPayment(ctx context.Context, req PaymentRequest) (string, error) {
	return s.created(ctx, "/v1/dues/payments", req)
}

// DeletePayment soft-deletes a payment, releasing its allocations.
func (s *Session) DeletePayment(ctx context.Context, paymentID string) (bool, error) {
	return s.changed(ctx, http.MethodDelete, "/v1/dues/payments/"+url.PathEscape(paymentID), nil)
}

// AllocatePayment applies part of a payment to a charge.
func (s *Session) AllocatePayment(ctx context.Context, paymentID string, req AllocationRequest) (string, error) {
	return s.created(ctx, "/v1/dues/payments/"+url.PathEscape(paymentID)+"/allocations", req)
}

// AutoAllocate applies a payment's unallocated remainder to open charges,
// oldest first.
func (s *Session) AutoAllocate(ctx context.Context, paymentID string) (int64, error) {
	var out AutoAllocateResponse
	path := "/v1/dues/payments/" + url.PathEscape(paymentID) + "/auto-allocate"
	if err := s.send(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.AllocatedCents, nil
}

// DuesSummary returns the collection picture for a semester ("" = current).
func (s *Session) DuesSummary(ctx context.Context, semesterID string) (*DuesSummaryResponse, error) {
	var out DuesSummaryResponse
	if err := s.get(ctx, withSemester("/v1/dues/summary", semesterID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Master ledger
// ============================================================================

// Ledger returns a page of master ledger entries and the running balance.
func (s *Session) Ledger(ctx context.Context, limit, offset int) (*LedgerResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/v1/ledger"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out LedgerResponse
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddLedgerEntry appends a master ledger line.
func (s *Session) AddLedgerEntry(ctx context.Context, req LedgerEntryRequest) (string, error) {
	return s.created(ctx, "/v1/ledger", req)
}

// DeleteLedgerEntry soft-deletes a master ledger line.
func (s *Session) DeleteLedgerEntry(ctx context.Context, id string) (bool, error) {
	return s.changed(ctx, http.MethodDelete, "/v1/ledger/"+url.PathEscape(id), nil)
}

// ============================================================================
// Audit
// ============================================================================

// AuditLog lists audit entries matching q, newest first.
func (s *Session) AuditLog(ctx context.Context, q AuditQuery) (*AuditLogResponse, error) {
	v := url.Values{}
	setIf := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setIf("actor_id", q.ActorID)
	setIf("action", q.Action)
	setIf("target_type", q.TargetType)
	setIf("target_id", q.TargetID)
	if q.Since != nil {
		v.Set("since", q.Since.UTC().Format(time.RFC3339))
	}
	if q.Until != nil {
		v.Set("until", q.Until.UTC().Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", fmt.Sprint(q.Offset))
	}

	path := "/v1/audit"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var out AuditLogResponse
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withSemester(path, semesterID string) string {
	if semesterID == "" {
		return path
	}
	return path + "?semester_id=" + url.QueryEscape(semesterID)
}
