package treasurysdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListCommittees lists the chapter's committees.
func (s *Session) ListCommittees(ctx context.Context) (*ListCommitteesResponse, error) {
	var out ListCommitteesResponse
	if err := s.get(ctx, "/v1/committees", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommitteeBudget returns a committee's budget position for a semester
// ("" = current).
func (s *Session) CommitteeBudget(ctx context.Context, committeeID, semesterID string) (*BudgetResponse, error) {
	var out BudgetResponse
	path := withSemester("/v1/committees/"+url.PathEscape(committeeID)+"/budget", semesterID)
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAllocation records a committee's budget for a semester.
func (s *Session) SetAllocation(ctx context.Context, committeeID string, req AllocationSetRequest) (string, error) {
	return s.created(ctx, "/v1/committees/"+url.PathEscape(committeeID)+"/allocations", req)
}

// CreateTransaction records committee spending or a credit.
func (s *Session) CreateTransaction(ctx context.Context, committeeID string, req TransactionRequest) (string, error) {
	return s.created(ctx, "/v1/committees/"+url.PathEscape(committeeID)+"/transactions", req)
}

// ListTransactions lists a committee's live transactions for a semester.
func (s *Session) ListTransactions(ctx context.Context, committeeID, semesterID string) (*ListTransactionsResponse, error) {
	var out ListTransactionsResponse
	path := withSemester("/v1/committees/"+url.PathEscape(committeeID)+"/transactions", semesterID)
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTransaction soft-deletes a committee transaction.
func (s *Session) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	return s.changed(ctx, http.MethodDelete, "/v1/committee-transactions/"+url.PathEscape(id), nil)
}

// BudgetSummary lists every committee's budget for a semester.
func (s *Session) BudgetSummary(ctx context.Context, semesterID string) (*BudgetSummaryResponse, error) {
	var out BudgetSummaryResponse
	if err := s.get(ctx, withSemester("/v1/budget/summary", semesterID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
