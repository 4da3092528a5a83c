package treasurysdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Events
// ============================================================================

// ListEvents lists events for a semester ("" = current).
func (s *Session) ListEvents(ctx context.Context, semesterID string, includeArchived bool) (*ListEventsResponse, error) {
	q := url.Values{}
	if semesterID != "" {
		q.Set("semester_id", semesterID)
	}
	if includeArchived {
		q.Set("include_archived", "true")
	}
	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListEventsResponse
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent creates an event in the current semester.
func (s *Session) CreateEvent(ctx context.Context, req EventRequest) (string, error) {
	return s.created(ctx, "/v1/events", req)
}

// DeleteEvent soft-deletes an event.
func (s *Session) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return s.changed(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(id), nil)
}

// LinkCalendar links an event to an external calendar entry.
func (s *Session) LinkCalendar(ctx context.Context, eventID string, req CalendarLinkRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/events/"+url.PathEscape(eventID)+"/calendar-link", req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Members
// ============================================================================

// ListMembers lists the roster for a semester ("" = current).
func (s *Session) ListMembers(ctx context.Context, semesterID string) (*ListMembersResponse, error) {
	var out ListMembersResponse
	if err := s.get(ctx, withSemester("/v1/members", semesterID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMember adds a roster member with a payment plan.
func (s *Session) AddMember(ctx context.Context, req MemberRequest) (string, error) {
	return s.created(ctx, "/v1/members", req)
}

// Member returns a member's statement: payments, balance and schedule.
func (s *Session) Member(ctx context.Context, memberID string) (*MemberStatementResponse, error) {
	var out MemberStatementResponse
	if err := s.get(ctx, "/v1/members/"+url.PathEscape(memberID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordMemberPayment records a payment against a member's dues.
func (s *Session) RecordMemberPayment(ctx context.Context, memberID string, req MemberPaymentRequest) (string, error) {
	return s.created(ctx, "/v1/members/"+url.PathEscape(memberID)+"/payments", req)
}

// MemberSummary returns the roster collection picture for a semester.
func (s *Session) MemberSummary(ctx context.Context, semesterID string) (*MemberSummaryResponse, error) {
	var out MemberSummaryResponse
	if err := s.get(ctx, withSemester("/v1/members/summary", semesterID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
