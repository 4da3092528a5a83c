package http

import (
	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/pkg/moneyx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

func toUserInfo(u domain.User) treasurysdk.UserInfo {
	return treasurysdk.UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		Phone:       u.Phone,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		ApprovedBy:  u.ApprovedBy,
		ApprovedAt:  u.ApprovedAt,
	}
}

func toSemesterInfo(s domain.Semester) treasurysdk.SemesterInfo {
	return treasurysdk.SemesterInfo{
		ID:        s.ID,
		Name:      s.Name,
		Season:    string(s.Season),
		Year:      s.Year,
		StartsOn:  s.StartsOn,
		EndsOn:    s.EndsOn,
		IsCurrent: s.IsCurrent,
		Archived:  s.Archived,
		CreatedAt: s.CreatedAt,
	}
}

func toBalance(b domain.DuesBalance) treasurysdk.DuesBalanceResponse {
	return treasurysdk.DuesBalanceResponse{
		UserID:           b.UserID,
		ChargedCents:     b.ChargedCents,
		PaidCents:        b.PaidCents,
		TotalCents:       b.TotalCents,
		CurrentCents:     b.CurrentCents,
		PriorCents:       b.PriorCents,
		UnallocatedCents: b.UnallocatedCents,
		Display:          moneyx.Format(b.TotalCents),
	}
}

func toBudget(b domain.CommitteeBudget) treasurysdk.BudgetResponse {
	return treasurysdk.BudgetResponse{
		SemesterID:     b.SemesterID,
		CommitteeID:    b.CommitteeID,
		AllocatedCents: b.AllocatedCents,
		SpentCents:     b.SpentCents,
		CreditCents:    b.CreditCents,
		RemainingCents: b.RemainingCents,
		PercentUsed:    b.PercentUsed,
		Display:        moneyx.Format(b.RemainingCents),
	}
}

func toTransactionInfo(t domain.CommitteeTransaction) treasurysdk.TransactionInfo {
	return treasurysdk.TransactionInfo{
		ID:          t.ID,
		SemesterID:  t.SemesterID,
		CommitteeID: t.CommitteeID,
		AmountCents: t.AmountCents,
		Vendor:      t.Vendor,
		Category:    t.Category,
		Memo:        t.Memo,
		EventID:     t.EventID,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func toLedgerEntryInfo(e domain.LedgerEntry) treasurysdk.LedgerEntryInfo {
	return treasurysdk.LedgerEntryInfo{
		ID:          e.ID,
		AmountCents: e.AmountCents,
		Category:    e.Category,
		Memo:        e.Memo,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toAuditEntryInfo(e domain.AuditEntry) treasurysdk.AuditEntryInfo {
	return treasurysdk.AuditEntryInfo{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     string(e.Action),
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

func toEventInfo(e domain.Event) treasurysdk.EventInfo {
	return treasurysdk.EventInfo{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Location:           e.Location,
		StartsAt:           e.StartsAt,
		EndsAt:             e.EndsAt,
		CommitteeID:        e.CommitteeID,
		SemesterID:         e.SemesterID,
		Status:             string(e.Status),
		EstimatedCostCents: e.EstimatedCostCents,
		IsArchived:         e.IsArchived,
		CreatedBy:          e.CreatedBy,
		CreatedAt:          e.CreatedAt,
	}
}

func toMemberInfo(m domain.Member) treasurysdk.MemberInfo {
	plan := domain.PlanSemester
	if m.Schedule != nil {
		plan = m.Schedule.Kind()
	}
	return treasurysdk.MemberInfo{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Contact:     m.Contact,
		ContactType: string(m.ContactType),
		DuesCents:   m.DuesCents,
		SemesterID:  m.SemesterID,
		Plan:        string(plan),
		CreatedAt:   m.CreatedAt,
	}
}

func toStatement(s domain.MemberStatement) treasurysdk.MemberStatementResponse {
	out := treasurysdk.MemberStatementResponse{
		Member:       toMemberInfo(s.Member),
		Payments:     make([]treasurysdk.MemberPaymentInfo, len(s.Payments)),
		PaidCents:    s.PaidCents,
		BalanceCents: s.BalanceCents,
		PaidUp:       s.PaidUp(),
		Schedule:     make([]treasurysdk.InstallmentInfo, len(s.Schedule)),
	}
	for i, p := range s.Payments {
		out.Payments[i] = treasurysdk.MemberPaymentInfo{
			ID:          p.ID,
			AmountCents: p.AmountCents,
			Method:      string(p.Method),
			PaidAt:      p.PaidAt,
			Notes:       p.Notes,
		}
	}
	for i, it := range s.Schedule {
		out.Schedule[i] = treasurysdk.InstallmentInfo{
			DueDate:     it.DueDate,
			AmountCents: it.AmountCents,
			Description: it.Description,
			PaidCents:   it.PaidCents,
			DueCents:    it.DueCents,
			Status:      string(it.Status),
		}
	}
	return out
}

func fromInstallments(items []treasurysdk.InstallmentInfo) []domain.Installment {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.Installment, len(items))
	for i, it := range items {
		out[i] = domain.Installment{
			DueDate:     it.DueDate,
			AmountCents: it.AmountCents,
			Description: it.Description,
		}
	}
	return out
}
