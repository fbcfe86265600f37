// Package quota aggregates leave consumption against the yearly entitlement.
// Every balance is recomputed from leave_requests; nothing is cached.
package quota

import (
	"go-leave/internal/domain"
	"go-leave/internal/entitlement"

	"github.com/shopspring/decimal"
)

// Usage is the consumption of one kind within a year, split by status.
type Usage struct {
	Approved decimal.Decimal
	Pending  decimal.Decimal
}

type Balance struct {
	Kind        domain.LeaveKind `json:"kind"`
	Year        int              `json:"year"`
	Tracked     bool             `json:"tracked"`
	Entitlement decimal.Decimal  `json:"entitlement"`
	Approved    decimal.Decimal  `json:"approved"`
	Pending     decimal.Decimal  `json:"pending"`
	Remaining   decimal.Decimal  `json:"remaining"`
}

func NewBalance(year int, ent entitlement.Entitlement, usage Usage) Balance {
	b := Balance{
		Kind:     ent.Kind,
		Year:     year,
		Tracked:  ent.Tracked,
		Approved: usage.Approved,
		Pending:  usage.Pending,
	}
	if ent.Tracked {
		b.Entitlement = ent.Days
		b.Remaining = ent.Days.Sub(usage.Approved).Sub(usage.Pending)
	}
	return b
}

// Allows reports whether requested days fit in the balance. Untracked kinds always fit.
func (b Balance) Allows(requested decimal.Decimal) bool {
	if !b.Tracked {
		return true
	}
	return requested.LessThanOrEqual(b.Remaining)
}
