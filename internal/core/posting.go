package core

// Posting is the financially relevant part of a transaction.
type Posting struct {
	AccountID  string
	CategoryID string
	Amount     Money
	Type       TransactionType
}

type AdjustmentTarget string

const (
	TargetAccount  AdjustmentTarget = "account"
	TargetCategory AdjustmentTarget = "category"
)

// Adjustment is a signed change to an account balance or a category spend.
type Adjustment struct {
	Target AdjustmentTarget
	ID     string
	Delta  Money
}

func (t Transaction) Posting() Posting {
	return Posting{
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
		Amount:     t.Amount,
		Type:       t.Type,
	}
}

// AccountEffect is the signed balance change: expenses subtract, income adds.
func (p Posting) AccountEffect() Money {
	if p.Type == TransactionExpense {
		return p.Amount.Neg()
	}
	return p.Amount
}

// SpendsCategory reports whether the posting counts toward a category spend.
func (p Posting) SpendsCategory() bool {
	return p.Type == TransactionExpense && p.CategoryID != ""
}

// PlanCreate returns the adjustments for a newly posted transaction.
func PlanCreate(p Posting) []Adjustment {
	adj := []Adjustment{{Target: TargetAccount, ID: p.AccountID, Delta: p.AccountEffect()}}
	if p.SpendsCategory() {
		adj = append(adj, Adjustment{Target: TargetCategory, ID: p.CategoryID, Delta: p.Amount})
	}
	return adj
}

// PlanDelete returns the adjustments that undo a posted transaction.
func PlanDelete(p Posting) []Adjustment {
	adj := PlanCreate(p)
	for i := range adj {
		adj[i].Delta = adj[i].Delta.Neg()
	}
	return adj
}

// PlanUpdate compares the old and new postings and returns the minimal
// adjustments. Nothing is returned when only non-financial fields changed.
func PlanUpdate(old, next Posting) []Adjustment {
	var adj []Adjustment

	reversed := false
	if old.SpendsCategory() &&
		(old.CategoryID != next.CategoryID || old.Amount != next.Amount || next.Type != TransactionExpense) {
		adj = append(adj, Adjustment{Target: TargetCategory, ID: old.CategoryID, Delta: old.Amount.Neg()})
		reversed = true
	}
	if next.SpendsCategory() && (reversed || !old.SpendsCategory()) {
		adj = append(adj, Adjustment{Target: TargetCategory, ID: next.CategoryID, Delta: next.Amount})
	}

	if old.AccountID != next.AccountID || old.Amount != next.Amount || old.Type != next.Type {
		adj = append(adj,
			Adjustment{Target: TargetAccount, ID: old.AccountID, Delta: old.AccountEffect().Neg()},
			Adjustment{Target: TargetAccount, ID: next.AccountID, Delta: next.AccountEffect()},
		)
	}
	return adj
}
