package core

// CategorySummary is one category's budget against its spend.
type CategorySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Budget       Money  `json:"budget"`
	CurrentSpent Money  `json:"currentSpent"`
	MonthSpent   Money  `json:"monthSpent"`
}

// MonthSummary is the budget overview for a specific year+month.
type MonthSummary struct {
	Year            int               `json:"year"`
	Month           int               `json:"month"` // 1-12
	TotalIncome     Money             `json:"totalIncome"`
	TotalExpense    Money             `json:"totalExpense"`
	TotalBudget     Money             `json:"totalBudget"`
	RemainingBudget Money             `json:"remainingBudget"`
	AvailableFunds  Money             `json:"availableFunds"`
	Categories      []CategorySummary `json:"categories"`
}
