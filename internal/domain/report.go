package domain

// CustomerSpend is one row of the top-customers ranking: a customer's display
// name joined against the sum of their transaction totals.
type CustomerSpend struct {
	Name       string `json:"name"`
	TotalSpent int64  `json:"totalSpent"`
}

// DashboardReport bundles the three dashboard aggregates. It is recomputed in
// full on every call; nothing here is cached.
type DashboardReport struct {
	DailySalesTotal  int64           `json:"dailySalesTotal"`
	LowStockProducts []Product       `json:"lowStockProducts"`
	TopCustomers     []CustomerSpend `json:"topCustomers"`
}
