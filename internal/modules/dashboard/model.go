package dashboard

// Stats is the admin dashboard aggregate. Everything here is computed from
// current orders and products on each request, never stored.
type Stats struct {
	TotalSales     int            `json:"totalSales"`
	TotalRevenue   int64          `json:"totalRevenue"`
	TotalOrders    int            `json:"totalOrders"`
	TotalProducts  int            `json:"totalProducts"`
	LowStockCount  int            `json:"lowStockCount"`
	PendingOrders  int            `json:"pendingOrders"`
	MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
	TopProducts    []TopProduct   `json:"topProducts"`
}

// MonthRevenue is one point of the six-month revenue series.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// TopProduct is a best-seller entry, ranked by units sold.
type TopProduct struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}
