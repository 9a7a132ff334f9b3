package dto

import "github.com/shopspring/decimal"

type WeekdayRevenue struct {
	Weekday string          `json:"weekday"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type StaffRanking struct {
	UserID  string          `json:"user_id"`
	Name    string          `json:"name"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ServiceRanking struct {
	ServiceID string          `json:"service_id"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type AnalyticsSummary struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	Sales        int              `json:"sales"`
	Revenue      decimal.Decimal  `json:"revenue"`
	MeanTicket   decimal.Decimal  `json:"mean_ticket"`
	MedianTicket decimal.Decimal  `json:"median_ticket"`
	ByWeekday    []WeekdayRevenue `json:"by_weekday"`
	TopStaff     *StaffRanking    `json:"top_staff"`
	TopService   *ServiceRanking  `json:"top_service"`
	Staff        []StaffRanking   `json:"staff"`
	Services     []ServiceRanking `json:"services"`
}

// ─── Inventory ───────────────────────────────────────────────────────────────

type LowStockItem struct {
	Kind      string `json:"kind"` // chemical | consumable
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

type LowStockResponse struct {
	Items []LowStockItem `json:"items"`
}
