package models

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order est figée à la création, seul le statut peut évoluer.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	City          string      `json:"city,omitempty"`
	Items         []CartItem  `json:"items"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	Date          string      `json:"date"` // YYYY-MM-DD
}

func (o Order) Clone() Order {
	c := o
	c.Items = CloneItems(o.Items)
	return c
}

// DashboardStats regroupe les compteurs du tableau de bord admin
type DashboardStats struct {
	TotalProducts   int                 `json:"total_products"`
	TotalCategories int                 `json:"total_categories"`
	TotalOrders     int                 `json:"total_orders"`
	TotalRevenue    float64             `json:"total_revenue"`
	OrdersByStatus  map[OrderStatus]int `json:"orders_by_status"`
	CartLines       int                 `json:"cart_lines"`
}
