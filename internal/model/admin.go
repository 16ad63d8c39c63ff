package model

// DashboardStats holds storefront totals for the admin dashboard.
type DashboardStats struct {
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
	Users    int     `json:"users"`
	Revenue  float64 `json:"revenue"`
}
