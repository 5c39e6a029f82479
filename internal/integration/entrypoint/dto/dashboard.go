// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/creator-ledger/backend/internal/application/usecase/dashboard"

// KPIsResponse represents the dashboard KPI response.
type KPIsResponse struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalRevenue     string `json:"total_revenue"`
	TotalFees        string `json:"total_fees"`
	NetRevenue       string `json:"net_revenue"`
	TotalExpenses    string `json:"total_expenses"`
	NetProfit        string `json:"net_profit"`
	TransactionCount int    `json:"transaction_count"`
	ExpenseCount     int    `json:"expense_count"`
}

// ToKPIsResponse converts a use case output to a response DTO.
func ToKPIsResponse(output *dashboard.GetKPIsOutput) KPIsResponse {
	return KPIsResponse{
		StartDate:        output.StartDate.Format("2006-01-02"),
		EndDate:          output.EndDate.Format("2006-01-02"),
		TotalRevenue:     output.TotalRevenue.StringFixed(2),
		TotalFees:        output.TotalFees.StringFixed(2),
		NetRevenue:       output.NetRevenue.StringFixed(2),
		TotalExpenses:    output.TotalExpenses.StringFixed(2),
		NetProfit:        output.NetProfit.StringFixed(2),
		TransactionCount: output.TransactionCount,
		ExpenseCount:     output.ExpenseCount,
	}
}
