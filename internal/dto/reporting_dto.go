package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodSummaryResponse is the dashboard summary-card payload.
type PeriodSummaryResponse struct {
	FromDate      string          `json:"fromDate"`
	ToDate        string          `json:"toDate"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
	Count         int64           `json:"count"`
}

// CategoryBreakdownRowResponse is one category of a breakdown, with its share
// of the total formatted for display. Percent is computed here, at the
// presentation edge; aggregation itself never rounds.
type CategoryBreakdownRowResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
	Percent  string          `json:"percent"`
}

// CategoryBreakdownResponse is the breakdown payload for one transaction type.
type CategoryBreakdownResponse struct {
	Type       string                         `json:"type"`
	FromDate   string                         `json:"fromDate"`
	ToDate     string                         `json:"toDate"`
	GrandTotal decimal.Decimal                `json:"grandTotal"`
	Rows       []CategoryBreakdownRowResponse `json:"rows"`
}

// MonthlyPointResponse is one month of the dense monthly series.
type MonthlyPointResponse struct {
	Month    string          `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlySeriesResponse is the monthly chart payload, oldest month first.
type MonthlySeriesResponse struct {
	Months []MonthlyPointResponse `json:"months"`
}

// DailyPointResponse is one day of the sparse daily trend.
type DailyPointResponse struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// DailyTrendResponse is the daily chart payload.
type DailyTrendResponse struct {
	FromDate string               `json:"fromDate"`
	ToDate   string               `json:"toDate"`
	Days     []DailyPointResponse `json:"days"`
}

// TopSpenderResponse is one row of the admin top-spenders report.
type TopSpenderResponse struct {
	OwnerID string          `json:"ownerID"`
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
}

// CategoryUsageResponse is one row of the admin most-used-categories report.
type CategoryUsageResponse struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// ToPeriodSummaryResponse converts a domain summary to its DTO.
func ToPeriodSummaryResponse(s *domain.PeriodSummary, from, to time.Time) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		FromDate:      from.Format("2006-01-02"),
		ToDate:        to.Format("2006-01-02"),
		TotalIncome:   s.TotalIncome,
		TotalExpenses: s.TotalExpenses,
		Balance:       s.Balance(),
		Count:         s.Count,
	}
}

// ToCategoryBreakdownResponse converts breakdown rows to the DTO, computing
// each row's percentage of the grand total (two decimal places, display only).
func ToCategoryBreakdownResponse(rows []domain.CategorySummary, txnType domain.TransactionType, from, to time.Time) CategoryBreakdownResponse {
	response := CategoryBreakdownResponse{
		Type:     string(txnType),
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Rows:     make([]CategoryBreakdownRowResponse, len(rows)),
	}

	grandTotal := decimal.Zero
	for _, row := range rows {
		grandTotal = grandTotal.Add(row.Total)
	}
	response.GrandTotal = grandTotal

	hundred := decimal.NewFromInt(100)
	for i, row := range rows {
		percent := "0.00%"
		if grandTotal.IsPositive() {
			percent = row.Total.Mul(hundred).Div(grandTotal).StringFixed(2) + "%"
		}
		response.Rows[i] = CategoryBreakdownRowResponse{
			Category: row.Category,
			Total:    row.Total,
			Count:    row.Count,
			Percent:  percent,
		}
	}

	return response
}

// ToMonthlySeriesResponse converts the dense monthly series to its DTO.
func ToMonthlySeriesResponse(points []domain.MonthlyPoint) MonthlySeriesResponse {
	response := MonthlySeriesResponse{
		Months: make([]MonthlyPointResponse, len(points)),
	}
	for i, p := range points {
		response.Months[i] = MonthlyPointResponse{
			Month:    string(p.Month),
			Year:     p.Year,
			Income:   p.Income,
			Expenses: p.Expenses,
		}
	}
	return response
}

// ToDailyTrendResponse converts the sparse daily trend to its DTO.
func ToDailyTrendResponse(points []domain.DailyPoint, from, to time.Time) DailyTrendResponse {
	response := DailyTrendResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Days:     make([]DailyPointResponse, len(points)),
	}
	for i, p := range points {
		response.Days[i] = DailyPointResponse{
			Date:     p.Date.Format("2006-01-02"),
			Income:   p.Income,
			Expenses: p.Expenses,
			Balance:  p.Balance,
		}
	}
	return response
}

// ToTopSpenderResponses converts admin top-spender rows to DTOs.
func ToTopSpenderResponses(rows []domain.TopSpender) []TopSpenderResponse {
	responses := make([]TopSpenderResponse, len(rows))
	for i, r := range rows {
		responses[i] = TopSpenderResponse{
			OwnerID: r.OwnerID,
			Name:    r.Name,
			Total:   r.Total,
			Count:   r.Count,
		}
	}
	return responses
}

// ToCategoryUsageResponses converts admin category-usage rows to DTOs.
func ToCategoryUsageResponses(rows []domain.CategoryUsage) []CategoryUsageResponse {
	responses := make([]CategoryUsageResponse, len(rows))
	for i, r := range rows {
		responses[i] = CategoryUsageResponse{
			Category: r.Category,
			Count:    r.Count,
			Total:    r.Total,
		}
	}
	return responses
}
