package sales

import (
	"context"
	"sort"
	"time"

	"github.com/Jasith06/jlink-pos-web/apperr"
	"github.com/Jasith06/jlink-pos-web/utils"
)

// Analytics summarizes sales over a timeframe.
type Analytics struct {
	TotalSales       float64 `json:"totalSales"`
	TotalProfit      float64 `json:"totalProfit"`
	TransactionCount int     `json:"transactionCount"`
}

// valid timeframes: today, week, month, year, all
func validTimeframe(tf string) bool {
	switch tf {
	case "today", "week", "month", "year", "all":
		return true
	}
	return false
}

func inTimeframe(saleDate, now time.Time, tf string) bool {
	switch tf {
	case "today":
		return sameDay(saleDate, now)
	case "week":
		start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 7)
		return !saleDate.Before(start) && saleDate.Before(end)
	case "month":
		return saleDate.Month() == now.Month() && saleDate.Year() == now.Year()
	case "year":
		return saleDate.Year() == now.Year()
	case "all":
		return true
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetAnalytics aggregates total revenue, profit and transaction count for
// the timeframe.
func (f *Finalizer) GetAnalytics(ctx context.Context, timeframe string) (*Analytics, error) {
	if timeframe == "" {
		timeframe = "today"
	}
	if !validTimeframe(timeframe) {
		return nil, apperr.NewValidation("timeframe", "timeframe must be today, week, month, year or all")
	}

	records, err := f.Store.List(ctx)
	if err != nil {
		return nil, apperr.NewUpstream("could not load sales", err)
	}

	now := time.Now()
	out := &Analytics{}
	for _, sale := range records {
		if !inTimeframe(sale.SaleDate, now, timeframe) {
			continue
		}
		out.TotalSales += sale.TotalAmount
		out.TotalProfit += sale.Profit
		out.TransactionCount++
	}
	out.TotalSales = utils.Round2(out.TotalSales)
	out.TotalProfit = utils.Round2(out.TotalProfit)
	return out, nil
}

// ListSales returns the sales inside the timeframe, newest first.
func (f *Finalizer) ListSales(ctx context.Context, timeframe string) ([]SaleRecord, error) {
	if timeframe == "" {
		timeframe = "today"
	}
	if !validTimeframe(timeframe) {
		return nil, apperr.NewValidation("timeframe", "timeframe must be today, week, month, year or all")
	}

	records, err := f.Store.List(ctx)
	if err != nil {
		return nil, apperr.NewUpstream("could not load sales", err)
	}

	now := time.Now()
	out := make([]SaleRecord, 0, len(records))
	for _, sale := range records {
		if inTimeframe(sale.SaleDate, now, timeframe) {
			out = append(out, sale)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}
