package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
)

var hundred = decimal.NewFromInt(100)

// Portfolio is the ordered set of positions valued during one view.
// It is rebuilt on every view and never persisted.
type Portfolio struct {
	positions []Position
}

// NewPortfolio creates a portfolio holding a copy of positions in the given order.
func NewPortfolio(positions []Position) *Portfolio {
	return &Portfolio{positions: slices.Clone(positions)}
}

// Positions returns the positions in their original order.
func (p *Portfolio) Positions() []Position {
	return slices.Clone(p.positions)
}

// Len returns the number of positions.
func (p *Portfolio) Len() int {
	return len(p.positions)
}

// TotalValue returns the sum of quantity × USD price over all positions.
// An empty portfolio is worth zero.
func (p *Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.positions {
		total = total.Add(pos.MarketValue())
	}
	return total
}

// Sorted returns the positions ordered by descending market value. Positions
// with equal market value keep their original relative order.
func (p *Portfolio) Sorted() []Position {
	sorted := slices.Clone(p.positions)
	slices.SortStableFunc(sorted, func(a, b Position) int {
		return b.MarketValue().Cmp(a.MarketValue())
	})
	return sorted
}

// Allocation is a position's share of the portfolio's total value.
type Allocation struct {
	Position    Position
	MarketValue decimal.Decimal
	Percent     decimal.Decimal
}

// Allocations returns the sorted positions with their percentage of total
// value. It fails with apperrors.ErrEmptyPortfolio when the total is zero.
func (p *Portfolio) Allocations() ([]Allocation, error) {
	total := p.TotalValue()
	if total.IsZero() {
		return nil, apperrors.ErrEmptyPortfolio
	}

	sorted := p.Sorted()
	allocations := make([]Allocation, len(sorted))
	for i, pos := range sorted {
		mv := pos.MarketValue()
		allocations[i] = Allocation{
			Position:    pos,
			MarketValue: mv,
			Percent:     mv.Div(total).Mul(hundred),
		}
	}
	return allocations, nil
}

// Summary is the presentation input for one view: rows sorted by descending
// market value plus the portfolio total.
type Summary struct {
	ViewID      string
	GeneratedAt time.Time
	Rows        []SummaryRow
	TotalValue  decimal.Decimal
}

// SummaryRow is one line of the portfolio table. Allocation is null when the
// portfolio total is zero.
type SummaryRow struct {
	Ticker      string
	Exchange    string
	Quantity    int64
	Price       decimal.Decimal
	Currency    string
	USDPrice    decimal.Decimal
	MarketValue decimal.Decimal
	Allocation  decimal.NullDecimal
}

// Summary builds the presentation rows for the portfolio.
func (p *Portfolio) Summary(viewID string, at time.Time) Summary {
	summary := Summary{
		ViewID:      viewID,
		GeneratedAt: at,
		TotalValue:  p.TotalValue(),
	}

	allocations, err := p.Allocations()
	if err != nil {
		// zero total: list the positions without percentages
		for _, pos := range p.Sorted() {
			summary.Rows = append(summary.Rows, newSummaryRow(pos, decimal.NullDecimal{}))
		}
		return summary
	}

	for _, a := range allocations {
		summary.Rows = append(summary.Rows, newSummaryRow(a.Position, decimal.NewNullDecimal(a.Percent)))
	}
	return summary
}

func newSummaryRow(pos Position, allocation decimal.NullDecimal) SummaryRow {
	return SummaryRow{
		Ticker:      pos.Stock.Ticker(),
		Exchange:    pos.Stock.Exchange(),
		Quantity:    pos.Quantity,
		Price:       pos.Stock.Price(),
		Currency:    pos.Stock.Currency(),
		USDPrice:    pos.Stock.USDPrice(),
		MarketValue: pos.MarketValue(),
		Allocation:  allocation,
	}
}
