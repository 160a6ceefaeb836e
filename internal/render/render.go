// Package render turns a portfolio summary into a markdown table and
// renders it for the terminal.
package render

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
)

// Styles accepted by Terminal.
const (
	StyleNoTTY = "notty"
	StyleASCII = "ascii"
	StyleDark  = "dark"
	StyleLight = "light"
)

// DefaultWordWrap is the terminal width used by Terminal.
const DefaultWordWrap = 120

var (
	//go:embed templates/portfolio.md
	portfolioTemplate string

	//go:embed templates/holdings.md
	holdingsTemplate string
)

var funcs = template.FuncMap{
	"fixed":   fixed,
	"percent": percent,
	"usd":     FormatUSD,
}

var (
	portfolioTmpl = template.Must(template.New("portfolio").Funcs(funcs).Parse(portfolioTemplate))
	holdingsTmpl  = template.Must(template.New("holdings").Parse(holdingsTemplate))
)

// Markdown renders the summary rows as a markdown table followed by the
// portfolio total line.
func Markdown(s model.Summary) (string, error) {
	var b strings.Builder
	if err := portfolioTmpl.Execute(&b, s); err != nil {
		return "", fmt.Errorf("failed to render portfolio: %w", err)
	}
	return b.String(), nil
}

// Holdings renders stored holdings as a markdown table.
func Holdings(holdings []model.Holding) (string, error) {
	var b strings.Builder
	if err := holdingsTmpl.Execute(&b, holdings); err != nil {
		return "", fmt.Errorf("failed to render holdings: %w", err)
	}
	return b.String(), nil
}

// Terminal renders markdown through glamour in the given style.
func Terminal(md, style string) (string, error) {
	if !ValidStyle(style) {
		return "", fmt.Errorf("unknown style %q", style)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// ValidStyle reports whether style is one Terminal accepts.
func ValidStyle(style string) bool {
	switch style {
	case StyleNoTTY, StyleASCII, StyleDark, StyleLight:
		return true
	}
	return false
}

// FormatUSD formats an amount as dollars with thousands separators,
// e.g. $1,234.56.
func FormatUSD(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2)
}
