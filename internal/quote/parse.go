package quote

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

const (
	attrLastPrice    = "data-last-price"
	attrCurrencyCode = "data-currency-code"
)

var errNoPriceElement = errors.New("no element carrying " + attrLastPrice)

// lastPrice is what a quote page exposes on its price element.
// Currency is empty on pages that do not carry a currency code.
type lastPrice struct {
	Price    decimal.Decimal
	Currency string
}

// parseLastPrice reads an HTML quote page and returns the attributes of the
// first element carrying data-last-price.
func parseLastPrice(r io.Reader) (lastPrice, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return lastPrice{}, fmt.Errorf("failed to parse quote page: %w", err)
	}

	node := findPriceElement(doc)
	if node == nil {
		return lastPrice{}, errNoPriceElement
	}

	raw, _ := attr(node, attrLastPrice)
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return lastPrice{}, fmt.Errorf("invalid %s %q: %w", attrLastPrice, raw, err)
	}

	currency, _ := attr(node, attrCurrencyCode)
	return lastPrice{Price: price, Currency: currency}, nil
}

// findPriceElement walks the document depth first.
func findPriceElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		if _, ok := attr(n, attrLastPrice); ok {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findPriceElement(c); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
