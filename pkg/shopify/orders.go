package shopify

import (
	"net/url"
	"strconv"
	"strings"
)

// Order is the subset of the admin API order resource this tool consumes.
// The admin API serializes total_price as a string.
type Order struct {
	ID         int64      `json:"id"`
	CreatedAt  string     `json:"created_at"`
	TotalPrice string     `json:"total_price"`
	Customer   *Customer  `json:"customer"`
	LineItems  []LineItem `json:"line_items"`
	Refunds    []Refund   `json:"refunds"`
}

// ItemTitles returns the titles of all line items in order.
func (o *Order) ItemTitles() []string {
	titles := make([]string, len(o.LineItems))
	for i, item := range o.LineItems {
		titles[i] = item.Title
	}
	return titles
}

// Customer identifies the buyer on an order. Orders placed without a
// customer account carry a null customer.
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name, tolerating either being empty.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type LineItem struct {
	Title string `json:"title"`
}

// Refund is a monetary reversal against specific line items of an order.
type Refund struct {
	RefundLineItems []RefundLineItem `json:"refund_line_items"`
}

// RefundLineItem carries the refunded subtotal as a number, unlike the
// order's string-typed total_price.
type RefundLineItem struct {
	Subtotal float64  `json:"subtotal"`
	LineItem LineItem `json:"line_item"`
}

// ordersResponse is the envelope of the orders endpoint.
type ordersResponse struct {
	Orders []Order `json:"orders"`
}

// OrderParams builds the seed query for an order export over [start, end].
// Cursor URLs discovered via the Link header are self-contained and must
// not carry these parameters.
func OrderParams(start, end string, pageSize int) url.Values {
	return url.Values{
		"status":         {"any"},
		"created_at_min": {start},
		"created_at_max": {end},
		"limit":          {strconv.Itoa(pageSize)},
		"fields":         {"id,created_at,line_items,total_price,customer,refunds"},
	}
}
