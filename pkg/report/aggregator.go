// Package report aggregates fetched orders into return and repeat-purchase
// collections and builds the two tabular reports.
package report

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saachistyle/shop-reports/pkg/shopify"
)

// ReturnRecord is one refunded order's contribution to the returns report.
type ReturnRecord struct {
	CustomerName   string
	Email          string
	OrderDate      string
	OriginalAmount float64
	Items          string
	ReturnedItems  string
	ReturnAmount   float64
	FinalAmount    float64
}

// PurchaseRecord is one order's contribution to a customer's purchase history.
type PurchaseRecord struct {
	Name      string
	OrderDate string
	Amount    float64
	Items     string
}

// Aggregator deduplicates orders by id and derives the two report
// collections. Ingest may be called concurrently from fetch workers; all
// shared state is guarded by a single mutex so each order id contributes
// at most once.
type Aggregator struct {
	mu         sync.Mutex
	seen       map[int64]struct{}
	returns    []ReturnRecord
	purchases  map[string][]PurchaseRecord
	emailOrder []string
	logger     zerolog.Logger
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		seen:      make(map[int64]struct{}),
		purchases: make(map[string][]PurchaseRecord),
		logger:    log.With().Str("component", "aggregator").Logger(),
	}
}

// Ingest folds a page of orders into the shared state. Orders already seen
// are skipped entirely, as are orders without customer information.
func (a *Aggregator) Ingest(orders []shopify.Order) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, order := range orders {
		if _, dup := a.seen[order.ID]; dup {
			ordersDuplicateTotal.Inc()
			continue
		}
		a.seen[order.ID] = struct{}{}

		if order.Customer == nil {
			// No identifiable customer: contributes to neither report.
			ordersSkippedTotal.Inc()
			continue
		}

		name := order.Customer.FullName()
		email := order.Customer.Email
		total := round2(a.parsePrice(order.ID, order.TotalPrice))
		items := strings.Join(order.ItemTitles(), ", ")

		var returnedItems []string
		returnAmount := 0.0
		for _, refund := range order.Refunds {
			for _, line := range refund.RefundLineItems {
				returnedItems = append(returnedItems, line.LineItem.Title)
				returnAmount += line.Subtotal
			}
		}
		finalAmount := round2(total - returnAmount)

		if len(returnedItems) > 0 {
			a.returns = append(a.returns, ReturnRecord{
				CustomerName:   name,
				Email:          email,
				OrderDate:      order.CreatedAt,
				OriginalAmount: total,
				Items:          items,
				ReturnedItems:  strings.Join(returnedItems, ", "),
				ReturnAmount:   round2(returnAmount),
				FinalAmount:    finalAmount,
			})
		}

		// Customers without an email all land in the "" bucket.
		if _, ok := a.purchases[email]; !ok {
			a.emailOrder = append(a.emailOrder, email)
		}
		a.purchases[email] = append(a.purchases[email], PurchaseRecord{
			Name:      name,
			OrderDate: order.CreatedAt,
			Amount:    total,
			Items:     items,
		})
		ordersIngestedTotal.Inc()
	}
}

// UniqueOrders returns the number of distinct order ids processed.
func (a *Aggregator) UniqueOrders() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.seen)
}

// parsePrice converts the API's string-typed amount. Unparseable amounts
// count as zero rather than failing the run.
func (a *Aggregator) parsePrice(orderID int64, value string) float64 {
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		a.logger.Warn().
			Int64("order_id", orderID).
			Str("total_price", value).
			Msg("Unparseable total price, treating as zero")
		return 0
	}
	return price
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
