package report

import (
	"sort"
	"strconv"
)

// Table is a flat row set ready for tabular export. Rows may be sparse;
// cells missing from a row render blank under their header.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

var returnsHeaders = []string{
	"Customer Name",
	"Email",
	"Order Date",
	"Original Amount",
	"Items",
	"Returned Items",
	"Return Amount",
	"Final Amount",
}

// BuildReturns builds the returns table, one row per refunded order in
// insertion order.
func (a *Aggregator) BuildReturns() Table {
	a.mu.Lock()
	defer a.mu.Unlock()

	rows := make([]map[string]string, 0, len(a.returns))
	for _, r := range a.returns {
		rows = append(rows, map[string]string{
			"Customer Name":   r.CustomerName,
			"Email":           r.Email,
			"Order Date":      r.OrderDate,
			"Original Amount": formatAmount(r.OriginalAmount),
			"Items":           r.Items,
			"Returned Items":  r.ReturnedItems,
			"Return Amount":   formatAmount(r.ReturnAmount),
			"Final Amount":    formatAmount(r.FinalAmount),
		})
	}

	return Table{
		Headers: append([]string(nil), returnsHeaders...),
		Rows:    rows,
	}
}

// BuildReorders builds the repeat-purchase table: one row per customer with
// at least two orders, purchases sorted ascending by order date and pivoted
// into ordinal-suffixed column triplets. Customers appear in first-seen
// order; the header set is the union across all rows.
//
// ISO-8601 date strings sort lexically in chronological order, so the sort
// compares the raw strings.
func (a *Aggregator) BuildReorders() Table {
	a.mu.Lock()
	defer a.mu.Unlock()

	var rows []map[string]string
	maxPurchases := 0

	for _, email := range a.emailOrder {
		purchases := a.purchases[email]
		if len(purchases) < 2 {
			continue
		}

		sorted := append([]PurchaseRecord(nil), purchases...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].OrderDate < sorted[j].OrderDate
		})

		total := 0.0
		for _, p := range sorted {
			total += p.Amount
		}

		row := map[string]string{
			"Name":         sorted[0].Name,
			"Email":        email,
			"Total Amount": formatAmount(round2(total)),
		}
		for i, p := range sorted {
			nth := Ordinal(i + 1)
			row[nth+" Purchase Date"] = p.OrderDate
			row[nth+" Purchase Amount"] = formatAmount(round2(p.Amount))
			row[nth+" Purchase Items"] = p.Items
		}
		rows = append(rows, row)

		if len(sorted) > maxPurchases {
			maxPurchases = len(sorted)
		}
	}

	headers := []string{"Name", "Email", "Total Amount"}
	for n := 1; n <= maxPurchases; n++ {
		nth := Ordinal(n)
		headers = append(headers,
			nth+" Purchase Date",
			nth+" Purchase Amount",
			nth+" Purchase Items",
		)
	}

	return Table{Headers: headers, Rows: rows}
}

// formatAmount renders a monetary value with two decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
