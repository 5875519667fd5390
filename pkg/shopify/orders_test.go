package shopify

import (
	"encoding/json"
	"testing"
)

func TestOrdersResponse_Decode(t *testing.T) {
	payload := `{
		"orders": [
			{
				"id": 9001,
				"created_at": "2024-03-15T10:30:00-05:00",
				"total_price": "100.00",
				"customer": {"email": "jane@example.com", "first_name": "Jane", "last_name": "Doe"},
				"line_items": [{"title": "Silk Scarf"}, {"title": "Wool Hat"}],
				"refunds": [
					{
						"refund_line_items": [
							{"subtotal": 30.0, "line_item": {"title": "Wool Hat"}}
						]
					}
				]
			},
			{
				"id": 9002,
				"created_at": "2024-03-16T08:00:00-05:00",
				"total_price": "25.50",
				"customer": null,
				"line_items": [{"title": "Socks"}],
				"refunds": []
			}
		]
	}`

	var page ordersResponse
	if err := json.Unmarshal([]byte(payload), &page); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(page.Orders) != 2 {
		t.Fatalf("Decoded %d orders, want 2", len(page.Orders))
	}

	order := page.Orders[0]
	if order.ID != 9001 {
		t.Errorf("ID = %d, want 9001", order.ID)
	}
	if order.TotalPrice != "100.00" {
		t.Errorf("TotalPrice = %q, want \"100.00\"", order.TotalPrice)
	}
	if order.Customer == nil || order.Customer.Email != "jane@example.com" {
		t.Errorf("Customer = %+v, want jane@example.com", order.Customer)
	}
	if len(order.Refunds) != 1 || len(order.Refunds[0].RefundLineItems) != 1 {
		t.Fatalf("Refunds = %+v, want one refund with one line", order.Refunds)
	}
	line := order.Refunds[0].RefundLineItems[0]
	if line.Subtotal != 30.0 {
		t.Errorf("Refund subtotal = %v, want 30.0", line.Subtotal)
	}
	if line.LineItem.Title != "Wool Hat" {
		t.Errorf("Refund line title = %q, want Wool Hat", line.LineItem.Title)
	}

	if page.Orders[1].Customer != nil {
		t.Errorf("Expected nil customer on guest order, got %+v", page.Orders[1].Customer)
	}
}

func TestCustomer_FullName(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		expected string
	}{
		{"both names", Customer{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", Customer{FirstName: "Jane"}, "Jane"},
		{"last only", Customer{LastName: "Doe"}, "Doe"},
		{"neither", Customer{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.customer.FullName(); got != tt.expected {
				t.Errorf("FullName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOrder_ItemTitles(t *testing.T) {
	order := Order{LineItems: []LineItem{{Title: "A"}, {Title: "B"}}}
	titles := order.ItemTitles()
	if len(titles) != 2 || titles[0] != "A" || titles[1] != "B" {
		t.Errorf("ItemTitles() = %v, want [A B]", titles)
	}
}

func TestOrderParams(t *testing.T) {
	params := OrderParams("2024-01-01", "2024-06-30", 250)

	expected := map[string]string{
		"status":         "any",
		"created_at_min": "2024-01-01",
		"created_at_max": "2024-06-30",
		"limit":          "250",
		"fields":         "id,created_at,line_items,total_price,customer,refunds",
	}
	for key, want := range expected {
		if got := params.Get(key); got != want {
			t.Errorf("params[%s] = %q, want %q", key, got, want)
		}
	}
}
