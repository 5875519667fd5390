package shopify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saachistyle/shop-reports/internal/testutil"
)

const ordersPath = "/admin/api/2025-01/orders.json"

// newTestClient creates a client pointed at the mock shop with fast timings.
func newTestClient(t *testing.T, mock *testutil.MockShop) *Client {
	t.Helper()

	client, err := New(Config{
		AccessToken:      "test-token",
		BaseURL:          mock.URL(),
		MaxRetries:       5,
		RetryDelay:       10 * time.Millisecond,
		ThrottleInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      Config{ShopName: "example", AccessToken: "token"},
			expectError: false,
		},
		{
			name:        "missing shop name",
			config:      Config{AccessToken: "token"},
			expectError: true,
		},
		{
			name:        "missing access token",
			config:      Config{ShopName: "example"},
			expectError: true,
		},
		{
			name:        "base URL substitutes for shop name",
			config:      Config{BaseURL: "http://localhost:1234", AccessToken: "token"},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestOrdersURL(t *testing.T) {
	client, err := New(Config{ShopName: "example-shop", AccessToken: "token", APIVersion: "2025-01"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	expected := "https://example-shop.myshopify.com/admin/api/2025-01/orders.json"
	if got := client.OrdersURL(); got != expected {
		t.Errorf("OrdersURL() = %q, want %q", got, expected)
	}
}

func TestFetchOrders_Success(t *testing.T) {
	mock := testutil.NewMockShop()
	defer mock.Close()

	mock.SetPage(ordersPath, testutil.PageResponse{
		Body:     `{"orders": [{"id": 1, "total_price": "10.00"}, {"id": 2, "total_price": "20.00"}]}`,
		NextPath: ordersPath + "?page_info=next2",
	})

	client := newTestClient(t, mock)
	orders, next, err := client.FetchOrders(context.Background(), mock.URL()+ordersPath, OrderParams("2024-01-01", "2024-06-30", 250))
	if err != nil {
		t.Fatalf("FetchOrders() error = %v", err)
	}

	if len(orders) != 2 {
		t.Errorf("Got %d orders, want 2", len(orders))
	}
	if next == "" {
		t.Error("Expected next cursor from Link header, got empty")
	}
	if token := mock.LastToken(); token != "test-token" {
		t.Errorf("Access token header = %q, want test-token", token)
	}
}

func TestFetchOrders_RateLimitedThenSuccess(t *testing.T) {
	mock := testutil.NewMockShop()
	defer mock.Close()

	mock.SetPage(ordersPath, testutil.PageResponse{
		Body:       `{"orders": [{"id": 1}]}`,
		RetryAfter: "0.01",
	})
	mock.RateLimit(ordersPath, 2)

	client := newTestClient(t, mock)
	orders, _, err := client.FetchOrders(context.Background(), mock.URL()+ordersPath, nil)
	if err != nil {
		t.Fatalf("FetchOrders() error = %v", err)
	}

	if len(orders) != 1 {
		t.Errorf("Got %d orders, want 1", len(orders))
	}
	if got := mock.Requests(); got != 3 {
		t.Errorf("Requests = %d, want 3 (two 429s then success)", got)
	}
}

func TestFetchOrders_RetryExhaustion(t *testing.T) {
	mock := testutil.NewMockShop()
	defer mock.Close()

	mock.SetPage(ordersPath, testutil.PageResponse{
		Body:       `{"orders": [{"id": 1}]}`,
		RetryAfter: "0.01",
	})
	mock.RateLimit(ordersPath, 10)

	client := newTestClient(t, mock)
	orders, next, err := client.FetchOrders(context.Background(), mock.URL()+ordersPath, nil)

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected ErrRetryExhausted, got %v", err)
	}
	if len(orders) != 0 || next != "" {
		t.Errorf("Expected empty result after exhaustion, got %d orders, next=%q", len(orders), next)
	}
	if got := mock.Requests(); got != 5 {
		t.Errorf("Requests = %d, want 5 (MaxRetries total attempts)", got)
	}
}

func TestFetchOrders_NonSuccessStatusNotRetried(t *testing.T) {
	mock := testutil.NewMockShop()
	defer mock.Close()

	mock.SetPage(ordersPath, testutil.PageResponse{
		StatusCode: 500,
		Body:       `{"errors":"Internal Server Error"}`,
	})

	client := newTestClient(t, mock)
	orders, next, err := client.FetchOrders(context.Background(), mock.URL()+ordersPath, nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
	if len(orders) != 0 || next != "" {
		t.Errorf("Expected empty result, got %d orders, next=%q", len(orders), next)
	}
	if got := mock.Requests(); got != 1 {
		t.Errorf("Requests = %d, want 1 (no retry on non-429 status)", got)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"absent header uses default", "", 2 * time.Second},
		{"integer seconds", "4", 4 * time.Second},
		{"fractional seconds", "2.5", 2500 * time.Millisecond},
		{"unparseable uses default", "soon", 2 * time.Second},
		{"negative uses default", "-1", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := make(map[string][]string)
			if tt.value != "" {
				headers["Retry-After"] = []string{tt.value}
			}
			if got := retryAfter(headers, 2*time.Second); got != tt.expected {
				t.Errorf("retryAfter(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}
