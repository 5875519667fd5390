package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key builds a deterministic cache key for a page request. params, when
// non-nil, replaces the URL's own query (mirroring how the client issues
// the request); query parameters are sorted so equivalent requests share
// a key.
//
// Example:
//
//	shop:orders:example.myshopify.com/admin/api/2025-01/orders.json:limit=250:status=any
func Key(pageURL string, params url.Values) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "shop:orders:" + pageURL
	}

	query := u.Query()
	if params != nil {
		query = params
	}

	parts := []string{"shop:orders", u.Host + u.Path}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, query.Get(k)))
	}

	return strings.Join(parts, ":")
}
