package shopify

import "strings"

// nextPageURL extracts the rel="next" target from a Link response header.
// The admin API paginates with cursor URLs delivered via this header, e.g.
//
//	<https://shop.myshopify.com/admin/api/2025-01/orders.json?page_info=abc>; rel="next"
//
// Returns "" when no next relation is present.
func nextPageURL(header string) string {
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}

		target := strings.TrimSpace(sections[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for _, param := range sections[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
			}
		}
	}
	return ""
}
