package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses.
// Filter parameters of the current request are carried into every link.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	params := url.Values{}
	for k, v := range c.Queries() {
		if k != "offset" && k != "limit" {
			params.Set(k, v)
		}
	}
	link := func(offset int, rel string) string {
		params.Set("offset", fmt.Sprint(offset))
		params.Set("limit", fmt.Sprint(p.Limit))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, c.Path(), params.Encode(), rel)
	}

	links := []string{link(0, "first")}
	if p.Offset > 0 {
		links = append(links, link(max(p.Offset-p.Limit, 0), "prev"))
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, link(p.Offset+p.Limit, "next"))
	}
	links = append(links, link(max(p.Total-p.Limit, 0), "last"))

	c.Set("Link", strings.Join(links, ", "))
}
