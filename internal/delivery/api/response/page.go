package response

import (
	"net/http"
	"net/url"
	"strconv"

	"coderr/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// Query parameters of paginated lists.
const (
	PageParam     = "page"
	PageSizeParam = "page_size"
)

// Page is the envelope of every list endpoint.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageRequest is a parsed page selection.
type PageRequest struct {
	Number int
	Size   int
}

// Window converts the selection into a repository page.
func (p PageRequest) Window() repository.Page {
	return repository.Page{Offset: (p.Number - 1) * p.Size, Limit: p.Size}
}

// Paginated writes one page of results with absolute links to its neighbours.
// Results may be shorter than the page size only on the last page.
func Paginated[T any](c echo.Context, req PageRequest, total int64, results []T) error {
	if results == nil {
		results = []T{}
	}

	page := Page[T]{Count: total, Results: results}
	if int64(req.Number*req.Size) < total {
		next := pageURL(c, req.Number+1)
		page.Next = &next
	}
	if req.Number > 1 {
		previous := pageURL(c, req.Number-1)
		page.Previous = &previous
	}

	return c.JSON(http.StatusOK, page)
}

// pageURL rebuilds the request URL for another page number. Page one drops the parameter.
func pageURL(c echo.Context, number int) string {
	req := c.Request()
	query := req.URL.Query()
	if number <= 1 {
		query.Del(PageParam)
	} else {
		query.Set(PageParam, strconv.Itoa(number))
	}

	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: query.Encode(),
	}

	return u.String()
}
