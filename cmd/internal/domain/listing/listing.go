package listing

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	PageSize = 10

	// AnyCategory and AnyLocation disable the matching filter.
	AnyCategory = "t"
	AnyLocation = "n"

	SearchOrder = "companies.name ASC, subscribers.id ASC"
)

var (
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidCategory = errors.New("invalid category")
)

// Orderings rotate by weekday, Monday first. Each weekday gives a different
// set of subscribers the first positions of the default listing.
var Orderings = [7]string{
	"companies.id ASC",
	"subscribers.id DESC",
	"companies.phone1 ASC",
	"companies.document ASC",
	"companies.id DESC",
	"companies.phone1 DESC",
	"companies.document DESC",
}

// Clock reports the current time. Tests replace it to pin a weekday.
type Clock func() time.Time

// OrderingFor returns the default listing order clause for the given instant.
func OrderingFor(t time.Time) string {
	return Orderings[weekdayIndex(t.Weekday())]
}

// weekdayIndex maps time.Weekday (Sunday=0) to Monday=0 ... Sunday=6.
func weekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Filter narrows the search. Zero values mean "no filter".
type Filter struct {
	Term       string
	CategoryID *int64
	State      string
}

// ParseFilter reads the raw search parameters. A missing category or location
// behaves like its "no filter" sentinel. Term and location are used as sent:
// the term is a plain substring and the state code must match exactly.
func ParseFilter(term, category, location string) (Filter, error) {
	f := Filter{Term: term}

	if category != "" && category != AnyCategory {
		id, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			return Filter{}, ErrInvalidCategory
		}
		f.CategoryID = &id
	}

	if location != "" && location != AnyLocation {
		f.State = location
	}
	return f, nil
}

// LikePattern escapes LIKE wildcards of the search term and wraps it in '%'.
// The backslash is the escape character.
func (f Filter) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(f.Term)) + "%"
}

// ParsePage reads the page query parameter, defaulting to 1.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidPage
	}
	return n, nil
}

func Offset(page int) int {
	return (page - 1) * PageSize
}

// NumPages never returns less than 1 so an empty result still has a first page.
func NumPages(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + PageSize - 1) / PageSize)
}

// CheckPage rejects pages past the last one.
func CheckPage(page int, total int64) error {
	if page > NumPages(total) {
		return ErrInvalidPage
	}
	return nil
}
