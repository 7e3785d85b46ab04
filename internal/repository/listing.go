package repository

import (
	"regexp"
	"time"
)

// ListFilter is the shared listing contract: either a case-insensitive text
// query or, when the query parses as a calendar date, a same-day range on the
// listing's date field. ByDate set means the text term was cleared.
type ListFilter struct {
	Query    string
	DayStart time.Time
	DayEnd   time.Time
	ByDate   bool
	Page     int
	PageSize int
}

// NewListFilter builds a filter from a raw query string, detecting the
// date-shaped case.
func NewListFilter(query string, page, pageSize int) ListFilter {
	f := ListFilter{Query: query, Page: page, PageSize: pageSize}
	if start, end, ok := DayRange(query); ok {
		f.Query = ""
		f.DayStart = start
		f.DayEnd = end
		f.ByDate = true
	}
	return f
}

// datePattern matches a query that is exactly an ISO calendar date.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DayRange detects whether a search query is a date and, if so, returns the
// [00:00:00, 23:59:59] window of that day. A valid date takes precedence
// over text filtering, so callers clear the text term when ok is true.
func DayRange(query string) (start, end time.Time, ok bool) {
	if !datePattern.MatchString(query) {
		return time.Time{}, time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", query, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return day, day.Add(24*time.Hour - time.Second), true
}

// TotalPages converts a row count into page count with a floor of one page,
// so an empty listing still renders page 1 of 1.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}

// offset converts a 1-based page into a row offset, treating anything below
// page 1 as page 1.
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
