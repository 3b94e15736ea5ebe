package helper

import (
	"math"
	"net/http"
	"strconv"
)

const defaultRecordPerPage = 10

// ParsePagination reads page and recordPerPage, falling back to 1 and 10.
func ParsePagination(r *http.Request) (page, recordPerPage int) {
	recordPerPage, err := strconv.Atoi(r.URL.Query().Get("recordPerPage"))
	if err != nil || recordPerPage < 1 {
		recordPerPage = defaultRecordPerPage
	}
	if recordPerPage > 100 {
		recordPerPage = 100
	}

	page, err = strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	// keeps (page-1)*recordPerPage inside int
	if maxPage := math.MaxInt / recordPerPage; page > maxPage {
		page = maxPage
	}
	return page, recordPerPage
}

type Pagination struct {
	CurrentPage    int   `json:"current_page"`
	RecordsPerPage int   `json:"records_per_page"`
	Total          int64 `json:"total"`
	TotalPages     int64 `json:"total_pages"`
}

func NewPagination(page, recordPerPage int, total int64) *Pagination {
	return &Pagination{
		CurrentPage:    page,
		RecordsPerPage: recordPerPage,
		Total:          total,
		TotalPages:     (total + int64(recordPerPage) - 1) / int64(recordPerPage),
	}
}
