package service

import "math"

// Pagination bounds page requests.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of records to skip.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageInfo describes where a page sits within the full result set.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Count      int   `json:"count"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
	PrevPage   *int  `json:"prevPage"`
	NextPage   *int  `json:"nextPage"`
}

// Normalize replaces non-positive values with defaults and clamps the limit.
// The page is capped so that its offset fits in an int; such a page lies past
// the end of any result set.
func (p Pagination) Normalize(page, limit int) PageRequest {
	defaultLimit := p.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Limit: limit}
}

// NewPageInfo computes page metadata for count records out of total.
func NewPageInfo(req PageRequest, count int, total int64) PageInfo {
	totalPages := int(total / int64(req.Limit))
	if total%int64(req.Limit) != 0 {
		totalPages++
	}
	info := PageInfo{
		Page:       req.Page,
		Limit:      req.Limit,
		Count:      count,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    req.Page > 1,
		HasNext:    req.Page < totalPages,
	}
	if info.HasPrev {
		prev := req.Page - 1
		info.PrevPage = &prev
	}
	if info.HasNext {
		next := req.Page + 1
		info.NextPage = &next
	}
	return info
}
