package storage

import "strconv"

// PageRequest — запрошенная страница выборки
type PageRequest struct {
	Limit  int
	Offset int
}

// Paginator разбирает параметры страницы из запроса и формирует
// ответ со списком и данными пагинации
type Paginator interface {
	ParsePage(limitRaw, offsetRaw string) PageRequest
	BuildResponse(items any, total int, page PageRequest) map[string]any
}

// LimitOffsetPaginator — пагинация limit/offset
type LimitOffsetPaginator struct {
	DefaultLimit int
	MaxLimit     int
}

// NewPaginator создает пагинатор с дефолтными настройками
func NewPaginator() *LimitOffsetPaginator {
	return &LimitOffsetPaginator{DefaultLimit: 20, MaxLimit: 100}
}

// ParsePage разбирает limit и offset, молча поправляя неверные значения
func (p *LimitOffsetPaginator) ParsePage(limitRaw, offsetRaw string) PageRequest {
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}

	offset, err := strconv.Atoi(offsetRaw)
	if err != nil || offset < 0 {
		offset = 0
	}

	return PageRequest{Limit: limit, Offset: offset}
}

// BuildResponse формирует тело ответа со списком и пагинацией
func (p *LimitOffsetPaginator) BuildResponse(items any, total int, page PageRequest) map[string]any {
	return map[string]any{
		"results": items,
		"total":   total,
		"limit":   page.Limit,
		"offset":  page.Offset,
	}
}
