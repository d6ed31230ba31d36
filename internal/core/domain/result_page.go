package domain

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidCursor = errors.New("invalid cursor")

const cursorPrefix = "o:"

// Cursor - позиция следующей страницы, для клиента непрозрачна
type Cursor struct {
	Offset int
}

func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(c.Offset)))
}

func ParseCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	offsetStr, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return Cursor{}, ErrInvalidCursor
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 || offset > MaxOffset {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Offset: offset}, nil
}

// ResultPage - одна страница результатов
type ResultPage[T any] struct {
	Items      []T     `json:"items"`
	TotalCount *int    `json:"total_count,omitempty"`
	NextCursor *Cursor `json:"next_cursor,omitempty"`
	Offset     int     `json:"offset"`
	Limit      int     `json:"limit"`
}

// NewResultPage вычисляет курсор следующей страницы.
// Если общее количество неизвестно, следующая страница есть только у полной страницы.
// Страница за пределами выборки возвращается пустой и без курсора.
func NewResultPage[T any](items []T, count *int, paging Paging) ResultPage[T] {
	page := ResultPage[T]{
		Items:      items,
		TotalCount: count,
		Offset:     paging.Offset,
		Limit:      paging.Limit,
	}
	if page.Items == nil {
		page.Items = []T{}
	}

	next := paging.Offset + paging.Limit
	switch {
	case count != nil && paging.Offset >= *count:
		page.Items = []T{}
	case count != nil:
		if next < *count {
			page.NextCursor = &Cursor{Offset: next}
		}
	case paging.Limit > 0 && len(items) >= paging.Limit:
		page.NextCursor = &Cursor{Offset: next}
	}
	return page
}

// HasMore - есть ли следующая страница
func (p ResultPage[T]) HasMore() bool {
	return p.NextCursor != nil
}
