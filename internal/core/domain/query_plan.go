package domain

import (
	"strings"
	"unicode/utf8"
)

// MinFullTextQueryLength - с этой длины (в символах) текст уходит в полнотекстовый поиск.
// Более короткий текст не фильтрует вовсе, работают только структурные фильтры.
const MinFullTextQueryLength = 3

// QueryPlan - стратегия запроса к каталогу: FullTextQuery или StructuredQuery
type QueryPlan interface {
	isQueryPlan()
}

type FullTextQuery struct {
	Text string
}

type StructuredQuery struct {
	Filters StructuredFilters
}

func (FullTextQuery) isQueryPlan()   {}
func (StructuredQuery) isQueryPlan() {}

// PlanQuery выбирает режим запроса по текущим фильтрам
func PlanQuery(c FilterCriteria) QueryPlan {
	text := strings.TrimSpace(c.SearchQuery)
	if utf8.RuneCountInString(text) >= MinFullTextQueryLength {
		return FullTextQuery{Text: text}
	}
	return StructuredQuery{Filters: c.StructuredFilters()}
}
