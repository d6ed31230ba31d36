package port

import (
	"context"
	"discovery-service/internal/core/domain"
)

// PageCachePort - кеш страниц результатов по (тип, ключ запроса, окно)
type PageCachePort interface {
	// Get возвращает false без ошибки при промахе
	Get(ctx context.Context, key domain.QueryKey, paging domain.Paging) (*domain.ResultPage[domain.VendorRecord], bool, error)
	Set(ctx context.Context, key domain.QueryKey, paging domain.Paging, page domain.ResultPage[domain.VendorRecord]) error
}
