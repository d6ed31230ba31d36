package port

import (
	"context"
	"discovery-service/internal/core/domain"
)

// FavoriteEventsPort публикует изменения избранного для внешних подписчиков
type FavoriteEventsPort interface {
	PublishFavoriteChanged(ctx context.Context, change domain.FavoriteChange) error
}
