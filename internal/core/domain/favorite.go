package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteItem представляет собой одну запись о добавлении исполнителя в избранное.
type FavoriteItem struct {
	UserID     uuid.UUID
	VendorID   uuid.UUID
	VendorType VendorType
	CreatedAt  time.Time
}

// PaginatedFavorites - ответ репозитория с пагинацией
type PaginatedFavorites struct {
	Items        []FavoriteItem
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

// FavoriteCard - избранное, обогащенное карточкой исполнителя.
// Vendor равен nil, если исполнитель больше не публикуется.
type FavoriteCard struct {
	FavoriteItem
	Vendor *VendorRecord
}

type PaginatedFavoriteCards struct {
	Items        []FavoriteCard
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

// FavoriteChange - событие об изменении избранного
type FavoriteChange struct {
	UserID     uuid.UUID
	VendorID   uuid.UUID
	VendorType VendorType
	IsFavorite bool
	ChangedAt  time.Time
}
