package usecase

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// favoriteNotifier публикует событие об изменении избранного.
// Ошибка публикации только логируется и не влияет на результат операции.
type favoriteNotifier struct {
	events port.FavoriteEventsPort
}

func (n favoriteNotifier) notify(ctx context.Context, logger port.LoggerPort, userID, vendorID uuid.UUID, vendorType domain.VendorType, isFavorite bool) {
	if n.events == nil {
		return
	}
	change := domain.FavoriteChange{
		UserID:     userID,
		VendorID:   vendorID,
		VendorType: vendorType,
		IsFavorite: isFavorite,
		ChangedAt:  time.Now().UTC(),
	}
	if err := n.events.PublishFavoriteChanged(context.WithoutCancel(ctx), change); err != nil {
		logger.Warn("Failed to publish favorite change", port.Fields{"error": err.Error()})
	}
}

type CheckFavoriteUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewCheckFavoriteUseCase(repo port.FavoritesRepositoryPort) *CheckFavoriteUseCase {
	return &CheckFavoriteUseCase{repo: repo}
}

func (uc *CheckFavoriteUseCase) Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	exists, err := uc.repo.Exists(ctx, userID, vendorID, vendorType)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

type AddToFavoritesUseCase struct {
	repo      port.FavoritesRepositoryPort
	directory port.VendorDirectoryPort
	notifier  favoriteNotifier
}

// NewAddToFavoritesUseCase - directory и events могут быть nil
func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort, directory port.VendorDirectoryPort, events port.FavoriteEventsPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo, directory: directory, notifier: favoriteNotifier{events: events}}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"user_id":     userID,
		"vendor_id":   vendorID,
		"vendor_type": vendorType,
	})

	ucLogger.Info("Use case started", nil)

	if uc.directory != nil {
		found, err := uc.directory.FindByIDs(ctx, vendorType, []uuid.UUID{vendorID})
		if err != nil {
			ucLogger.Error("Failed to look up vendor", err, nil)
			return fmt.Errorf("failed to look up vendor: %w", err)
		}
		if len(found) == 0 {
			ucLogger.Warn("Vendor not found", nil)
			return fmt.Errorf("%s %s: %w", vendorType, vendorID, domain.ErrNotFound)
		}
	}

	if err := uc.repo.Add(ctx, userID, vendorID, vendorType); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	uc.notifier.notify(ctx, ucLogger, userID, vendorID, vendorType, true)
	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type RemoveFromFavoritesUseCase struct {
	repo     port.FavoritesRepositoryPort
	notifier favoriteNotifier
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort, events port.FavoriteEventsPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo, notifier: favoriteNotifier{events: events}}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"user_id":     userID,
		"vendor_id":   vendorID,
		"vendor_type": vendorType,
	})

	ucLogger.Info("Use case started", nil)

	removed, err := uc.repo.Remove(ctx, userID, vendorID, vendorType)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}
	if removed {
		uc.notifier.notify(ctx, ucLogger, userID, vendorID, vendorType, false)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"removed": removed})
	return nil
}

type ToggleFavoriteUseCase struct {
	repo   port.FavoritesRepositoryPort
	add    *AddToFavoritesUseCase
	remove *RemoveFromFavoritesUseCase
}

func NewToggleFavoriteUseCase(repo port.FavoritesRepositoryPort, add *AddToFavoritesUseCase, remove *RemoveFromFavoritesUseCase) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{repo: repo, add: add, remove: remove}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	exists, err := uc.repo.Exists(ctx, userID, vendorID, vendorType)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if exists {
		if err := uc.remove.Execute(ctx, userID, vendorID, vendorType); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := uc.add.Execute(ctx, userID, vendorID, vendorType); err != nil {
		return false, err
	}
	return true, nil
}

type GetUserFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	directory     port.VendorDirectoryPort
}

func NewGetUserFavoritesUseCase(favoritesRepo port.FavoritesRepositoryPort, directory port.VendorDirectoryPort) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{favoritesRepo: favoritesRepo, directory: directory}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, vendorType domain.VendorType, limit, offset int) (*domain.PaginatedFavoriteCards, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetUserFavorites",
		"user_id":     userID,
		"vendor_type": vendorType,
		"limit":       limit,
		"offset":      offset,
	})

	ucLogger.Info("Use case started", nil)

	limit = domain.ClampPageSize(limit)
	if offset < 0 {
		offset = 0
	}

	favorites, err := uc.favoritesRepo.FindPaginatedByUser(ctx, userID, vendorType, limit, offset)
	if err != nil {
		ucLogger.Error("Failed to get favorites from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	result := &domain.PaginatedFavoriteCards{
		Items:        make([]domain.FavoriteCard, 0, len(favorites.Items)),
		TotalCount:   favorites.TotalCount,
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}
	if len(favorites.Items) == 0 {
		ucLogger.Info("No favorites on page", port.Fields{"total_count": favorites.TotalCount})
		return result, nil
	}

	// Каталог не гарантирует порядок, порядок задает список избранного
	idsByType := make(map[domain.VendorType][]uuid.UUID)
	for _, item := range favorites.Items {
		idsByType[item.VendorType] = append(idsByType[item.VendorType], item.VendorID)
	}
	vendors := make(map[uuid.UUID]domain.VendorRecord, len(favorites.Items))
	for vt, ids := range idsByType {
		records, err := uc.directory.FindByIDs(ctx, vt, ids)
		if err != nil {
			ucLogger.Error("Failed to get vendor cards", err, port.Fields{"batch_vendor_type": vt})
			return nil, fmt.Errorf("failed to get vendor cards: %w", err)
		}
		for _, r := range records {
			vendors[r.ID] = r
		}
	}

	for _, item := range favorites.Items {
		card := domain.FavoriteCard{FavoriteItem: item}
		if vendor, ok := vendors[item.VendorID]; ok {
			card.Vendor = &vendor
		}
		result.Items = append(result.Items, card)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"items": len(result.Items)})
	return result, nil
}
