package postgres_adapter

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFavoritesRepository - реализация порта для PostgreSQL.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func (r *PostgresFavoritesRepository) Exists(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND vendor_id = $2 AND vendor_type = $3)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, vendorID, string(vendorType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Add добавляет запись в user_favorites. Повторное добавление не ошибка.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Add",
		"user_id":     userID,
		"vendor_id":   vendorID,
		"vendor_type": vendorType,
	})

	query := `INSERT INTO user_favorites (user_id, vendor_id, vendor_type) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, userID, vendorID, string(vendorType))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			repoLogger.Debug("Favorite already exists", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites", nil)
	return nil
}

// Remove возвращает false, если удалять было нечего
func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Remove",
		"user_id":     userID,
		"vendor_id":   vendorID,
		"vendor_type": vendorType,
	})

	query := `DELETE FROM user_favorites WHERE user_id = $1 AND vendor_id = $2 AND vendor_type = $3`
	cmdTag, err := r.pool.Exec(ctx, query, userID, vendorID, string(vendorType))
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Attempted to remove a favorite that did not exist", nil)
		return false, nil
	}
	return true, nil
}

// FindPaginatedByUser - избранное пользователя, новые первыми
func (r *PostgresFavoritesRepository) FindPaginatedByUser(ctx context.Context, userID uuid.UUID, vendorType domain.VendorType, limit, offset int) (*domain.PaginatedFavorites, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "FindPaginatedByUser",
		"user_id":     userID,
		"vendor_type": vendorType,
		"limit":       limit,
		"offset":      offset,
	})
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	where := "WHERE user_id = $1"
	args := []interface{}{userID}
	if vendorType != "" {
		where += " AND vendor_type = $2"
		args = append(args, string(vendorType))
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result := &domain.PaginatedFavorites{
		Items:        []domain.FavoriteItem{},
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}

	countQuery := "SELECT COUNT(*) FROM user_favorites " + where
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&result.TotalCount); err != nil {
		repoLogger.Error("Failed to count favorites", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	if result.TotalCount == 0 {
		return result, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT user_id, vendor_id, vendor_type, created_at FROM user_favorites %s ORDER BY created_at DESC, vendor_id ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to query favorites", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.FavoriteItem
		var itemType string
		if err := rows.Scan(&item.UserID, &item.VendorID, &itemType, &item.CreatedAt); err != nil {
			repoLogger.Error("Failed to scan favorite row", err, nil)
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		item.VendorType = domain.VendorType(itemType)
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorites iteration", err, nil)
		return nil, fmt.Errorf("error during favorites iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully found paginated favorites", port.Fields{"found_on_page": len(result.Items)})
	return result, nil
}
