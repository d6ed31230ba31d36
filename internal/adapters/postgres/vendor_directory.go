package postgres_adapter

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresVendorDirectory - каталог исполнителей поверх таблицы vendors
type PostgresVendorDirectory struct {
	pool *pgxpool.Pool
}

func NewPostgresVendorDirectory(pool *pgxpool.Pool) (*PostgresVendorDirectory, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresVendorDirectory{pool: pool}, nil
}

// Search - полнотекстовый поиск, структурные фильтры не применяются
func (a *PostgresVendorDirectory) Search(ctx context.Context, vendorType domain.VendorType, text string, paging domain.Paging) (*domain.VendorPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresVendorDirectory",
		"method":      "Search",
		"vendor_type": vendorType,
		"limit":       paging.Limit,
		"offset":      paging.Offset,
	})

	qb, order := applyTextSearch(vendorType, text)
	return a.findPage(ctx, repoLogger, qb, order, paging)
}

// List - выборка по структурным фильтрам
func (a *PostgresVendorDirectory) List(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters, paging domain.Paging) (*domain.VendorPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresVendorDirectory",
		"method":      "List",
		"vendor_type": vendorType,
		"sort":        filters.SortBy,
		"limit":       paging.Limit,
		"offset":      paging.Offset,
	})

	area, err := lookupArea(ctx, a.pool, filters.CityID, filters.RadiusKm)
	if err != nil {
		repoLogger.Error("Failed to resolve location filter", err, nil)
		return nil, err
	}

	qb := applyStructuredFilters(vendorType, filters, area)
	return a.findPage(ctx, repoLogger, qb, orderClause(filters.SortBy), paging)
}

// findPage выполняет COUNT и выборку страницы в одной транзакции
func (a *PostgresVendorDirectory) findPage(ctx context.Context, repoLogger port.LoggerPort, qb *queryBuilder, order string, paging domain.Paging) (*domain.VendorPage, error) {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	where := qb.where()
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vendors v %s", where)
	var totalCount int
	if err := tx.QueryRow(ctx, countQuery, qb.args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count vendors", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count vendors: %w", err)
	}

	if totalCount == 0 || paging.Offset >= totalCount {
		repoLogger.Debug("Nothing to fetch for the requested window", port.Fields{"total_count": totalCount})
		return &domain.VendorPage{Data: []domain.VendorRecord{}, Count: &totalCount}, nil
	}

	window, args := qb.limitOffset(paging)
	dataQuery := fmt.Sprintf("SELECT %s %s %s %s %s", vendorColumns, vendorFrom, where, order, window)

	rows, err := tx.Query(ctx, dataQuery, args...)
	if err != nil {
		repoLogger.Error("Failed to query vendors", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	records, err := scanVendors(rows, paging.Limit)
	if err != nil {
		repoLogger.Error("Failed to read vendor rows", err, nil)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Vendors page fetched", port.Fields{"total_count": totalCount, "count": len(records)})
	return &domain.VendorPage{Data: records, Count: &totalCount}, nil
}

// FindByIDs возвращает опубликованных исполнителей, порядок не гарантирован
func (a *PostgresVendorDirectory) FindByIDs(ctx context.Context, vendorType domain.VendorType, ids []uuid.UUID) ([]domain.VendorRecord, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresVendorDirectory",
		"method":      "FindByIDs",
		"vendor_type": vendorType,
		"id_count":    len(ids),
	})

	if len(ids) == 0 {
		return []domain.VendorRecord{}, nil
	}

	qb := newQueryBuilder(vendorType)
	qb.addCondition("%s = ANY($%d)", "v.id", ids)
	query := fmt.Sprintf("SELECT %s %s %s", vendorColumns, vendorFrom, qb.where())

	rows, err := a.pool.Query(ctx, query, qb.args...)
	if err != nil {
		repoLogger.Error("Failed to query vendors by ids", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query vendors by ids: %w", err)
	}
	records, err := scanVendors(rows, len(ids))
	if err != nil {
		repoLogger.Error("Failed to read vendor rows", err, nil)
		return nil, err
	}
	return records, nil
}

func scanVendors(rows pgx.Rows, capacity int) ([]domain.VendorRecord, error) {
	defer rows.Close()

	records := make([]domain.VendorRecord, 0, capacity)
	for rows.Next() {
		var rec domain.VendorRecord
		var vendorType string
		if err := rows.Scan(
			&rec.ID, &vendorType, &rec.Name, &rec.Description, &rec.CityID, &rec.CityName,
			&rec.CategoryIDs, &rec.VenueType, &rec.AmenityIDs, &rec.PriceMin, &rec.PriceMax, &rec.Rating,
			&rec.ImageURL, &rec.Geohash, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		rec.VendorType = domain.VendorType(vendorType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during vendor rows iteration: %w", err)
	}
	return records, nil
}
