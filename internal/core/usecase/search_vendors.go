package usecase

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"fmt"
)

// SearchVendorsUseCase - поиск без состояния: одна страница по фильтрам из query-строки
type SearchVendorsUseCase struct {
	fetcher *discovery.PageFetcher
}

func NewSearchVendorsUseCase(fetcher *discovery.PageFetcher) *SearchVendorsUseCase {
	return &SearchVendorsUseCase{fetcher: fetcher}
}

func (uc *SearchVendorsUseCase) Execute(ctx context.Context, vendorType domain.VendorType, criteria domain.FilterCriteria, cursor string) (domain.ResultPage[domain.VendorRecord], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SearchVendors",
		"vendor_type": vendorType,
		"query_key":   criteria.Key(vendorType).String(),
	})

	ucLogger.Info("Use case started", nil)

	paging := criteria.Paging()
	if cursor != "" {
		c, err := domain.ParseCursor(cursor)
		if err != nil {
			ucLogger.Warn("Invalid cursor", port.Fields{"cursor": cursor})
			return domain.ResultPage[domain.VendorRecord]{}, err
		}
		paging.Offset = c.Offset
	}

	page, err := uc.fetcher.Fetch(ctx, vendorType, criteria, paging)
	if err != nil {
		ucLogger.Error("Failed to fetch page", err, nil)
		return domain.ResultPage[domain.VendorRecord]{}, fmt.Errorf("search %s: %w", vendorType, err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"items": len(page.Items), "has_more": page.HasMore()})
	return page, nil
}
