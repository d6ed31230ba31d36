package usecases_port

import (
	"context"
	"discovery-service/internal/core/domain"
)

type GetFilterOptionsUseCasePort interface {
	Execute(ctx context.Context, vendorType domain.VendorType, criteria domain.FilterCriteria) (*domain.FilterOptionsResult, error)
}

type GetDictionariesUseCasePort interface {
	Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error)
}
