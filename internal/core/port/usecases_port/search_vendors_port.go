package usecases_port

import (
	"context"
	"discovery-service/internal/core/domain"
)

type SearchVendorsUseCasePort interface {
	// cursor может быть пустым, тогда смещение берется из criteria.Page
	Execute(ctx context.Context, vendorType domain.VendorType, criteria domain.FilterCriteria, cursor string) (domain.ResultPage[domain.VendorRecord], error)
}
