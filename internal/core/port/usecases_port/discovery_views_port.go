package usecases_port

import (
	"context"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"

	"github.com/google/uuid"
)

type OpenViewUseCasePort interface {
	Execute(ctx context.Context, vendorType domain.VendorType, rawQuery string) (discovery.ViewState, error)
}

type GetViewUseCasePort interface {
	Execute(ctx context.Context, viewID uuid.UUID) (discovery.ViewState, error)
}

type ApplyViewFiltersUseCasePort interface {
	Execute(ctx context.Context, viewID uuid.UUID, mutations []discovery.Mutation) (discovery.ViewState, error)
}

type LoadMoreViewUseCasePort interface {
	Execute(ctx context.Context, viewID uuid.UUID) (discovery.ViewState, error)
}

type GetViewPageUseCasePort interface {
	Execute(ctx context.Context, viewID uuid.UUID) (domain.ResultPage[domain.VendorRecord], error)
}

type CloseViewUseCasePort interface {
	Execute(ctx context.Context, viewID uuid.UUID) error
}
