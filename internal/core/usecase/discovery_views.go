package usecase

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Сценарии экранов поиска. Устаревший результат не считается ошибкой:
// клиент получает актуальное состояние экрана.

type OpenViewUseCase struct {
	registry *discovery.Registry
}

func NewOpenViewUseCase(registry *discovery.Registry) *OpenViewUseCase {
	return &OpenViewUseCase{registry: registry}
}

func (uc *OpenViewUseCase) Execute(ctx context.Context, vendorType domain.VendorType, rawQuery string) (discovery.ViewState, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "OpenView",
		"vendor_type": vendorType,
	})

	ucLogger.Info("Use case started", nil)

	view, err := uc.registry.Open(vendorType)
	if err != nil {
		ucLogger.Error("Failed to open view", err, nil)
		return discovery.ViewState{}, err
	}
	if err := view.Mount(rawQuery); err != nil {
		return discovery.ViewState{}, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"view_id": view.ID()})
	_, err = view.Results(ctx)
	if err = settle(err); err != nil {
		ucLogger.Error("First page failed", err, nil)
		return view.State(), err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"location": view.Location()})
	return view.State(), nil
}

type GetViewUseCase struct {
	registry *discovery.Registry
}

func NewGetViewUseCase(registry *discovery.Registry) *GetViewUseCase {
	return &GetViewUseCase{registry: registry}
}

func (uc *GetViewUseCase) Execute(ctx context.Context, viewID uuid.UUID) (discovery.ViewState, error) {
	view, err := uc.registry.Get(viewID)
	if err != nil {
		return discovery.ViewState{}, err
	}
	return view.State(), nil
}

type ApplyViewFiltersUseCase struct {
	registry *discovery.Registry
}

func NewApplyViewFiltersUseCase(registry *discovery.Registry) *ApplyViewFiltersUseCase {
	return &ApplyViewFiltersUseCase{registry: registry}
}

func (uc *ApplyViewFiltersUseCase) Execute(ctx context.Context, viewID uuid.UUID, mutations []discovery.Mutation) (discovery.ViewState, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ApplyViewFilters",
		"view_id":   viewID,
		"mutations": len(mutations),
	})

	ucLogger.Info("Use case started", nil)

	view, err := uc.registry.Get(viewID)
	if err != nil {
		return discovery.ViewState{}, err
	}

	// Мутации до ошибочной остаются примененными, как и при последовательном вводе
	if err := view.Store().ApplyAll(mutations); err != nil {
		ucLogger.Warn("Rejected mutation", port.Fields{"error": err.Error()})
		return view.State(), err
	}

	_, err = view.Results(ctx)
	if err = settle(err); err != nil {
		ucLogger.Error("Failed to refresh results", err, nil)
		return view.State(), err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"location": view.Location()})
	return view.State(), nil
}

type LoadMoreViewUseCase struct {
	registry *discovery.Registry
}

func NewLoadMoreViewUseCase(registry *discovery.Registry) *LoadMoreViewUseCase {
	return &LoadMoreViewUseCase{registry: registry}
}

func (uc *LoadMoreViewUseCase) Execute(ctx context.Context, viewID uuid.UUID) (discovery.ViewState, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoadMoreView",
		"view_id":  viewID,
	})

	view, err := uc.registry.Get(viewID)
	if err != nil {
		return discovery.ViewState{}, err
	}

	snap, err := view.LoadMore(ctx)
	if err = settle(err); err != nil {
		ucLogger.Error("Failed to load more", err, nil)
		return view.State(), err
	}

	ucLogger.Debug("Loaded more", port.Fields{"items": len(snap.Items), "has_more": snap.NextCursor != nil})
	return view.State(), nil
}

type GetViewPageUseCase struct {
	registry *discovery.Registry
}

func NewGetViewPageUseCase(registry *discovery.Registry) *GetViewPageUseCase {
	return &GetViewPageUseCase{registry: registry}
}

func (uc *GetViewPageUseCase) Execute(ctx context.Context, viewID uuid.UUID) (domain.ResultPage[domain.VendorRecord], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetViewPage",
		"view_id":  viewID,
	})

	view, err := uc.registry.Get(viewID)
	if err != nil {
		return domain.ResultPage[domain.VendorRecord]{}, err
	}

	page, err := view.Page(ctx)
	if err != nil {
		if !errors.Is(err, discovery.ErrSuperseded) {
			ucLogger.Error("Failed to fetch page", err, nil)
		}
		return domain.ResultPage[domain.VendorRecord]{}, err
	}
	return page, nil
}

type CloseViewUseCase struct {
	registry *discovery.Registry
}

func NewCloseViewUseCase(registry *discovery.Registry) *CloseViewUseCase {
	return &CloseViewUseCase{registry: registry}
}

func (uc *CloseViewUseCase) Execute(ctx context.Context, viewID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if err := uc.registry.Close(viewID); err != nil {
		return fmt.Errorf("close view %s: %w", viewID, err)
	}
	logger.Info("Discovery view closed", port.Fields{"use_case": "CloseView", "view_id": viewID})
	return nil
}

// settle превращает ErrSuperseded в успех: состояние экрана уже отражает новые фильтры
func settle(err error) error {
	if errors.Is(err, discovery.ErrSuperseded) {
		return nil
	}
	return err
}
