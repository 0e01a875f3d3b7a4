package service

import (
	"context"
	"time"

	"docchat-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

const modelCacheKey = "available_models"

// ModelLister enumerates generation-capable model names.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// StaticModelLister serves a fixed list for providers that cannot
// enumerate their models.
type StaticModelLister struct {
	Models []string
}

func (s StaticModelLister) ListModels(ctx context.Context) ([]string, error) {
	return s.Models, nil
}

type IModelCatalogService interface {
	AvailableModels(ctx context.Context) (*dto.ModelListResponse, error)
}

// modelCatalogService caches the model list so the UI dropdown does not
// hit the model server on every page load.
type modelCatalogService struct {
	lister ModelLister
	cache  *cache.Cache
}

func NewModelCatalogService(lister ModelLister) IModelCatalogService {
	return &modelCatalogService{
		lister: lister,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (ms *modelCatalogService) AvailableModels(ctx context.Context) (*dto.ModelListResponse, error) {
	if x, found := ms.cache.Get(modelCacheKey); found {
		return &dto.ModelListResponse{Models: x.([]string)}, nil
	}
	models, err := ms.lister.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	ms.cache.Set(modelCacheKey, models, cache.DefaultExpiration)
	return &dto.ModelListResponse{Models: models}, nil
}
