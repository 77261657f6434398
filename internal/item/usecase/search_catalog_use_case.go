package usecase

import (
	"context"

	"palantir/internal/dto"
	"palantir/internal/egis"

	"go.uber.org/zap"
)

type CatalogSearcher interface {
	Search(ctx context.Context, term string, opts *egis.SearchOptions, startRow int) (*egis.SearchResult, error)
}

type ItemRepository interface {
	Exists(ctx context.Context, code string) (bool, error)
}

type SearchCatalogUseCase struct {
	catalog  CatalogSearcher
	itemRepo ItemRepository
	logger   *zap.Logger
}

func NewSearchCatalogUseCase(catalog CatalogSearcher, itemRepo ItemRepository, logger *zap.Logger) *SearchCatalogUseCase {
	return &SearchCatalogUseCase{
		catalog:  catalog,
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// Search runs a catalog search and flags each returned item that already
// exists in the local item store, so callers can offer update over create.
func (uc *SearchCatalogUseCase) Search(ctx context.Context, req dto.SearchRequest) (*egis.SearchResult, error) {
	result, err := uc.catalog.Search(ctx, req.SearchTerm, req.SearchOptions, req.StartRow)
	if err != nil {
		return nil, err
	}

	for i := range result.Items {
		code := result.Items[i].ProductNumber()
		if code == "" {
			continue
		}
		exists, err := uc.itemRepo.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		result.Items[i].ExistsLocally = exists
	}

	uc.logger.Info("catalog search completed",
		zap.String("searchTerm", req.SearchTerm),
		zap.Int("itemCount", len(result.Items)))

	return result, nil
}
