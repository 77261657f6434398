package item

import (
	"database/sql"

	"palantir/internal/config"
	"palantir/internal/egis"
	"palantir/internal/item/controller"
	"palantir/internal/item/repository"
	"palantir/internal/item/service"
	"palantir/internal/item/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, client *egis.Client, cfg config.EGISConfig, logger *zap.Logger) *controller.CatalogController {
	itemRepo := repository.NewMySQLItemRepository(db)
	brandRepo := repository.NewMySQLBrandRepository(db)
	groupRepo := repository.NewMySQLItemGroupRepository(db)
	priceRepo := repository.NewMySQLItemPriceRepository(db)

	importSvc := service.NewImportService(itemRepo, brandRepo, groupRepo, priceRepo, cfg, logger)

	searchUC := usecase.NewSearchCatalogUseCase(client, itemRepo, logger)
	importUC := usecase.NewImportItemsUseCase(importSvc, logger)
	infoUC := usecase.NewProductInfoUseCase(client, logger)

	return controller.NewCatalogController(searchUC, importUC, infoUC, logger)
}
