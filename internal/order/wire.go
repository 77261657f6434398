package order

import (
	"database/sql"

	"palantir/internal/egis"
	"palantir/internal/infrastructure/auth"
	itemrepository "palantir/internal/item/repository"
	"palantir/internal/order/controller"
	"palantir/internal/order/repository"
	"palantir/internal/order/service"
	"palantir/internal/order/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, client *egis.Client, authz *auth.Auth, logger *zap.Logger) *controller.RefreshController {
	orderRepo := repository.NewMySQLSalesOrderRepository(db)
	itemRepo := itemrepository.NewMySQLItemRepository(db)

	refreshSvc := service.NewRefreshService(db, orderRepo, itemRepo, client, logger)

	refreshUC := usecase.NewRefreshPricesUseCase(authz, refreshSvc, logger)

	return controller.NewRefreshController(refreshUC, logger)
}
