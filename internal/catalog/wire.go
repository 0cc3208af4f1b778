//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	httpDelivery "github.com/belledame/storefront/internal/catalog/delivery/http"
	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/usecase/command"
	"github.com/belledame/storefront/internal/catalog/usecase/query"
)

// Command handler providers
func ProvideUpsertProductHandler(repo domain.ProductRepository) *command.UpsertProductHandler {
	return command.NewUpsertProductHandler(repo)
}

func ProvideSeedCatalogHandler(repo domain.ProductRepository) *command.SeedCatalogHandler {
	return command.NewSeedCatalogHandler(repo)
}

func ProvidePatchProductHandler(repo domain.ProductRepository) *command.PatchProductHandler {
	return command.NewPatchProductHandler(repo)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo)
}

// Query handler providers
func ProvideListPublicHandler(repo domain.ProductRepository) *query.ListPublicHandler {
	return query.NewListPublicHandler(repo)
}

func ProvideListAdminHandler(repo domain.ProductRepository) *query.ListAdminHandler {
	return query.NewListAdminHandler(repo)
}

var CommandHandlerSet = wire.NewSet(
	ProvideUpsertProductHandler,
	ProvideSeedCatalogHandler,
	ProvidePatchProductHandler,
	ProvideDeleteProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListPublicHandler,
	ProvideListAdminHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all
// dependencies. The repository backend is chosen by the caller.
func InitializeHTTPHandler(reg prometheus.Registerer, repo domain.ProductRepository) (*httpDelivery.CatalogHandler, error) {
	wire.Build(
		CommandHandlerSet,
		QueryHandlerSet,
		httpDelivery.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
