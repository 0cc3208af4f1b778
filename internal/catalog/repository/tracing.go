package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/belledame/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingRepository decorates any ProductRepository with OpenTelemetry
// spans. It satisfies the same interface, so the backends stay unaware
// of tracing.
type TracingRepository struct {
	inner domain.ProductRepository
}

func NewTracingRepository(inner domain.ProductRepository) *TracingRepository {
	return &TracingRepository{inner: inner}
}

func (r *TracingRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products, err := r.inner.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.Bool("product.active", product.Active),
	)
	return product, nil
}

func (r *TracingRepository) Save(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(
			attribute.String("product.id", product.ID),
			attribute.String("product.brand", product.Brand),
			attribute.Int("product.price", product.Price),
		),
	)
	defer span.End()

	if err := r.inner.Save(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.SaveAll",
		trace.WithAttributes(attribute.Int("batch.size", len(products))),
	)
	defer span.End()

	if err := r.inner.SaveAll(ctx, products); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.inner.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
