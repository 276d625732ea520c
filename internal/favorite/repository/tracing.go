package repository

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "postgresql"))...),
	)
}

// finishSpan records err on the span. Not found and conflict are expected outcomes, not faults.
func finishSpan(span trace.Span, err error) {
	defer span.End()
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		span.SetAttributes(attribute.Bool("result.found", false))
	case errors.Is(err, domain.ErrConflict):
		span.SetAttributes(attribute.Bool("result.duplicate", true))
	default:
		addDBErrorToSpan(span, err)
	}
}

func addDBErrorToSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, fmt.Sprintf("database error: %v", err))
}

func userAttr(id uint) attribute.KeyValue     { return attribute.Int64("user.id", int64(id)) }
func propertyAttr(id uint) attribute.KeyValue { return attribute.Int64("property.id", int64(id)) }
func favoriteAttr(id uint) attribute.KeyValue { return attribute.Int64("favorite.id", int64(id)) }

// TracingFavoriteRepository wraps a favorite repository with tracing
type TracingFavoriteRepository struct {
	next domain.FavoriteRepository
}

// NewTracingFavoriteRepository creates a new repository with tracing
func NewTracingFavoriteRepository(next domain.FavoriteRepository) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{next: next}
}

func (r *TracingFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) (err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.Create", userAttr(favorite.UserID), propertyAttr(favorite.PropertyID))
	defer func() { finishSpan(span, err) }()

	if err = r.next.Create(ctx, favorite); err == nil {
		span.SetAttributes(favoriteAttr(favorite.ID))
	}
	return err
}

func (r *TracingFavoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) (err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.Update", favoriteAttr(favorite.ID))
	defer func() { finishSpan(span, err) }()
	return r.next.Update(ctx, favorite)
}

func (r *TracingFavoriteRepository) FindByID(ctx context.Context, id uint) (_ *domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindByID", favoriteAttr(id))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

func (r *TracingFavoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID uint) (_ *domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindByUserAndProperty", userAttr(userID), propertyAttr(propertyID))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByUserAndProperty(ctx, userID, propertyID)
}

func (r *TracingFavoriteRepository) ExistsByID(ctx context.Context, id uint) (_ bool, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.ExistsByID", favoriteAttr(id))
	defer func() { finishSpan(span, err) }()
	return r.next.ExistsByID(ctx, id)
}

func (r *TracingFavoriteRepository) ExistsByUserAndProperty(ctx context.Context, userID, propertyID uint) (_ bool, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.ExistsByUserAndProperty", userAttr(userID), propertyAttr(propertyID))
	defer func() { finishSpan(span, err) }()
	return r.next.ExistsByUserAndProperty(ctx, userID, propertyID)
}

func (r *TracingFavoriteRepository) FindByUserID(ctx context.Context, userID uint) (favorites []domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindByUserID", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	favorites, err = r.next.FindByUserID(ctx, userID)
	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, err
}

func (r *TracingFavoriteRepository) FindPageByUserID(ctx context.Context, userID uint, req domain.PageRequest) (favorites []domain.Favorite, total int64, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindPageByUserID",
		userAttr(userID),
		attribute.Int("query.page", req.Page),
		attribute.Int("query.size", req.Size),
		attribute.String("query.sort_by", req.SortBy),
		attribute.String("query.direction", string(req.Direction)),
	)
	defer func() { finishSpan(span, err) }()

	favorites, total, err = r.next.FindPageByUserID(ctx, userID, req)
	span.SetAttributes(
		attribute.Int("result.count", len(favorites)),
		attribute.Int64("result.total", total),
	)
	return favorites, total, err
}

func (r *TracingFavoriteRepository) FindByPropertyID(ctx context.Context, propertyID uint) (favorites []domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindByPropertyID", propertyAttr(propertyID))
	defer func() { finishSpan(span, err) }()

	favorites, err = r.next.FindByPropertyID(ctx, propertyID)
	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, err
}

func (r *TracingFavoriteRepository) FindPropertiesByUserID(ctx context.Context, userID uint) (properties []domain.Property, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.FindPropertiesByUserID", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	properties, err = r.next.FindPropertiesByUserID(ctx, userID)
	span.SetAttributes(attribute.Int("result.count", len(properties)))
	return properties, err
}

func (r *TracingFavoriteRepository) CountByPropertyID(ctx context.Context, propertyID uint) (count int64, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.CountByPropertyID", propertyAttr(propertyID))
	defer func() { finishSpan(span, err) }()

	count, err = r.next.CountByPropertyID(ctx, propertyID)
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, err
}

func (r *TracingFavoriteRepository) Delete(ctx context.Context, favorite *domain.Favorite) (err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.Delete", favoriteAttr(favorite.ID))
	defer func() { finishSpan(span, err) }()
	return r.next.Delete(ctx, favorite)
}

func (r *TracingFavoriteRepository) DeleteByID(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.DeleteByID", favoriteAttr(id))
	defer func() { finishSpan(span, err) }()
	return r.next.DeleteByID(ctx, id)
}

func (r *TracingFavoriteRepository) DeleteByUserID(ctx context.Context, userID uint) (deleted []domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.DeleteByUserID", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	deleted, err = r.next.DeleteByUserID(ctx, userID)
	span.SetAttributes(attribute.Int("result.deleted", len(deleted)))
	return deleted, err
}

func (r *TracingFavoriteRepository) DeleteByPropertyID(ctx context.Context, propertyID uint) (deleted int64, err error) {
	ctx, span := startSpan(ctx, "repository.Favorite.DeleteByPropertyID", propertyAttr(propertyID))
	defer func() { finishSpan(span, err) }()

	deleted, err = r.next.DeleteByPropertyID(ctx, propertyID)
	span.SetAttributes(attribute.Int64("result.deleted", deleted))
	return deleted, err
}

// TracingUserRepository wraps a user lookup with tracing
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a new user repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (_ *domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.User.FindByID", userAttr(id))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

// TracingPropertyRepository wraps a property lookup with tracing
type TracingPropertyRepository struct {
	next domain.PropertyRepository
}

// NewTracingPropertyRepository creates a new property repository with tracing
func NewTracingPropertyRepository(next domain.PropertyRepository) *TracingPropertyRepository {
	return &TracingPropertyRepository{next: next}
}

func (r *TracingPropertyRepository) FindByID(ctx context.Context, id uint) (_ *domain.Property, err error) {
	ctx, span := startSpan(ctx, "repository.Property.FindByID", propertyAttr(id))
	defer func() { finishSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}
