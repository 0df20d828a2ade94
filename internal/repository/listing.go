// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"datawalt/internal/cache"
	"datawalt/internal/models"
	"datawalt/internal/observability"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested listing does not exist.
var ErrNotFound = errors.New("record not found")

const listingsTable = "anuncios"

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	List(ctx context.Context) ([]*models.Listing, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Listing, error)
	Delete(ctx context.Context, id uint) error
}

// listingRepository implements ListingRepository
type listingRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{
		db:      db,
		log:     observability.NewRepoLogger(listingsTable),
		metrics: observability.NewDatabaseMetrics(listingsTable),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) (err error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Create", listingsTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, err) }()
	defer r.metrics.TrackQuery("create")()

	// id and createdAt are always assigned by the store.
	listing.ID = 0
	listing.CreatedAt = time.Time{}

	if err = r.db.WithContext(ctx).Create(listing).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	cache.InvalidateListingsList(ctx)
	r.log.LogCreate(ctx, listing.ID, slog.String("categoria", listing.Categoria))
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (_ *models.Listing, err error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "GetByID", listingsTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, ignoreNotFound(err)) }()

	var listing models.Listing
	err = cache.Aside(ctx, cache.ListingKey(id), &listing, cache.ListingTTL, func() error {
		defer r.metrics.TrackQuery("get")()
		return r.db.WithContext(ctx).First(&listing, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context) (_ []*models.Listing, err error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "List", listingsTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, err) }()

	listings := []*models.Listing{}
	err = cache.Aside(ctx, cache.ListingsListKey, &listings, cache.ListTTL, func() error {
		defer r.metrics.TrackQuery("list")()
		return r.db.WithContext(ctx).
			Order("created_at DESC").
			Order("id DESC").
			Find(&listings).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, err
	}
	return listings, nil
}

// Update overwrites only the columns present in changes. id and created_at are
// never written.
func (r *listingRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (_ *models.Listing, err error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Update", listingsTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, ignoreNotFound(err)) }()

	cols := make(map[string]interface{}, len(changes))
	for k, v := range changes {
		if k == "id" || k == "created_at" {
			continue
		}
		cols[k] = v
	}

	if len(cols) > 0 {
		done := r.metrics.TrackQuery("update")
		result := r.db.WithContext(ctx).
			Model(&models.Listing{}).
			Where("id = ?", id).
			Updates(cols)
		done()
		if result.Error != nil {
			r.log.LogError(ctx, result.Error, "update")
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
		cache.InvalidateListing(ctx, id)
		r.log.LogUpdate(ctx, id, slog.Int("fields", len(cols)))
	}

	var listing models.Listing
	if err = r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Delete", listingsTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, ignoreNotFound(err)) }()
	defer r.metrics.TrackQuery("delete")()

	result := r.db.WithContext(ctx).Delete(&models.Listing{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.InvalidateListing(ctx, id)
	r.log.LogDelete(ctx, id)
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
