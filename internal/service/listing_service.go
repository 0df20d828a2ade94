// Package service holds the listing use cases shared by the JSON API and the
// server-rendered pages.
package service

import (
	"context"
	"errors"

	"datawalt/internal/browse"
	"datawalt/internal/middleware"
	"datawalt/internal/models"
	"datawalt/internal/repository"
)

const listingResource = "Anuncio"

type ListingService struct {
	repo repository.ListingRepository
}

type CreateListingInput struct {
	Titulo      string
	Descripcion string
	Precio      models.PriceInput
	Categoria   string
	Contacto    string
	Image       string
	Autor       string
	Ubicacion   string
}

// UpdateListingInput carries a partial update: nil fields and an absent
// Precio are left untouched.
type UpdateListingInput struct {
	ID          uint
	Titulo      *string
	Descripcion *string
	Precio      models.PriceInput
	Categoria   *string
	Contacto    *string
	Image       *string
	Autor       *string
	Ubicacion   *string
	Favorito    *bool
}

func NewListingService(repo repository.ListingRepository) *ListingService {
	return &ListingService{repo: repo}
}

func (s *ListingService) CreateListing(ctx context.Context, in CreateListingInput) (listing *models.Listing, err error) {
	defer func() { middleware.RecordListingOperation("create", err) }()

	listing = &models.Listing{
		Titulo:      in.Titulo,
		Descripcion: in.Descripcion,
		Precio:      in.Precio.Value(),
		Categoria:   in.Categoria,
		Contacto:    in.Contacto,
		Image:       in.Image,
		Autor:       in.Autor,
		Ubicacion:   in.Ubicacion,
	}
	if err = s.repo.Create(ctx, listing); err != nil {
		return nil, models.NewInternalError("Error al crear el anuncio", err)
	}
	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Error al cargar el anuncio")
	}
	return listing, nil
}

// ListListings returns every listing newest first, narrowed by the browse
// criteria when any are set.
func (s *ListingService) ListListings(ctx context.Context, criteria browse.Criteria) ([]*models.Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError("Error al cargar los anuncios", err)
	}
	if criteria.IsZero() {
		return listings, nil
	}
	return browse.Filter(listings, criteria), nil
}

func (s *ListingService) UpdateListing(ctx context.Context, in UpdateListingInput) (listing *models.Listing, err error) {
	defer func() { middleware.RecordListingOperation("update", err) }()

	listing, err = s.repo.Update(ctx, in.ID, in.changes())
	if err != nil {
		return nil, mapStoreError(err, "Error al actualizar el anuncio")
	}
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id uint) (err error) {
	defer func() { middleware.RecordListingOperation("delete", err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(err, "Error al eliminar el anuncio")
	}
	return nil
}

// ToggleFavorite flips the stored favorito flag of one listing.
func (s *ListingService) ToggleFavorite(ctx context.Context, id uint) (*models.Listing, error) {
	current, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	fav := !current.Favorito
	return s.UpdateListing(ctx, UpdateListingInput{ID: id, Favorito: &fav})
}

func (in UpdateListingInput) changes() map[string]interface{} {
	changes := make(map[string]interface{})
	setString := func(column string, v *string) {
		if v != nil {
			changes[column] = *v
		}
	}
	setString("titulo", in.Titulo)
	setString("descripcion", in.Descripcion)
	setString("categoria", in.Categoria)
	setString("contacto", in.Contacto)
	setString("image", in.Image)
	setString("autor", in.Autor)
	setString("ubicacion", in.Ubicacion)
	if in.Precio.Present {
		changes["precio"] = in.Precio.Value()
	}
	if in.Favorito != nil {
		changes["favorito"] = *in.Favorito
	}
	return changes
}

func mapStoreError(err error, internalMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(listingResource)
	}
	return models.NewInternalError(internalMessage, err)
}
