package services

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
	"h2grid/internal/utils"
	"h2grid/internal/validation"
)

type ListingStore interface {
	Create(ctx context.Context, listing *models.Listing) error
	List(ctx context.Context) ([]models.Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Listing, error)
	Analytics(ctx context.Context) (*models.MarketplaceAnalytics, error)
}

type CreateListingRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Quantity      int      `json:"quantity" binding:"omitempty,gte=1"`
	SellerEmail   string   `json:"seller_email" binding:"required,email"`
	SellerContact string   `json:"seller_contact" binding:"required"`
	SellerName    string   `json:"seller_name" binding:"required"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
}

// UpdateListingRequest is a partial update; nil fields are left alone.
type UpdateListingRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1"`
	Description   *string   `json:"description" binding:"omitempty,min=1"`
	Category      *string   `json:"category" binding:"omitempty,min=1"`
	Price         *float64  `json:"price" binding:"omitempty,gt=0"`
	Quantity      *int      `json:"quantity" binding:"omitempty,gte=1"`
	SellerEmail   *string   `json:"seller_email" binding:"omitempty,email"`
	SellerContact *string   `json:"seller_contact" binding:"omitempty,min=1"`
	SellerName    *string   `json:"seller_name" binding:"omitempty,min=1"`
	Images        *[]string `json:"images"`
	Tags          *[]string `json:"tags"`
}

func (r UpdateListingRequest) changes() map[string]any {
	out := map[string]any{}
	if r.Title != nil {
		out["title"] = *r.Title
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Category != nil {
		out["category"] = *r.Category
	}
	if r.Price != nil {
		out["price"] = *r.Price
	}
	if r.Quantity != nil {
		out["quantity"] = *r.Quantity
	}
	if r.SellerEmail != nil {
		out["seller_email"] = models.NormalizeEmail(*r.SellerEmail)
	}
	if r.SellerContact != nil {
		out["seller_contact"] = *r.SellerContact
	}
	if r.SellerName != nil {
		out["seller_name"] = *r.SellerName
	}
	if r.Images != nil {
		out["images"] = jsonList(*r.Images)
	}
	if r.Tags != nil {
		out["tags"] = jsonList(*r.Tags)
	}
	return out
}

type MarketplaceService struct {
	store    ListingStore
	validate *validator.Validate
}

func NewMarketplaceService(store ListingStore) *MarketplaceService {
	return &MarketplaceService{store: store, validate: validation.New()}
}

func (s *MarketplaceService) Create(ctx context.Context, req CreateListingRequest) (*models.Listing, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.Describe(err)
	}

	listing := &models.Listing{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Quantity:      req.Quantity,
		SellerEmail:   models.NormalizeEmail(req.SellerEmail),
		SellerContact: req.SellerContact,
		SellerName:    req.SellerName,
		Images:        req.Images,
		Tags:          req.Tags,
	}
	if err := s.store.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *MarketplaceService) List(ctx context.Context) ([]models.Listing, error) {
	return s.store.List(ctx)
}

func (s *MarketplaceService) Get(ctx context.Context, rawID string) (*models.Listing, error) {
	id, err := utils.ParseID(rawID, "marketplace item")
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

func (s *MarketplaceService) Update(ctx context.Context, rawID string, req UpdateListingRequest) (*models.Listing, error) {
	id, err := utils.ParseID(rawID, "marketplace item")
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.Describe(err)
	}

	changes := req.changes()
	if len(changes) == 0 {
		return nil, apperr.Validation("No update data provided")
	}
	return s.store.Update(ctx, id, changes)
}

func (s *MarketplaceService) Analytics(ctx context.Context) (*models.MarketplaceAnalytics, error) {
	return s.store.Analytics(ctx)
}

// jsonList writes a jsonb column from an update map.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		l = jsonList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
