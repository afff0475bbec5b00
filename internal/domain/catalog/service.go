// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/debounce"
	"gorm.io/gorm"
)

// Service handles catalog business logic for the merchant dashboard.
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger

	// One debounced saver per owner+collection so rapid reorder drags
	// collapse into a single batched commit.
	saversMu sync.Mutex
	savers   map[string]*debounce.Saver
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
		savers: make(map[string]*debounce.Saver),
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	GroupID     *uint           `json:"group_id"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"is_featured"`
}

// UpdateProductRequest carries a typed partial update; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	GroupID     *uint            `json:"group_id"`
	ClearGroup  bool             `json:"clear_group"`
	Stock       *int             `json:"stock"`
	IsFeatured  *bool            `json:"is_featured"`
}

// CreateOptionRequest represents option creation data
type CreateOptionRequest struct {
	Title        string `json:"title" binding:"required"`
	MinSelection int    `json:"min_selection"`
	MaxSelection int    `json:"max_selection" binding:"required,min=1"`
	AllowRepeat  bool   `json:"allow_repeat"`
}

// UpdateOptionRequest carries a typed partial update for an option.
type UpdateOptionRequest struct {
	Title        *string `json:"title"`
	MinSelection *int    `json:"min_selection"`
	MaxSelection *int    `json:"max_selection"`
	AllowRepeat  *bool   `json:"allow_repeat"`
	IsActive     *bool   `json:"is_active"`
}

// CreateSubProductRequest represents sub-product creation data
type CreateSubProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateSubProductRequest carries a typed partial update for a sub-product.
type UpdateSubProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

// GetProducts retrieves the owner's full catalog, options and sub-products
// included, in persisted display order.
func (s *Service) GetProducts(ownerID uint) ([]Product, error) {
	var products []Product
	err := s.db.
		Preload("Group").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Options.SubProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("order_index ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product owned by the merchant.
func (s *Service) GetProduct(ownerID, productID uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Group").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Options.SubProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("id = ? AND owner_id = ?", productID, ownerID).
		First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// CreateProduct creates a new product at the end of the owner's catalog.
func (s *Service) CreateProduct(ownerID uint, req *CreateProductRequest) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be >= 0")
	}
	if req.GroupID != nil {
		if err := s.ensureGroupOwned(ownerID, *req.GroupID); err != nil {
			return nil, err
		}
	}

	var maxIndex int
	s.db.Model(&Product{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)

	product := Product{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		GroupID:     req.GroupID,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		OrderIndex:  maxIndex + 1,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies a partial update to an owned product.
func (s *Service) UpdateProduct(ownerID, productID uint, req *UpdateProductRequest) (*Product, error) {
	product, err := s.GetProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must be >= 0")
		}
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ClearGroup {
		updates["group_id"] = nil
	} else if req.GroupID != nil {
		if err := s.ensureGroupOwned(ownerID, *req.GroupID); err != nil {
			return nil, err
		}
		updates["group_id"] = *req.GroupID
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) == 0 {
		return product, nil
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.GetProduct(ownerID, productID)
}

// DeleteProduct removes a product and its nested options and sub-products.
func (s *Service) DeleteProduct(ownerID, productID uint) error {
	product, err := s.GetProduct(ownerID, productID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_id IN (?)",
			tx.Model(&Option{}).Select("id").Where("product_id = ?", product.ID),
		).Delete(&SubProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete sub-products: %w", err)
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&Option{}).Error; err != nil {
			return fmt.Errorf("failed to delete options: %w", err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// Group operations

// GetGroups retrieves the owner's groups in display order.
func (s *Service) GetGroups(ownerID uint) ([]Group, error) {
	var groups []Group
	err := s.db.Where("owner_id = ?", ownerID).Order("order_index ASC").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve groups: %w", err)
	}
	return groups, nil
}

// CreateGroup creates a new group at the end of the list.
func (s *Service) CreateGroup(ownerID uint, name string) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}

	var maxIndex int
	s.db.Model(&Group{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)

	group := Group{OwnerID: ownerID, Name: name, OrderIndex: maxIndex + 1}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// UpdateGroup renames a group.
func (s *Service) UpdateGroup(ownerID, groupID uint, name string) (*Group, error) {
	var group Group
	if err := s.db.Where("id = ? AND owner_id = ?", groupID, ownerID).First(&group).Error; err != nil {
		return nil, fmt.Errorf("group not found")
	}
	if err := s.db.Model(&group).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return &group, nil
}

// DeleteGroup removes a group. Products referencing it become group-less;
// they are never deleted with the group.
func (s *Service) DeleteGroup(ownerID, groupID uint) error {
	if err := s.ensureGroupOwned(ownerID, groupID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Product{}).
			Where("owner_id = ? AND group_id = ?", ownerID, groupID).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("failed to orphan group products: %w", err)
		}
		if err := tx.Where("id = ? AND owner_id = ?", groupID, ownerID).Delete(&Group{}).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
}

// ReorderGroups records the new group ordering and commits it after the
// configured quiescence window. The write updates each affected row's
// explicit order_index; the in-memory ordering is treated as current the
// whole time.
func (s *Service) ReorderGroups(ownerID uint, orderedIDs []uint) {
	s.saver(fmt.Sprintf("groups:%d", ownerID)).Schedule(func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for idx, id := range orderedIDs {
				if err := tx.Model(&Group{}).
					Where("id = ? AND owner_id = ?", id, ownerID).
					Update("order_index", idx).Error; err != nil {
					return fmt.Errorf("failed to reorder group %d: %w", id, err)
				}
			}
			return nil
		})
	})
}

// ReorderProducts records the new product ordering, debounced like groups.
func (s *Service) ReorderProducts(ownerID uint, orderedIDs []uint) {
	s.saver(fmt.Sprintf("products:%d", ownerID)).Schedule(func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for idx, id := range orderedIDs {
				if err := tx.Model(&Product{}).
					Where("id = ? AND owner_id = ?", id, ownerID).
					Update("order_index", idx).Error; err != nil {
					return fmt.Errorf("failed to reorder product %d: %w", id, err)
				}
			}
			return nil
		})
	})
}

// FlushPendingSaves forces all debounced writes through, used on shutdown
// and logout so the persisted state catches up with memory.
func (s *Service) FlushPendingSaves() {
	s.saversMu.Lock()
	savers := make([]*debounce.Saver, 0, len(s.savers))
	for _, sv := range s.savers {
		savers = append(savers, sv)
	}
	s.saversMu.Unlock()

	for _, sv := range savers {
		sv.Flush()
	}
}

// Option operations

// AddOption appends a customization option to an owned product.
func (s *Service) AddOption(ownerID, productID uint, req *CreateOptionRequest) (*Option, error) {
	product, err := s.GetProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}

	option := Option{
		ProductID:    product.ID,
		Title:        req.Title,
		MinSelection: req.MinSelection,
		MaxSelection: req.MaxSelection,
		AllowRepeat:  req.AllowRepeat,
		IsActive:     true,
		OrderIndex:   len(product.Options),
	}
	if err := option.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(&option).Error; err != nil {
		return nil, fmt.Errorf("failed to create option: %w", err)
	}
	return &option, nil
}

// UpdateOption applies a partial update, re-validating selection bounds.
func (s *Service) UpdateOption(ownerID, optionID uint, req *UpdateOptionRequest) (*Option, error) {
	option, err := s.getOwnedOption(ownerID, optionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		option.Title = *req.Title
	}
	if req.MinSelection != nil {
		option.MinSelection = *req.MinSelection
	}
	if req.MaxSelection != nil {
		option.MaxSelection = *req.MaxSelection
	}
	if req.AllowRepeat != nil {
		option.AllowRepeat = *req.AllowRepeat
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if err := option.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(option).Error; err != nil {
		return nil, fmt.Errorf("failed to update option: %w", err)
	}
	return option, nil
}

// DeleteOption removes an option and its sub-products.
func (s *Service) DeleteOption(ownerID, optionID uint) error {
	option, err := s.getOwnedOption(ownerID, optionID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_id = ?", option.ID).Delete(&SubProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete sub-products: %w", err)
		}
		if err := tx.Delete(option).Error; err != nil {
			return fmt.Errorf("failed to delete option: %w", err)
		}
		return nil
	})
}

// Sub-product operations

// AddSubProduct appends a selectable item to an option.
func (s *Service) AddSubProduct(ownerID, optionID uint, req *CreateSubProductRequest) (*SubProduct, error) {
	option, err := s.getOwnedOption(ownerID, optionID)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be >= 0")
	}

	var count int64
	s.db.Model(&SubProduct{}).Where("option_id = ?", option.ID).Count(&count)

	sub := SubProduct{
		OptionID:    option.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
		OrderIndex:  int(count),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create sub-product: %w", err)
	}
	return &sub, nil
}

// UpdateSubProduct applies a partial update. Deactivation hides the
// sub-product from customers without touching stored selections on
// historical orders.
func (s *Service) UpdateSubProduct(ownerID, subProductID uint, req *UpdateSubProductRequest) (*SubProduct, error) {
	sub, err := s.getOwnedSubProduct(ownerID, subProductID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must be >= 0")
		}
		sub.Price = *req.Price
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	if err := s.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to update sub-product: %w", err)
	}
	return sub, nil
}

// DeleteSubProduct removes a sub-product permanently. Prefer deactivation.
func (s *Service) DeleteSubProduct(ownerID, subProductID uint) error {
	sub, err := s.getOwnedSubProduct(ownerID, subProductID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(sub).Error; err != nil {
		return fmt.Errorf("failed to delete sub-product: %w", err)
	}
	return nil
}

// IntegrityWarnings scans the owner's catalog for products made unorderable
// by their own configuration.
func (s *Service) IntegrityWarnings(ownerID uint) ([]IntegrityWarning, error) {
	products, err := s.GetProducts(ownerID)
	if err != nil {
		return nil, err
	}

	var warnings []IntegrityWarning
	for i := range products {
		warnings = append(warnings, products[i].IntegrityWarnings()...)
	}
	return warnings, nil
}

// Private helper methods

func (s *Service) saver(key string) *debounce.Saver {
	s.saversMu.Lock()
	defer s.saversMu.Unlock()

	if sv, ok := s.savers[key]; ok {
		return sv
	}
	sv := debounce.NewSaver(s.config.Store.SaveDebounce, func(seq uint64, err error) {
		s.logger.WithFields(logrus.Fields{
			"collection": key,
			"save_seq":   seq,
		}).WithError(err).Error("Debounced catalog save failed; local state retained")
	})
	s.savers[key] = sv
	return sv
}

func (s *Service) ensureGroupOwned(ownerID, groupID uint) error {
	var count int64
	s.db.Model(&Group{}).Where("id = ? AND owner_id = ?", groupID, ownerID).Count(&count)
	if count == 0 {
		return fmt.Errorf("group not found")
	}
	return nil
}

func (s *Service) getOwnedOption(ownerID, optionID uint) (*Option, error) {
	var option Option
	err := s.db.
		Preload("SubProducts").
		Joins("JOIN products ON products.id = product_options.product_id").
		Where("product_options.id = ? AND products.owner_id = ?", optionID, ownerID).
		First(&option).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("option not found")
		}
		return nil, fmt.Errorf("failed to retrieve option: %w", err)
	}
	return &option, nil
}

func (s *Service) getOwnedSubProduct(ownerID, subProductID uint) (*SubProduct, error) {
	var sub SubProduct
	err := s.db.
		Joins("JOIN product_options ON product_options.id = sub_products.option_id").
		Joins("JOIN products ON products.id = product_options.product_id").
		Where("sub_products.id = ? AND products.owner_id = ?", subProductID, ownerID).
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sub-product not found")
		}
		return nil, fmt.Errorf("failed to retrieve sub-product: %w", err)
	}
	return &sub, nil
}
