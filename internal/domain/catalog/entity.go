// internal/domain/catalog/entity.go
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Group categorizes products. Ordering is an explicit persisted index so
// reorders commit per affected row, not by array position.
type Group struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;index" json:"owner_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Product represents a sellable item with nested customization options.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OwnerID     uint            `gorm:"not null;index" json:"owner_id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	GroupID     *uint           `gorm:"index" json:"group_id"`
	Stock       int             `gorm:"default:0" json:"stock"`
	IsFeatured  bool            `gorm:"default:false" json:"is_featured"`
	OrderIndex  int             `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Group   *Group   `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Options []Option `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`
}

// Option is a named customization slot constraining how many of its
// sub-products may be picked.
type Option struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	MinSelection int       `gorm:"not null;default:0" json:"min_selection"`
	MaxSelection int       `gorm:"not null;default:1" json:"max_selection"`
	AllowRepeat  bool      `gorm:"default:false" json:"allow_repeat"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	OrderIndex   int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	SubProducts []SubProduct `gorm:"foreignKey:OptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sub_products,omitempty"`
}

// SubProduct is a selectable item within an option, with an additive price.
// Inactive sub-products stay in storage for re-activation but are never
// offered as candidates.
type SubProduct struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OptionID    uint            `gorm:"not null;index" json:"option_id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"size:500" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	OrderIndex  int             `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides
func (Group) TableName() string      { return "groups" }
func (Product) TableName() string    { return "products" }
func (Option) TableName() string     { return "product_options" }
func (SubProduct) TableName() string { return "sub_products" }

// Validate checks the option's selection constraints.
func (o *Option) Validate() error {
	if o.MinSelection < 0 {
		return fmt.Errorf("min_selection must be >= 0")
	}
	if o.MaxSelection < 1 {
		return fmt.Errorf("max_selection must be >= 1")
	}
	if o.MinSelection > o.MaxSelection {
		return fmt.Errorf("min_selection (%d) cannot exceed max_selection (%d)", o.MinSelection, o.MaxSelection)
	}
	return nil
}

// ActiveSubProducts returns the customer-selectable candidates.
func (o *Option) ActiveSubProducts() []SubProduct {
	active := make([]SubProduct, 0, len(o.SubProducts))
	for _, sp := range o.SubProducts {
		if sp.IsActive {
			active = append(active, sp)
		}
	}
	return active
}

// IsSingleChoice reports whether the option behaves as a radio set.
func (o *Option) IsSingleChoice() bool {
	return o.MaxSelection == 1 && !o.AllowRepeat
}

// SubProductByID looks up a sub-product within the option.
func (o *Option) SubProductByID(id uint) (*SubProduct, bool) {
	for i := range o.SubProducts {
		if o.SubProducts[i].ID == id {
			return &o.SubProducts[i], true
		}
	}
	return nil, false
}

// IntegrityWarning flags a data-integrity condition the catalog UI must
// surface. Non-fatal: it never blocks other operations.
type IntegrityWarning struct {
	ProductID uint   `json:"product_id"`
	OptionID  uint   `json:"option_id"`
	Message   string `json:"message"`
}

// IntegrityWarnings reports options that make the product unorderable:
// a required option (min_selection > 0) with no active sub-products cannot
// be satisfied by any customer selection.
func (p *Product) IntegrityWarnings() []IntegrityWarning {
	var warnings []IntegrityWarning
	for _, opt := range p.Options {
		if !opt.IsActive {
			continue
		}
		if opt.MinSelection > 0 && len(opt.ActiveSubProducts()) == 0 {
			warnings = append(warnings, IntegrityWarning{
				ProductID: p.ID,
				OptionID:  opt.ID,
				Message: fmt.Sprintf("option %q requires %d selection(s) but has no active sub-products",
					opt.Title, opt.MinSelection),
			})
		}
	}
	return warnings
}

// IsOrderable reports whether every required option can be satisfied.
func (p *Product) IsOrderable() bool {
	return len(p.IntegrityWarnings()) == 0
}

// HasOptions reports whether any active option with active candidates exists,
// which decides between the quick-add and the customization paths.
func (p *Product) HasOptions() bool {
	for _, opt := range p.Options {
		if opt.IsActive && len(opt.ActiveSubProducts()) > 0 {
			return true
		}
	}
	return false
}
