package models

import "mime/multipart"

type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:255;not null;index"`
	SKU          string         `json:"sku" gorm:"column:sku;size:100;not null;uniqueIndex"`
	Gender       string         `json:"gender" gorm:"size:50;index:idx_products_gender_category"`
	Category     string         `json:"category" gorm:"size:100;index:idx_products_gender_category"`
	Color        string         `json:"color" gorm:"size:100"`
	Description  string         `json:"description" gorm:"type:text"`
	PricingTiers []PricingTier  `json:"pricing_tiers" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images       []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews      []Review       `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type PricingTier struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ProductID   uint    `json:"product_id" gorm:"not null;index"`
	MinQuantity int     `json:"min_quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
}

type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	ImageURL  string `json:"image_url" gorm:"size:512;not null"`
	Color     string `json:"color" gorm:"size:100"`
}

// ProductForm is the multipart body of POST /products/.
// The list fields are comma separated and parsed by the controller.
type ProductForm struct {
	Title         string                  `form:"title" binding:"required"`
	SKU           string                  `form:"sku" binding:"required"`
	Gender        string                  `form:"gender" binding:"required"`
	Category      string                  `form:"category" binding:"required"`
	Color         string                  `form:"color" binding:"required"`
	Description   string                  `form:"description"`
	MinQuantities string                  `form:"min_quantities" binding:"required"`
	Prices        string                  `form:"prices" binding:"required"`
	ImageColors   string                  `form:"image_colors"`
	Images        []*multipart.FileHeader `form:"images"`
}

type ProductFilter struct {
	Gender   string `form:"gender"`
	Category string `form:"category"`
}
