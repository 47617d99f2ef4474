package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"storefront-service/database"
	"storefront-service/middlewares"
	"storefront-service/models"
	"storefront-service/storage"
	"storefront-service/utils"
)

const defaultSearchLimit = 50

var errDuplicateSKU = badRequest("Product with this SKU already exists")

type ProductController struct {
	DB      *gorm.DB
	Storage *storage.Local
}

func NewProductController(db *gorm.DB, store *storage.Local) *ProductController {
	return &ProductController{DB: db, Storage: store}
}

func (pc *ProductController) withDetails(ctx context.Context) *gorm.DB {
	return pc.DB.WithContext(ctx).
		Preload("PricingTiers", func(db *gorm.DB) *gorm.DB { return db.Order("min_quantity ASC, id ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// parsePricingTiers pairs the comma separated quantity and price lists.
func parsePricingTiers(minQuantities, prices string) ([]models.PricingTier, error) {
	quantities, err := utils.ParseIntList(minQuantities)
	if err != nil {
		return nil, unprocessable("min_quantities: %v", err)
	}
	amounts, err := utils.ParseFloatList(prices)
	if err != nil {
		return nil, unprocessable("prices: %v", err)
	}
	if len(quantities) != len(amounts) {
		return nil, badRequest("min_quantities and prices must have the same length (%d != %d)", len(quantities), len(amounts))
	}
	if len(quantities) == 0 {
		return nil, badRequest("At least one pricing tier is required")
	}

	tiers := make([]models.PricingTier, 0, len(quantities))
	for i := range quantities {
		if quantities[i] < 1 || amounts[i] < 0 {
			return nil, badRequest("Invalid pricing tier %d: %d @ %g", i+1, quantities[i], amounts[i])
		}
		tiers = append(tiers, models.PricingTier{MinQuantity: quantities[i], Price: amounts[i]})
	}
	return tiers, nil
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "create")

	var form models.ProductForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, sku := strings.TrimSpace(form.Title), strings.TrimSpace(form.SKU)
	if title == "" || sku == "" {
		handleError(c, badRequest("Title and SKU must not be blank"), "Product")
		return
	}

	tiers, err := parsePricingTiers(form.MinQuantities, form.Prices)
	if err != nil {
		handleError(c, err, "Product")
		return
	}

	imageColors := utils.SplitCSV(form.ImageColors)
	if len(imageColors) != len(form.Images) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Number of image colors must match number of images",
		})
		return
	}

	product := models.Product{
		Title:        title,
		SKU:          sku,
		Gender:       form.Gender,
		Category:     form.Category,
		Color:        form.Color,
		Description:  form.Description,
		PricingTiers: tiers,
		Images:       []models.ProductImage{},
	}

	err = pc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("sku = ?", product.SKU).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errDuplicateSKU
		}

		if err := tx.Omit("Images", "Reviews").Create(&product).Error; err != nil {
			return err
		}

		// Files written before a failed insert are left behind.
		for i, file := range form.Images {
			url, err := pc.Storage.Save(file, product.SKU, imageColors[i])
			if err != nil {
				return err
			}
			image := models.ProductImage{ProductID: product.ID, ImageURL: url, Color: imageColors[i]}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			product.Images = append(product.Images, image)
		}
		return nil
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			err = errDuplicateSKU
		}
		handleError(c, err, "Product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "list")

	products := []models.Product{}
	if err := pc.withDetails(c.Request.Context()).Order("id ASC").Find(&products).Error; err != nil {
		handleError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "read")

	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var product models.Product
	if err := pc.withDetails(c.Request.Context()).First(&product, id).Error; err != nil {
		handleError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) FilterProducts(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "filter")

	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := pc.withDetails(c.Request.Context())
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	products := []models.Product{}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		handleError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchProducts matches a case-insensitive title substring. Wildcards in the
// search term are matched literally.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "search")

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	// Both sides go through the database's LOWER so folding matches on every dialect.
	pattern := "%" + utils.EscapeLike(c.Param("name")) + "%"

	products := []models.Product{}
	err := pc.withDetails(c.Request.Context()).
		Where("LOWER(title) LIKE LOWER(?) ESCAPE '"+utils.LikeEscape+"'", pattern).
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		handleError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, products)
}

// DeleteProduct removes the product with its pricing tiers, images and reviews.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	defer middlewares.TrackOperation(c, "products", "delete")

	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	err := pc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		for _, child := range []any{&models.PricingTier{}, &models.ProductImage{}, &models.Review{}} {
			if err := tx.Where("product_id = ?", product.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		handleError(c, err, "Product")
		return
	}

	c.Status(http.StatusNoContent)
}
