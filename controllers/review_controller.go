package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-service/middlewares"
	"storefront-service/models"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

func productExists(db *gorm.DB, id uint) error {
	var product models.Product
	return db.Select("id").First(&product, id).Error
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	defer middlewares.TrackOperation(c, "reviews", "create")

	productID, ok := parseID(c, "product")
	if !ok {
		return
	}

	var request models.ReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := rc.DB.WithContext(c.Request.Context())
	if err := productExists(db, productID); err != nil {
		handleError(c, err, "Product")
		return
	}

	review := models.Review{
		ProductID: productID,
		Rating:    request.Rating,
		Text:      request.Text,
		UserName:  request.UserName,
		Email:     request.Email,
		Verified:  true,
	}
	if err := db.Create(&review).Error; err != nil {
		handleError(c, err, "Review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (rc *ReviewController) GetReviews(c *gin.Context) {
	defer middlewares.TrackOperation(c, "reviews", "list")

	productID, ok := parseID(c, "product")
	if !ok {
		return
	}

	db := rc.DB.WithContext(c.Request.Context())
	if err := productExists(db, productID); err != nil {
		handleError(c, err, "Product")
		return
	}

	reviews := []models.Review{}
	err := db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		handleError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
