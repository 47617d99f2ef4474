package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-service/middlewares"
	"storefront-service/models"
	"storefront-service/storage"
	"storefront-service/utils"
)

type BlogController struct {
	DB      *gorm.DB
	Storage *storage.Local
}

func NewBlogController(db *gorm.DB, store *storage.Local) *BlogController {
	return &BlogController{DB: db, Storage: store}
}

func (bc *BlogController) CreateCategory(c *gin.Context) {
	defer middlewares.TrackOperation(c, "blog_categories", "create")

	var request models.BlogCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.BlogCategory{Name: strings.TrimSpace(request.Name)}
	if category.Name == "" {
		handleError(c, badRequest("Category name must not be blank"), "Category")
		return
	}

	err := bc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var existing models.BlogCategory
		err := tx.Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			return badRequest("Category already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		handleError(c, err, "Category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (bc *BlogController) GetCategories(c *gin.Context) {
	defer middlewares.TrackOperation(c, "blog_categories", "list")

	categories := []models.BlogCategory{}
	if err := bc.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&categories).Error; err != nil {
		handleError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// resolveCategory returns the category called name, creating it when absent.
// The insert ignores a concurrent create of the same name.
func resolveCategory(tx *gorm.DB, name string) (models.BlogCategory, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlogCategory{Name: name}).Error; err != nil {
		return models.BlogCategory{}, err
	}

	var category models.BlogCategory
	err := tx.Where("name = ?", name).First(&category).Error
	return category, err
}

func (bc *BlogController) CreatePost(c *gin.Context) {
	defer middlewares.TrackOperation(c, "blog_posts", "create")

	var form models.BlogPostForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryName := strings.TrimSpace(form.Category)
	if categoryName == "" || strings.TrimSpace(form.Title) == "" {
		handleError(c, badRequest("Title and category must not be blank"), "Post")
		return
	}

	excerpt := form.Excerpt
	if excerpt == "" {
		excerpt = form.Description
	}

	post := models.BlogPost{
		Title:     strings.TrimSpace(form.Title),
		Excerpt:   excerpt,
		Author:    form.Author,
		Content:   form.Content,
		Tags:      strings.Join(utils.SplitCSV(form.Tags), ","),
		Published: form.Publish,
	}

	err := bc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		category, err := resolveCategory(tx, categoryName)
		if err != nil {
			return err
		}
		post.CategoryID = category.ID
		post.Category = category

		url, err := bc.Storage.Save(form.Image, "blog")
		if err != nil {
			return err
		}
		post.ImageURL = url

		return tx.Omit(clause.Associations).Create(&post).Error
	})
	if err != nil {
		handleError(c, err, "Post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (bc *BlogController) GetPosts(c *gin.Context) {
	defer middlewares.TrackOperation(c, "blog_posts", "list")

	posts := []models.BlogPost{}
	err := bc.DB.WithContext(c.Request.Context()).
		Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		handleError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// DeletePost removes a post; its category is kept.
func (bc *BlogController) DeletePost(c *gin.Context) {
	defer middlewares.TrackOperation(c, "blog_posts", "delete")

	id, ok := parseID(c, "post")
	if !ok {
		return
	}

	result := bc.DB.WithContext(c.Request.Context()).Delete(&models.BlogPost{}, id)
	if result.Error != nil {
		handleError(c, result.Error, "Post")
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, gorm.ErrRecordNotFound, "Post")
		return
	}

	c.Status(http.StatusNoContent)
}
