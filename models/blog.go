package models

import (
	"mime/multipart"
	"time"
)

type BlogCategory struct {
	ID    uint       `json:"id" gorm:"primaryKey"`
	Name  string     `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Posts []BlogPost `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

type BlogPost struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	Title      string       `json:"title" gorm:"size:255;not null"`
	Excerpt    string       `json:"excerpt" gorm:"type:text"`
	Author     string       `json:"author" gorm:"size:255"`
	Content    string       `json:"content" gorm:"type:text"`
	ImageURL   string       `json:"image_url" gorm:"size:512"`
	Tags       string       `json:"tags" gorm:"size:512"`
	Published  bool         `json:"published"`
	CategoryID uint         `json:"category_id" gorm:"not null;index"`
	Category   BlogCategory `json:"category" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime;<-:create;index"`
}

type BlogCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// BlogPostForm is the multipart body of POST /blog/posts/.
// Description is accepted as an alias of Excerpt.
type BlogPostForm struct {
	Title       string                `form:"title" binding:"required"`
	Excerpt     string                `form:"excerpt"`
	Description string                `form:"description"`
	Content     string                `form:"content" binding:"required"`
	Category    string                `form:"category" binding:"required"`
	Author      string                `form:"author" binding:"required"`
	Tags        string                `form:"tags"`
	Publish     bool                  `form:"publish"`
	Image       *multipart.FileHeader `form:"image" binding:"required"`
}
