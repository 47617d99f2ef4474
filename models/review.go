package models

import "time"

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text"`
	UserName  string    `json:"user_name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"size:255"`
	Verified  bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

type ReviewRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Text     string `json:"text" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}
