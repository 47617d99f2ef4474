package models

import (
	"time"
)

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	ProductSKU     string      `json:"productSku" gorm:"column:product_sku;size:100"`
	ProductTitle   string      `json:"productTitle" gorm:"size:255"`
	TotalQuantity  int         `json:"totalQuantity"`
	UnitPriceTier  float64     `json:"unitPriceTier"`
	GrandTotal     float64     `json:"grandTotal"`
	EmailOrPhone   string      `json:"emailOrPhone" gorm:"size:255;not null;index"`
	Name           string      `json:"name" gorm:"size:255"`
	Address        string      `json:"address" gorm:"size:512"`
	City           string      `json:"city" gorm:"size:100"`
	Country        string      `json:"country" gorm:"size:100"`
	PostalCode     string      `json:"postalCode" gorm:"size:20"`
	Phone          string      `json:"phone" gorm:"size:50"`
	ShippingMethod string      `json:"shippingMethod" gorm:"size:100"`
	Status         string      `json:"status" gorm:"size:20;not null;default:'Pending';index"`
	CreatedAt      time.Time   `json:"createdAt" gorm:"autoCreateTime;<-:create;index"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   uint   `json:"orderId" gorm:"not null;index"`
	ColorID   string `json:"colorId" gorm:"size:100"`
	ColorName string `json:"colorName" gorm:"size:100"`
	Size      string `json:"size" gorm:"size:20"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

type CartItem struct {
	ColorID  string `json:"colorId" binding:"required"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type OrderDetails struct {
	ProductSKU    string     `json:"productSku" binding:"required"`
	ProductTitle  string     `json:"productTitle" binding:"required"`
	Cart          []CartItem `json:"cart" binding:"required,min=1,dive"`
	TotalQuantity int        `json:"totalQuantity" binding:"gte=0"`
	Subtotal      float64    `json:"subtotal" binding:"gte=0"`
	UnitPrice     float64    `json:"unitPrice" binding:"gte=0"`
}

type CustomerDetails struct {
	EmailOrPhone   string `json:"emailOrPhone" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	PostalCode     string `json:"postalCode"`
	Phone          string `json:"phone"`
	ShippingMethod string `json:"shippingMethod"`
}

// OrderSubmission is the combined cart + customer payload of POST /orders/submit/.
type OrderSubmission struct {
	Order      OrderDetails      `json:"order" binding:"required"`
	ColorNames map[string]string `json:"colorNames"`
	Customer   CustomerDetails   `json:"customer" binding:"required"`
}

type OrderResponse struct {
	Order
	Invoice string `json:"invoice"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Processing Shipped Delivered Cancelled"`
}

type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postalCode"`
	Orders     int       `json:"orders"`
	TotalSpent float64   `json:"totalSpent"`
	LastOrder  time.Time `json:"lastOrder"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

type OrderEvent struct {
	OrderID      uint      `json:"orderId"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	EmailOrPhone string    `json:"emailOrPhone"`
	GrandTotal   float64   `json:"grandTotal"`
	Occurred     time.Time `json:"occurred"`
}
