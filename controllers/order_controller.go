package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-service/middlewares"
	"storefront-service/models"
	"storefront-service/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Events EventPublisher
}

func NewOrderController(db *gorm.DB, events EventPublisher) *OrderController {
	return &OrderController{DB: db, Events: events}
}

// newOrder builds the order row and its items from a submission.
// Cart colors missing from ColorNames keep their id as the display name.
func newOrder(sub models.OrderSubmission) models.Order {
	order := models.Order{
		ProductSKU:     sub.Order.ProductSKU,
		ProductTitle:   sub.Order.ProductTitle,
		TotalQuantity:  sub.Order.TotalQuantity,
		UnitPriceTier:  sub.Order.UnitPrice,
		GrandTotal:     sub.Order.Subtotal,
		EmailOrPhone:   sub.Customer.EmailOrPhone,
		Name:           sub.Customer.Name,
		Address:        sub.Customer.Address,
		City:           sub.Customer.City,
		Country:        sub.Customer.Country,
		PostalCode:     sub.Customer.PostalCode,
		Phone:          sub.Customer.Phone,
		ShippingMethod: sub.Customer.ShippingMethod,
		Status:         models.StatusConfirmed,
		Items:          make([]models.OrderItem, 0, len(sub.Order.Cart)),
	}

	for _, line := range sub.Order.Cart {
		colorName, ok := sub.ColorNames[line.ColorID]
		if !ok || colorName == "" {
			colorName = line.ColorID
		}
		order.Items = append(order.Items, models.OrderItem{
			ColorID:   line.ColorID,
			ColorName: colorName,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}
	return order
}

func toOrderResponse(order models.Order) models.OrderResponse {
	return models.OrderResponse{Order: order, Invoice: utils.InvoiceNumber(order.ID)}
}

func (oc *OrderController) SubmitOrder(c *gin.Context) {
	defer middlewares.TrackOperation(c, "orders", "submit")

	var submission models.OrderSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := newOrder(submission)
	err := oc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		handleError(c, err, "Order")
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))

	oc.publish(c.Request.Context(), order, models.EventOrderCreated)
}

// publish runs after the response is written; failures are only logged.
func (oc *OrderController) publish(ctx context.Context, order models.Order, eventType string) {
	if oc.Events == nil {
		return
	}

	event := models.OrderEvent{
		OrderID:      order.ID,
		Type:         eventType,
		Status:       order.Status,
		EmailOrPhone: order.EmailOrPhone,
		GrandTotal:   order.GrandTotal,
		Occurred:     time.Now(),
	}
	if err := oc.Events.PublishOrderEvent(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("Failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}

func (oc *OrderController) GetOrders(c *gin.Context) {
	defer middlewares.TrackOperation(c, "orders", "list")

	var orders []models.Order
	err := oc.DB.WithContext(c.Request.Context()).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		handleError(c, err, "Order")
		return
	}

	response := make([]models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, response)
}

func (oc *OrderController) GetOrderDetails(c *gin.Context) {
	defer middlewares.TrackOperation(c, "orders", "details")

	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	var order models.Order
	err := oc.DB.WithContext(c.Request.Context()).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		handleError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	defer middlewares.TrackOperation(c, "orders", "update_status")

	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	var request models.OrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err := oc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", request.Status).Error; err != nil {
			return err
		}
		order.Status = request.Status
		return nil
	})
	if err != nil {
		handleError(c, err, "Order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"id":      order.ID,
		"status":  order.Status,
	})

	oc.publish(c.Request.Context(), order, models.EventOrderStatusUpdated)
}
