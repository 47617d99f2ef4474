package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-service/middlewares"
	"storefront-service/models"
	"storefront-service/utils"
)

// CustomerController serves customers derived from order history; there is no customer table.
type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// customerTotals is one row of the per-contact order aggregate.
type customerTotals struct {
	EmailOrPhone string
	Orders       int
	TotalSpent   float64
	LastID       uint
}

func (cc *CustomerController) GetCustomers(c *gin.Context) {
	defer middlewares.TrackOperation(c, "customers", "list")

	customers, err := loadCustomers(cc.DB.WithContext(c.Request.Context()))
	if err != nil {
		handleError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// loadCustomers groups orders by contact, most recent customer first. Ties on
// the last order time go to the contact with the higher latest order id.
// Display fields come from the contact's highest id order.
func loadCustomers(db *gorm.DB) ([]models.Customer, error) {
	var totals []customerTotals
	err := db.Model(&models.Order{}).
		Select("email_or_phone, COUNT(*) AS orders, SUM(grand_total) AS total_spent, MAX(id) AS last_id").
		Group("email_or_phone").
		Order("MAX(created_at) DESC, MAX(id) DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var latest []models.Order
	err = db.Select("id", "email_or_phone", "name", "address", "city", "country", "postal_code", "phone").
		Where("id IN (?)", db.Model(&models.Order{}).Select("MAX(id)").Group("email_or_phone")).
		Find(&latest).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Order, len(latest))
	for _, o := range latest {
		byID[o.ID] = o
	}

	lastOrder, err := lastOrderTimes(db)
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, 0, len(totals))
	for _, t := range totals {
		o := byID[t.LastID]
		customer := models.Customer{
			ID:         t.EmailOrPhone,
			Name:       o.Name,
			Phone:      o.Phone,
			Address:    o.Address,
			City:       o.City,
			Country:    o.Country,
			PostalCode: o.PostalCode,
			Orders:     t.Orders,
			TotalSpent: t.TotalSpent,
			LastOrder:  lastOrder[t.EmailOrPhone],
		}
		if utils.IsEmail(t.EmailOrPhone) {
			customer.Email = t.EmailOrPhone
		} else {
			customer.Phone = t.EmailOrPhone
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// lastOrderTimes reads created_at from the newest row of each contact.
// SQLite returns MAX(created_at) as untyped text, so the column is read from the row.
func lastOrderTimes(db *gorm.DB) (map[string]time.Time, error) {
	var rows []models.Order
	err := db.Select("email_or_phone", "created_at").
		Where("created_at = (SELECT MAX(o.created_at) FROM orders o WHERE o.email_or_phone = orders.email_or_phone)").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	times := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		times[r.EmailOrPhone] = r.CreatedAt
	}
	return times, nil
}
