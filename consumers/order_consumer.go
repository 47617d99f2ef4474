package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"storefront-service/config"
	"storefront-service/mailer"
	"storefront-service/models"
	"storefront-service/utils"
)

const sendTimeout = 30 * time.Second

// OrderConsumer turns order events into customer notification emails.
type OrderConsumer struct {
	DB     *gorm.DB
	Mailer mailer.Sender
}

func NewOrderConsumer(db *gorm.DB, m mailer.Sender) *OrderConsumer {
	return &OrderConsumer{DB: db, Mailer: m}
}

func (oc *OrderConsumer) Start(ch *amqp.Channel, cfg *config.Config) error {
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"storefront-service", // consumer tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register order consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			oc.processOrderMessage(msg)
		}
	}()

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"storefront-service-dlq",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to register dead letter consumer: %v", err)
		return nil
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()

	return nil
}

func (oc *OrderConsumer) processOrderMessage(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in order event processing: %v", r)
			msg.Nack(false, false)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.OrderID == 0 {
		log.Printf("Invalid order event: %s", msg.Body)
		msg.Nack(false, false)
		return
	}

	log.Printf("Processing order event: ID=%d, Type=%s", event.OrderID, event.Type)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := oc.HandleEvent(ctx, event); err != nil {
		log.Printf("Failed to handle order event %d/%s: %v", event.OrderID, event.Type, err)
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Failed to ack order event %d: %v", event.OrderID, err)
	}
}

// HandleEvent mails the customer about a created or updated order.
// Orders placed with a phone number get no email.
func (oc *OrderConsumer) HandleEvent(ctx context.Context, event models.OrderEvent) error {
	var order models.Order
	if err := oc.DB.WithContext(ctx).Preload("Items").First(&order, event.OrderID).Error; err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	if !utils.IsEmail(order.EmailOrPhone) {
		log.Printf("Order %d has no email contact, skipping notification", order.ID)
		return nil
	}

	var subject, body string
	switch event.Type {
	case models.EventOrderCreated:
		subject, body = confirmationEmail(order)
	case models.EventOrderStatusUpdated:
		subject, body = statusEmail(order)
	default:
		log.Printf("Unknown order event type: %s", event.Type)
		return nil
	}

	res := oc.Mailer.Send(ctx, order.EmailOrPhone, subject, body)
	if !res.OK() {
		return fmt.Errorf("send email: %s", res.Message)
	}
	return nil
}

func confirmationEmail(order models.Order) (string, string) {
	invoice := utils.InvoiceNumber(order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.Name)
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", invoice)
	fmt.Fprintf(&b, "%s (%s)\n", order.ProductTitle, order.ProductSKU)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %d x %s %s\n", item.Quantity, item.ColorName, item.Size)
	}
	fmt.Fprintf(&b, "\nTotal quantity: %d\n", order.TotalQuantity)
	fmt.Fprintf(&b, "Grand total: %.2f\n", order.GrandTotal)
	fmt.Fprintf(&b, "Shipping to: %s, %s %s, %s (%s)\n",
		order.Address, order.PostalCode, order.City, order.Country, order.ShippingMethod)

	return fmt.Sprintf("Order %s confirmed", invoice), b.String()
}

func statusEmail(order models.Order) (string, string) {
	invoice := utils.InvoiceNumber(order.ID)
	body := fmt.Sprintf("Hi %s,\n\nThe status of your order %s is now: %s.\n", order.Name, invoice, order.Status)
	return fmt.Sprintf("Order %s: %s", invoice, order.Status), body
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	if err := msg.Ack(false); err != nil {
		log.Printf("Failed to ack dead letter: %v", err)
	}
}
