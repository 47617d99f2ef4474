package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/mailer"
	"storefront-service/middlewares"
	"storefront-service/models"
)

type EmailController struct {
	Mailer mailer.Sender
}

func NewEmailController(m mailer.Sender) *EmailController {
	return &EmailController{Mailer: m}
}

func (ec *EmailController) SendEmail(c *gin.Context) {
	defer middlewares.TrackOperation(c, "email", "send")

	var request models.EmailRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ec.Mailer.Send(c.Request.Context(), request.To, request.Subject, request.Body)
	if !result.OK() {
		log.Printf("Failed to send email to %s: %s", request.To, result.Message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, result)
}
