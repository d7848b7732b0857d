package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
	"github.com/spacecadet3008/Kristo-mfalme/internal/tithe"
)

type recordTitheRequest struct {
	MemberID      string     `json:"member_id" binding:"required"`
	ContactNumber string     `json:"contact_number"`
	Amount        string     `json:"amount" binding:"required"`
	Method        string     `json:"method"`
	PaidAt        *time.Time `json:"paid_at"`
}

func (s *Server) handleRecordTithe(c *gin.Context) {
	var req recordTitheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	method := domain.PaymentMethod(req.Method)
	if method != "" && method != domain.PaymentMethodCash && method != domain.PaymentMethodBank {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
		return
	}

	payReq := tithe.PaymentRequest{
		MemberID:      req.MemberID,
		ContactNumber: req.ContactNumber,
		Amount:        req.Amount,
		Method:        method,
	}
	if req.PaidAt != nil {
		payReq.PaidAt = *req.PaidAt
	}

	payment, err := s.tithes.RecordPayment(c.Request.Context(), payReq)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": toTitheResponse(payment)})
}

func (s *Server) handleGetTithe(c *gin.Context) {
	payment, err := s.tithes.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": toTitheResponse(payment)})
}

func toTitheResponse(p *domain.TithePayment) gin.H {
	return gin.H{
		"id":             p.ID,
		"member_id":      p.MemberID,
		"contact_number": p.ContactNumber,
		"amount":         p.Amount,
		"method":         p.Method,
		"receipt_number": p.ReceiptNumber,
		"sms_sent":       p.SMSSent,
		"sms_sent_at":    p.SMSSentAt,
		"sms_message_id": p.SMSMessageID,
		"last_sms_error": p.LastSMSError,
		"paid_at":        p.PaidAt,
		"created_at":     p.CreatedAt,
	}
}
