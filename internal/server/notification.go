package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/events"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

type createNotificationRequest struct {
	Title      string `json:"title" binding:"required"`
	Message    string `json:"message" binding:"required"`
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id"`
	SendSMS    *bool  `json:"send_sms"`
	CreatedBy  string `json:"created_by"`
	// Dispatch true sends immediately after creation. This is the only
	// place a create can trigger a send.
	Dispatch bool `json:"dispatch"`
}

func (s *Server) handleCreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	targetType := domain.TargetType(req.TargetType)
	if !targetType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_type"})
		return
	}
	if targetType.RequiresTargetID() && req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id is required for target_type " + req.TargetType})
		return
	}

	sendSMS := true
	if req.SendSMS != nil {
		sendSMS = *req.SendSMS
	}

	n := &domain.Notification{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Message:    req.Message,
		TargetType: targetType,
		TargetID:   req.TargetID,
		SendSMS:    sendSMS,
		Status:     domain.NotificationStatusPending,
		CreatedBy:  req.CreatedBy,
		CreatedAt:  time.Now(),
	}

	if err := s.notifications.Create(c.Request.Context(), n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !req.Dispatch {
		c.JSON(http.StatusCreated, gin.H{"notification": toNotificationResponse(n)})
		return
	}

	outcome := s.dispatcher.Dispatch(c.Request.Context(), n.ID)
	updated, err := s.notifications.GetByID(c.Request.Context(), n.ID)
	if err != nil {
		updated = n
	}

	c.JSON(http.StatusCreated, gin.H{
		"notification": toNotificationResponse(updated),
		"outcome":      outcome,
	})
}

func (s *Server) handleSendNotification(c *gin.Context) {
	id := c.Param("id")

	if _, err := s.notifications.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outcome := s.dispatcher.Dispatch(c.Request.Context(), id)

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"outcome": outcome})
}

func (s *Server) handleGetNotification(c *gin.Context) {
	n, err := s.notifications.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": toNotificationResponse(n)})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	notifications, err := s.notifications.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationResponse(&notifications[i]))
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

func (s *Server) handleListNotificationLogs(c *gin.Context) {
	logs, err := s.logs.ListByNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":            l.ID,
			"member_id":     l.MemberID,
			"phone_number":  l.PhoneNumber,
			"status":        l.Status,
			"message_id":    l.MessageID,
			"cost":          l.Cost,
			"error_message": l.ErrorMessage,
			"created_at":    l.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"logs": out})
}

// handleNotificationStatus answers from the redis cache when possible
// and falls back to the store, repopulating the cache on a miss.
func (s *Server) handleNotificationStatus(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	// Cache trouble is never a reason to fail the request; any error
	// falls through to the store.
	if status, err := s.statusCache.Get(ctx, id); err == nil {
		c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
		return
	}

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_ = s.statusCache.Set(ctx, id, n.Status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": n.Status})
}

// handleNotificationEvents streams per-recipient delivery events for a
// notification over SSE until the client disconnects.
func (s *Server) handleNotificationEvents(c *gin.Context) {
	sub := &events.Subscriber{
		ID:             uuid.New().String(),
		NotificationID: c.Param("id"),
		Events:         make(chan events.DeliveryEvent, 100),
	}
	s.hub.Subscribe(sub)
	defer s.hub.Unsubscribe(sub.ID)

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return false
			}
			c.SSEvent("delivery", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *Server) handleSMSBalance(c *gin.Context) {
	balance, err := s.provider.Balance(c.Request.Context())
	if err != nil {
		if errors.Is(err, sms.ErrNotSupported) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "balance not supported by provider " + s.provider.Name()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": s.provider.Name(), "balance": balance})
}

func toNotificationResponse(n *domain.Notification) gin.H {
	return gin.H{
		"id":               n.ID,
		"title":            n.Title,
		"message":          n.Message,
		"target_type":      n.TargetType,
		"target_id":        n.TargetID,
		"send_sms":         n.SendSMS,
		"status":           n.Status,
		"total_recipients": n.TotalRecipients,
		"sms_sent_count":   n.SentCount,
		"sms_failed_count": n.FailedCount,
		"error_message":    n.ErrorMessage,
		"created_by":       n.CreatedBy,
		"created_at":       n.CreatedAt,
		"sent_at":          n.SentAt,
	}
}
