// Package server exposes the administration HTTP API. Dispatching a
// notification happens only through the explicit send endpoints here,
// never as a side effect of persisting a record.
package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/spacecadet3008/Kristo-mfalme/internal/cache"
	"github.com/spacecadet3008/Kristo-mfalme/internal/events"
	"github.com/spacecadet3008/Kristo-mfalme/internal/notify"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
	"github.com/spacecadet3008/Kristo-mfalme/internal/tithe"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	notifications store.NotificationStore
	logs          store.NotificationLogStore
	members       store.MemberStore
	ministries    store.MinistryStore
	communities   store.CommunityStore

	dispatcher  *notify.Dispatcher
	tithes      *tithe.Service
	provider    sms.Provider
	hub         *events.Hub
	statusCache *cache.StatusCache

	db         Pinger
	apiKeyHash string
}

type Deps struct {
	Notifications store.NotificationStore
	Logs          store.NotificationLogStore
	Members       store.MemberStore
	Ministries    store.MinistryStore
	Communities   store.CommunityStore

	Dispatcher  *notify.Dispatcher
	Tithes      *tithe.Service
	Provider    sms.Provider
	Hub         *events.Hub
	StatusCache *cache.StatusCache

	DB         Pinger
	APIKeyHash string
}

func New(deps Deps) *Server {
	return &Server{
		notifications: deps.Notifications,
		logs:          deps.Logs,
		members:       deps.Members,
		ministries:    deps.Ministries,
		communities:   deps.Communities,
		dispatcher:    deps.Dispatcher,
		tithes:        deps.Tithes,
		provider:      deps.Provider,
		hub:           deps.Hub,
		statusCache:   deps.StatusCache,
		db:            deps.DB,
		apiKeyHash:    deps.APIKeyHash,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.Use(s.requireAPIKey())
	{
		api.POST("/notifications", s.handleCreateNotification)
		api.GET("/notifications", s.handleListNotifications)
		api.GET("/notifications/:id", s.handleGetNotification)
		api.POST("/notifications/:id/send", s.handleSendNotification)
		api.GET("/notifications/:id/logs", s.handleListNotificationLogs)
		api.GET("/notifications/:id/status", s.handleNotificationStatus)
		api.GET("/notifications/:id/events", s.handleNotificationEvents)

		api.GET("/sms/balance", s.handleSMSBalance)

		api.POST("/members", s.handleCreateMember)
		api.GET("/members", s.handleListMembers)
		api.POST("/ministries", s.handleCreateMinistry)
		api.GET("/ministries", s.handleListMinistries)
		api.POST("/communities", s.handleCreateCommunity)
		api.GET("/communities", s.handleListCommunities)

		api.POST("/tithes", s.handleRecordTithe)
		api.GET("/tithes/:id", s.handleGetTithe)
	}

	return router
}
