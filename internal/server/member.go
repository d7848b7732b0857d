package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
)

type createMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Telephone   string `json:"telephone"`
	Active      *bool  `json:"active"`
	MinistryID  string `json:"ministry_id"`
	CommunityID string `json:"community_id"`
}

func (s *Server) handleCreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	m := &domain.Member{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Code:        req.Code,
		Telephone:   req.Telephone,
		Active:      active,
		MinistryID:  req.MinistryID,
		CommunityID: req.CommunityID,
		CreatedAt:   time.Now(),
	}

	if err := s.members.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": toMemberResponse(m)})
}

func (s *Server) handleListMembers(c *gin.Context) {
	members, err := s.members.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(members))
	for i := range members {
		out = append(out, toMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, gin.H{"members": out})
}

type createGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleCreateMinistry(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	m := &domain.Ministry{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := s.ministries.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ministry": gin.H{"id": m.ID, "name": m.Name, "created_at": m.CreatedAt}})
}

func (s *Server) handleListMinistries(c *gin.Context) {
	ministries, err := s.ministries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(ministries))
	for _, m := range ministries {
		out = append(out, gin.H{"id": m.ID, "name": m.Name, "created_at": m.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"ministries": out})
}

func (s *Server) handleCreateCommunity(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	cm := &domain.Community{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := s.communities.Create(c.Request.Context(), cm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"community": gin.H{"id": cm.ID, "name": cm.Name, "created_at": cm.CreatedAt}})
}

func (s *Server) handleListCommunities(c *gin.Context) {
	communities, err := s.communities.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(communities))
	for _, cm := range communities {
		out = append(out, gin.H{"id": cm.ID, "name": cm.Name, "created_at": cm.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"communities": out})
}

func toMemberResponse(m *domain.Member) gin.H {
	return gin.H{
		"id":           m.ID,
		"name":         m.Name,
		"code":         m.Code,
		"telephone":    m.Telephone,
		"active":       m.Active,
		"ministry_id":  m.MinistryID,
		"community_id": m.CommunityID,
		"created_at":   m.CreatedAt,
	}
}
