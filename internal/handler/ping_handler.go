package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/internal/service"
	"github.com/pingboard/backend/pkg/logger"
)

type PingHandler struct {
	pingService *service.PingService
	voteService *service.VoteService
}

func NewPingHandler(pingService *service.PingService, voteService *service.VoteService) *PingHandler {
	return &PingHandler{
		pingService: pingService,
		voteService: voteService,
	}
}

// viewerID returns the authenticated user's id, or nil for anonymous reads.
func viewerID(c *gin.Context) *uuid.UUID {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}

// pingJSON mirrors the public ping shape, masking the author when anonymous.
func pingJSON(v service.PingView) gin.H {
	p := v.Ping
	return gin.H{
		"id":        p.ID,
		"text":      p.Text,
		"category":  p.Category,
		"timestamp": p.Timestamp,
		"user": gin.H{
			"id":       p.User.ID,
			"username": p.User.Username,
			"bio":      p.User.Bio,
			"avatar":   p.User.Avatar,
		},
		"location":           p.Location,
		"is_anonymous":       p.IsAnonymous,
		"display_name":       p.DisplayName(),
		"vote_count":         v.VoteCount,
		"user_has_upvoted":   v.UserHasUpvoted,
		"user_has_downvoted": v.UserHasDownvoted,
	}
}

func pingListJSON(views []service.PingView) []gin.H {
	result := make([]gin.H, 0, len(views))
	for _, v := range views {
		result = append(result, pingJSON(v))
	}
	return result
}

func listFilters(c *gin.Context) repository.PingFilters {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return repository.PingFilters{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
	}
}

// GET /api/pings/
func (h *PingHandler) List(c *gin.Context) {
	filters := listFilters(c)

	views, total, err := h.pingService.List(filters, viewerID(c))
	if err != nil {
		logger.Log.Error("Failed to list pings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"page":      filters.Page,
		"page_size": h.pingService.PageSize(),
		"results":   pingListJSON(views),
	})
}

type CreatePingRequest struct {
	Text        string          `json:"text" binding:"required"`
	Category    models.Category `json:"category"`
	Location    string          `json:"location"`
	IsAnonymous bool            `json:"is_anonymous"`
}

// POST /api/pings/
func (h *PingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreatePingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.pingService.Create(userID, service.CreatePingInput{
		Text:        req.Text,
		Category:    req.Category,
		Location:    req.Location,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pingJSON(*view))
}

// GET /api/pings/:id/
func (h *PingHandler) Get(c *gin.Context) {
	pingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		return
	}

	view, err := h.pingService.Get(pingID, viewerID(c))
	if err != nil {
		if errors.Is(err, service.ErrPingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ping"})
		return
	}

	c.JSON(http.StatusOK, pingJSON(*view))
}

type UpdatePingRequest struct {
	Text     *string          `json:"text"`
	Category *models.Category `json:"category"`
	Location *string          `json:"location"`
}

// PUT/PATCH /api/pings/:id/
func (h *PingHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	pingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		return
	}

	var req UpdatePingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.pingService.Update(userID, pingID, service.UpdatePingInput{
		Text:     req.Text,
		Category: req.Category,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own pings."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, pingJSON(*view))
}

// DELETE /api/pings/:id/
func (h *PingHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	pingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		return
	}

	if err := h.pingService.Delete(userID, pingID); err != nil {
		switch {
		case errors.Is(err, service.ErrPingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own pings."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ping"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type VoteRequest struct {
	VoteType service.VoteType `json:"vote_type" binding:"required"`
}

// POST /api/pings/:id/vote/
func (h *PingHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	pingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	count, err := h.voteService.Vote(userID, pingID, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ping not found"})
		case errors.Is(err, service.ErrInvalidVoteType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply vote"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("%s successful", req.VoteType),
		"vote_count": count,
	})
}

// GET /api/pings/user/
func (h *PingHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	filters := listFilters(c)

	views, total, err := h.pingService.ListForUser(userID, filters)
	if err != nil {
		logger.Log.Error("Failed to list user pings",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"page":      filters.Page,
		"page_size": h.pingService.PageSize(),
		"results":   pingListJSON(views),
	})
}
