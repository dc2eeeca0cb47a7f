package list

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samvitchoudhary/bucketlist/internal/auth"
	"github.com/samvitchoudhary/bucketlist/internal/metrics"
)

// RegisterRoutes mounts list endpoints onto the router.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/lists", handler.createList)
	group.GET("/lists", handler.listLists)
	group.POST("/lists/join", handler.joinList)
	group.GET("/lists/:listID", handler.getList)
	group.GET("/lists/:listID/members", handler.listMembers)
}

type httpHandler struct {
	service *Service
}

type createListRequest struct {
	Name string `json:"name" binding:"required"`
}

type joinListRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *httpHandler) createList(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateList(c.Request.Context(), userID, req.Name)
	if err != nil {
		switch err {
		case ErrNameRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "list name required"})
		default:
			slog.Error("create list", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create list"})
		}
		return
	}

	metrics.ListsCreated.Inc()
	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) listLists(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lists, err := h.service.ListsForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list lists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (h *httpHandler) joinList(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req joinListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joined, err := h.service.JoinList(c.Request.Context(), userID, req.Code)
	if err != nil {
		switch err {
		case ErrListNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "no list with that code"})
		case ErrAlreadyMember:
			c.JSON(http.StatusConflict, gin.H{"error": "already a member of this list"})
		default:
			slog.Error("join list", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join list"})
		}
		return
	}

	metrics.ListsJoined.Inc()
	c.JSON(http.StatusOK, joined)
}

func (h *httpHandler) getList(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	listID, err := uuid.Parse(c.Param("listID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	l, err := h.service.GetList(c.Request.Context(), userID, listID)
	if err != nil {
		switch err {
		case ErrListNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		case ErrNotMember:
			c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this list"})
		default:
			slog.Error("get list", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch list"})
		}
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *httpHandler) listMembers(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	listID, err := uuid.Parse(c.Param("listID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	members, err := h.service.MembersOf(c.Request.Context(), userID, listID)
	if err != nil {
		switch err {
		case ErrListNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		case ErrNotMember:
			c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this list"})
		default:
			slog.Error("list members", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
