package item

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samvitchoudhary/bucketlist/internal/auth"
	"github.com/samvitchoudhary/bucketlist/internal/list"
	"github.com/samvitchoudhary/bucketlist/internal/metrics"
)

// RegisterRoutes mounts item endpoints onto the router.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/lists/:listID/items", handler.addItem)
	group.GET("/lists/:listID/items", handler.listItems)
	group.POST("/items/:itemID/toggle", handler.toggleCheckbox)
	group.POST("/items/:itemID/counter", handler.updateCounter)
}

type httpHandler struct {
	service *Service
}

type addItemRequest struct {
	Text          string  `json:"text" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Description   *string `json:"description"`
	ParentItemID  *string `json:"parent_item_id"`
	CounterTarget *int64  `json:"counter_target"`
}

type updateCounterRequest struct {
	// binding "required" would reject a zero delta, so the field is unbound.
	Delta int64 `json:"delta"`
}

// itemResponse is the flat wire shape. Field names are the stable contract;
// unset nullable fields render as null, not zero.
type itemResponse struct {
	ID                uuid.UUID  `json:"id"`
	BucketListID      uuid.UUID  `json:"bucket_list_id"`
	Text              string     `json:"text"`
	Type              string     `json:"type"`
	Description       *string    `json:"description"`
	ParentItemID      *uuid.UUID `json:"parent_item_id"`
	IsChecked         bool       `json:"is_checked"`
	CheckedBy         *uuid.UUID `json:"checked_by"`
	CheckedByUsername *string    `json:"checked_by_username"`
	CheckedAt         *time.Time `json:"checked_at"`
	CounterValue      int64      `json:"counter_value"`
	CounterTarget     *int64     `json:"counter_target"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (h *httpHandler) addItem(c *gin.Context) {
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

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parentID *uuid.UUID
	if req.ParentItemID != nil {
		parsed, err := uuid.Parse(*req.ParentItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent item id"})
			return
		}
		parentID = &parsed
	}

	created, err := h.service.AddItem(c.Request.Context(), userID, AddItemInput{
		ListID:        listID,
		Text:          req.Text,
		Type:          Type(req.Type),
		Description:   req.Description,
		ParentItemID:  parentID,
		CounterTarget: req.CounterTarget,
	})
	if err != nil {
		h.writeItemError(c, err, "add item", "failed to add item")
		return
	}

	metrics.ItemsCreated.WithLabelValues(string(created.Type)).Inc()
	c.JSON(http.StatusCreated, marshalItem(created))
}

func (h *httpHandler) listItems(c *gin.Context) {
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

	items, err := h.service.ItemsFor(c.Request.Context(), userID, listID)
	if err != nil {
		h.writeItemError(c, err, "list items", "failed to list items")
		return
	}

	responses := make([]itemResponse, len(items))
	for i, it := range items {
		responses[i] = marshalItem(it)
	}
	c.JSON(http.StatusOK, gin.H{"items": responses})
}

func (h *httpHandler) toggleCheckbox(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	toggled, err := h.service.ToggleCheckbox(c.Request.Context(), userID, itemID)
	if err != nil {
		h.writeItemError(c, err, "toggle checkbox", "failed to toggle item")
		return
	}

	c.JSON(http.StatusOK, marshalItem(toggled))
}

func (h *httpHandler) updateCounter(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req updateCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateCounter(c.Request.Context(), userID, itemID, req.Delta)
	if err != nil {
		h.writeItemError(c, err, "update counter", "failed to update counter")
		return
	}

	c.JSON(http.StatusOK, marshalItem(updated))
}

func (h *httpHandler) writeItemError(c *gin.Context, err error, op, fallback string) {
	switch err {
	case ErrTextRequired, ErrInvalidType, ErrParentListMismatch, ErrNotCheckbox, ErrNotCounter, ErrInvalidCounterTarget:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case ErrItemNotFound, ErrParentNotFound, list.ErrListNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case list.ErrNotMember:
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this list"})
	default:
		slog.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func marshalItem(it Item) itemResponse {
	resp := itemResponse{
		ID:           it.ID,
		BucketListID: it.ListID,
		Text:         it.Text,
		Type:         string(it.Type),
		Description:  it.Description,
		ParentItemID: it.ParentItemID,
		CreatedAt:    it.CreatedAt,
	}
	if it.Checkbox != nil {
		resp.IsChecked = it.Checkbox.IsChecked
		resp.CheckedBy = it.Checkbox.CheckedBy
		resp.CheckedByUsername = it.Checkbox.CheckedByUsername
		resp.CheckedAt = it.Checkbox.CheckedAt
	}
	if it.Counter != nil {
		resp.CounterValue = it.Counter.Value
		resp.CounterTarget = it.Counter.Target
	}
	return resp
}
