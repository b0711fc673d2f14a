package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sharelist/sharelist-api/internal/application"
	"github.com/sharelist/sharelist-api/internal/domain/entity"
	"github.com/sharelist/sharelist-api/internal/interface/middleware"
	"github.com/sharelist/sharelist-api/pkg/response"
	"github.com/sharelist/sharelist-api/pkg/validation"
)

type ItemHandler struct {
	Svc    *application.ItemService
	Logger *logrus.Logger
}

func NewItemHandler(svc *application.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Svc: svc, Logger: logger}
}

type createItemRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,itemstatus"`
	ListID      int64     `json:"listId" binding:"required,gt=0"`
}

type updateItemRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status" binding:"omitempty,itemstatus"`
}

type itemListRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type itemResponse struct {
	ID          int64            `json:"item_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Deadline    time.Time        `json:"deadline"`
	Status      string           `json:"status"`
	ListID      int64            `json:"list_id"`
	List        *itemListRef     `json:"list,omitempty"`
	Members     []memberResponse `json:"list_users,omitempty"`
	CreatedByID *int64           `json:"created_by,omitempty"`
}

func toItemResponse(it *entity.Item) itemResponse {
	resp := itemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Deadline:    it.Deadline,
		Status:      string(it.Status),
		ListID:      it.ListID,
		CreatedByID: it.CreatedByID,
	}
	if it.List != nil {
		resp.List = &itemListRef{ID: it.List.ID, Title: it.List.Title}
		for _, m := range it.List.Members {
			resp.Members = append(resp.Members, memberResponse{ID: m.ID, Email: m.Email})
		}
	}
	return resp
}

func (h *ItemHandler) Create(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	it, err := h.Svc.Create(c.Request.Context(), application.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      entity.ItemStatus(req.Status),
		ListID:      req.ListID,
	}, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toItemResponse(it), "item created", nil)
}

// FindAll returns every item in the system with its parent list. The route
// is public and unfiltered.
func (h *ItemHandler) FindAll(c *gin.Context) {
	items, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	response.Success(c, http.StatusOK, out, "items", nil)
}

func (h *ItemHandler) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponse(it), "item", nil)
}

func (h *ItemHandler) Update(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.Status != nil {
		st := entity.ItemStatus(*req.Status)
		in.Status = &st
	}
	it, err := h.Svc.Update(c.Request.Context(), id, in, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponse(it), "item updated", nil)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), id, uid); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "item deleted", nil)
}
