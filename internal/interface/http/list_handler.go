package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sharelist/sharelist-api/internal/application"
	"github.com/sharelist/sharelist-api/internal/domain/entity"
	"github.com/sharelist/sharelist-api/internal/interface/middleware"
	"github.com/sharelist/sharelist-api/pkg/response"
	"github.com/sharelist/sharelist-api/pkg/validation"
)

type ListHandler struct {
	Svc    *application.ListService
	Logger *logrus.Logger
}

func NewListHandler(svc *application.ListService, logger *logrus.Logger) *ListHandler {
	return &ListHandler{Svc: svc, Logger: logger}
}

type listTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type shareListRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type memberResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type listItemResponse struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Deadline time.Time `json:"deadline"`
}

type listResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Members   []memberResponse   `json:"users"`
	CreatedBy *memberResponse    `json:"created_by,omitempty"`
	Items     []listItemResponse `json:"items"`
}

func toListResponse(l *entity.List) listResponse {
	resp := listResponse{
		ID:      l.ID,
		Title:   l.Title,
		Members: make([]memberResponse, 0, len(l.Members)),
		Items:   make([]listItemResponse, 0, len(l.Items)),
	}
	for _, m := range l.Members {
		resp.Members = append(resp.Members, memberResponse{ID: m.ID, Email: m.Email})
	}
	for _, it := range l.Items {
		resp.Items = append(resp.Items, listItemResponse{
			ID:       it.ID,
			Title:    it.Title,
			Status:   string(it.Status),
			Deadline: it.Deadline,
		})
	}
	if l.CreatedBy != nil {
		resp.CreatedBy = &memberResponse{ID: l.CreatedBy.ID, Email: l.CreatedBy.Email}
	}
	return resp
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func (h *ListHandler) Create(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	var req listTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), req.Title, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toListResponse(l), "list created", nil)
}

func (h *ListHandler) FindAll(c *gin.Context) {
	lists, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]listResponse, 0, len(lists))
	for i := range lists {
		out = append(out, toListResponse(&lists[i]))
	}
	response.Success(c, http.StatusOK, out, "lists", nil)
}

// FindOne serves both authenticated and anonymous reads: with an identity
// the membership check applies, without one the list is public.
func (h *ListHandler) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var userID *int64
	if uid, ok := middleware.UserID(c); ok {
		userID = &uid
	}
	l, err := h.Svc.FindOne(c.Request.Context(), id, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "list", nil)
}

func (h *ListHandler) Update(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req listTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), id, req.Title, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toListResponse(l), "list updated", nil)
}

func (h *ListHandler) Delete(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), id, uid); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "list deleted", nil)
}

func (h *ListHandler) Share(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req shareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Share(c.Request.Context(), id, req.Email, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toListResponse(l), "list shared", nil)
}
