package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/sharelist/sharelist-api/internal/container"
	handlers "github.com/sharelist/sharelist-api/internal/interface/http"
	"github.com/sharelist/sharelist-api/internal/interface/middleware"
	"github.com/sharelist/sharelist-api/pkg/helpers"
)

// ListModule wires list routes.
// Public: GET /api/lists, GET /api/lists/:id (membership is enforced only
// when a token is presented; anonymous reads pass through)
// Protected: POST /api/lists, PUT/DELETE /api/lists/:id, POST /api/lists/:id/share
type ListModule struct {
	Handler *handlers.ListHandler
	JWT     *helpers.JWTManager
}

func NewListModule(h *handlers.ListHandler, jwt *helpers.JWTManager) *ListModule {
	return &ListModule{Handler: h, JWT: jwt}
}

func (m *ListModule) Register(rg *gin.RouterGroup) {
	lists := rg.Group("/lists")

	lists.GET("", m.Handler.FindAll)
	lists.GET("/:id", middleware.OptionalAuth(m.JWT), m.Handler.FindOne)

	protected := rg.Group("/lists")
	protected.Use(middleware.Auth(m.JWT, container.GetRedis()))
	{
		protected.POST("", m.Handler.Create)
		protected.PUT("/:id", m.Handler.Update)
		protected.DELETE("/:id", m.Handler.Delete)
		protected.POST("/:id/share", m.Handler.Share)
	}
}
