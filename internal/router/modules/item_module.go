package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/sharelist/sharelist-api/internal/container"
	handlers "github.com/sharelist/sharelist-api/internal/interface/http"
	"github.com/sharelist/sharelist-api/internal/interface/middleware"
	"github.com/sharelist/sharelist-api/pkg/helpers"
)

// ItemModule wires item routes.
// Public: GET /api/items (global unfiltered listing)
// Protected: everything else
type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	items := rg.Group("/items")

	items.GET("", m.Handler.FindAll)

	protected := rg.Group("/items")
	protected.Use(middleware.Auth(m.JWT, container.GetRedis()))
	{
		protected.POST("", m.Handler.Create)
		protected.GET("/:id", m.Handler.FindOne)
		protected.PATCH("/:id", m.Handler.Update)
		protected.DELETE("/:id", m.Handler.Delete)
	}
}
