package backup

import (
	"net/http"

	"tailorshop/internal/access"
	"tailorshop/internal/middleware"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	policy  *access.Policy
}

func NewHandler(service *Service, policy *access.Policy) *Handler {
	return &Handler{service: service, policy: policy}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Backup, act) }
	g := protected.Group("/backup")
	{
		g.POST("/export", can(access.Execute), h.Export)
		g.GET("/logs", can(access.Read), h.Logs)
	}
}

func (h *Handler) Export(c *gin.Context) {
	doc, err := h.service.Export(c.Request.Context(), middleware.ScopeFrom(c).Principal)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

func (h *Handler) Logs(c *gin.Context) {
	p := pagination.FromQuery(c)
	rows, total, err := h.service.Logs(c.Request.Context(), p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, rows, pagination.NewMeta(p, total))
}
