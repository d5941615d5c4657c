package permissions

import (
	"net/http"

	"tailorshop/internal/access"
	"tailorshop/internal/middleware"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/request"
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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Permissions, act) }
	g := protected.Group("/permissions")
	{
		g.GET("/me", h.Me)
		g.GET("", can(access.Read), h.List)
		g.POST("", can(access.Create), h.Create)
		g.DELETE("/:id", can(access.Delete), h.Delete)
	}
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}
	response.Success(c, http.StatusOK, h.service.Effective(p))
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	rows, total, err := h.service.List(c.Request.Context(), c.Query("role"), p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, rows, pagination.NewMeta(p, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req PermissionRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	perm, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c).Principal, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, perm)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.ScopeFrom(c).Principal, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "permission deleted")
}
