package audit

import (
	"tailorshop/internal/access"
	"tailorshop/internal/middleware"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/request"
	"tailorshop/internal/pkg/response"
	"tailorshop/internal/repository"

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
	protected.GET("/audit-logs", middleware.Authorize(h.policy, access.Audit, access.Read), h.List)
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := repository.AuditFilter{ResourceType: c.Query("resource_type"), Action: c.Query("action")}
	var err error
	if f.UserID, err = request.QueryInt64(c, "user_id"); err != nil {
		response.Fail(c, err)
		return
	}
	rows, total, err := h.service.List(c.Request.Context(), f, p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, rows, pagination.NewMeta(p, total))
}
