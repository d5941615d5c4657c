package notification

import (
	"net/http"

	"tailorshop/internal/access"
	"tailorshop/internal/middleware"
	"tailorshop/internal/pkg/apperr"
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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Notifications, act) }
	g := protected.Group("/notifications")
	{
		g.GET("", can(access.Read), h.GetNotifications)
		g.GET("/unread-count", can(access.Read), h.UnreadCount)
		g.PATCH("/read-all", can(access.Update), h.MarkAllAsRead)
		g.PATCH("/:id/read", can(access.Update), h.MarkAsRead)
	}
}

func (h *Handler) GetNotifications(c *gin.Context) {
	p := pagination.FromQuery(c)
	unread, err := request.QueryBool(c, "unread")
	if err != nil {
		response.Fail(c, err)
		return
	}
	list, total, err := h.service.List(c.Request.Context(), middleware.ScopeFrom(c).Principal, unread != nil && *unread, p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, list, pagination.NewMeta(p, total))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), middleware.ScopeFrom(c).Principal)
	if apperr.Is(err, apperr.KindSchemaNotReady) {
		n, err = 0, nil
	}
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": n})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	n, err := h.service.MarkRead(c.Request.Context(), middleware.ScopeFrom(c).Principal, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), middleware.ScopeFrom(c).Principal)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}
