package reminders

import (
	"net/http"

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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Reminders, act) }
	g := protected.Group("/reminders")
	{
		g.GET("", can(access.Read), h.List)
		g.GET("/:id", can(access.Read), h.Get)
		g.POST("", can(access.Create), h.Create)
		g.PUT("/:id", can(access.Update), h.Update)
		g.PATCH("/:id", can(access.Update), h.Update)
		g.POST("/:id/snooze", can(access.Update), h.Snooze)
		g.DELETE("/:id", can(access.Delete), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := repository.ReminderFilter{Status: c.Query("status"), ReminderType: c.Query("reminder_type")}
	var err error
	if f.CustomerID, err = request.QueryInt64(c, "customer_id"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.DueBefore, err = request.QueryTime(c, "due_before"); err != nil {
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

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Create(c *gin.Context) {
	var req ReminderRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	r, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c).Principal, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateReminderRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	r, err := h.service.Update(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Snooze(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req SnoozeRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	r, err := h.service.Snooze(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
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
	response.Message(c, http.StatusOK, "reminder deleted")
}
