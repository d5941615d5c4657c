package expiry

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
	sweeper *Sweeper
	policy  *access.Policy
}

func NewHandler(service *Service, sweeper *Sweeper, policy *access.Policy) *Handler {
	return &Handler{service: service, sweeper: sweeper, policy: policy}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Expiry, act) }
	g := protected.Group("/expiry-rules")
	{
		g.GET("", can(access.Read), h.List)
		g.GET("/:id", can(access.Read), h.Get)
		g.POST("", can(access.Create), h.Create)
		g.PUT("/:id", can(access.Update), h.Update)
		g.PATCH("/:id", can(access.Update), h.Update)
		g.DELETE("/:id", can(access.Delete), h.Delete)
	}
	protected.POST("/expiry/sweep", can(access.Execute), h.Sweep)
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	rows, total, err := h.service.List(c.Request.Context(), p)
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
	var req RuleRequest
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
	var req UpdateRuleRequest
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
	response.Message(c, http.StatusOK, "expiry rule deleted")
}

func (h *Handler) Sweep(c *gin.Context) {
	res, err := h.sweeper.Run(c.Request.Context(), middleware.ScopeFrom(c).Principal)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
