package fittings

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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Fittings, act) }
	g := protected.Group("/fittings")
	{
		g.GET("", can(access.Read), h.List)
		g.GET("/:id", can(access.Read), h.Get)
		g.POST("", can(access.Create), h.Create)
		g.PUT("/:id", can(access.Update), h.Update)
		g.PATCH("/:id", can(access.Update), h.Update)
		g.DELETE("/:id", can(access.Delete), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := repository.FittingFilter{Status: c.Query("status")}
	var err error
	if f.CustomerID, err = request.QueryInt64(c, "customer_id"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.TailorID, err = request.QueryInt64(c, "tailor_id"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.From, err = request.QueryTime(c, "from"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.To, err = request.QueryTime(c, "to"); err != nil {
		response.Fail(c, err)
		return
	}
	rows, total, err := h.service.List(c.Request.Context(), middleware.ScopeFrom(c), f, p)
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
	f, err := h.service.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Create(c *gin.Context) {
	var req FittingRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	f, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateFittingRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	f, err := h.service.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "fitting deleted")
}
