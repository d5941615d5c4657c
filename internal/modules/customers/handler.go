package customers

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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Customers, act) }
	g := protected.Group("/customers")
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
	f := repository.CustomerFilter{Search: c.Query("search"), Branch: c.Query("branch")}
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
	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	customer, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c).Principal, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, customer)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateCustomerRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	customer, err := h.service.Update(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, customer)
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
	response.Message(c, http.StatusOK, "customer deleted")
}
