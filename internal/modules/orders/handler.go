package orders

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
	can := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(h.policy, access.Orders, act) }
	g := protected.Group("/orders")
	{
		g.GET("", can(access.Read), h.List)
		g.GET("/:id", can(access.Read), h.Get)
		g.POST("", can(access.Create), h.Create)
		g.PUT("/:id", can(access.Update), h.Update)
		g.PATCH("/:id", can(access.Update), h.Update)
		g.DELETE("/:id", can(access.Delete), h.Delete)
	}
}

// Filter reads the order list filters shared by the list and export endpoints.
func Filter(c *gin.Context) (repository.OrderFilter, error) {
	f := repository.OrderFilter{Status: c.Query("status"), Search: c.Query("search")}
	var err error
	if f.CustomerID, err = request.QueryInt64(c, "customer_id"); err != nil {
		return f, err
	}
	if f.From, err = request.QueryTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = request.QueryTime(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f, err := Filter(c)
	if err != nil {
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
	o, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Create(c *gin.Context) {
	var req OrderRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	o, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c).Principal, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateOrderRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	o, err := h.service.Update(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
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
	response.Message(c, http.StatusOK, "order deleted")
}
