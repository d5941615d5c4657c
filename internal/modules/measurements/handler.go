package measurements

import (
	"net/http"
	"strings"

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
	can := func(res access.Resource, act access.Action) gin.HandlerFunc {
		return middleware.Authorize(h.policy, res, act)
	}
	g := protected.Group("/measurements")
	{
		g.GET("", can(access.Measurements, access.Read), h.List)
		g.POST("", can(access.Measurements, access.Create), h.Create)
		g.POST("/validate", can(access.Measurements, access.Read), h.Validate)
		g.GET("/:id", can(access.Measurements, access.Read), h.Get)
		g.PUT("/:id", can(access.Measurements, access.Update), h.Update)
		g.PATCH("/:id", can(access.Measurements, access.Update), h.Update)
		g.GET("/:id/history", can(access.Measurements, access.Read), h.History)
		g.GET("/:id/feedback", can(access.Feedback, access.Read), h.ListFeedback)
		g.POST("/:id/feedback", can(access.Feedback, access.Create), h.CreateFeedback)
	}
	protected.GET("/customers/:id/profiles", can(access.Profiles, access.Read), h.ListProfiles)
	protected.POST("/customers/:id/profiles", can(access.Profiles, access.Create), h.CreateProfile)
	protected.DELETE("/profiles/:id", can(access.Profiles, access.Delete), h.DeleteProfile)
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := repository.MeasurementFilter{
		Units:  c.Query("units"),
		Branch: c.Query("branch"),
		Search: strings.TrimSpace(c.Query("search")),
	}
	var err error
	if f.CustomerID, err = request.QueryInt64(c, "customer_id"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.ProfileID, err = request.QueryInt64(c, "profile_id"); err != nil {
		response.Fail(c, err)
		return
	}
	if f.IsExpired, err = request.QueryBool(c, "is_expired"); err != nil {
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
	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) History(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	rows, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Validate(c *gin.Context) {
	data, err := request.BindMap(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	check, err := h.service.Validate(c.Request.Context(), data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, check)
}

func (h *Handler) Create(c *gin.Context) {
	data, err := request.BindMap(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.service.Create(c.Request.Context(), middleware.ScopeFrom(c).Principal, data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	data, err := request.BindMap(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.service.Update(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	p := pagination.FromQuery(c)
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	rows, total, err := h.service.ListProfiles(c.Request.Context(), id, p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, rows, pagination.NewMeta(p, total))
}

func (h *Handler) CreateProfile(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req ProfileRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	profile, err := h.service.CreateProfile(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, profile)
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := h.service.DeleteProfile(c.Request.Context(), middleware.ScopeFrom(c).Principal, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "profile deleted")
}

func (h *Handler) ListFeedback(c *gin.Context) {
	p := pagination.FromQuery(c)
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	rows, total, err := h.service.ListFeedback(c.Request.Context(), id, p)
	if err != nil {
		response.FailList(c, err, p)
		return
	}
	response.Page(c, rows, pagination.NewMeta(p, total))
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req FeedbackRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	fb, err := h.service.CreateFeedback(c.Request.Context(), middleware.ScopeFrom(c).Principal, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, fb)
}
