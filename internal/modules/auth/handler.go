package auth

import (
	"net/http"

	"tailorshop/internal/middleware"
	"tailorshop/internal/pkg/request"
	"tailorshop/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated endpoints; limit guards login.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, limit gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		if limit != nil {
			authGroup.POST("/login", limit, h.Login)
		} else {
			authGroup.POST("/login", h.Login)
		}
		authGroup.POST("/register", h.Register)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := h.service.Me(c.Request.Context(), p)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
