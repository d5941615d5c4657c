package reports

import (
	"fmt"
	"net/http"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/logger"
	"tailorshop/internal/middleware"
	"tailorshop/internal/modules/orders"
	"tailorshop/internal/pkg/request"
	"tailorshop/internal/pkg/response"
	"tailorshop/internal/repository"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
	policy  *access.Policy
}

func NewHandler(service *Service, policy *access.Policy) *Handler {
	return &Handler{service: service, policy: policy}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/reports", middleware.Authorize(h.policy, access.Reports, access.Read))
	{
		g.GET("/summary", h.Summary)
		g.GET("/orders/export", h.ExportOrders)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	var w repository.Window
	var err error
	if w.From, err = request.QueryTime(c, "from"); err != nil {
		response.Fail(c, err)
		return
	}
	if w.To, err = request.QueryTime(c, "to"); err != nil {
		response.Fail(c, err)
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), w)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) ExportOrders(c *gin.Context) {
	f, err := orders.Filter(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	rows, err := h.service.Orders(c.Request.Context(), f)
	if err != nil {
		response.Fail(c, err)
		return
	}
	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)
	if err := WriteOrders(c.Writer, rows); err != nil {
		// Headers are already on the wire; all that is left is to log.
		logger.FromContext(c.Request.Context()).WithError(err).Error("order export failed")
	}
}
