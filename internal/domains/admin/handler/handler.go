package handler

import (
	"fmt"
	"net/http"
	"time"

	"agromap-backend/internal/domains/admin/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the dashboard. Routes are mounted behind AdminOnly.
type AdminHandler struct {
	adminService service.ServiceInterface
}

func NewAdminHandler(adminService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// GET /api/v1/admin/activity
func (h *AdminHandler) Activity(c *gin.Context) {
	activity, err := h.adminService.Activity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, activity)
}

// GET /api/v1/admin/markets
func (h *AdminHandler) Markets(c *gin.Context) {
	markets, err := h.adminService.Markets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, markets)
}

// GET /api/v1/admin/products
func (h *AdminHandler) Products(c *gin.Context) {
	products, err := h.adminService.Products(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// GET /api/v1/admin/comments
func (h *AdminHandler) Comments(c *gin.Context) {
	comments, err := h.adminService.Comments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comments)
}

// ExportProducts streams every product as an .xlsx attachment
// GET /api/v1/admin/products/export
func (h *AdminHandler) ExportProducts(c *gin.Context) {
	f, err := h.adminService.ExportProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		response.Error(c, apperror.Unexpected("failed to write excel file", err))
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	log.Debug().Int("bytes", buf.Len()).Msg("[ADMIN] export sent")
}
