package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"hushh-site-backend/internal/delivery/http/response"
	"hushh-site-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

// NewAdminHandler registers the back-office routes. The group is expected to
// already carry AdminAuthMiddleware.
func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin.GET("/submissions", handler.ListSubmissions)
	admin.GET("/submissions/export", handler.ExportSubmissions)
}

// ListSubmissions godoc
// @Summary      List Archived Submissions
// @Description  Paginated listing of archived contact submissions, newest first. Admin only.
// @Tags         admin
// @Produce      json
// @Param        page       query     int  false  "Page number"     default(1)
// @Param        page_size  query     int  false  "Items per page"  default(20)
// @Success      200        {object}  response.Response{data=domain.PaginatedSubmissions}
// @Failure      401        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.adminUC.ListSubmissions(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Submissions", result)
}

// ExportSubmissions godoc
// @Summary      Export Submissions
// @Description  Download archived submissions as an Excel workbook or CSV. Admin only.
// @Tags         admin
// @Produce      application/octet-stream
// @Param        format  query  string  false  "Export format"  Enums(xlsx, csv)  default(xlsx)
// @Success      200     {file}    file
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/submissions/export [get]
func (h *AdminHandler) ExportSubmissions(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	data, filename, contentType, err := h.adminUC.ExportSubmissions(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
