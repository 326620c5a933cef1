package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veritime.com/veritime/attendance/model"
	web "veritime.com/veritime/web/common"
)

// ListSuspicious returns unresolved suspicious-activity entries for the admin
// review UI. Pass ?all=true to include resolved ones.
func (ep *Endpoint) ListSuspicious(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	query := db.Order("created_at DESC").Limit(500)
	if c.Query("all") != "true" {
		query = query.Where("resolved = ?", false)
	}
	if username := c.Query("username"); username != "" {
		query = query.Where("username = ?", username)
	}

	var entries []model.SuspiciousActivity
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(entries))
}

// ResolveSuspicious marks an entry as reviewed. The entry itself is
// append-only apart from this flag.
func (ep *Endpoint) ResolveSuspicious(c *gin.Context) {
	id := c.Param("id")

	var dto ResolveSuspiciousDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	result := db.Model(&model.SuspiciousActivity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"resolved":    true,
			"resolved_by": dto.ResolvedBy,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(result.Error.Error()))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("suspicious activity entry not found"))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
