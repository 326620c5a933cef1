package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/attendance/report"
	"veritime.com/veritime/infrastructure/filesystem"
	web "veritime.com/veritime/web/common"
)

// MonthlyReport streams an xlsx workbook for ?month=YYYY-MM. With
// ?archive=true the workbook is also uploaded to the report bucket.
func (ep *Endpoint) MonthlyReport(c *gin.Context) {
	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("month must be YYYY-MM"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var records []model.AttendanceRecord
	if err := db.Where("date LIKE ?", month+"%").
		Order("date, username").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	workbook, err := report.BuildMonthly(month, records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	if c.Query("archive") == "true" {
		bucket := os.Getenv("REPORT_BUCKET")
		key := fmt.Sprintf("%s/attendance-%s.xlsx", ep.base.Tenant(c), month)
		if err := filesystem.WriteFile(bucket, key, c.Request.Context(), bytes.NewReader(buf.Bytes())); err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", month)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
