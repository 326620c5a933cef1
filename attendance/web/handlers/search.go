package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"veritime.com/veritime/attendance/model"
	web "veritime.com/veritime/web/common"
)

type SearchParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
	Usernames []string      `json:"usernames"`
	Statuses  []string      `json:"statuses"`
	LateOnly  bool          `json:"lateOnly"`
}

func (ep *Endpoint) Search(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	limit, offset := clampPage(c.Query("limit"), c.Query("offset"))

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	records, total, err := SearchRecords(db, params, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(records, total))
}

const maxSearchLimit = 1000

// clampPage bounds the query pagination so a crafted value can never turn
// into an unbounded scan (gorm treats a negative limit as "no limit").
func clampPage(limitStr, offsetStr string) (int, int) {
	limit := maxSearchLimit
	offset := 0

	if val, err := strconv.Atoi(limitStr); err == nil && val > 0 && val <= maxSearchLimit {
		limit = val
	}
	if val, err := strconv.Atoi(offsetStr); err == nil && val > 0 {
		offset = val
	}
	return limit, offset
}

func SearchRecords(db *gorm.DB, params SearchParams, limit, offset int) ([]model.AttendanceRecord, int64, error) {
	query := db.Model(&model.AttendanceRecord{}).
		Where("date >= ? AND date <= ?",
			params.StartDate.Format("2006-01-02"),
			params.EndDate.Format("2006-01-02"))

	if len(params.Usernames) > 0 {
		query = query.Where("username IN ?", params.Usernames)
	}
	if len(params.Statuses) > 0 {
		query = query.Where("status IN ?", params.Statuses)
	}
	if params.LateOnly {
		query = query.Where("is_late_arrival = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.AttendanceRecord
	err := query.Order("date DESC, username").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
