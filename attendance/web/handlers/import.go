package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"veritime.com/veritime/attendance/core"
	web "veritime.com/veritime/web/common"
)

// ImportCSV ingests a device punch export uploaded as multipart form field
// "file" and runs every grouped punch through the marking pipeline.
func (ep *Endpoint) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("missing file field"))
		return
	}
	if filepath.Ext(fileHeader.Filename) != ".csv" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("only .csv exports are accepted"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	pol, err := ep.base.Policy(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	punches, err := core.ParsePunchCSV(file, pol.WorkHours.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	result := core.ImportPunches(db, pol, core.GroupPunches(punches))

	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
