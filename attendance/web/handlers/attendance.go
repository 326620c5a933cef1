package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veritime.com/veritime/attendance/core"
	attcommon "veritime.com/veritime/attendance/web/common"
	maincore "veritime.com/veritime/core"
	web "veritime.com/veritime/web/common"
)

type Endpoint struct {
	base    attcommon.Handler
	alerter core.Alerter
}

func Register(r *gin.RouterGroup, dm *maincore.DatabaseManager, alerter core.Alerter) {
	endpoint := &Endpoint{base: attcommon.Handler{Dm: dm}, alerter: alerter}

	r.POST("/attendance", endpoint.Mark)
	r.POST("/attendance/checkout", endpoint.Checkout)
	r.POST("/attendance/search", endpoint.Search)

	r.GET("/suspicious", endpoint.ListSuspicious)
	r.PUT("/suspicious/:id/resolve", endpoint.ResolveSuspicious)

	r.GET("/reports/monthly", endpoint.MonthlyReport)
	r.POST("/attendance/import", endpoint.ImportCSV)
}

// rejectionStatus maps the engine's error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an internal error.
func rejectionStatus(err error) int {
	var validationErr *core.ValidationError
	var duplicateErr *core.DuplicateError
	var locationErr *core.LocationError
	var notFoundErr *core.NotFoundError
	var closedErr *core.AlreadyClosedError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &duplicateErr):
		return http.StatusConflict
	case errors.As(err, &locationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &closedErr):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (ep *Endpoint) engine(c *gin.Context) (*core.Engine, error) {
	pol, err := ep.base.Policy(c)
	if err != nil {
		return nil, err
	}

	engine := core.NewEngine(pol)
	engine.Hooks = []core.PostCommitHook{
		engine.FraudHook(ep.alerter),
		core.StatsHook(),
	}
	return engine, nil
}

func (ep *Endpoint) Mark(c *gin.Context) {
	var dto MarkAttendanceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	engine, err := ep.engine(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	record, err := engine.Mark(db, dto.ToSubmission(ep.base.Tenant(c)))
	if err != nil {
		c.JSON(rejectionStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(gin.H{
		"record":  record,
		"intents": core.IntentsFor(record),
	}))
}

func (ep *Endpoint) Checkout(c *gin.Context) {
	var dto CheckoutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	engine, err := ep.engine(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	record, err := engine.Checkout(db, dto.Username)
	if err != nil {
		c.JSON(rejectionStatus(err), web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(record))
}
