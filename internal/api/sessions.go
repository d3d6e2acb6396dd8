package api

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/labstack/echo/v4"
)

type sessionAPI struct {
	service SessionService
}

func registerSessionAPI(g *echo.Group, svc SessionService) {
	api := sessionAPI{service: svc}

	sg := g.Group("/sessions/:id")
	sg.POST("/attend", api.attend)
	sg.POST("/status", api.changeStatus)
}

// ChangeStatusRequest тело запроса смены статуса
type ChangeStatusRequest struct {
	Status   string `json:"status" validate:"required,max=64"`
	Override bool   `json:"override"`
}

func sessionID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadSessionID
	}
	return id, nil
}

func (api *sessionAPI) attend(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	session, err := api.service.MarkAttended(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

func (api *sessionAPI) changeStatus(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	data := new(ChangeStatusRequest)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := c.Validate(data); err != nil {
		return err
	}

	session, err := api.service.ChangeStatus(c.Request().Context(), service.ChangeStatusRequest{
		SessionID: id,
		Status:    data.Status,
		Override:  data.Override,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}
