package api

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type proposalAPI struct {
	service  ProposalService
	location *time.Location
}

func registerProposalAPI(g *echo.Group, svc ProposalService, location *time.Location) {
	if location == nil {
		location = time.Local
	}
	api := proposalAPI{service: svc, location: location}

	pg := g.Group("/proposals")
	pg.POST("", api.propose)
	pg.POST("/:id/approve", api.approve)
	pg.POST("/:id/reject", api.reject)
}

// ProposalSlotRequest вариант времени отработки
type ProposalSlotRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required"`
	TutorID  int64  `json:"tutor_id" validate:"required,gt=0"`
	Location string `json:"location"`
}

// ProposeRequest тело запроса на создание предложения
type ProposeRequest struct {
	OriginalSessionID int64                 `json:"original_session_id" validate:"required,gt=0"`
	ProposedBy        int64                 `json:"proposed_by" validate:"required,gt=0"`
	Notes             string                `json:"notes"`
	Slots             []ProposalSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

type ApproveRequest struct {
	SlotIndex int `json:"slot_index" validate:"required,gt=0"`
}

func proposalID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errBadProposalID
	}
	return id, nil
}

func (api *proposalAPI) propose(c echo.Context) error {
	data := new(ProposeRequest)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := c.Validate(data); err != nil {
		return err
	}

	req := service.ProposeRequest{
		OriginalSessionID: data.OriginalSessionID,
		ProposedBy:        data.ProposedBy,
		Notes:             data.Notes,
		Slots:             make([]service.ProposalSlotRequest, 0, len(data.Slots)),
	}
	for _, slot := range data.Slots {
		date, err := calendar.ParseDate(slot.Date, api.location)
		if err != nil {
			return errBadDate
		}
		req.Slots = append(req.Slots, service.ProposalSlotRequest{
			Date:     date,
			TimeSlot: slot.TimeSlot,
			TutorID:  slot.TutorID,
			Location: slot.Location,
		})
	}

	proposal, err := api.service.Propose(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, proposal)
}

func (api *proposalAPI) approve(c echo.Context) error {
	id, err := proposalID(c)
	if err != nil {
		return err
	}
	data := new(ApproveRequest)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := c.Validate(data); err != nil {
		return err
	}

	session, err := api.service.Approve(c.Request().Context(), id, data.SlotIndex)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

func (api *proposalAPI) reject(c echo.Context) error {
	id, err := proposalID(c)
	if err != nil {
		return err
	}
	if err := api.service.Reject(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
