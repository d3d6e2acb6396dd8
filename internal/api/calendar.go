package api

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type calendarAPI struct {
	service     CalendarService
	imageHeight int
}

func registerCalendarAPI(g *echo.Group, svc CalendarService, imageHeight int) {
	api := calendarAPI{service: svc, imageHeight: imageHeight}

	cg := g.Group("/calendar")
	cg.GET("/daily", api.daily)
	cg.GET("/daily.png", api.dailyImage)
	cg.GET("/weekly", api.weekly)
	cg.GET("/weekly.png", api.weeklyImage)
}

// calendarQuery параметры запроса вида календаря
type calendarQuery struct {
	Date          string  `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Location      string  `query:"location" validate:"max=100"`
	TutorID       int64   `query:"tutor_id" validate:"gte=0"`
	Viewport      float64 `query:"viewport" validate:"gte=0,lte=10000"`
	Height        int     `query:"height" validate:"gte=0,lte=4000"`
	Fill          bool    `query:"fill"`
	Collapsed     []int64 `query:"collapsed"`
	HideProposals bool    `query:"hide_proposals"`
}

func (q calendarQuery) tutorID() *int64 {
	if q.TutorID == 0 {
		return nil
	}
	id := q.TutorID
	return &id
}

func (api *calendarAPI) bindQuery(c echo.Context) (calendarQuery, time.Time, error) {
	var q calendarQuery
	if err := c.Bind(&q); err != nil {
		return q, time.Time{}, err
	}
	if err := c.Validate(&q); err != nil {
		return q, time.Time{}, err
	}

	loc := api.service.Location()
	date := time.Now().In(loc)
	if q.Date != "" {
		parsed, err := calendar.ParseDate(q.Date, loc)
		if err != nil {
			return q, time.Time{}, errBadDate
		}
		date = parsed
	}
	return q, date, nil
}

func (api *calendarAPI) dayQuery(q calendarQuery, date time.Time, viewport float64) service.DayQuery {
	collapsed := make(map[int64]bool, len(q.Collapsed))
	for _, id := range q.Collapsed {
		collapsed[id] = true
	}
	return service.DayQuery{
		Date:             date,
		Location:         q.Location,
		TutorID:          q.tutorID(),
		ViewportHeight:   viewport,
		FillHeight:       q.Fill,
		Collapsed:        collapsed,
		IncludeProposals: !q.HideProposals,
		ImageHeight:      api.height(q),
	}
}

func (api *calendarAPI) weekQuery(q calendarQuery, date time.Time, viewport float64) service.WeekQuery {
	return service.WeekQuery{
		Date:             date,
		Location:         q.Location,
		TutorID:          q.tutorID(),
		ViewportHeight:   viewport,
		FillHeight:       q.Fill,
		IncludeProposals: !q.HideProposals,
		ImageHeight:      api.height(q),
	}
}

func (api *calendarAPI) height(q calendarQuery) int {
	if q.Height > 0 {
		return q.Height
	}
	return api.imageHeight
}

// Handlers

func (api *calendarAPI) daily(c echo.Context) error {
	q, date, err := api.bindQuery(c)
	if err != nil {
		return err
	}
	view, err := api.service.Daily(c.Request().Context(), api.dayQuery(q, date, q.Viewport))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newViewResponse(view))
}

func (api *calendarAPI) dailyImage(c echo.Context) error {
	q, date, err := api.bindQuery(c)
	if err != nil {
		return err
	}
	img, _, err := api.service.RenderDaily(c.Request().Context(), api.dayQuery(q, date, float64(api.height(q))))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

func (api *calendarAPI) weekly(c echo.Context) error {
	q, date, err := api.bindQuery(c)
	if err != nil {
		return err
	}
	view, err := api.service.Weekly(c.Request().Context(), api.weekQuery(q, date, q.Viewport))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newViewResponse(view))
}

func (api *calendarAPI) weeklyImage(c echo.Context) error {
	q, date, err := api.bindQuery(c)
	if err != nil {
		return err
	}
	img, _, err := api.service.RenderWeekly(c.Request().Context(), api.weekQuery(q, date, float64(api.height(q))))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

// Responses

type viewResponse struct {
	Mode            string           `json:"mode"`
	From            string           `json:"from"`
	To              string           `json:"to"`
	Location        string           `json:"location,omitempty"`
	StartHour       int              `json:"start_hour"`
	EndHour         int              `json:"end_hour"`
	PixelsPerMinute float64          `json:"pixels_per_minute"`
	Height          float64          `json:"height"`
	Columns         []columnResponse `json:"columns"`
	Skipped         []entryResponse  `json:"skipped"`
}

type columnResponse struct {
	Key            string         `json:"key"`
	Title          string         `json:"title"`
	Date           string         `json:"date,omitempty"`
	TutorID        int64          `json:"tutor_id,omitempty"`
	Collapsed      bool           `json:"collapsed"`
	CollapsedCount int            `json:"collapsed_count,omitempty"`
	Cards          []cardResponse `json:"cards"`
}

type entryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	TutorID     int64  `json:"tutor_id"`
	TutorName   string `json:"tutor_name"`
	StudentName string `json:"student_name"`
	School      string `json:"school,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Status      string `json:"status"`
	Proposed    bool   `json:"proposed"`
}

type cardResponse struct {
	entryResponse
	GroupKey     string  `json:"group_key"`
	Top          float64 `json:"top"`
	Height       float64 `json:"height"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
	Column       int     `json:"column"`
	TotalColumns int     `json:"total_columns"`
	Order        int     `json:"order"`
}

func newViewResponse(view *calendar.View) viewResponse {
	resp := viewResponse{
		Mode:            string(view.Mode),
		From:            view.From.Format(dateLayout),
		To:              view.To.Format(dateLayout),
		Location:        view.Location,
		StartHour:       view.Layout.Hours.Start,
		EndHour:         view.Layout.Hours.End,
		PixelsPerMinute: view.Layout.Scale.PixelsPerMinute,
		Height:          view.Layout.Height(),
		Columns:         make([]columnResponse, 0, len(view.Columns)),
		Skipped:         make([]entryResponse, 0, len(view.Layout.Skipped)),
	}

	for _, col := range view.Columns {
		cr := columnResponse{
			Key:            col.Key,
			Title:          col.Title,
			TutorID:        col.TutorID,
			Collapsed:      col.Collapsed,
			CollapsedCount: view.Layout.CollapsedCounts[col.Key],
			Cards:          []cardResponse{},
		}
		if !col.Date.IsZero() {
			cr.Date = col.Date.Format(dateLayout)
		}
		for _, p := range view.Layout.ByScope(col.Key) {
			cr.Cards = append(cr.Cards, newCardResponse(p))
		}
		resp.Columns = append(resp.Columns, cr)
	}

	for _, e := range view.Layout.Skipped {
		resp.Skipped = append(resp.Skipped, newEntryResponse(e))
	}
	return resp
}

func newEntryResponse(e layout.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		TimeSlot:    e.TimeSlot,
		TutorID:     e.TutorID,
		TutorName:   e.TutorName,
		StudentName: e.StudentName,
		School:      e.School,
		Grade:       e.GradeKey(),
		Status:      e.Status,
		Proposed:    e.Proposed,
	}
}

func newCardResponse(p layout.Placement) cardResponse {
	return cardResponse{
		entryResponse: newEntryResponse(p.Entry),
		GroupKey:      p.GroupKey,
		Top:           p.Top,
		Height:        p.Height,
		LeftPercent:   p.LeftPercent,
		WidthPercent:  p.WidthPercent,
		Column:        p.Column,
		TotalColumns:  p.TotalColumns,
		Order:         p.Order,
	}
}
