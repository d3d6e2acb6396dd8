package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/spf13/cobra"
)

const defaultTimezone = "Asia/Hong_Kong"

// renderOptions флаги render day|week
type renderOptions struct {
	date        string
	location    string
	tutorID     int64
	height      int
	fill        bool
	collapsed   []int64
	input       string
	output      string
	timezone    string
	statusTable string
	noProposals bool
}

func (o *renderOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.date, "date", "", "Date to render (YYYY-MM-DD, default today)")
	f.StringVar(&o.location, "location", "", "Only sessions at this location")
	f.Int64Var(&o.tutorID, "tutor", 0, "Only sessions of this tutor")
	f.IntVar(&o.height, "height", 0, "Image height in pixels")
	f.BoolVar(&o.fill, "fill", false, "Stretch the visible hours to the image height")
	f.Int64SliceVar(&o.collapsed, "collapse", nil, "Tutor ids whose columns are collapsed (day view)")
	f.StringVar(&o.input, "input", "", "JSON file with sessions; renders offline without the database")
	f.StringVarP(&o.output, "out", "o", "", "Output PNG file (required)")
	f.StringVar(&o.timezone, "timezone", defaultTimezone, "Timezone for offline rendering")
	f.StringVar(&o.statusTable, "statuses", "", "TOML status table for offline rendering")
	f.BoolVar(&o.noProposals, "no-proposals", false, "Do not draw proposed make-up sessions")
	_ = cmd.MarkFlagRequired("out")
}

func (o *renderOptions) tutor() *int64 {
	if o.tutorID == 0 {
		return nil
	}
	id := o.tutorID
	return &id
}

type renderFunc func(ctx context.Context, svc *service.CalendarService, date time.Time) ([]byte, *calendar.View, error)

func (a *App) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the calendar to a PNG file",
	}

	var day renderOptions
	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Render the daily view, one column per tutor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd.Context(), &day, func(ctx context.Context, svc *service.CalendarService, date time.Time) ([]byte, *calendar.View, error) {
				collapsed := make(map[int64]bool, len(day.collapsed))
				for _, id := range day.collapsed {
					collapsed[id] = true
				}
				return svc.RenderDaily(ctx, service.DayQuery{
					Date:             date,
					Location:         day.location,
					TutorID:          day.tutor(),
					ViewportHeight:   float64(day.height),
					FillHeight:       day.fill,
					Collapsed:        collapsed,
					IncludeProposals: !day.noProposals,
					ImageHeight:      day.height,
				})
			})
		},
	}
	day.bind(dayCmd)

	var week renderOptions
	weekCmd := &cobra.Command{
		Use:   "week",
		Short: "Render the weekly view, one column per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd.Context(), &week, func(ctx context.Context, svc *service.CalendarService, date time.Time) ([]byte, *calendar.View, error) {
				return svc.RenderWeekly(ctx, service.WeekQuery{
					Date:             date,
					Location:         week.location,
					TutorID:          week.tutor(),
					ViewportHeight:   float64(week.height),
					FillHeight:       week.fill,
					IncludeProposals: !week.noProposals,
					ImageHeight:      week.height,
				})
			})
		},
	}
	week.bind(weekCmd)

	cmd.AddCommand(dayCmd, weekCmd)
	return cmd
}

func (a *App) runRender(ctx context.Context, opts *renderOptions, render renderFunc) error {
	svc, cleanup, err := a.calendarService(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	date := time.Now().In(svc.Location())
	if opts.date != "" {
		date, err = calendar.ParseDate(opts.date, svc.Location())
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
	}

	img, view, err := render(ctx, svc, date)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, img, 0o644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	fmt.Fprintf(a.out, "Wrote %s: %d placed, %d unscheduled\n",
		opts.output, len(view.Layout.Placements), len(view.Layout.Skipped))
	for _, e := range view.Layout.Skipped {
		fmt.Fprintf(a.out, "  skipped %s %s (%q)\n", e.StudentName, e.Date.Format("2006-01-02"), e.TimeSlot)
	}
	return nil
}

// calendarService строит сервис поверх файла (--input) или базы
func (a *App) calendarService(ctx context.Context, opts *renderOptions) (*service.CalendarService, func(), error) {
	if opts.input != "" {
		loc, err := time.LoadLocation(opts.timezone)
		if err != nil {
			return nil, nil, fmt.Errorf("loading timezone: %w", err)
		}
		statuses, err := status.Load(opts.statusTable)
		if err != nil {
			return nil, nil, err
		}
		store, err := loadSessionsFile(opts.input, loc)
		if err != nil {
			return nil, nil, err
		}
		svc := service.NewCalendarService(store, store, nil, statuses, loc, a.logger)
		return svc, func() {}, nil
	}

	cfg, pool, err := a.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	services, err := app.NewServices(pool, cfg, a.logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if opts.height == 0 {
		opts.height = cfg.ImageHeight
	}
	return services.Calendar, pool.Close, nil
}
