package cli

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/spf13/cobra"
)

func (a *App) expireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-proposals",
		Short: "Mark pending make-up proposals with only past slots as expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			services, err := app.NewServices(pool, cfg, a.logger)
			if err != nil {
				return err
			}

			n, err := services.Proposals.ExpireStale(ctx, time.Now().In(cfg.Location()))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Expired %d proposal(s)\n", n)
			return nil
		},
	}
}
