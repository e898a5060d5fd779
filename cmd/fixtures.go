package cmd

import (
	"fmt"

	"seatwell/config"
	"seatwell/models"

	"github.com/spf13/cobra"
)

func newFixturesCommand(cfg *config.Config) *cobra.Command {
	var path string

	command := &cobra.Command{
		Use:   "fixtures",
		Short: "Print the marketplace data the server seeds at startup",
		RunE: func(command *cobra.Command, args []string) error {
			s, err := loadStore(path)
			if err != nil {
				return fmt.Errorf("load fixtures: %w", err)
			}

			out := command.OutOrStdout()
			c := s.Counts()
			fmt.Fprintf(out, "users: %d, games: %d, tickets: %d (%d available)\n",
				c.Users, c.Games, c.Tickets, c.TicketsByStatus[models.TicketAvailable])

			for _, g := range s.AllGames() {
				fmt.Fprintf(out, "game %d: %s vs %s, %s, %s\n",
					g.ID, g.HomeTeam, g.AwayTeam, g.Venue, g.Date.Format("2006-01-02 15:04"))
				for _, t := range s.TicketsByGame(g.ID) {
					fmt.Fprintf(out, "  ticket %d: seat %s, %s, %s\n",
						t.ID, t.SeatNumber, models.FormatCents(t.Price, cfg.Currency), t.Status)
				}
			}
			return nil
		},
	}
	command.Flags().StringVar(&path, "file", cfg.FixturesPath, "fixture file to load instead of the embedded demo data")

	return command
}
