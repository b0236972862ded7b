package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/client"
	"github.com/yigit/classpoints/internal/presentation"
)

func parseSeat(arg string) (int, error) {
	seat, err := strconv.Atoi(arg)
	if err != nil || seat < 0 || seat >= models.SeatCount {
		return 0, fmt.Errorf("seat must be a number between 0 and %d", models.SeatCount-1)
	}
	return seat, nil
}

func parseStudentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", arg)
	}
	return id, nil
}

func (a *app) printSeating(cmd *cobra.Command) error {
	ctx, cancel := a.context(cmd)
	defer cancel()

	seats, err := a.api.Seating(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), presentation.RenderSeating(a.styles, seats))
	return nil
}

func (a *app) seatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seating",
		Short: "Show the seating chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printSeating(cmd)
		},
	}
}

func (a *app) attendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attend <seat>",
		Short: "Check in the student sitting at a seat",
		Long: `Check in the student at the given seat (0-35) for today.

Arrival by 08:25 earns 100 points, by 08:40 earns 50 and later earns 10.
A second check-in on the same day is refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seatIndex, err := parseSeat(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			seats, err := a.api.Seating(ctx)
			if err != nil {
				return err
			}
			var seat *models.Seat
			for _, s := range seats {
				if s.SeatIndex == seatIndex {
					seat = s
					break
				}
			}
			out := cmd.OutOrStdout()
			if seat == nil || seat.Empty() {
				fmt.Fprintln(out, presentation.Result(a.styles, false, fmt.Sprintf("Seat %d is empty", seatIndex)))
				return nil
			}

			resp, err := a.api.Attend(ctx, *seat.StudentID)
			if err != nil {
				return err
			}
			if !resp.Success {
				fmt.Fprintln(out, presentation.Result(a.styles, false, resp.Message))
				return nil
			}

			name := ""
			if seat.Name != nil {
				name = *seat.Name
			}
			fmt.Fprintln(out, presentation.Result(a.styles, true,
				fmt.Sprintf("%s checked in at %s: %s, +%d points", name, resp.Time, resp.Status, resp.Points)))
			return a.printSeating(cmd)
		},
	}
}

func (a *app) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's attendance board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			board, err := a.api.Today(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), presentation.RenderToday(a.styles, board, ""))
			return nil
		},
	}
}

// targetStudent picks the student from the first argument or the logged-in session
func (a *app) targetStudent(args []string) (int64, error) {
	if len(args) > 0 {
		return parseStudentID(args[0])
	}
	session, err := a.requireSession()
	if err != nil {
		return 0, err
	}
	return session.StudentID, nil
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [studentId]",
		Short: "Show a student's attendance history (default: logged-in student)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := a.targetStudent(args)
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			records, err := a.api.History(ctx, studentID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), presentation.RenderHistory(a.styles, records))
			return nil
		},
	}
}

func (a *app) printShop(cmd *cobra.Command, student *models.Student) error {
	ctx, cancel := a.context(cmd)
	defer cancel()

	items, err := a.api.Items(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), presentation.RenderShop(a.styles, items, student))
	return nil
}

func (a *app) shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List store items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var student *models.Student
			if a.session.LoggedIn() {
				ctx, cancel := a.context(cmd)
				defer cancel()
				me, err := a.api.Me(ctx)
				if err != nil {
					a.log.Warn().Err(err).Msg("Could not load logged-in student")
				} else {
					student = me
				}
			}
			return a.printShop(cmd, student)
		},
	}
}

func (a *app) buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <itemKey>",
		Short: "Buy a store item as the logged-in student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.requireSession()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			resp, err := a.api.Buy(ctx, session.StudentID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, resp.Success, resp.Message))
			if !resp.Success {
				return nil
			}
			return a.printShop(cmd, resp.Student)
		},
	}
}

func (a *app) purchasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purchases [studentId]",
		Short: "Show purchase history (default: logged-in student)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := a.targetStudent(args)
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			purchases, err := a.api.Purchases(ctx, studentID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), presentation.RenderPurchases(a.styles, purchases))
			return nil
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name> <password>",
		Short: "Log in as a student",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			resp, err := a.api.Login(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			session := &client.Session{
				Server:      a.api.BaseURL(),
				Token:       resp.Token,
				StudentID:   resp.Student.ID,
				StudentName: resp.Student.Name,
			}
			if err := session.Save(a.sessionPath); err != nil {
				return err
			}
			a.session = session

			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true,
				fmt.Sprintf("Logged in as %s (%d pts)", resp.Student.Name, resp.Student.Points)))
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ClearSession(a.sessionPath); err != nil {
				return err
			}
			a.session = &client.Session{}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true, "Logged out"))
			return nil
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			student, err := a.api.Me(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), presentation.RenderStudent(a.styles, student))
			return nil
		},
	}
}
