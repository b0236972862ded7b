package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/presentation"
)

func (a *app) adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands (need the admin passphrase)",
	}

	seating := &cobra.Command{
		Use:   "seating",
		Short: "Edit the seating chart",
	}
	seating.AddCommand(a.adminSeatingSwapCmd(), a.adminSeatingAssignCmd())

	items := &cobra.Command{
		Use:   "items",
		Short: "Manage store items",
	}
	items.AddCommand(a.adminItemsAddCmd())

	students := &cobra.Command{
		Use:   "students",
		Short: "Manage students",
	}
	students.AddCommand(a.adminStudentsAddCmd())

	admin.AddCommand(a.adminLoginCmd(), seating, items, students, a.adminExportCmd())
	return admin
}

func (a *app) adminLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the admin passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.adminPassword()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := a.api.AdminLogin(ctx, pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true, "Admin passphrase accepted"))
			return nil
		},
	}
}

// editSeating loads the chart, applies edit and submits the whole chart
func (a *app) editSeating(cmd *cobra.Command, edit func([]dto.SeatInput) error) error {
	pw, err := a.adminPassword()
	if err != nil {
		return err
	}

	ctx, cancel := a.context(cmd)
	defer cancel()

	seats, err := a.api.Seating(ctx)
	if err != nil {
		return err
	}
	inputs := chartInputs(seats)
	if err := edit(inputs); err != nil {
		return err
	}
	if err := a.api.ReplaceSeating(ctx, pw, inputs); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true, "Seating saved"))
	return a.printSeating(cmd)
}

func (a *app) adminSeatingSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <seat> <seat>",
		Short: "Swap the occupants of two seats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseSeat(args[0])
			if err != nil {
				return err
			}
			second, err := parseSeat(args[1])
			if err != nil {
				return err
			}
			return a.editSeating(cmd, func(inputs []dto.SeatInput) error {
				return swapSeats(inputs, first, second)
			})
		},
	}
}

func (a *app) adminSeatingAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <seat> <studentId|empty>",
		Short: "Seat a student, or empty a seat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seat, err := parseSeat(args[0])
			if err != nil {
				return err
			}
			var studentID *int64
			if args[1] != "empty" {
				id, err := parseStudentID(args[1])
				if err != nil {
					return err
				}
				studentID = &id
			}
			return a.editSeating(cmd, func(inputs []dto.SeatInput) error {
				assignSeat(inputs, seat, studentID)
				return nil
			})
		},
	}
}

func (a *app) adminItemsAddCmd() *cobra.Command {
	var req dto.CreateItemRequest
	var cost int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a store item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.adminPassword()
			if err != nil {
				return err
			}
			req.AdminPw = pw
			req.Cost = &cost

			ctx, cancel := a.context(cmd)
			defer cancel()

			item, err := a.api.CreateItem(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true,
				fmt.Sprintf("Added %s (%s, %d pts)", item.KeyName, item.Type, item.Cost)))
			return a.printShop(cmd, nil)
		},
	}

	cmd.Flags().StringVar(&req.KeyName, "key", "", "Unique item key, e.g. desk_green")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().IntVar(&cost, "cost", 0, "Price in points")
	cmd.Flags().StringVar(&req.Type, "type", "skin", "Item type: skin or title")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func (a *app) adminStudentsAddCmd() *cobra.Command {
	var req dto.CreateStudentRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.adminPassword()
			if err != nil {
				return err
			}
			req.AdminPw = pw

			ctx, cancel := a.context(cmd)
			defer cancel()

			student, err := a.api.CreateStudent(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true,
				fmt.Sprintf("Added student %s with id %d", student.Name, student.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Unique student name")
	cmd.Flags().StringVar(&req.Password, "password", "", "Login password")
	cmd.Flags().IntVar(&req.Points, "points", 0, "Starting points")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) adminExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <year> <month>",
		Short: "Download the monthly attendance CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			data, filename, err := a.api.Export(ctx, year, month)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), presentation.Result(a.styles, true, "Saved "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file ('-' for stdout, default: server filename)")
	return cmd
}
