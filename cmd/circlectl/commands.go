package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aidar/circles/internal/circleview"
	"github.com/aidar/circles/internal/participants"
)

func loginCmd(c *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := c.client().Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func listCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all circles by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			circles, err := c.client().ListCircles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list circles: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tHOST\tSTARTS")
			for _, circle := range circles {
				status := circleview.StatusTextUpcoming
				if circle.IsLive {
					status = circleview.StatusTextLive
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					circle.ID, status, circle.Title, circle.Username, circleview.FormatStart(circle.StartDate))
			}
			return tw.Flush()
		},
	}
}

// loadPage builds a view-model for the circle and waits for its fetches
func loadPage(cmd *cobra.Command, c *cli, circleID string) (*circleview.ViewModel, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	vm := circleview.New(c.client(), session, circleID, c.logger)
	if err := vm.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return vm, nil
}

func render(cmd *cobra.Command, vm *circleview.ViewModel) error {
	page := circleview.Present(vm.Snapshot(), vm.Session().UserID)
	return circleview.RenderPage(cmd.OutOrStdout(), page)
}

func showCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <circle_id>",
		Short: "Show a circle page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := loadPage(cmd, c, args[0])
			if err != nil {
				return err
			}
			return render(cmd, vm)
		},
	}
}

func toggleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <circle_id>",
		Aliases: []string{"register"},
		Short:   "Register for a circle, or unregister if already registered",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := loadPage(cmd, c, args[0])
			if err != nil {
				return err
			}
			if err := vm.ToggleRegistration(cmd.Context()); err != nil {
				return fmt.Errorf("toggle registration: %w", err)
			}
			return render(cmd, vm)
		},
	}
}

func participantsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Render the speakers/listeners panel from a participants snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var src participants.Source = participants.FileSource{Path: file}
			ps, err := src.Participants(cmd.Context())
			if err != nil {
				return err
			}
			return participants.RenderPanel(cmd.OutOrStdout(), participants.Classify(ps))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON snapshot of the call participants")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
