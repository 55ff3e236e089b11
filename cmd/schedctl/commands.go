package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hackgods/meeting-scheduler/internal/api"
	redisclient "github.com/hackgods/meeting-scheduler/internal/redis"
	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

// timeLayouts are tried in order; the last matches an HTML datetime-local value.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, want RFC 3339 or YYYY-MM-DDTHH:MM", s)
}

func newAvailabilityCmd(client func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "availability",
		Aliases: []string{"avail"},
		Short:   "List and edit availability slots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List availability slots in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := client().ListAvailability(cmd.Context())
			if err != nil {
				return err
			}
			printSlots(cmd.OutOrStdout(), slots)
			return nil
		},
	})

	var hint string
	add := &cobra.Command{
		Use:   "add START END",
		Short: "Add an availability slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTime(args[0])
			if err != nil {
				return err
			}
			end, err := parseTime(args[1])
			if err != nil {
				return err
			}
			slot, err := client().AddAvailability(cmd.Context(), api.AddSlotRequest{Start: &start, End: &end, DisplayHint: hint})
			if err != nil {
				return err
			}
			printSlots(cmd.OutOrStdout(), []api.SlotResponse{slot})
			return nil
		},
	}
	add.Flags().StringVar(&hint, "display", "", "rendering hint stored with the slot")
	cmd.AddCommand(add)

	var startFlag, endFlag, displayFlag string
	modify := &cobra.Command{
		Use:   "modify ID",
		Short: "Replace the start, end or display hint of a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.ModifySlotRequest
			if cmd.Flags().Changed("start") {
				t, err := parseTime(startFlag)
				if err != nil {
					return err
				}
				req.Start = &t
			}
			if cmd.Flags().Changed("end") {
				t, err := parseTime(endFlag)
				if err != nil {
					return err
				}
				req.End = &t
			}
			if cmd.Flags().Changed("display") {
				req.DisplayHint = &displayFlag
			}
			slot, err := client().ModifyAvailability(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			printSlots(cmd.OutOrStdout(), []api.SlotResponse{slot})
			return nil
		},
	}
	modify.Flags().StringVar(&startFlag, "start", "", "new start time")
	modify.Flags().StringVar(&endFlag, "end", "", "new end time")
	modify.Flags().StringVar(&displayFlag, "display", "", "new display hint")
	cmd.AddCommand(modify)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an availability slot; existing meetings are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().DeleteAvailability(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func newMeetingCmd(client func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Request meetings and answer meeting requests",
	}

	listCmd := func(use, short, view string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				meetings, err := client().ListMeetings(cmd.Context(), view)
				if err != nil {
					return err
				}
				printMeetings(cmd.OutOrStdout(), meetings)
				return nil
			},
		}
	}
	cmd.AddCommand(
		listCmd("list", "List all meetings", ""),
		listCmd("requests", "List meetings waiting for an answer", "requests"),
		listCmd("upcoming", "List confirmed meetings by start time", "upcoming"),
	)

	var title, description string
	request := &cobra.Command{
		Use:   "request START END",
		Short: "Request a meeting inside an availability slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTime(args[0])
			if err != nil {
				return err
			}
			end, err := parseTime(args[1])
			if err != nil {
				return err
			}
			m, err := client().RequestMeeting(cmd.Context(), api.RequestMeetingRequest{
				Title:       title,
				Description: description,
				Start:       &start,
				End:         &end,
			})
			if err != nil {
				return err
			}
			printMeetings(cmd.OutOrStdout(), []api.MeetingResponse{m})
			return nil
		},
	}
	request.Flags().StringVar(&title, "title", "", "meeting title")
	request.Flags().StringVar(&description, "description", "", "meeting description")
	cmd.AddCommand(request)

	for _, action := range []string{"accept", "decline"} {
		cmd.AddCommand(&cobra.Command{
			Use:   action + " ID",
			Short: action + " a requested meeting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := client().Transition(cmd.Context(), args[0], action)
				if err != nil {
					return err
				}
				printMeetings(cmd.OutOrStdout(), []api.MeetingResponse{m})
				return nil
			},
		})
	}

	return cmd
}

func newCalendarCmd(client func() *Client) *cobra.Command {
	var ics bool
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the calendar grid, or export it as iCalendar with --ics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ics {
				return client().CalendarICS(cmd.Context(), cmd.OutOrStdout())
			}
			cal, err := client().Calendar(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tID\tTITLE\tSTART\tEND\tCOLOR")
			for _, ev := range cal.Events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					ev.Kind, ev.ID, ev.Title, ev.Start.Format(time.RFC3339), ev.End.Format(time.RFC3339), ev.Color)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&ics, "ics", false, "write an iCalendar feed instead of a table")
	return cmd
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var redisAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream lifecycle events for the user from Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.user == "" {
				return fmt.Errorf("--user is required for watch")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			rdb, err := redisclient.NewRedisClient(ctx, redisAddr, "", "")
			if err != nil {
				return err
			}
			defer rdb.Close()

			out := cmd.OutOrStdout()
			return redisclient.Subscribe(ctx, rdb, opts.user, func(ev scheduling.Event) {
				fmt.Fprintf(out, "%s %s %s\n", ev.OccurredAt.Format(time.RFC3339), ev.Type, ev.SubjectID())
			})
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", envOr("REDIS_ADDR", "127.0.0.1:6379"), "redis host:port")
	return cmd
}

func printSlots(w io.Writer, slots []api.SlotResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tEND\tDISPLAY")
	for _, s := range slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339), s.DisplayHint)
	}
	tw.Flush()
}

func printMeetings(w io.Writer, meetings []api.MeetingResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tSTART\tEND")
	for _, m := range meetings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Status, m.Title, m.Start.Format(time.RFC3339), m.End.Format(time.RFC3339))
	}
	tw.Flush()
}

