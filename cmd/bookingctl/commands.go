package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	intentStore "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/intent"
	meetingsService "github.com/m04kA/SMC-MeetingBooking/internal/service/meetings"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
	checkEquipment "github.com/m04kA/SMC-MeetingBooking/internal/usecase/check_equipment"
	findAvailableRooms "github.com/m04kA/SMC-MeetingBooking/internal/usecase/find_available_rooms"
	setRecurrence "github.com/m04kA/SMC-MeetingBooking/internal/usecase/set_recurrence"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// roleAdmin роль, которой виден журнал всех организаторов
const roleAdmin = "ADMIN"

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Meeting room availability and booking console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "config.toml", "path to config file")
	root.PersistentFlags().StringVar(&a.token, "token", "", "bearer token (default $"+envToken+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newValidateCmd(a),
		newRoomsCmd(a),
		newEquipmentCmd(a),
		newBookCmd(a),
		newRecurrenceCmd(a),
		newCancelCmd(a),
		newOrphansCmd(a),
	)
	return root
}

func newValidateCmd(a *app) *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a time window is well formed",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.location()
			if err != nil {
				return err
			}
			result := domain.ValidateTimeRange(start, end, loc)
			if !result.Valid {
				return result.Error
			}
			return a.print(map[string]string{"start": result.Start, "end": result.End})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start time, YYYY-MM-DDTHH:mm:ss")
	cmd.Flags().StringVar(&end, "end", "", "end time, YYYY-MM-DDTHH:mm:ss")
	return cmd
}

func newRoomsCmd(a *app) *cobra.Command {
	var req findAvailableRooms.Request
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List physical rooms free for a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			resp, err := findAvailableRooms.NewUseCase(a.client(), loc, a.log).Execute(ctx, &req)
			if err != nil {
				return err
			}
			if resp.NoRooms {
				fmt.Fprintln(a.out, "no rooms available for this window")
				return nil
			}
			return a.print(resp.Rooms)
		},
	}
	cmd.Flags().StringVar(&req.Start, "start", "", "start time")
	cmd.Flags().StringVar(&req.End, "end", "", "end time")
	cmd.Flags().IntVar(&req.Capacity, "capacity", 1, "number of participants")
	cmd.Flags().StringVar(&req.RoomType, "type", string(domain.RoomTypePhysical), "room type")
	return cmd
}

func newEquipmentCmd(a *app) *cobra.Command {
	var (
		start, end string
		items      []string
	)
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Check equipment availability for a window (advisory only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseItems(items)
			if err != nil {
				return err
			}
			ctx, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			resp, err := checkEquipment.NewUseCase(a.client(), loc, a.log).Execute(ctx, &checkEquipment.Request{
				Start: start,
				End:   end,
				Items: parsed,
			})
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start time")
	cmd.Flags().StringVar(&end, "end", "", "end time")
	cmd.Flags().StringArrayVar(&items, "item", nil, "requested item as NAME=QTY, repeatable")
	return cmd
}

func newBookCmd(a *app) *cobra.Command {
	var (
		req        bookMeeting.StartRequest
		physicalID int64
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Create a meeting, its room and assign a physical room",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			orphans, closeFn, err := a.orphans(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			uc := bookMeeting.NewUseCase(
				a.client(),
				intentStore.NewStore(1, time.Hour),
				orphans,
				(*metrics.Metrics)(nil),
				bookMeeting.RetryPolicy{
					MaxRetries:      a.cfg.Backend.MaxRetries,
					InitialInterval: time.Duration(a.cfg.Backend.RetryInitialIntervalMs) * time.Millisecond,
					MaxInterval:     time.Duration(a.cfg.Backend.RetryMaxIntervalMs) * time.Millisecond,
				},
				loc,
				a.log,
			)

			req.OrganizerID = sess.UserID()
			if physicalID > 0 {
				req.PhysicalID = &physicalID
			}

			started, err := uc.Start(ctx, &req)
			if err != nil {
				return err
			}

			resp, err := uc.Run(ctx, &bookMeeting.StepRequest{
				IntentID:    started.Intent.ID,
				OrganizerID: req.OrganizerID,
			})
			if resp != nil {
				if printErr := a.print(newIntentView(resp)); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "meeting title")
	cmd.Flags().StringVar(&req.Description, "description", "", "meeting description")
	cmd.Flags().StringVar(&req.Start, "start", "", "start time")
	cmd.Flags().StringVar(&req.End, "end", "", "end time")
	cmd.Flags().IntVar(&req.Capacity, "capacity", 0, "number of participants")
	cmd.Flags().StringVar(&req.RoomType, "type", string(domain.RoomTypePhysical), "room type")
	cmd.Flags().StringVar(&req.RoomName, "room-name", "", "meeting room name (default: title)")
	cmd.Flags().Int64Var(&physicalID, "physical-id", 0, "physical room to assign")
	return cmd
}

func newRecurrenceCmd(a *app) *cobra.Command {
	var (
		req            setRecurrence.Request
		maxOccurrences int
	)
	cmd := &cobra.Command{
		Use:   "recurrence MEETING_ID",
		Short: "Set the recurrence of an existing meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			ctx, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			req.MeetingID = id
			if cmd.Flags().Changed("max") {
				req.MaxOccurrences = &maxOccurrences
			}
			resp, err := setRecurrence.NewUseCase(a.client(), a.log).Execute(ctx, &req)
			if err != nil {
				return err
			}
			return a.print(resp.Meeting)
		},
	}
	cmd.Flags().StringVar(&req.Type, "type", "", "DAILY, WEEKLY or MONTHLY")
	cmd.Flags().StringVar(&req.Until, "until", "", "last date of the series, YYYY-MM-DD")
	cmd.Flags().IntVar(&maxOccurrences, "max", 0, "maximum number of occurrences")
	cmd.Flags().StringVar(&req.MeetingStart, "meeting-start", "", "meeting start, rejects --until before its date")
	return cmd
}

func newCancelCmd(a *app) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "cancel MEETING_ID",
		Short: "Cancel a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			ctx, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			svc := meetingsService.NewService(a.client(), nil, a.log)
			if err := svc.Cancel(ctx, &models.CancelMeetingRequest{MeetingID: id, Reason: reason}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "meeting %d cancelled\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	return cmd
}

func newOrphansCmd(a *app) *cobra.Command {
	var limit uint64
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List backend resources left behind by unfinished bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sess, err := a.verifiedSession(cmd.Context())
			if err != nil {
				return err
			}
			orphans, closeFn, err := a.orphans(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			svc := meetingsService.NewService(nil, orphans, a.log)
			resp, err := svc.ListOrphans(ctx, &models.ListOrphansRequest{
				UserID:  sess.UserID(),
				IsAdmin: sess.Role() == roleAdmin,
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of records")
	return cmd
}

// parseItems разбирает значения --item вида NAME=QTY
func parseItems(values []string) ([]checkEquipment.Item, error) {
	items := make([]checkEquipment.Item, 0, len(values))
	for _, v := range values {
		name, qty, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("item %q: expected NAME=QTY", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("item %q: quantity is not a number", v)
		}
		items = append(items, checkEquipment.Item{Name: strings.TrimSpace(name), Quantity: n})
	}
	return items, nil
}

func parseMeetingID(v string) (int64, error) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid meeting id %q", v)
	}
	return id, nil
}

// intentView вывод бронирования в консоль
type intentView struct {
	IntentID  string                  `json:"intentId"`
	State     domain.BookingState     `json:"state"`
	NextStep  domain.BookingStep      `json:"nextStep,omitempty"`
	Start     types.LocalDateTime     `json:"start"`
	End       types.LocalDateTime     `json:"end"`
	MeetingID *int64                  `json:"meetingId,omitempty"`
	RoomID    *int64                  `json:"roomId,omitempty"`
	LastError string                  `json:"lastError,omitempty"`
	Orphans   []domain.OrphanResource `json:"orphans,omitempty"`
}

func newIntentView(resp *bookMeeting.Response) intentView {
	return intentView{
		IntentID:  resp.Intent.ID,
		State:     resp.Intent.State,
		NextStep:  resp.NextStep,
		Start:     resp.Intent.Start,
		End:       resp.Intent.End,
		MeetingID: resp.Intent.MeetingID,
		RoomID:    resp.Intent.RoomID,
		LastError: resp.Intent.LastError,
		Orphans:   resp.Orphans,
	}
}
