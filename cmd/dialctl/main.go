package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arianafaustini/dial-tester/internal/config"
	"github.com/arianafaustini/dial-tester/internal/dial"
	logger "github.com/arianafaustini/dial-tester/internal/logging"
	"github.com/arianafaustini/dial-tester/internal/stats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL string

	root := &cobra.Command{
		Use:           "dialctl",
		Short:         "Emotional-response dial recording client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "dial-tester server URL (defaults to client.server_url)")

	root.AddCommand(newRecordCmd(&serverURL))
	root.AddCommand(newSessionsCmd(&serverURL))
	root.AddCommand(newSessionCmd(&serverURL))
	return root
}

// loadClient initializes logging and config, then builds the HTTP gateway.
func loadClient(serverURL string) (*dial.HTTPGateway, *zap.Logger, error) {
	_ = godotenv.Load()
	log, err := logger.Init(logger.DefaultOptions("."))
	if err != nil {
		return nil, nil, err
	}
	if err := config.Init(".", log); err != nil {
		return nil, nil, err
	}
	if serverURL == "" {
		serverURL = config.Conf.Client.ServerURL
	}
	return dial.NewHTTPGateway(serverURL), log, nil
}

func newRecordCmd(serverURL *string) *cobra.Command {
	var email string
	var duration time.Duration
	var pauseAfter time.Duration
	var pauseFor time.Duration

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a simulated drag session against the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			gateway, log, err := loadClient(*serverURL)
			if err != nil {
				return err
			}
			defer log.Sync()

			recorder := dial.NewRecorder(gateway, log)
			queue := dial.NewWriteQueue(gateway, log, config.Conf.Client.QueueSize)
			track := dial.Track{Left: 0, Width: 1000}
			throttle := time.Duration(config.Conf.Client.SaveThrottleMS) * time.Millisecond
			sampler := dial.NewSampler(recorder, queue, track, throttle)

			session, err := recorder.Start(cmd.Context(), email)
			if err != nil {
				return err
			}
			sampler.Reset()
			fmt.Fprintf(cmd.OutOrStdout(), "session %s started for %s\n", session.ID, email)

			// Sweep the dial left to right and back, sampling at ~50Hz the
			// way a drag gesture would.
			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()
			start := time.Now()
			paused := false

			sampler.PointerDown(track.Left + track.Width/2)
			for elapsed := time.Duration(0); elapsed < duration; elapsed = time.Since(start) {
				<-ticker.C

				if pauseFor > 0 && !paused && elapsed >= pauseAfter {
					recorder.Pause()
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] paused\n", dial.FormatElapsed(recorder.Elapsed()))
					time.Sleep(pauseFor)
					recorder.Resume()
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] resumed\n", dial.FormatElapsed(recorder.Elapsed()))
					paused = true
				}

				phase := elapsed.Seconds() / 2 * math.Pi
				position := track.Left + (math.Sin(phase)+1)/2*track.Width
				sampler.PointerMove(position)
			}
			sampler.PointerUp()

			completed, err := recorder.Complete(cmd.Context())
			if err != nil {
				return err
			}
			queue.Close()

			summary := stats.Compute(sampler.Values())
			fmt.Fprintf(cmd.OutOrStdout(), "session %s completed after %s with %d samples\n",
				completed.ID, dial.FormatElapsed(recorder.Elapsed()), len(sampler.Samples()))
			fmt.Fprintf(cmd.OutOrStdout(), "highest %d  lowest %d  average %.1f  mode %d\n",
				summary.Highest, summary.Lowest, summary.Average, summary.Mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "participant email")
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to record")
	cmd.Flags().DurationVar(&pauseAfter, "pause-after", 0, "pause the session after this long")
	cmd.Flags().DurationVar(&pauseFor, "pause-for", 0, "how long to stay paused")
	return cmd
}

func newSessionsCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List all sessions with summary statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gateway, log, err := loadClient(*serverURL)
			if err != nil {
				return err
			}
			defer log.Sync()

			sessions, err := gateway.ListSessions(cmd.Context())
			if err != nil {
				return err
			}

			overview := stats.ComputeOverview(sessions)
			fmt.Fprintf(cmd.OutOrStdout(), "%d sessions, %d data points, %d participants, avg %d min\n\n",
				overview.TotalSessions, overview.TotalDataPoints, overview.UniqueParticipants, overview.AvgDurationMinutes)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tSTARTED\tPOINTS\tHIGH\tLOW\tAVG\tMODE")
			for _, session := range sessions {
				summary := stats.Compute(stats.ValuesOf(session.DataPoints))
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\t%d\n",
					session.ID, session.Email, session.StartTime.Format(time.RFC3339),
					len(session.DataPoints), summary.Highest, summary.Lowest, summary.Average, summary.Mode)
			}
			return w.Flush()
		},
	}
}

func newSessionCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "session <id>",
		Short: "Show one session with its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, log, err := loadClient(*serverURL)
			if err != nil {
				return err
			}
			defer log.Sync()

			session, err := gateway.GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "session %s  participant %s\n", session.ID, session.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "started %s\n", session.StartTime.Format(time.RFC3339))
			if session.EndTime != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "ended %s (%s)\n",
					session.EndTime.Format(time.RFC3339), session.Duration().Round(time.Second))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "still recording")
			}

			summary := stats.Compute(stats.ValuesOf(session.DataPoints))
			fmt.Fprintf(cmd.OutOrStdout(), "%d data points  highest %d  lowest %d  average %.1f  mode %d\n",
				len(session.DataPoints), summary.Highest, summary.Lowest, summary.Average, summary.Mode)
			return nil
		},
	}
}
