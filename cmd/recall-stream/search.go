package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/usestring/recall-stream/internal/config"
	"github.com/usestring/recall-stream/internal/logging"
	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/internal/session"
	"github.com/usestring/recall-stream/pkg/client"
	"github.com/usestring/recall-stream/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one recall search and print the results",
	Long: `Search sends the criteria to the recall backend and waits until it reports
completion or no results. Progress is printed to stderr while results stream
in; the final report goes to stdout in the chosen format.

All four criteria are required. Source is PMDA or FDA; period is a
four-digit year.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("email", "", "address the backend mails the CSV export to")
	searchCmd.Flags().String("keyword", "", "product or ingredient keyword")
	searchCmd.Flags().String("source", "", "recall data source: PMDA or FDA")
	searchCmd.Flags().String("period", "", "four-digit year, e.g. 2024")
	searchCmd.Flags().StringP("output", "o", "text", "output format: text, json, yaml, or html")
	searchCmd.Flags().Duration("wait", 0, "give up waiting after this long (default: wait until the search finishes)")
	searchCmd.Flags().String("lang", "ja", "language for text output and progress")
	searchCmd.Flags().Bool("quiet", false, "do not print progress to stderr")

	for _, name := range []string{"email", "keyword", "source", "period", "output", "wait", "lang", "quiet"} {
		_ = viper.BindPFlag(name, searchCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(viper.GetString("output"))
	if err != nil {
		return err
	}

	cfg := config.Load()
	if u := viper.GetString("ws-url"); u != "" {
		cfg.WSURL = u
	}
	logCfg := logging.FromConfig(cfg)
	logCfg.Level = viper.GetString("log-level")
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCleanup()

	criteria := types.SearchCriteria{
		Email:   viper.GetString("email"),
		Keyword: viper.GetString("keyword"),
		Source:  types.Source(viper.GetString("source")),
		Period:  viper.GetString("period"),
	}

	printer := render.NewPrinter(viper.GetString("lang"))
	var progress io.Writer = cmd.ErrOrStderr()
	if viper.GetBool("quiet") {
		progress = io.Discard
	}

	conn := client.New(cfg.ClientOptions()...)
	defer conn.Close()

	snap, err := search(cmd.Context(), conn, criteria, viper.GetDuration("wait"), printer, progress)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(cmd.ErrOrStderr(), types.ValidationNotice)
		}
		if !hasPartialResult(snap, err) {
			return err
		}
		// Print what arrived before giving up.
		if werr := writeOutput(cmd.OutOrStdout(), format, snap, printer); werr != nil {
			return werr
		}
		return err
	}

	return writeOutput(cmd.OutOrStdout(), format, snap, printer)
}

// hasPartialResult reports whether err cut short a search that was running,
// so snap holds whatever arrived before the wait bound expired. A dial
// timeout also matches context.DeadlineExceeded but leaves snap idle.
func hasPartialResult(snap types.Snapshot, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) && snap.Status == types.StatusSearching
}

// search runs one search over t and waits for it to settle. A positive wait
// bounds the wait; on expiry the partial snapshot is returned with
// context.DeadlineExceeded.
func search(ctx context.Context, t client.Transport, c types.SearchCriteria, wait time.Duration, printer *render.Printer, progress io.Writer) (types.Snapshot, error) {
	if err := c.Normalize().Validate(); err != nil {
		return types.Snapshot{}, err
	}

	var mu sync.Mutex
	lastProgress := types.Progress{Received: -1}
	sess := session.New(t,
		session.WithObserver(func(s types.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			if s.Status != types.StatusSearching || s.Progress == lastProgress {
				return
			}
			lastProgress = s.Progress
			fmt.Fprintf(progress, "\r%s %s", printer.Status(s.Status), printer.Progress(s.Progress))
		}),
		session.WithNotifier(func(n session.Notice) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(progress, "\n%s\n", n.Message)
		}),
	)

	if err := sess.Start(ctx); err != nil {
		return sess.Snapshot(), err
	}
	if err := sess.Submit(ctx, c); err != nil {
		return sess.Snapshot(), err
	}

	waitCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	snap, err := sess.Wait(waitCtx)
	if err != nil {
		fmt.Fprintln(progress)
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return snap, fmt.Errorf("search did not finish within %s: %w", wait, err)
		}
		return snap, err
	}
	return snap, nil
}
