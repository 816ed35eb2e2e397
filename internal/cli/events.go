package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go2/internal/model"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream live events from a match",
		Long: `Connect to the match's websocket feed and print events as they happen.

Events include:
  - match_started: Placement finished, the first shot is yours
  - shot_fired: A shot landed (either side)
  - ship_sunk: A ship went down
  - turn_changed: The turn passed to the other side
  - match_over: A fleet was destroyed
  - match_abandoned: The match was abandoned

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

func streamEvents(ctx context.Context, w io.Writer, matchID string, jsonOutput bool) error {
	conn, err := client.DialEvents(matchID)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// Closing the connection unblocks ReadMessage on interrupt
	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to match %s\n", matchID)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					fmt.Fprintln(w, "Disconnected")
				}
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("server closed stream: %s", closeErr.Text)
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(w, data, jsonOutput)
	}
}

func printEvent(w io.Writer, data []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Fprintln(w, string(data))
		return
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		fmt.Fprintf(w, "unreadable event: %s\n", data)
		return
	}

	payload, _ := json.Marshal(event.Payload)
	line := fmt.Sprintf("[%s] %s", event.Timestamp.Format("2006-01-02 15:04:05"), event.Type)
	if event.Payload != nil {
		line += ": " + string(payload)
	}
	fmt.Fprintln(w, line)
}
