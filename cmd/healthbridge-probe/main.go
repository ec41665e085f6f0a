package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/meltforce/healthbridge/internal/probe"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "HealthBridge server URL (e.g. https://healthbridge.tail1234.ts.net)")
	token := flag.String("token", "", "webhook token (must match the server's auth.token)")
	userID := flag.String("user", "test_user", "user scope for generated entities")
	testConn := flag.Bool("test-connection", false, "send a connectivity probe instead of metrics")
	continuous := flag.Bool("continuous", false, "keep sending payloads on an interval")
	interval := flag.Int("interval", 60, "seconds between payloads in continuous mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("healthbridge-probe", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" || *token == "" {
		fmt.Fprintf(os.Stderr, "Usage: healthbridge-probe -server <URL> -token <token> [-user ID] [-test-connection] [-continuous] [-interval N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	sendLog, err := probe.OpenSendLog(filepath.Join(homeDir, ".healthbridge-probe"))
	if err != nil {
		log.Error("failed to open send log", "error", err)
		os.Exit(1)
	}
	defer sendLog.Close()

	if last, err := sendLog.LastSend(); err == nil && !last.IsZero() {
		log.Info("previous send", "at", last.Format(time.RFC3339))
	}

	client := probe.NewClient(*serverURL)
	ctx := context.Background()

	for {
		if err := sendOnce(ctx, client, sendLog, *userID, *token, *testConn, log); err != nil {
			log.Error("send failed", "error", err)
			if !*continuous {
				os.Exit(1)
			}
		}
		if !*continuous {
			return
		}
		time.Sleep(time.Duration(*interval) * time.Second)
	}
}

func sendOnce(ctx context.Context, client *probe.Client, sendLog *probe.SendLog, userID, token string, testConn bool, log *slog.Logger) error {
	mode := "metrics"
	payload := probe.Generate(userID, token)
	if testConn {
		mode = "test_connection"
		payload = probe.TestConnection(userID, token)
	}

	status, body, err := client.Send(ctx, payload)
	if err != nil {
		return err
	}
	if recErr := sendLog.Record(userID, mode, len(payload.Data), status); recErr != nil {
		log.Warn("recording send failed", "error", recErr)
	}
	if status != http.StatusOK {
		log.Error("server rejected payload", "status", status, "body", body)
		return fmt.Errorf("server returned %d", status)
	}
	log.Info("payload accepted", "mode", mode, "metrics", len(payload.Data), "response", body)
	return nil
}
