package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/services"
	"github.com/alhuda/dismissal/internal/web"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := db.Init(); err != nil {
		slog.Error("db init failed", "err", err)
		os.Exit(1)
	}

	// Front-office dashboards poll counts; the poller logs a school-wide
	// snapshot each tick so operators can follow a session from the journal.
	if interval := pollInterval(); interval > 0 {
		p := services.NewCountsPoller(interval, func(c *services.StatusCounts) {
			slog.Info("dismissal snapshot", "component", "counts",
				"queue", c.QueueID, "total", c.Total, "byStatus", c.ByStatus)
		})
		p.Start()
		defer p.Stop()
	}

	r := web.Router()

	addr := getEnv("ADDR", ":8080")
	slog.Info("dismissal engine listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func pollInterval() time.Duration {
	raw := os.Getenv("COUNTS_POLL_INTERVAL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("ignoring bad COUNTS_POLL_INTERVAL", "value", raw)
		return 0
	}
	return d
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
