package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"jobmatch/internal/jobs"
)

// checkHealth pings the service before the UI starts and prints a warning
// when it does not answer. It never stops startup.
func checkHealth(w io.Writer, client jobs.Client, baseURL string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := client.Health(ctx)
	if err == nil {
		return true
	}
	_, _ = fmt.Fprint(w, formatHealthWarning(baseURL, err))
	return false
}

func formatHealthWarning(baseURL string, err error) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "(not set)"
	}
	detail := "unknown error"
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			detail = msg
		}
	}
	return fmt.Sprintf(`Warning: %s

Service URL: %s
Error: %s

Troubleshooting:
  - Check the service is running: curl %s/health
  - Point jobmatch elsewhere: jobmatch --api-url <url> (or JM_API_BASE_URL)

Continuing anyway; company lists and analysis may be unavailable.

`, jobs.MsgServiceUnhealthy, baseURL, detail, baseURL)
}
