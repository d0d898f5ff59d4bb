// Command seed backfills a running server with sample submissions. It
// drives the public HTTP API in debug mode (the ?user= identity
// fallback), so the target server must run with debug enabled.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultWeeks   = 8
	defaultTimeout = 10 * time.Second
)

var defaultProjects = []string{"Atlas", "Borealis", "Caldera"}

type row struct {
	Project string  `json:"project"`
	Days    float64 `json:"days"`
	Notes   string  `json:"notes"`
}

type submitPayload struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Rows []row  `json:"rows"`
}

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "Base URL of the service")
		users   = flag.String("users", "dev.user@example.com", "Comma-separated usernames to seed")
		weeks   = flag.Int("weeks", defaultWeeks, "Number of past actual weeks to backfill")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := &http.Client{Timeout: *timeout}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, user := range strings.Split(*users, ",") {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		if err := seedUser(ctx, client, *baseURL, user, today, *weeks); err != nil {
			os.Stderr.WriteString("seeding " + user + " failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		fmt.Println("seeded", user)
	}
}

func seedUser(ctx context.Context, client *http.Client, baseURL, user string, today time.Time, weeks int) error {
	projects, err := fetchProjects(ctx, client, baseURL, user)
	if err != nil || len(projects) == 0 {
		projects = defaultProjects
	}

	// Backfill recent Fridays, skipping some to leave outstanding items.
	friday := lastFriday(today)
	for i := 0; i < weeks; i++ {
		week := friday.AddDate(0, 0, -7*i)
		if week.Year() != today.Year() {
			break
		}
		if rand.Intn(4) == 0 {
			continue
		}
		if err := submit(ctx, client, baseURL, user, week, "actual", sampleRows(projects)); err != nil {
			return err
		}
	}

	// The one open forecast week.
	return submit(ctx, client, baseURL, user, nextMonday(today), "forecast", sampleRows(projects))
}

func sampleRows(projects []string) []row {
	n := 1 + rand.Intn(2)
	rows := make([]row, 0, n)
	remaining := 5.0
	for i := 0; i < n; i++ {
		days := float64(1 + rand.Intn(3))
		if days > remaining {
			days = remaining
		}
		remaining -= days
		rows = append(rows, row{Project: projects[rand.Intn(len(projects))], Days: days})
	}
	return rows
}

func submit(ctx context.Context, client *http.Client, baseURL, user string, week time.Time, kind string, rows []row) error {
	body, err := json.Marshal(submitPayload{
		Date: week.Format(time.DateOnly),
		Type: kind,
		Rows: rows,
	})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/submit?user=%s", baseURL, url.QueryEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("submit %s %s: %s: %s", kind, week.Format(time.DateOnly), resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

func fetchProjects(ctx context.Context, client *http.Client, baseURL, user string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/projects?user=%s", baseURL, url.QueryEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projects: %s", resp.Status)
	}
	var out struct {
		Projects []string `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func nextMonday(today time.Time) time.Time {
	offset := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, offset)
}

func lastFriday(today time.Time) time.Time {
	offset := (int(today.Weekday()) - int(time.Friday) + 7) % 7
	return today.AddDate(0, 0, -offset)
}
