// Package ingest ходит во внешний API результатов MotoGP. Наружу отдаёт
// плоские структуры, из которых sync-сервис строит свои модели.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ClassifiedRider — гонщик из классификации чемпионата. Классификация
// авторитетна: кого в ней нет, тот в сезоне не участвует.
type ClassifiedRider struct {
	ExternalID string `json:"id"`
	FullName   string `json:"full_name"`
	Number     int    `json:"number"`
	TeamName   string `json:"team_name"`
}

// CalendarEvent — этап календаря сезона.
type CalendarEvent struct {
	RoundNumber int       `json:"round_number"`
	Name        string    `json:"name"`
	Circuit     string    `json:"circuit"`
	Country     string    `json:"country"`
	SprintDate  time.Time `json:"sprint_date"`
	RaceDate    time.Time `json:"race_date"`
	// PracticeStart — начало первой практики, после него прогнозы считаются
	// опоздавшими.
	PracticeStart time.Time `json:"practice_start"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// Classification возвращает текущую классификацию чемпионата сезона.
func (c *Client) Classification(ctx context.Context, seasonYear int) ([]ClassifiedRider, error) {
	query := url.Values{"season": []string{strconv.Itoa(seasonYear)}}
	var payload struct {
		Riders []ClassifiedRider `json:"riders"`
	}
	if err := c.get(ctx, "/classification", query, &payload); err != nil {
		return nil, err
	}
	return payload.Riders, nil
}

// SeasonRiders возвращает заявочный список сезона. Запасной источник на
// межсезонье, пока классификация пуста.
func (c *Client) SeasonRiders(ctx context.Context, seasonYear int) ([]ClassifiedRider, error) {
	query := url.Values{"season": []string{strconv.Itoa(seasonYear)}}
	var payload struct {
		Riders []ClassifiedRider `json:"riders"`
	}
	if err := c.get(ctx, "/riders", query, &payload); err != nil {
		return nil, err
	}
	return payload.Riders, nil
}

// Calendar возвращает календарь этапов сезона.
func (c *Client) Calendar(ctx context.Context, seasonYear int) ([]CalendarEvent, error) {
	query := url.Values{"season": []string{strconv.Itoa(seasonYear)}}
	var payload struct {
		Events []CalendarEvent `json:"events"`
	}
	if err := c.get(ctx, "/calendar", query, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}
