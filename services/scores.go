package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"
)

const sportradarBaseURL = "https://api.sportradar.us/nfl/official/trial/v7/en"

// ScoreClient fetches live scores from the Sportradar NFL API.
type ScoreClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewScoreClient(apiKey string) *ScoreClient {
	return &ScoreClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    sportradarBaseURL,
	}
}

// ScoreUpdate is one observation from the feed, already mapped to the
// board's quarter vocabulary.
type ScoreUpdate struct {
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Quarter   string    `json:"quarter"`
	Status    string    `json:"status"`
	FetchedAt time.Time `json:"fetched_at"`
}

type boxscoreResponse struct {
	Status  string `json:"status"`
	Quarter int    `json:"quarter"`
	Home    struct {
		Points int `json:"points"`
	} `json:"home"`
	Away struct {
		Points int `json:"points"`
	} `json:"away"`
}

// FetchGame pulls the boxscore for one external game key.
func (c *ScoreClient) FetchGame(ctx context.Context, externalGameKey string) (*ScoreUpdate, *Error) {
	if c.apiKey == "" {
		return nil, Errf(CodeUpstreamUnavailable, "score feed is not configured")
	}

	url := fmt.Sprintf("%s/games/%s/boxscore.json?api_key=%s", c.baseURL, externalGameKey, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, AsError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Errf(CodeUpstreamUnavailable, "score feed request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Errf(CodeUpstreamUnavailable, "score feed returned status %d", resp.StatusCode)
	}

	var box boxscoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&box); err != nil {
		return nil, Errf(CodeUpstreamUnavailable, "score feed decode failed: %v", err)
	}

	return &ScoreUpdate{
		HomeScore: box.Home.Points,
		AwayScore: box.Away.Points,
		Quarter:   mapQuarter(box.Status, box.Quarter),
		Status:    box.Status,
		FetchedAt: time.Now(),
	}, nil
}

func mapQuarter(status string, quarter int) string {
	switch status {
	case "scheduled":
		return models.QuarterPregame
	case "halftime":
		return models.QuarterQ2
	case "complete", "closed":
		return models.QuarterFinal
	}
	if quarter < 1 || quarter > 4 {
		return models.QuarterQ1
	}
	return fmt.Sprintf("Q%d", quarter)
}

// ApplyScoreUpdate writes a feed observation to the game, broadcasts it,
// and re-runs winner resolution against the new quarter state.
func (s *Service) ApplyScoreUpdate(gameID uint, upd *ScoreUpdate) (*models.Game, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return nil, gerr
	}

	game.HomeScore = upd.HomeScore
	game.AwayScore = upd.AwayScore
	game.CurrentQuarter = upd.Quarter
	game.LastScoreUpdate = &upd.FetchedAt

	err := s.DB.Model(game).Updates(map[string]interface{}{
		"home_score":        upd.HomeScore,
		"away_score":        upd.AwayScore,
		"current_quarter":   upd.Quarter,
		"last_score_update": upd.FetchedAt,
	}).Error
	if err != nil {
		return nil, AsError(err)
	}

	s.publish(Event{Type: EventGameChanged, GameID: gameID, Payload: game})

	if rerr := s.RecordQuarterWinners(gameID); rerr != nil {
		logger.Errorf("[Scores] winner resolution for game %d: %v", gameID, rerr)
	}
	return game, nil
}

// UpdateActiveGameScores refreshes every auto-updating locked game that is
// not yet final. Used by both the background poller and the cron endpoint.
func (s *Service) UpdateActiveGameScores(ctx context.Context, client *ScoreClient) (updated int, failed int) {
	var games []models.Game
	err := s.DB.
		Where("auto_update_enabled = ? AND status = ? AND current_quarter <> ? AND external_game_key <> ''",
			true, models.StatusLocked, models.QuarterFinal).
		Find(&games).Error
	if err != nil {
		logger.Errorf("[Scores] listing active games: %v", err)
		return 0, 0
	}

	for _, game := range games {
		upd, ferr := client.FetchGame(ctx, game.ExternalGameKey)
		if ferr != nil {
			logger.Warnf("[Scores] fetch for game %d: %v", game.ID, ferr)
			failed++
			continue
		}
		if _, aerr := s.ApplyScoreUpdate(game.ID, upd); aerr != nil {
			logger.Errorf("[Scores] apply for game %d: %v", game.ID, aerr)
			failed++
			continue
		}
		updated++
	}
	return updated, failed
}

// RunScorePoller drives UpdateActiveGameScores on a fixed interval until
// ctx is cancelled.
func (s *Service) RunScorePoller(ctx context.Context, client *ScoreClient, interval time.Duration) {
	logger.Infof("[Scores] poller started (interval=%s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("[Scores] poller stopped")
			return
		case <-ticker.C:
			updated, failed := s.UpdateActiveGameScores(ctx, client)
			if updated+failed > 0 {
				logger.Infof("[Scores] poll cycle: updated=%d failed=%d", updated, failed)
			}
		}
	}
}
