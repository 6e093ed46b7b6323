package services

import (
	"testing"
	"time"

	"github.com/mkessler/squares-backend/models"

	"github.com/stretchr/testify/require"
)

func TestMapQuarter(t *testing.T) {
	require.Equal(t, models.QuarterPregame, mapQuarter("scheduled", 0))
	require.Equal(t, models.QuarterQ1, mapQuarter("inprogress", 1))
	require.Equal(t, models.QuarterQ3, mapQuarter("inprogress", 3))
	require.Equal(t, models.QuarterQ2, mapQuarter("halftime", 2))
	require.Equal(t, models.QuarterFinal, mapQuarter("complete", 4))
	require.Equal(t, models.QuarterFinal, mapQuarter("closed", 4))
	// feed glitches fall back to Q1 rather than breaking the board
	require.Equal(t, models.QuarterQ1, mapQuarter("inprogress", 0))
	require.Equal(t, models.QuarterQ1, mapQuarter("inprogress", 7))
}

func TestApplyScoreUpdateRecordsWinners(t *testing.T) {
	s := newTestService(t)
	admin, alice, _, game := seedGame(t, s)

	homeAxis := []int{5, 0, 3, 8, 1, 9, 4, 7, 2, 6}
	awayAxis := []int{1, 4, 7, 0, 9, 2, 5, 8, 3, 6}
	_, err := s.SetGameNumbers(admin, game.ID, homeAxis, awayAxis)
	require.Nil(t, err)

	_, err = s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	winning := squareAt(t, s, game.ID, 0, 5)
	_, err = s.ClaimSquare(alice, game.ID, winning.ID, 0)
	require.Nil(t, err)

	updated, err := s.ApplyScoreUpdate(game.ID, &ScoreUpdate{
		HomeScore: 15,
		AwayScore: 22,
		Quarter:   models.QuarterQ2,
		FetchedAt: time.Now(),
	})
	require.Nil(t, err)
	require.Equal(t, 15, updated.HomeScore)
	require.Equal(t, 22, updated.AwayScore)
	require.Equal(t, models.QuarterQ2, updated.CurrentQuarter)
	require.NotNil(t, updated.LastScoreUpdate)

	winners, werr := s.ListQuarterWinners(game.ID)
	require.Nil(t, werr)
	require.Len(t, winners, 1)
	require.Equal(t, models.QuarterQ1, winners[0].Quarter)
	require.Equal(t, winning.ID, *winners[0].SquareID)

	// the feed re-delivering the same observation changes nothing
	_, err = s.ApplyScoreUpdate(game.ID, &ScoreUpdate{
		HomeScore: 15,
		AwayScore: 22,
		Quarter:   models.QuarterQ2,
		FetchedAt: time.Now(),
	})
	require.Nil(t, err)

	winners, werr = s.ListQuarterWinners(game.ID)
	require.Nil(t, werr)
	require.Len(t, winners, 1)
}
