package game

import (
	"regexp"
	"strconv"

	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

var numberPattern = regexp.MustCompile(`\d+`)

// RegisterCard validates a raw card submission and stores it. Numbers
// may be separated by any mix of commas, whitespace or newlines. Cards
// can be added in any game status; a card registered mid-drawing simply
// competes from the next draw on.
//
// A number used by any existing card may not appear on a new one, even
// for a different player.
func (g *Game) RegisterCard(playerName, cardID, raw string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	numbers, err := g.parseNumbersLocked(raw)
	if err != nil {
		return err
	}
	if len(numbers) != models.CardSize {
		return validationErrorf(WrongCount,
			"card must have exactly %d numbers (found %d)", models.CardSize, len(numbers))
	}
	if playerName == "" || cardID == "" {
		return validationErrorf(MissingField, "player name and card id are required")
	}
	if _, exists := g.state.Players[playerName][cardID]; exists {
		return validationErrorf(DuplicateCardID,
			"card %s already exists for %s", cardID, playerName)
	}

	prev := g.state.Clone()
	if g.state.Players[playerName] == nil {
		g.state.Players[playerName] = make(map[string][]int)
	}
	g.state.Players[playerName][cardID] = numbers
	g.state.CardCount++

	if err := g.commitLocked(prev, "register card"); err != nil {
		return err
	}
	for _, n := range numbers {
		g.used[n] = true
	}

	logger.Infof("registered card %s for %s (cards=%d)", cardID, playerName, g.state.CardCount)
	return nil
}

// parseNumbersLocked extracts every digit run from raw in order of
// appearance and validates each one as it is seen, so the first bad
// token decides the error.
func (g *Game) parseNumbersLocked(raw string) ([]int, error) {
	tokens := numberPattern.FindAllString(raw, -1)
	numbers := make([]int, 0, len(tokens))
	seen := make(map[int]bool, len(tokens))

	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > models.MaxBall {
			return nil, validationErrorf(OutOfRange,
				"number %s is outside the 1-%d range", tok, models.MaxBall)
		}
		if seen[n] {
			return nil, validationErrorf(DuplicateInCard, "number %d repeated on the card", n)
		}
		if g.used[n] {
			return nil, validationErrorf(DuplicateAcrossCards,
				"number %d is already used by another card", n)
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	return numbers, nil
}
