package game

import (
	"sort"
	"time"

	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

// runDrawing is the paced draw loop. Each iteration takes the lock for
// exactly one draw (pick, persist, broadcast, win check) and sleeps
// unlocked between draws, so admin operations stay responsive during a
// multi-minute round. A reset while sleeping changes the status and the
// next iteration exits without drawing.
func (g *Game) runDrawing() {
	for {
		g.mu.Lock()
		if g.state.Status != models.StatusDrawing {
			g.mu.Unlock()
			logger.Debug("drawing aborted, status changed")
			return
		}

		if len(g.state.Balls) == 0 {
			g.state.Status = models.StatusFinished
			if err := g.store.Save(g.state); err != nil {
				g.failSafeLocked("finish without winner", err)
				g.mu.Unlock()
				return
			}
			g.bc.Publish(EventGameUpdate, g.state.Clone())
			g.mu.Unlock()
			logger.Info("pool exhausted, game finished without a winner")
			return
		}

		ball := g.drawBallLocked()
		if err := g.store.Save(g.state); err != nil {
			g.failSafeLocked("draw", err)
			g.mu.Unlock()
			return
		}
		g.bc.Publish(EventGameUpdate, g.state.Clone())
		logger.Infof("drew ball %d (%d drawn, %d left)", ball, len(g.state.DrawnBalls), len(g.state.Balls))

		if w := g.findWinnerLocked(); w != nil {
			g.state.Winner = w
			g.state.Status = models.StatusFinished
			if err := g.store.Save(g.state); err != nil {
				g.failSafeLocked("declare winner", err)
				g.mu.Unlock()
				return
			}
			g.bc.Publish(EventGameUpdate, g.state.Clone())
			g.mu.Unlock()
			logger.Infof("BINGO! %s wins with card %s", w.PlayerName, w.CardID)
			return
		}
		g.mu.Unlock()

		time.Sleep(g.drawInterval)
	}
}

// drawBallLocked picks one ball uniformly at random from the pool and
// moves it to the drawn history.
func (g *Game) drawBallLocked() int {
	i := g.rng.Intn(len(g.state.Balls))
	ball := g.state.Balls[i]
	g.state.Balls = append(g.state.Balls[:i], g.state.Balls[i+1:]...)
	g.state.DrawnBalls = append(g.state.DrawnBalls, ball)
	g.state.CurrentBall = &ball
	return ball
}

// findWinnerLocked returns the first card whose 24 numbers are all in
// the drawn history, or nil. Players and cards are visited in sorted
// order so ties on the same draw resolve deterministically.
func (g *Game) findWinnerLocked() *models.Winner {
	drawn := make(map[int]bool, len(g.state.DrawnBalls))
	for _, n := range g.state.DrawnBalls {
		drawn[n] = true
	}

	names := make([]string, 0, len(g.state.Players))
	for name := range g.state.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cards := g.state.Players[name]
		ids := make([]string, 0, len(cards))
		for id := range cards {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if cardMatched(cards[id], drawn) {
				return &models.Winner{
					PlayerName: name,
					CardID:     id,
					Numbers:    append([]int(nil), cards[id]...),
				}
			}
		}
	}
	return nil
}

func cardMatched(numbers []int, drawn map[int]bool) bool {
	for _, n := range numbers {
		if !drawn[n] {
			return false
		}
	}
	return true
}
