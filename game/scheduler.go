package game

import (
	"time"

	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

// StartCountdown moves the game from waiting to counting_down and arms
// the background timer that will hand off to the draw loop. Calling it
// in any other status fails without mutation, so a second start while a
// countdown or round is running never restarts the timer.
func (g *Game) StartCountdown() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Status != models.StatusWaiting {
		return ErrNotAllowed
	}

	prev := g.state.Clone()
	deadline := time.Now().Add(g.countdown)
	g.state.Status = models.StatusCountingDown
	g.state.CountdownEnd = &deadline

	if err := g.commitLocked(prev, "start countdown"); err != nil {
		return err
	}

	go g.awaitCountdown(deadline)

	logger.Infof("countdown started, drawing begins at %s", deadline.Format(time.RFC3339))
	return nil
}

// awaitCountdown sleeps until the deadline, then transitions to drawing
// unless the game moved on. Status is the cancellation token: a reset
// during the countdown puts the game back in waiting and this timer
// exits without side effects. The deadline comparison guards against a
// stale timer from a countdown that was reset and restarted while this
// goroutine slept.
func (g *Game) awaitCountdown(deadline time.Time) {
	time.Sleep(time.Until(deadline))

	g.mu.Lock()
	if g.state.Status != models.StatusCountingDown ||
		g.state.CountdownEnd == nil || !g.state.CountdownEnd.Equal(deadline) {
		g.mu.Unlock()
		logger.Debug("countdown cancelled, timer exiting")
		return
	}

	g.state.Status = models.StatusDrawing
	g.state.CountdownEnd = nil
	if err := g.store.Save(g.state); err != nil {
		g.failSafeLocked("countdown handoff", err)
		g.mu.Unlock()
		return
	}
	g.bc.Publish(EventGameUpdate, g.state.Clone())
	g.mu.Unlock()

	logger.Info("countdown expired, drawing phase begins")
	g.runDrawing()
}
