package models

import "time"

// Status is the game lifecycle phase. It only moves forward
// (waiting → counting_down → drawing → finished); reset is the one
// way back to waiting.
type Status string

const (
	StatusWaiting      Status = "waiting"
	StatusCountingDown Status = "counting_down"
	StatusDrawing      Status = "drawing"
	StatusFinished     Status = "finished"
)

const (
	// CardSize is the number of distinct values on every card.
	CardSize = 24
	// MaxBall is the highest drawable number; the pool is 1..MaxBall.
	MaxBall = 75
)

// Winner records the first fully matched card of a round.
type Winner struct {
	PlayerName string `json:"player_name"`
	CardID     string `json:"card_id"`
	Numbers    []int  `json:"numbers"`
}

// GameState is the full serialized record of one game. Field names match
// the snapshot file layout, so a round trip through the store preserves
// older data files.
type GameState struct {
	Status       Status                      `json:"status"`
	Balls        []int                       `json:"balls"`       // undrawn pool
	DrawnBalls   []int                       `json:"drawn_balls"` // chronological
	CurrentBall  *int                        `json:"current_ball"`
	CountdownEnd *time.Time                  `json:"countdown_end"`
	Winner       *Winner                     `json:"winner"`
	Players      map[string]map[string][]int `json:"players"` // name → card id → numbers
	CardCount    int                         `json:"card_count"`

	// Cosmetic media filenames, set through the upload endpoints.
	BackgroundMusic string `json:"background_music"`
	WinnerSound     string `json:"winner_sound"`
	BallSound       string `json:"ball_sound"`
	CountdownSound  string `json:"countdown_sound"`
}

// NewGameState returns a fresh waiting game with a full pool.
func NewGameState() *GameState {
	balls := make([]int, MaxBall)
	for i := range balls {
		balls[i] = i + 1
	}
	return &GameState{
		Status:          StatusWaiting,
		Balls:           balls,
		DrawnBalls:      []int{},
		Players:         make(map[string]map[string][]int),
		BackgroundMusic: "background.mp3",
		WinnerSound:     "winner.mp3",
		BallSound:       "ball.mp3",
		CountdownSound:  "countdown.mp3",
	}
}

// Clone returns a deep copy. Snapshots handed to renderers and the
// rollback path in the controller both rely on it.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Balls = append([]int(nil), s.Balls...)
	c.DrawnBalls = append([]int(nil), s.DrawnBalls...)
	if s.CurrentBall != nil {
		n := *s.CurrentBall
		c.CurrentBall = &n
	}
	if s.CountdownEnd != nil {
		t := *s.CountdownEnd
		c.CountdownEnd = &t
	}
	if s.Winner != nil {
		w := *s.Winner
		w.Numbers = append([]int(nil), s.Winner.Numbers...)
		c.Winner = &w
	}
	c.Players = make(map[string]map[string][]int, len(s.Players))
	for name, cards := range s.Players {
		cc := make(map[string][]int, len(cards))
		for id, nums := range cards {
			cc[id] = append([]int(nil), nums...)
		}
		c.Players[name] = cc
	}
	return &c
}

// Normalize fills in defaults for fields missing from an older or
// hand-edited snapshot file, so loading never fails on shape.
func (s *GameState) Normalize() {
	def := NewGameState()
	if s.Status == "" {
		s.Status = def.Status
	}
	if s.Balls == nil && len(s.DrawnBalls) == 0 {
		s.Balls = def.Balls
	}
	if s.Balls == nil {
		s.Balls = []int{}
	}
	if s.DrawnBalls == nil {
		s.DrawnBalls = []int{}
	}
	if s.Players == nil {
		s.Players = make(map[string]map[string][]int)
	}
	if s.BackgroundMusic == "" {
		s.BackgroundMusic = def.BackgroundMusic
	}
	if s.WinnerSound == "" {
		s.WinnerSound = def.WinnerSound
	}
	if s.BallSound == "" {
		s.BallSound = def.BallSound
	}
	if s.CountdownSound == "" {
		s.CountdownSound = def.CountdownSound
	}
	count := 0
	for _, cards := range s.Players {
		count += len(cards)
	}
	s.CardCount = count
}

// Sponsor is a cosmetic entry shown on the viewer page.
type Sponsor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}
