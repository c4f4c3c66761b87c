package bot

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"level-bot/cooldown"
	"level-bot/handlers/leaderboard"
	"level-bot/leveling"
)

const (
	leaderboardRefreshInterval = 10 * time.Minute
	cooldownSweepInterval      = 1 * time.Hour
)

// Scheduler manages all scheduled tasks.
type Scheduler struct {
	sched gocron.Scheduler
}

// NewScheduler registers the periodic jobs. The memory gate sweep only runs
// when the in-process cooldown backend is active.
func NewScheduler(board leaderboard.Provider, gate leveling.CooldownGate) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(leaderboardRefreshInterval),
		gocron.NewTask(func() {
			log.Println("[Scheduler] Refreshing leaderboards...")
			leaderboard.UpdateAll(board)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("leaderboard-refresh"),
	)
	if err != nil {
		return nil, err
	}

	if mem, ok := gate.(*cooldown.MemoryGate); ok {
		_, err = sched.NewJob(
			gocron.DurationJob(cooldownSweepInterval),
			gocron.NewTask(func() {
				if removed := mem.Sweep(); removed > 0 {
					log.Printf("[Scheduler] Swept %d expired cooldown entries", removed)
				}
			}),
			gocron.WithName("cooldown-sweep"),
		)
		if err != nil {
			return nil, err
		}
	}

	return &Scheduler{sched: sched}, nil
}

// Start begins all scheduled tasks.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop terminates all scheduled tasks gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	if err := s.sched.Shutdown(); err != nil {
		log.Printf("Error stopping scheduler: %v", err)
	}
	log.Println("Scheduler stopped.")
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	var names []string
	for _, j := range s.sched.Jobs() {
		names = append(names, j.Name())
	}
	return names
}
