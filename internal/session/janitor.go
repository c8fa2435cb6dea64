package session

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Janitor periodically prunes expired echo entries.
type Janitor struct {
	cache *EchoCache
	cron  *cron.Cron
}

func NewJanitor(cache *EchoCache) *Janitor {
	return &Janitor{cache: cache, cron: cron.New()}
}

// Start schedules the prune job every five minutes.
func (j *Janitor) Start() {
	_, err := j.cron.AddFunc("@every 5m", func() {
		if removed := j.cache.Prune(); removed > 0 {
			log.Printf("Session janitor pruned %d expired entries", removed)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule session janitor: %v", err)
		return
	}

	j.cron.Start()
}

// Stop halts the schedule; the running job, if any, completes.
func (j *Janitor) Stop() {
	j.cron.Stop()
}
