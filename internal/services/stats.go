package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"collab-relay/pkg/logger"
)

// StatsReporter periodically logs relay occupancy. Reads go through the
// hub loop so the reporter never touches shared state directly.
type StatsReporter struct {
	cron     *cron.Cron
	hub      *Hub
	interval time.Duration
	log      logger.Logger
}

func NewStatsReporter(hub *Hub, interval time.Duration, log logger.Logger) *StatsReporter {
	return &StatsReporter{
		cron:     cron.New(),
		hub:      hub,
		interval: interval,
		log:      log,
	}
}

func (s *StatsReporter) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.report); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *StatsReporter) Stop() {
	s.cron.Stop()
}

func (s *StatsReporter) report() {
	snap := s.hub.Snapshot()
	s.log.Info("Relay stats",
		"connections", snap.Connections,
		"rooms", snap.Rooms,
		"participants", snap.Participants,
		"online_users", snap.OnlineUsers)
}
