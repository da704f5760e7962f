package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"game_mate/config"
	"game_mate/logger"
	"game_mate/services"
)

// getNextTimePoint returns the next occurrence of hour:minute after now.
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

type TaskType int

const (
	TaskSteamSync TaskType = iota
)

type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler runs the daily Steam signal sync.
type Scheduler struct {
	cfg   *config.Config
	sync  *services.SyncService
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

func NewScheduler(cfg *config.Config, syncService *services.SyncService) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		sync:  syncService,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start initializes the task table and launches the check loop.
func Start(cfg *config.Config, syncService *services.SyncService) {
	s := NewScheduler(cfg, syncService)
	s.initTasks()
	go s.run()

	logger.Info("scheduler started", "check_interval_sec", cfg.Sync.CheckIntervalSec)
}

func (s *Scheduler) initTasks() {
	now := time.Now()
	nextRun := getNextTimePoint(now, s.cfg.Sync.Hour, s.cfg.Sync.Minute)

	s.tasks[TaskSteamSync] = &TaskStatus{
		LastRun:     nextRun.Add(-24 * time.Hour),
		NextRun:     nextRun,
		IsRunning:   false,
		Description: fmt.Sprintf("steam signal sync (%02d:%02d)", s.cfg.Sync.Hour, s.cfg.Sync.Minute),
	}
	logger.Info("scheduled task registered", "task", s.tasks[TaskSteamSync].Description, "next_run", nextRun.Format("2006-01-02 15:04:05"))
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(time.Duration(s.cfg.Sync.CheckIntervalSec) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning || status.NextRun.IsZero() {
			continue
		}
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		switch taskType {
		case TaskSteamSync:
			status.NextRun = getNextTimePoint(now, s.cfg.Sync.Hour, s.cfg.Sync.Minute)
		}
		logger.Info("task finished", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskSteamSync:
		logger.Info("running steam signal sync")
		if err := s.sync.SyncAll(context.Background()); err != nil {
			logger.Error("steam signal sync failed", "error", err)
		}
	}
}
