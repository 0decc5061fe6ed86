package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает периодические задачи воркера
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default())))),
	}
}

// ScheduleInterval регистрирует задачу, выполняемую раз в interval (не чаще раза в секунду)
func (s *Scheduler) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

// ScheduleDaily регистрирует ежедневную задачу на время HH:MM
func (s *Scheduler) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop ждёт завершения выполняющихся задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func dailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
