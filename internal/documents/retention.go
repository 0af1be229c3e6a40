package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper deletes upload-directory files older than a configured age. A
// zero max age disables it entirely, keeping the default behavior of
// retaining files indefinitely.
type Sweeper struct {
	cron    *cron.Cron
	storage *Storage
	maxAge  time.Duration
	logger  *zap.Logger
}

func NewSweeper(storage *Storage, maxAge, interval time.Duration, logger *zap.Logger) *Sweeper {
	s := &Sweeper{
		cron:    cron.New(),
		storage: storage,
		maxAge:  maxAge,
		logger:  logger,
	}
	if maxAge > 0 {
		if interval <= 0 {
			interval = time.Hour
		}
		s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.sweep)
	}
	return s
}

// Start begins periodic sweeping. No-op when retention is disabled.
func (s *Sweeper) Start() {
	if s.maxAge <= 0 {
		return
	}
	s.cron.Start()
	s.logger.Info("retention sweeper started", zap.Duration("maxAge", s.maxAge))
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.maxAge)

	entries, err := os.ReadDir(s.storage.Dir())
	if err != nil {
		s.logger.Warn("retention sweep failed to read upload directory", zap.Error(err))
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.storage.Dir(), entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("retention sweep failed to remove file", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("retention sweep removed stale files", zap.Int("count", removed))
	}
}
