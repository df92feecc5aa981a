package screens

import (
	"context"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"sync"

	"github.com/sirupsen/logrus"
)

// DashboardScreen shows the signed-in user with their organizations and projects
type DashboardScreen struct {
	Status
	Compliance data.ComplianceRepository
	Logger     *logrus.Logger

	mu sync.Mutex
	me *models.Me
}

func (s *DashboardScreen) Load(ctx context.Context) {
	s.begin()
	me, err := s.Compliance.GetMe(ctx)
	if err != nil {
		s.Logger.WithField("operation", "DashboardLoad").WithError(err).Warn("Failed to load dashboard")
		s.fail("Failed to load dashboard", err)
		return
	}

	s.mu.Lock()
	s.me = me
	s.mu.Unlock()
	s.succeed(nil)
}

// Me returns the last loaded profile, or nil
func (s *DashboardScreen) Me() *models.Me {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.me
}

// TotalSubmissions sums the submission counters across projects
func (s *DashboardScreen) TotalSubmissions() int {
	me := s.Me()
	if me == nil {
		return 0
	}
	total := 0
	for _, project := range me.Projects {
		total += project.Count.Submissions
	}
	return total
}
