package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK          bool   `json:"ok"`
	Database    string `json:"database"`
	ObjectStore string `json:"objectStore"`
	Uptime      string `json:"uptime"`
}

// Service encapsulates health-related checks.
type Service struct {
	db          Pinger
	objectStore string
	started     time.Time
	timeout     time.Duration
}

// NewService constructs a health service. db may be nil when repositories are
// in memory.
func NewService(db Pinger, objectStore string) *Service {
	return &Service{db: db, objectStore: objectStore, started: time.Now(), timeout: 2 * time.Second}
}

// Status reports whether the process can serve traffic.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		OK:          true,
		Database:    "memory",
		ObjectStore: s.objectStore,
		Uptime:      time.Since(s.started).Round(time.Second).String(),
	}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}
