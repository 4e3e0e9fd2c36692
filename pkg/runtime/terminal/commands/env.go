package commands

import (
	"io"
	"time"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/dashboard"
)

type Reporter interface {
	Handle(report *domain.Report) error
}

// Env is filled in by the root command before any subcommand runs.
type Env struct {
	Dashboard  dashboard.Dashboard
	Reporter   Reporter
	Output     io.Writer
	WindowDays int
	Now        func() time.Time
}
