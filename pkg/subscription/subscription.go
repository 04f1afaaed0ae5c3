// Package subscription turns the subscription status into user-facing nudges
// and rate-limits how often the status is fetched.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/sirupsen/logrus"
)

const (
	StatusTrial   = "trial"
	StatusExpired = "expired"
	StatusActive  = "active"

	DefaultCheckInterval = time.Hour
)

const expiredMessage = "Your Impactlens subscription has expired."

// Message returns the nudge for status, or "" when nothing needs saying.
func Message(status *api.SubscriptionStatus) string {
	if status == nil {
		return ""
	}
	switch strings.ToLower(status.Status) {
	case StatusTrial:
		if status.TrialDaysRemaining == nil {
			return "You are on an Impactlens trial."
		}
		switch days := *status.TrialDaysRemaining; {
		case days < 0:
			return expiredMessage
		case days == 0:
			return "Your Impactlens trial expires today."
		case days == 1:
			return "Your Impactlens trial expires tomorrow."
		default:
			return fmt.Sprintf("Your Impactlens trial expires in %d days.", days)
		}
	case StatusExpired:
		return expiredMessage
	default:
		return ""
	}
}

// StatusFetcher is satisfied by *api.Client.
type StatusFetcher interface {
	SubscriptionStatus(ctx context.Context) (*api.SubscriptionStatus, error)
}

// Nudger checks the subscription at most once per interval and reports each
// distinct message only once per process.
type Nudger struct {
	mu        sync.Mutex
	fetcher   StatusFetcher
	interval  time.Duration
	now       func() time.Time
	lastCheck time.Time
	shown     map[string]struct{}
	last      *api.SubscriptionStatus
}

func NewNudger(fetcher StatusFetcher, interval time.Duration) *Nudger {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Nudger{
		fetcher:  fetcher,
		interval: interval,
		now:      time.Now,
		shown:    map[string]struct{}{},
	}
}

// SetClock replaces time.Now.
func (n *Nudger) SetClock(now func() time.Time) {
	n.now = now
}

// Last returns the most recent status fetched successfully.
func (n *Nudger) Last() *api.SubscriptionStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Check fetches the status unless it was fetched within the interval and
// returns a message that hasn't been shown yet. Fetch errors are only logged
// so that analysis carries on.
func (n *Nudger) Check(ctx context.Context, logE *logrus.Entry) string {
	n.mu.Lock()
	now := n.now()
	if !n.lastCheck.IsZero() && now.Sub(n.lastCheck) < n.interval {
		n.mu.Unlock()
		return ""
	}
	n.lastCheck = now
	n.mu.Unlock()

	status, err := n.fetcher.SubscriptionStatus(ctx)
	if err != nil {
		logE.WithError(err).Debug("check the subscription status")
		return ""
	}
	msg := Message(status)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = status
	if msg == "" {
		return ""
	}
	if _, ok := n.shown[msg]; ok {
		return ""
	}
	n.shown[msg] = struct{}{}
	return msg
}
