package status_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/controller/status"
)

type fakeFetcher struct {
	st  *api.SubscriptionStatus
	err error
}

func (f *fakeFetcher) SubscriptionStatus(context.Context) (*api.SubscriptionStatus, error) {
	return f.st, f.err
}

func TestController_Run(t *testing.T) {
	t.Parallel()
	days := 0
	data := []struct {
		name     string
		fetcher  *fakeFetcher
		contains []string
		absent   string
		wantErr  bool
	}{
		{
			name: "trial",
			fetcher: &fakeFetcher{st: &api.SubscriptionStatus{
				Tier: "pro", Status: "trial", TrialDaysRemaining: &days, UpgradeURL: "https://impactlens.dev/upgrade",
			}},
			contains: []string{"Tier:   pro", "expires today", "https://impactlens.dev/upgrade"},
		},
		{
			name:     "active",
			fetcher:  &fakeFetcher{st: &api.SubscriptionStatus{Tier: "team", Status: "active", UpgradeURL: "https://impactlens.dev/upgrade"}},
			contains: []string{"Status: active"},
			absent:   "Upgrade",
		},
		{
			name:    "failure",
			fetcher: &fakeFetcher{err: errors.New("connection refused")},
			wantErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			err := status.New(d.fetcher, "https://api.impactlens.dev", buf).Run(context.Background())
			if d.wantErr != (err != nil) {
				t.Fatalf("wantErr %v, got %v", d.wantErr, err)
			}
			for _, s := range d.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output doesn't contain %q: %s", s, buf.String())
				}
			}
			if d.absent != "" && strings.Contains(buf.String(), d.absent) {
				t.Errorf("output contains %q", d.absent)
			}
		})
	}
}
