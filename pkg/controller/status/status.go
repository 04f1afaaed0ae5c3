// Package status implements the 'ilens status' command.
package status

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/subscription"
)

type Controller struct {
	fetcher subscription.StatusFetcher
	stdout  io.Writer
	apiURL  string
}

func New(fetcher subscription.StatusFetcher, apiURL string, stdout io.Writer) *Controller {
	return &Controller{
		fetcher: fetcher,
		stdout:  stdout,
		apiURL:  apiURL,
	}
}

func (c *Controller) Run(ctx context.Context) error {
	st, err := c.fetcher.SubscriptionStatus(ctx)
	if err != nil {
		return fmt.Errorf("get the subscription status: %w", err)
	}
	fmt.Fprintf(c.stdout, "API:    %s\n", c.apiURL)
	fmt.Fprintf(c.stdout, "Tier:   %s\n", st.Tier)
	fmt.Fprintf(c.stdout, "Status: %s\n", st.Status)
	if msg := subscription.Message(st); msg != "" {
		fmt.Fprintln(c.stdout, color.YellowString(msg))
		if st.UpgradeURL != "" {
			fmt.Fprintf(c.stdout, "Upgrade: %s\n", st.UpgradeURL)
		}
	}
	return nil
}
