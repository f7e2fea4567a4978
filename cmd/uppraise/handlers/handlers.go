// Package handlers provides command handler functions for uppraise.
//
// Each handler is a cobra RunE function. Handlers read their configuration
// from the config package, build an LMS client, run the appraisal protocols
// and hand results to the display package. Errors are logged and returned so
// that main can exit non-zero.
package handlers

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/cmd/uppraise/utils"
	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/spf13/cobra"
)

// newClient creates an LMS client from the global flags, prompting for a
// token when none is configured.
func newClient() (*lms.Client, error) {
	token, err := utils.ResolveToken(config.Global.Token)
	if err != nil {
		return nil, err
	}

	return lms.NewClient(lms.Config{
		BaseURL: config.Global.BaseURL,
		Token:   token,
		Timeout: config.Global.Timeout,
		Retries: config.Global.Retries,
		Logger:  utils.RestyLogger{},
	})
}

// commandContext returns the command's context, cancelled on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
