// Package clients assembles the controller facing clients the subcommands
// share, and the common output and history plumbing
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cisco-open/nd-insights-client/pkg/history"
	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/nd"
	"github.com/cisco-open/nd-insights-client/pkg/ndi"
	"github.com/cisco-open/nd-insights-client/pkg/reconcile"
)

// Bundle holds the shared per-invocation clients
type Bundle struct {
	Config     *nd.Config
	Service    *ndi.Client
	Reconciler *reconcile.Reconciler
}

// Build loads the controller configuration and wires transport, service and
// reconciler on top of it
func Build() (*Bundle, error) {
	cfg, err := nd.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load controller configuration: %w", err)
	}

	transport, err := nd.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not initialize controller client: %w", err)
	}

	svc := ndi.New(transport)
	return &Bundle{
		Config:     cfg,
		Service:    svc,
		Reconciler: reconcile.New(svc),
	}, nil
}

// PrintJSON writes v to stdout as indented JSON
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RecordHistory stores an apply outcome in the local history, best effort
func RecordHistory(ctx context.Context, d reconcile.Desired, res reconcile.Result, applyErr error) {
	path, err := history.DefaultPath()
	if err != nil {
		logging.Debugf("history disabled: %v", err)
		return
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		logging.Debugf("history disabled: %v", err)
		return
	}
	defer store.Close()

	status := "ok"
	if applyErr != nil {
		status = applyErr.Error()
	}
	entry := history.Entry{
		Kind:          string(d.Kind),
		InsightsGroup: d.InsightsGroup,
		Fabric:        d.Fabric,
		Name:          d.Name,
		State:         string(d.State),
		Changed:       res.Changed,
		Status:        status,
	}
	if err := store.Record(ctx, entry); err != nil {
		logging.Debugf("could not record history: %v", err)
	}
}
