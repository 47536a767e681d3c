package ndi

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Compliance aggregates the compliance results of a completed pre-change
// validation. A missing or unfinished validation yields NotCompletedErr.
func (c *Client) Compliance(ctx context.Context, insightsGroup string, fabric string, name string) (*ComplianceReport, error) {
	job, err := c.PCV(ctx, insightsGroup, fabric, name)
	if err != nil {
		return nil, err
	}
	if job == nil || job.AnalysisStatus != PCVStateCompleted {
		return nil, NotCompletedErr{Name: name}
	}

	report := &ComplianceReport{Name: name}

	// the three result sets are independent, fetch them concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := c.complianceSummary(gctx, insightsGroup, fabric, job.EpochDeltaJobID)
		if err != nil {
			return err
		}
		report.ComplianceScore = summary.ComplianceScore
		report.Count = summary.Count
		report.EventsBySeverity = summary.EventsBySeverity
		report.ResultByRequirement = summary.ResultByRequirement
		return nil
	})
	g.Go(func() error {
		events, err := c.complianceSmartEvents(gctx, insightsGroup, fabric, job.EpochDeltaJobID)
		if err != nil {
			return err
		}
		report.SmartEvents = events
		return nil
	})
	g.Go(func() error {
		resources, err := c.complianceUnhealthyResources(gctx, insightsGroup, fabric, job.EpochDeltaJobID)
		if err != nil {
			return err
		}
		report.UnhealthyResources = resources
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("could not assemble compliance report for %s: %w", name, err)
	}

	return report, nil
}

func (c *Client) complianceSummary(ctx context.Context, insightsGroup string, fabric string, deltaJobID string) (*complianceSummary, error) {
	query := url.Values{}
	query.Set("$epochDeltaJobId", deltaJobID)

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "complianceAnalysis", "summary"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch compliance summary: %w", err)
	}

	summary := &complianceSummary{}
	if err := decodeData(resp, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *Client) complianceSmartEvents(ctx context.Context, insightsGroup string, fabric string, deltaJobID string) ([]SmartEvent, error) {
	query := url.Values{}
	query.Set("$epochDeltaJobId", deltaJobID)
	query.Set("$category", "COMPLIANCE")
	query.Set("$sort", "-severity")

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "smartEvents"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch smart events: %w", err)
	}

	var events []SmartEvent
	if err := decodeData(resp, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) complianceUnhealthyResources(ctx context.Context, insightsGroup string, fabric string, deltaJobID string) ([]UnhealthyResource, error) {
	query := url.Values{}
	query.Set("$epochDeltaJobId", deltaJobID)

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "complianceAnalysis", "unhealthyResources"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch unhealthy resources: %w", err)
	}

	var resources []UnhealthyResource
	if err := decodeData(resp, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}
