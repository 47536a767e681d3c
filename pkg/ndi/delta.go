package ndi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
)

// deltaSubmission is the payload of the delta analysis create endpoint
type deltaSubmission struct {
	JobName        string `json:"jobName"`
	PriorEpochUUID string `json:"priorEpochUuid"`
	LaterEpochUUID string `json:"laterEpochUuid"`
}

// DeltaJobs lists the epoch delta analysis jobs of a fabric, newest first
func (c *Client) DeltaJobs(ctx context.Context, insightsGroup string, fabric string) ([]DeltaJob, error) {
	query := url.Values{}
	query.Set("$sort", "-jobId")
	query.Set("jobType", "EPOCH_DELTA_ANALYSIS")

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "job", "summary"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list delta analysis jobs for fabric %s: %w", fabric, err)
	}

	var jobs []DeltaJob
	if err := decodeData(resp, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeltaJob returns the delta analysis job with the given name, or nil when no
// such job exists
func (c *Client) DeltaJob(ctx context.Context, insightsGroup string, fabric string, name string) (*DeltaJob, error) {
	jobs, err := c.DeltaJobs(ctx, insightsGroup, fabric)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].JobName == name {
			return &jobs[i], nil
		}
	}
	return nil, nil
}

// StartDelta submits a new epoch delta analysis comparing the two epochs
func (c *Client) StartDelta(ctx context.Context, insightsGroup string, fabric string, name string, earlierEpochID string, laterEpochID string) (*DeltaJob, error) {
	payload := deltaSubmission{
		JobName:        name,
		PriorEpochUUID: earlierEpochID,
		LaterEpochUUID: laterEpochID,
	}

	resp, err := c.nd.Request(ctx, "POST", path(configIGPath, insightsGroup, "fabric", fabric, "runEpochDelta"), nil, payload)
	if err != nil {
		return nil, fmt.Errorf("could not start delta analysis %s: %w", name, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("controller did not accept delta analysis %s: %v", name, resp.ErrorMessages())
	}

	job := &DeltaJob{}
	if err := decodeData(resp, job); err != nil {
		return nil, err
	}
	if job.JobName == "" {
		// some controller versions reply with an empty envelope on submit
		job = &DeltaJob{JobName: name, OperSt: DeltaStateQueued, ConfigData: DeltaConfig{PriorEpochUUID: earlierEpochID, LaterEpochUUID: laterEpochID}}
	}
	return job, nil
}

// DeleteDelta removes a delta analysis job by name
func (c *Client) DeleteDelta(ctx context.Context, insightsGroup string, fabric string, name string) error {
	payload := map[string]string{"jobName": name}

	resp, err := c.nd.Request(ctx, "POST", path(configIGPath, insightsGroup, "fabric", fabric, "deleteEpochDelta"), nil, payload)
	if err != nil {
		return fmt.Errorf("could not delete delta analysis %s: %w", name, err)
	}
	if !resp.Success {
		return DeleteFailedErr{Name: name}
	}
	return nil
}

// WaitDelta polls the job until it reaches a terminal state or the context
// expires. Transient query failures keep the poll going, matching the fixed
// retry behavior of the resource modules.
func (c *Client) WaitDelta(ctx context.Context, insightsGroup string, fabric string, name string, interval time.Duration) (*DeltaJob, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.DeltaJob(ctx, insightsGroup, fabric, name)
		if err != nil {
			logging.Debugf("polling delta analysis %s: %v", name, err)
		} else if job != nil && job.Terminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for delta analysis %s: %w", name, ctx.Err())
		case <-ticker.C:
		}
	}
}

// DeltaAnomalies fetches the anomalies the analysis raised against the later
// epoch only, the set the validate state reports
func (c *Client) DeltaAnomalies(ctx context.Context, insightsGroup string, fabric string, jobID string) (*AnomalyReport, error) {
	query := url.Values{}
	query.Set("$epochStatus", "EPOCH2_ONLY")
	query.Set("$deltaAnalysisJobId", jobID)
	query.Set("$sort", "-severity")

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "anomalies", "details"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch anomalies for job %s: %w", jobID, err)
	}

	var anomalies []Anomaly
	if err := decodeData(resp, &anomalies); err != nil {
		return nil, err
	}
	return &AnomalyReport{Count: len(anomalies), Anomalies: anomalies}, nil
}
