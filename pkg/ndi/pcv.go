package ndi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
)

// pcvDetailConcurrency bounds the detail fan-out when listing validations
const pcvDetailConcurrency = 5

// pcvSubmission is the payload both pre-change creation endpoints expect,
// field for field what the controller requires
type pcvSubmission struct {
	AllowUnsupportedObjectModification string          `json:"allowUnsupportedObjectModification"`
	AnalysisSubmissionTime             int64           `json:"analysisSubmissionTime"`
	BaseEpochID                        string          `json:"baseEpochId"`
	BaseEpochCollectionTimestamp       int64           `json:"baseEpochCollectionTimestamp"`
	FabricUUID                         string          `json:"fabricUuid"`
	Description                        string          `json:"description"`
	Name                               string          `json:"name"`
	AssuranceEntityName                string          `json:"assuranceEntityName"`
	Imdata                             json.RawMessage `json:"imdata,omitempty"`
}

// newPCVSubmission anchors a submission on the fabric's newest finished epoch
func (c *Client) newPCVSubmission(ctx context.Context, insightsGroup string, fabric string, name string, description string) (*pcvSubmission, error) {
	base, err := c.LastEpoch(ctx, insightsGroup, fabric)
	if err != nil {
		return nil, err
	}

	return &pcvSubmission{
		AllowUnsupportedObjectModification: "true",
		AnalysisSubmissionTime:             time.Now().UnixMilli(),
		BaseEpochID:                        base.EpochID,
		BaseEpochCollectionTimestamp:       base.CollectionTimeMsecs,
		FabricUUID:                         base.FabricID,
		Description:                        description,
		Name:                               name,
		AssuranceEntityName:                fabric,
	}, nil
}

// PCVs lists all pre-change validations of an insights group, newest first.
// The list endpoint returns summaries, details are fetched per job with
// bounded concurrency.
func (c *Client) PCVs(ctx context.Context, insightsGroup string) ([]PCVJob, error) {
	query := url.Values{}
	query.Set("$sort", "-analysisSubmissionTime")

	resp, err := c.nd.Request(ctx, "GET", path(configIGPath, insightsGroup, "prechangeAnalysis"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list pre-change validations: %w", err)
	}

	var jobs []PCVJob
	if err := decodeData(resp, &jobs); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pcvDetailConcurrency)
	for i := range jobs {
		g.Go(func() error {
			detail, err := c.pcvDetail(gctx, insightsGroup, jobs[i].JobID)
			if err != nil {
				return err
			}
			if detail != nil {
				jobs[i] = *detail
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// pcvDetail fetches the full record of one validation job
func (c *Client) pcvDetail(ctx context.Context, insightsGroup string, jobID string) (*PCVJob, error) {
	resp, err := c.nd.Request(ctx, "GET", path(configIGPath, insightsGroup, "prechangeAnalysis", jobID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pre-change validation %s: %w", jobID, err)
	}

	job := &PCVJob{}
	if err := decodeData(resp, job); err != nil {
		return nil, err
	}
	if job.JobID == "" {
		return nil, nil
	}
	return job, nil
}

// PCV returns the validation with the given name on a fabric, or nil when no
// such validation exists
func (c *Client) PCV(ctx context.Context, insightsGroup string, fabric string, name string) (*PCVJob, error) {
	jobs, err := c.PCVs(ctx, insightsGroup)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].Name == name && jobs[i].AssuranceEntityName == fabric {
			return &jobs[i], nil
		}
	}
	return nil, nil
}

// CreatePCVFromFile submits a pre-change validation from a change file. The
// file travels as a multipart upload next to the submission payload.
func (c *Client) CreatePCVFromFile(ctx context.Context, insightsGroup string, fabric string, name string, description string, filePath string) (*PCVJob, error) {
	if _, err := ParseChangeFile(filePath); err != nil {
		return nil, err
	}

	submission, err := c.newPCVSubmission(ctx, insightsGroup, fabric, name, description)
	if err != nil {
		return nil, err
	}

	resp, err := c.nd.Upload(ctx, path(configIGPath, insightsGroup, "fabric", fabric, "prechangeAnalysis", "fileChanges"), filePath, submission)
	if err != nil {
		return nil, fmt.Errorf("could not create pre-change validation %s from file: %w", name, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("controller did not accept pre-change validation %s: %v", name, resp.ErrorMessages())
	}

	job := &PCVJob{}
	if err := decodeData(resp, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CreatePCVManual submits a pre-change validation from an inline change list
func (c *Client) CreatePCVManual(ctx context.Context, insightsGroup string, fabric string, name string, description string, changes json.RawMessage) (*PCVJob, error) {
	submission, err := c.newPCVSubmission(ctx, insightsGroup, fabric, name, description)
	if err != nil {
		return nil, err
	}
	submission.Imdata = changes

	query := url.Values{}
	query.Set("action", "RUN")

	resp, err := c.nd.Request(ctx, "POST", path(configIGPath, insightsGroup, "fabric", fabric, "prechangeAnalysis", "manualChanges"), query, submission)
	if err != nil {
		return nil, fmt.Errorf("could not create pre-change validation %s from manual changes: %w", name, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("controller did not accept pre-change validation %s: %v", name, resp.ErrorMessages())
	}

	job := &PCVJob{}
	if err := decodeData(resp, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeletePCV removes a validation job. The endpoint takes a list of job ids
// and reports the outcome in the success flag.
func (c *Client) DeletePCV(ctx context.Context, insightsGroup string, name string, jobID string) error {
	resp, err := c.nd.Request(ctx, "POST", path(configIGPath, insightsGroup, "prechangeAnalysis", "jobs"), nil, []string{jobID})
	if err != nil {
		return fmt.Errorf("could not delete pre-change validation %s: %w", name, err)
	}
	if !resp.Success {
		return DeleteFailedErr{Name: name}
	}
	return nil
}

// WaitPCV polls the validation until it reaches COMPLETED or FAILED or the
// context expires. A query failure mid poll is treated as transient.
func (c *Client) WaitPCV(ctx context.Context, insightsGroup string, fabric string, name string, interval time.Duration) (*PCVJob, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.PCV(ctx, insightsGroup, fabric, name)
		if err != nil {
			logging.Debugf("polling pre-change validation %s: %v", name, err)
		} else if job != nil && job.Terminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for pre-change validation %s: %w", name, ctx.Err())
		case <-ticker.C:
		}
	}
}
