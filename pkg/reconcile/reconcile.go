// Package reconcile implements the desired state resource client on top of
// the Insights service layer. Every operation is expressed as a Desired state
// and answered with a Result carrying the changed flag and the current
// snapshot, empty on absence.
package reconcile

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/metrics"
	"github.com/cisco-open/nd-insights-client/pkg/ndi"
)

// Kind selects the resource a Desired state applies to
type Kind string

const (
	KindDeltaAnalysis Kind = "delta_analysis"
	KindPreChange     Kind = "prechange_validation"
	KindCompliance    Kind = "pcv_compliance"
)

// State is the desired state of a resource
type State string

const (
	StatePresent      State = "present"
	StateAbsent       State = "absent"
	StateQuery        State = "query"
	StateValidate     State = "validate"
	StateWaitAndQuery State = "wait_and_query"
)

// DefaultPollInterval is used when a Desired sets no interval for the waiting states
const DefaultPollInterval = 15 * time.Second

// Desired describes one resource in its wanted state
type Desired struct {
	Kind  Kind
	State State

	InsightsGroup string
	Fabric        string
	Name          string
	Description   string

	// delta analysis epoch pair, by id or by collection time (unix ms).
	// The two forms are mutually exclusive.
	EarlierEpochID   string
	LaterEpochID     string
	EarlierEpochTime int64
	LaterEpochTime   int64

	// pre-change validation change source, exactly one for present
	File   string
	Manual string

	// CheckMode computes the result without mutating the controller
	CheckMode bool

	PollInterval time.Duration
}

func (d *Desired) pollInterval() time.Duration {
	if d.PollInterval > 0 {
		return d.PollInterval
	}
	return DefaultPollInterval
}

// Result is the outcome of one Apply
type Result struct {
	Changed  bool                   `json:"changed"`
	Previous map[string]interface{} `json:"previous"`
	Current  map[string]interface{} `json:"current"`
}

// Service is the Insights surface the reconciler drives. *ndi.Client
// implements it.
//
//go:generate mockgen -destination=mock/servicemock.go -package=reconcilemock github.com/cisco-open/nd-insights-client/pkg/reconcile Service
type Service interface {
	EpochByTime(ctx context.Context, insightsGroup string, fabric string, msecs int64) (*ndi.Epoch, error)

	DeltaJobs(ctx context.Context, insightsGroup string, fabric string) ([]ndi.DeltaJob, error)
	DeltaJob(ctx context.Context, insightsGroup string, fabric string, name string) (*ndi.DeltaJob, error)
	StartDelta(ctx context.Context, insightsGroup string, fabric string, name string, earlierEpochID string, laterEpochID string) (*ndi.DeltaJob, error)
	DeleteDelta(ctx context.Context, insightsGroup string, fabric string, name string) error
	WaitDelta(ctx context.Context, insightsGroup string, fabric string, name string, interval time.Duration) (*ndi.DeltaJob, error)
	DeltaAnomalies(ctx context.Context, insightsGroup string, fabric string, jobID string) (*ndi.AnomalyReport, error)

	PCVs(ctx context.Context, insightsGroup string) ([]ndi.PCVJob, error)
	PCV(ctx context.Context, insightsGroup string, fabric string, name string) (*ndi.PCVJob, error)
	CreatePCVFromFile(ctx context.Context, insightsGroup string, fabric string, name string, description string, filePath string) (*ndi.PCVJob, error)
	CreatePCVManual(ctx context.Context, insightsGroup string, fabric string, name string, description string, changes json.RawMessage) (*ndi.PCVJob, error)
	DeletePCV(ctx context.Context, insightsGroup string, name string, jobID string) error
	WaitPCV(ctx context.Context, insightsGroup string, fabric string, name string, interval time.Duration) (*ndi.PCVJob, error)

	Compliance(ctx context.Context, insightsGroup string, fabric string, name string) (*ndi.ComplianceReport, error)
}

// Reconciler applies Desired states against one controller
type Reconciler struct {
	svc Service
}

// New creates a reconciler on top of a service client
func New(svc Service) *Reconciler {
	return &Reconciler{svc: svc}
}

// Apply drives the controller towards the desired state and reports the outcome
func (r *Reconciler) Apply(ctx context.Context, d Desired) (Result, error) {
	if err := validate(d); err != nil {
		return Result{}, err
	}

	var res Result
	var err error
	switch d.Kind {
	case KindDeltaAnalysis:
		res, err = r.applyDelta(ctx, d)
	case KindPreChange:
		res, err = r.applyPCV(ctx, d)
	case KindCompliance:
		res, err = r.applyCompliance(ctx, d)
	default:
		return Result{}, ValidationErr{Reason: "unknown resource kind '" + string(d.Kind) + "'"}
	}
	if err != nil {
		return res, err
	}

	metrics.Inc(metrics.Applies, string(d.Kind), string(d.State), boolLabel(res.Changed))
	return res, nil
}

// validate rejects malformed desired states before any request is sent
func validate(d Desired) error {
	if d.InsightsGroup == "" {
		return ValidationErr{Reason: "insights group is required"}
	}

	switch d.State {
	case StatePresent, StateAbsent, StateValidate, StateWaitAndQuery:
		if d.Name == "" {
			return ValidationErr{Reason: "name is required for state " + string(d.State)}
		}
		if d.Fabric == "" {
			return ValidationErr{Reason: "site name is required for state " + string(d.State)}
		}
	case StateQuery:
		if d.Name != "" && d.Fabric == "" {
			return ValidationErr{Reason: "site name is required when querying by name"}
		}
		if d.Kind == KindDeltaAnalysis && d.Fabric == "" {
			return ValidationErr{Reason: "site name is required for delta analysis queries"}
		}
	default:
		return ValidationErr{Reason: "unknown state '" + string(d.State) + "'"}
	}

	if d.Kind == KindDeltaAnalysis && d.State == StatePresent {
		byID := d.EarlierEpochID != "" || d.LaterEpochID != ""
		byTime := d.EarlierEpochTime != 0 || d.LaterEpochTime != 0
		switch {
		case byID && byTime:
			return ValidationErr{Reason: "epoch ids and epoch times are mutually exclusive"}
		case byID && (d.EarlierEpochID == "" || d.LaterEpochID == ""):
			return ValidationErr{Reason: "both earlier and later epoch ids are required"}
		case byTime && (d.EarlierEpochTime == 0 || d.LaterEpochTime == 0):
			return ValidationErr{Reason: "both earlier and later epoch times are required"}
		case !byID && !byTime:
			return ValidationErr{Reason: "an epoch pair is required, by id or by time"}
		case byTime && d.EarlierEpochTime >= d.LaterEpochTime:
			return ValidationErr{Reason: "the later epoch time must be newer than the earlier one"}
		}
	}

	if d.Kind == KindPreChange && d.State == StatePresent {
		if (d.File == "") == (d.Manual == "") {
			return ValidationErr{Reason: "exactly one of file or manual is required to create a pre-change validation"}
		}
	}

	if d.Kind == KindCompliance && d.State != StateQuery {
		return ValidationErr{Reason: "compliance results are query only"}
	}

	return nil
}

func (r *Reconciler) applyDelta(ctx context.Context, d Desired) (Result, error) {
	if d.State == StateQuery && d.Name == "" {
		jobs, err := r.svc.DeltaJobs(ctx, d.InsightsGroup, d.Fabric)
		if err != nil {
			return Result{}, err
		}
		return Result{Current: listSnapshot(jobs)}, nil
	}

	existing, err := r.svc.DeltaJob(ctx, d.InsightsGroup, d.Fabric, d.Name)
	if err != nil {
		return Result{}, err
	}
	previous := snapshot(existing)

	switch d.State {
	case StateQuery:
		return Result{Previous: previous, Current: snapshot(existing)}, nil

	case StateAbsent:
		if existing == nil {
			return Result{Previous: previous, Current: emptySnapshot()}, nil
		}
		if !d.CheckMode {
			if err := r.svc.DeleteDelta(ctx, d.InsightsGroup, d.Fabric, d.Name); err != nil {
				return Result{}, err
			}
			metrics.Inc(metrics.AnalysesDeleted, string(KindDeltaAnalysis))
		}
		return Result{Changed: true, Previous: previous, Current: emptySnapshot()}, nil

	case StatePresent:
		earlier, later, err := r.resolveEpochPair(ctx, d)
		if err != nil {
			return Result{}, err
		}
		if existing != nil {
			if existing.ConfigData.PriorEpochUUID == earlier && existing.ConfigData.LaterEpochUUID == later {
				return Result{Previous: previous, Current: snapshot(existing)}, nil
			}
			return Result{}, EpochConflictErr{Name: d.Name}
		}
		if d.CheckMode {
			return Result{Changed: true, Previous: previous, Current: snapshot(&ndi.DeltaJob{
				JobName:    d.Name,
				OperSt:     ndi.DeltaStateQueued,
				ConfigData: ndi.DeltaConfig{PriorEpochUUID: earlier, LaterEpochUUID: later},
			})}, nil
		}
		job, err := r.svc.StartDelta(ctx, d.InsightsGroup, d.Fabric, d.Name, earlier, later)
		if err != nil {
			return Result{}, err
		}
		metrics.Inc(metrics.AnalysesCreated, string(KindDeltaAnalysis))
		return Result{Changed: true, Previous: previous, Current: snapshot(job)}, nil

	case StateValidate:
		if existing == nil {
			return Result{}, MissingResourceErr{Name: d.Name}
		}
		job := existing
		if !job.Terminal() {
			job, err = r.svc.WaitDelta(ctx, d.InsightsGroup, d.Fabric, d.Name, d.pollInterval())
			if err != nil {
				return Result{}, err
			}
		}
		if job.OperSt == ndi.DeltaStateFailed {
			return Result{}, ndi.AnalysisFailedErr{Name: d.Name}
		}
		report, err := r.svc.DeltaAnomalies(ctx, d.InsightsGroup, d.Fabric, job.JobID)
		if err != nil {
			return Result{}, err
		}
		current := snapshot(job)
		current["anomaly_count"] = report.Count
		current["anomalies"] = report.Anomalies
		return Result{Previous: previous, Current: current}, nil
	}

	return Result{}, ValidationErr{Reason: "state " + string(d.State) + " is not supported for delta analyses"}
}

func (r *Reconciler) applyPCV(ctx context.Context, d Desired) (Result, error) {
	if d.State == StateQuery && d.Name == "" {
		jobs, err := r.svc.PCVs(ctx, d.InsightsGroup)
		if err != nil {
			return Result{}, err
		}
		return Result{Current: listSnapshot(jobs)}, nil
	}

	existing, err := r.svc.PCV(ctx, d.InsightsGroup, d.Fabric, d.Name)
	if err != nil {
		return Result{}, err
	}
	previous := snapshot(existing)

	switch d.State {
	case StateQuery:
		return Result{Previous: previous, Current: snapshot(existing)}, nil

	case StateWaitAndQuery:
		if existing == nil {
			return Result{Previous: previous, Current: emptySnapshot()}, nil
		}
		job := existing
		if !job.Terminal() {
			job, err = r.svc.WaitPCV(ctx, d.InsightsGroup, d.Fabric, d.Name, d.pollInterval())
			if err != nil {
				return Result{}, err
			}
		}
		return Result{Previous: previous, Current: snapshot(job)}, nil

	case StateAbsent:
		if existing == nil || existing.JobID == "" {
			return Result{Previous: previous, Current: emptySnapshot()}, nil
		}
		if !d.CheckMode {
			if err := r.svc.DeletePCV(ctx, d.InsightsGroup, d.Name, existing.JobID); err != nil {
				return Result{}, err
			}
			metrics.Inc(metrics.AnalysesDeleted, string(KindPreChange))
		}
		return Result{Changed: true, Previous: previous, Current: emptySnapshot()}, nil

	case StatePresent:
		if existing != nil {
			if d.File != "" && existing.UploadedFileName != "" {
				if filepath.Base(d.File) == existing.UploadedFileName {
					return Result{Previous: previous, Current: snapshot(existing)}, nil
				}
				return Result{}, FileConflictErr{Name: d.Name, UploadedFile: existing.UploadedFileName}
			}
			// an existing job under the same name is the desired state
			logging.Debugf("pre-change validation %s already exists, leaving it in place", d.Name)
			return Result{Previous: previous, Current: snapshot(existing)}, nil
		}
		if d.CheckMode {
			return Result{Changed: true, Previous: previous, Current: snapshot(&ndi.PCVJob{
				Name:                d.Name,
				AssuranceEntityName: d.Fabric,
				AnalysisStatus:      ndi.PCVStateSubmitted,
			})}, nil
		}
		var job *ndi.PCVJob
		if d.File != "" {
			job, err = r.svc.CreatePCVFromFile(ctx, d.InsightsGroup, d.Fabric, d.Name, d.Description, d.File)
		} else {
			var changes json.RawMessage
			changes, err = ndi.ParseChanges([]byte(d.Manual))
			if err != nil {
				return Result{}, err
			}
			job, err = r.svc.CreatePCVManual(ctx, d.InsightsGroup, d.Fabric, d.Name, d.Description, changes)
		}
		if err != nil {
			return Result{}, err
		}
		metrics.Inc(metrics.AnalysesCreated, string(KindPreChange))
		return Result{Changed: true, Previous: previous, Current: snapshot(job)}, nil
	}

	return Result{}, ValidationErr{Reason: "state " + string(d.State) + " is not supported for pre-change validations"}
}

func (r *Reconciler) applyCompliance(ctx context.Context, d Desired) (Result, error) {
	report, err := r.svc.Compliance(ctx, d.InsightsGroup, d.Fabric, d.Name)
	if err != nil {
		return Result{}, err
	}
	return Result{Current: snapshot(report)}, nil
}

// resolveEpochPair turns the time based parameter form into epoch ids
func (r *Reconciler) resolveEpochPair(ctx context.Context, d Desired) (string, string, error) {
	if d.EarlierEpochID != "" {
		return d.EarlierEpochID, d.LaterEpochID, nil
	}

	earlier, err := r.svc.EpochByTime(ctx, d.InsightsGroup, d.Fabric, d.EarlierEpochTime)
	if err != nil {
		return "", "", err
	}
	later, err := r.svc.EpochByTime(ctx, d.InsightsGroup, d.Fabric, d.LaterEpochTime)
	if err != nil {
		return "", "", err
	}
	if earlier.CollectionTimeMsecs >= later.CollectionTimeMsecs {
		return "", "", ValidationErr{Reason: "the resolved later epoch is not newer than the earlier one"}
	}
	return earlier.EpochID, later.EpochID, nil
}

// snapshot converts a typed record into the generic map callers print.
// A nil record becomes the empty object that signals absence.
func snapshot(v interface{}) map[string]interface{} {
	if v == nil {
		return emptySnapshot()
	}
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return emptySnapshot()
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return emptySnapshot()
	}
	return out
}

func listSnapshot(v interface{}) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return emptySnapshot()
	}
	var jobs []interface{}
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return emptySnapshot()
	}
	return map[string]interface{}{"jobs": jobs}
}

func emptySnapshot() map[string]interface{} {
	return map[string]interface{}{}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
