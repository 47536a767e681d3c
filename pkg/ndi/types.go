package ndi

// Epoch is a timestamped snapshot of fabric state used as an analysis input
type Epoch struct {
	EpochID             string `json:"epochId"`
	FabricID            string `json:"fabricId"`
	FabricName          string `json:"fabricName"`
	Status              string `json:"status"`
	EpochType           string `json:"epochType"`
	CollectionTimeMsecs int64  `json:"collectionTimeMsecs"`
}

// Delta analysis job lifecycle states as reported in operSt
const (
	DeltaStateQueued   = "QUEUED"
	DeltaStateRunning  = "RUNNING"
	DeltaStateComplete = "COMPLETE"
	DeltaStateFailed   = "FAILED"
)

// DeltaConfig identifies the two epochs a delta analysis compares
type DeltaConfig struct {
	PriorEpochUUID string `json:"priorEpochUuid"`
	LaterEpochUUID string `json:"laterEpochUuid"`
}

// DeltaJob is an epoch delta analysis job as reported by the controller
type DeltaJob struct {
	JobID               string      `json:"jobId"`
	JobName             string      `json:"jobName"`
	OperSt              string      `json:"operSt"`
	ConfigData          DeltaConfig `json:"configData"`
	SubmissionTimeMsecs int64       `json:"submissionTimeMsecs,omitempty"`
}

// Terminal reports whether the job reached a final state
func (j *DeltaJob) Terminal() bool {
	return j.OperSt == DeltaStateComplete || j.OperSt == DeltaStateFailed
}

// Anomaly severities, ordered from most to least severe
const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
	SeverityMinor    = "minor"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// severityRank maps a severity to its ordering, unknown severities rank last
var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityMajor:    1,
	SeverityMinor:    2,
	SeverityWarning:  3,
	SeverityInfo:     4,
}

// SeverityAtLeast reports whether severity is at or above the threshold
func SeverityAtLeast(severity, threshold string) bool {
	s, ok := severityRank[severity]
	if !ok {
		return false
	}
	t, ok := severityRank[threshold]
	if !ok {
		return false
	}
	return s <= t
}

// Anomaly is a single finding raised by an analysis
type Anomaly struct {
	AnomalyID     string `json:"anomalyId"`
	Severity      string `json:"severity"`
	Category      string `json:"category"`
	MnemonicTitle string `json:"mnemonicTitle"`
	EntityName    string `json:"entityName"`
	Description   string `json:"anomalyStr"`
}

// AnomalyReport is the anomaly set of a completed delta analysis
type AnomalyReport struct {
	Count     int       `json:"anomaly_count"`
	Anomalies []Anomaly `json:"anomalies"`
}

// CountAtLeast returns how many anomalies are at or above the severity threshold
func (r *AnomalyReport) CountAtLeast(threshold string) int {
	n := 0
	for _, a := range r.Anomalies {
		if SeverityAtLeast(a.Severity, threshold) {
			n++
		}
	}
	return n
}

// Pre-change validation lifecycle states as reported in analysisStatus
const (
	PCVStateSubmitted = "SUBMITTED"
	PCVStateRunning   = "RUNNING"
	PCVStateCompleted = "COMPLETED"
	PCVStateFailed    = "FAILED"
)

// PCVJob is a pre-change validation job as reported by the controller
type PCVJob struct {
	Name                   string `json:"name"`
	JobID                  string `json:"jobId"`
	Description            string `json:"description,omitempty"`
	AssuranceEntityName    string `json:"assuranceEntityName"`
	AnalysisStatus         string `json:"analysisStatus"`
	AnalysisSubmissionTime int64  `json:"analysisSubmissionTime,omitempty"`
	BaseEpochID            string `json:"baseEpochId,omitempty"`
	EpochDeltaJobID        string `json:"epochDeltaJobId,omitempty"`
	UploadedFileName       string `json:"uploadedFileName,omitempty"`
	FabricUUID             string `json:"fabricUuid,omitempty"`
}

// Terminal reports whether the validation reached a final state
func (j *PCVJob) Terminal() bool {
	return j.AnalysisStatus == PCVStateCompleted || j.AnalysisStatus == PCVStateFailed
}

// SeverityBucket counts events of one severity
type SeverityBucket struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// RequirementResult is the per-requirement outcome of a compliance analysis
type RequirementResult struct {
	RequirementName string `json:"requirementName"`
	RequirementType string `json:"requirementType"`
	Result          string `json:"result"`
	ViolationCount  int    `json:"violationCount"`
}

// SmartEvent is a compliance smart event raised against the proposed change
type SmartEvent struct {
	EventName   string `json:"eventName"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// UnhealthyResource is a resource a compliance analysis flagged
type UnhealthyResource struct {
	ResourceName string `json:"resourceName"`
	ResourceType string `json:"resourceType"`
	Reason       string `json:"reason"`
}

// ComplianceReport aggregates the compliance results of a completed pre-change validation
type ComplianceReport struct {
	Name                string              `json:"name"`
	ComplianceScore     float64             `json:"compliance_score"`
	Count               int                 `json:"count"`
	EventsBySeverity    []SeverityBucket    `json:"events_by_severity"`
	ResultByRequirement []RequirementResult `json:"result_by_requirement"`
	SmartEvents         []SmartEvent        `json:"smart_events"`
	UnhealthyResources  []UnhealthyResource `json:"unhealthy_resources"`
}

// complianceSummary is the wire shape of the compliance summary endpoint
type complianceSummary struct {
	ComplianceScore     float64             `json:"complianceScore"`
	Count               int                 `json:"count"`
	EventsBySeverity    []SeverityBucket    `json:"eventsBySeverity"`
	ResultByRequirement []RequirementResult `json:"resultByRequirement"`
}
