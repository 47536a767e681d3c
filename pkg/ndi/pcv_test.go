package ndi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cisco-open/nd-insights-client/pkg/ndi"
)

var _ = Describe("Pre-change validations", func() {
	var (
		mux    *http.ServeMux
		server *httptest.Server
		svc    *ndi.Client
	)

	BeforeEach(func() {
		mux = http.NewServeMux()
		svc, server = newTestService(mux)
	})

	AfterEach(func() {
		server.Close()
	})

	// listWithDetails stubs the summary list plus the per job detail endpoint
	listWithDetails := func(jobs ...ndi.PCVJob) {
		mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis", func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Query().Get("$sort")).To(Equal("-analysisSubmissionTime"))

			summaries := make([]ndi.PCVJob, len(jobs))
			for i, job := range jobs {
				// the list endpoint reports summaries without the file name
				job.UploadedFileName = ""
				summaries[i] = job
			}
			Expect(json.NewEncoder(w).Encode(map[string]interface{}{
				"value": map[string]interface{}{"data": summaries},
			})).To(Succeed())
		})

		for i := range jobs {
			job := jobs[i]
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis/"+job.JobID, func(w http.ResponseWriter, _ *http.Request) {
				Expect(json.NewEncoder(w).Encode(map[string]interface{}{
					"value": map[string]interface{}{"data": job},
				})).To(Succeed())
			})
		}
	}

	Describe("PCV", func() {
		BeforeEach(func() {
			listWithDetails(
				ndi.PCVJob{Name: "add_vlan", JobID: "101", AssuranceEntityName: "prod-fabric", AnalysisStatus: ndi.PCVStateCompleted, UploadedFileName: "vlan_change.json"},
				ndi.PCVJob{Name: "add_vlan", JobID: "102", AssuranceEntityName: "lab-fabric", AnalysisStatus: ndi.PCVStateRunning},
			)
		})

		It("matches on both name and fabric and carries the detail fields", func() {
			job, err := svc.PCV(context.Background(), "day2ops", "prod-fabric", "add_vlan")

			Expect(err).NotTo(HaveOccurred())
			Expect(job).NotTo(BeNil())
			Expect(job.JobID).To(Equal("101"))
			Expect(job.UploadedFileName).To(Equal("vlan_change.json"))
		})

		It("returns nil when no validation has the name on the fabric", func() {
			job, err := svc.PCV(context.Background(), "day2ops", "prod-fabric", "no_such_validation")

			Expect(err).NotTo(HaveOccurred())
			Expect(job).To(BeNil())
		})
	})

	Describe("CreatePCVFromFile", func() {
		var changeFile string

		BeforeEach(func() {
			changeFile = filepath.Join(GinkgoT().TempDir(), "vlan_change.json")
			Expect(os.WriteFile(changeFile, []byte(`[{"fvTenant":{"attributes":{"name":"demo"}}}]`), 0o600)).To(Succeed())

			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/epochs", func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write([]byte(`{"value":{"data":[{"epochId":"e7","fabricId":"f1","collectionTimeMsecs":7000}]}}`))
				Expect(err).NotTo(HaveOccurred())
			})
		})

		It("uploads the file next to a submission anchored on the newest epoch", func() {
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/fabric/prod-fabric/prechangeAnalysis/fileChanges", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.ParseMultipartForm(1 << 20)).To(Succeed())

				_, header, err := r.FormFile("file")
				Expect(err).NotTo(HaveOccurred())
				Expect(header.Filename).To(Equal("vlan_change.json"))

				submission := map[string]interface{}{}
				Expect(json.Unmarshal([]byte(r.FormValue("data")), &submission)).To(Succeed())
				Expect(submission["name"]).To(Equal("add_vlan"))
				Expect(submission["baseEpochId"]).To(Equal("e7"))
				Expect(submission["assuranceEntityName"]).To(Equal("prod-fabric"))
				Expect(submission["allowUnsupportedObjectModification"]).To(Equal("true"))

				_, err = w.Write([]byte(`{"success":true,"value":{"data":{"jobId":"103","name":"add_vlan","analysisStatus":"SUBMITTED"}}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			job, err := svc.CreatePCVFromFile(context.Background(), "day2ops", "prod-fabric", "add_vlan", "adds a vlan", changeFile)

			Expect(err).NotTo(HaveOccurred())
			Expect(job.JobID).To(Equal("103"))
			Expect(job.AnalysisStatus).To(Equal(ndi.PCVStateSubmitted))
		})

		When("the change file is not parseable", func() {
			It("rejects the file before talking to the controller", func() {
				badFile := filepath.Join(GinkgoT().TempDir(), "broken.json")
				Expect(os.WriteFile(badFile, []byte(`{{not json`), 0o600)).To(Succeed())

				_, err := svc.CreatePCVFromFile(context.Background(), "day2ops", "prod-fabric", "add_vlan", "", badFile)

				Expect(err).To(MatchError(ndi.ChangeParseErr{}))
			})
		})
	})

	Describe("CreatePCVManual", func() {
		It("submits the inline changes with action RUN", func() {
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/epochs", func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write([]byte(`{"value":{"data":[{"epochId":"e7","fabricId":"f1","collectionTimeMsecs":7000}]}}`))
				Expect(err).NotTo(HaveOccurred())
			})
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/fabric/prod-fabric/prechangeAnalysis/manualChanges", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("action")).To(Equal("RUN"))

				submission := map[string]interface{}{}
				Expect(json.NewDecoder(r.Body).Decode(&submission)).To(Succeed())
				Expect(submission["name"]).To(Equal("add_vlan"))
				Expect(submission["imdata"]).To(HaveLen(1))

				_, err := w.Write([]byte(`{"success":true,"value":{"data":{"jobId":"104","name":"add_vlan","analysisStatus":"SUBMITTED"}}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			changes := json.RawMessage(`[{"fvTenant":{"attributes":{"name":"demo"}}}]`)
			job, err := svc.CreatePCVManual(context.Background(), "day2ops", "prod-fabric", "add_vlan", "", changes)

			Expect(err).NotTo(HaveOccurred())
			Expect(job.JobID).To(Equal("104"))
		})
	})

	Describe("DeletePCV", func() {
		It("posts the job id list to the jobs endpoint", func() {
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis/jobs", func(w http.ResponseWriter, r *http.Request) {
				var ids []string
				Expect(json.NewDecoder(r.Body).Decode(&ids)).To(Succeed())
				Expect(ids).To(Equal([]string{"101"}))

				_, err := w.Write([]byte(`{"success":true}`))
				Expect(err).NotTo(HaveOccurred())
			})

			err := svc.DeletePCV(context.Background(), "day2ops", "add_vlan", "101")

			Expect(err).NotTo(HaveOccurred())
		})

		When("the controller refuses the deletion", func() {
			It("returns a DeleteFailedErr naming the validation", func() {
				mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis/jobs", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{"success":false}`))
					Expect(err).NotTo(HaveOccurred())
				})

				err := svc.DeletePCV(context.Background(), "day2ops", "add_vlan", "101")

				Expect(err).To(MatchError(ndi.DeleteFailedErr{}))
				Expect(err.Error()).To(Equal("pre-change validation add_vlan is not able to be deleted"))
			})
		})
	})
})
