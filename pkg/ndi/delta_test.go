package ndi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cisco-open/nd-insights-client/pkg/ndi"
)

var _ = Describe("Delta analyses", func() {
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

	Describe("Epochs", func() {
		It("lists the finished epochs of the fabric", func() {
			// Arrange
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/epochs", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("$status")).To(Equal("FINISHED"))
				Expect(r.URL.Query().Get("$sort")).To(Equal("-collectionTimeMsecs"))

				_, err := w.Write([]byte(`{"value":{"data":[
					{"epochId":"e2","fabricId":"f1","collectionTimeMsecs":2000},
					{"epochId":"e1","fabricId":"f1","collectionTimeMsecs":1000}
				]}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			// Act
			epochs, err := svc.Epochs(context.Background(), "day2ops", "prod-fabric", 10)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(epochs).To(HaveLen(2))
			Expect(epochs[0].EpochID).To(Equal("e2"))
		})
	})

	Describe("LastEpoch", func() {
		When("the fabric has no finished epoch", func() {
			It("returns an EpochNotFoundErr", func() {
				mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/epochs", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{"value":{"data":[]}}`))
					Expect(err).NotTo(HaveOccurred())
				})

				_, err := svc.LastEpoch(context.Background(), "day2ops", "prod-fabric")

				Expect(err).To(MatchError(ndi.EpochNotFoundErr{}))
			})
		})
	})

	Describe("EpochByTime", func() {
		It("returns the newest epoch collected at or before the timestamp", func() {
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/epochs", func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write([]byte(`{"value":{"data":[
					{"epochId":"e3","collectionTimeMsecs":3000},
					{"epochId":"e2","collectionTimeMsecs":2000},
					{"epochId":"e1","collectionTimeMsecs":1000}
				]}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			epoch, err := svc.EpochByTime(context.Background(), "day2ops", "prod-fabric", 2500)

			Expect(err).NotTo(HaveOccurred())
			Expect(epoch.EpochID).To(Equal("e2"))
		})
	})

	Describe("DeltaJob", func() {
		BeforeEach(func() {
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/job/summary", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("jobType")).To(Equal("EPOCH_DELTA_ANALYSIS"))

				_, err := w.Write([]byte(`{"value":{"data":[
					{"jobId":"j2","jobName":"nightly","operSt":"COMPLETE","configData":{"priorEpochUuid":"e1","laterEpochUuid":"e2"}},
					{"jobId":"j1","jobName":"weekly","operSt":"RUNNING"}
				]}}`))
				Expect(err).NotTo(HaveOccurred())
			})
		})

		It("finds the job by name", func() {
			job, err := svc.DeltaJob(context.Background(), "day2ops", "prod-fabric", "nightly")

			Expect(err).NotTo(HaveOccurred())
			Expect(job).NotTo(BeNil())
			Expect(job.JobID).To(Equal("j2"))
			Expect(job.ConfigData.PriorEpochUUID).To(Equal("e1"))
		})

		It("returns nil for an unknown name", func() {
			job, err := svc.DeltaJob(context.Background(), "day2ops", "prod-fabric", "no_such_job")

			Expect(err).NotTo(HaveOccurred())
			Expect(job).To(BeNil())
		})
	})

	Describe("StartDelta", func() {
		It("submits the epoch pair and returns the created job", func() {
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/fabric/prod-fabric/runEpochDelta", func(w http.ResponseWriter, r *http.Request) {
				payload := map[string]string{}
				Expect(json.NewDecoder(r.Body).Decode(&payload)).To(Succeed())
				Expect(payload["jobName"]).To(Equal("nightly"))
				Expect(payload["priorEpochUuid"]).To(Equal("e1"))
				Expect(payload["laterEpochUuid"]).To(Equal("e2"))

				_, err := w.Write([]byte(`{"success":true,"value":{"data":{"jobId":"j9","jobName":"nightly","operSt":"QUEUED"}}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			job, err := svc.StartDelta(context.Background(), "day2ops", "prod-fabric", "nightly", "e1", "e2")

			Expect(err).NotTo(HaveOccurred())
			Expect(job.JobID).To(Equal("j9"))
			Expect(job.OperSt).To(Equal(ndi.DeltaStateQueued))
		})

		When("the controller replies with an empty envelope", func() {
			It("falls back to a queued job carrying the submitted epochs", func() {
				mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/fabric/prod-fabric/runEpochDelta", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{"success":true}`))
					Expect(err).NotTo(HaveOccurred())
				})

				job, err := svc.StartDelta(context.Background(), "day2ops", "prod-fabric", "nightly", "e1", "e2")

				Expect(err).NotTo(HaveOccurred())
				Expect(job.JobName).To(Equal("nightly"))
				Expect(job.OperSt).To(Equal(ndi.DeltaStateQueued))
				Expect(job.ConfigData.LaterEpochUUID).To(Equal("e2"))
			})
		})
	})

	Describe("DeleteDelta", func() {
		When("the controller refuses the deletion", func() {
			It("returns a DeleteFailedErr", func() {
				mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/fabric/prod-fabric/deleteEpochDelta", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{"success":false}`))
					Expect(err).NotTo(HaveOccurred())
				})

				err := svc.DeleteDelta(context.Background(), "day2ops", "prod-fabric", "nightly")

				Expect(err).To(MatchError(ndi.DeleteFailedErr{}))
			})
		})
	})

	Describe("WaitDelta", func() {
		It("polls until the job reaches a terminal state", func() {
			var polls int32
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/job/summary", func(w http.ResponseWriter, _ *http.Request) {
				state := "RUNNING"
				if atomic.AddInt32(&polls, 1) >= 3 {
					state = "COMPLETE"
				}
				_, err := w.Write([]byte(`{"value":{"data":[{"jobId":"j1","jobName":"nightly","operSt":"` + state + `"}]}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			job, err := svc.WaitDelta(context.Background(), "day2ops", "prod-fabric", "nightly", 5*time.Millisecond)

			Expect(err).NotTo(HaveOccurred())
			Expect(job.OperSt).To(Equal(ndi.DeltaStateComplete))
			Expect(atomic.LoadInt32(&polls)).To(BeNumerically(">=", 3))
		})

		When("the context expires first", func() {
			It("gives up with the context error", func() {
				mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/job/summary", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{"value":{"data":[{"jobId":"j1","jobName":"nightly","operSt":"RUNNING"}]}}`))
					Expect(err).NotTo(HaveOccurred())
				})

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
				defer cancel()

				_, err := svc.WaitDelta(ctx, "day2ops", "prod-fabric", "nightly", 5*time.Millisecond)

				Expect(err).To(MatchError(context.DeadlineExceeded))
			})
		})
	})

	Describe("DeltaAnomalies", func() {
		It("fetches the later epoch only anomalies of the job", func() {
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/anomalies/details", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("$epochStatus")).To(Equal("EPOCH2_ONLY"))
				Expect(r.URL.Query().Get("$deltaAnalysisJobId")).To(Equal("j2"))

				_, err := w.Write([]byte(`{"value":{"data":[
					{"anomalyId":"a1","severity":"major"},
					{"anomalyId":"a2","severity":"minor"}
				]}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			report, err := svc.DeltaAnomalies(context.Background(), "day2ops", "prod-fabric", "j2")

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Count).To(Equal(2))
			Expect(report.CountAtLeast(ndi.SeverityMajor)).To(Equal(1))
		})
	})
})
