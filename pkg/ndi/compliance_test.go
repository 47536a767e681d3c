package ndi_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cisco-open/nd-insights-client/pkg/ndi"
)

var _ = Describe("Compliance", func() {
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

	stubPCV := func(status string) {
		mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis", func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte(`{"value":{"data":[
				{"jobId":"101","name":"add_vlan","assuranceEntityName":"prod-fabric","analysisStatus":"` + status + `","epochDeltaJobId":"d1"}
			]}}`))
			Expect(err).NotTo(HaveOccurred())
		})
		mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis/101", func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte(`{"value":{"data":
				{"jobId":"101","name":"add_vlan","assuranceEntityName":"prod-fabric","analysisStatus":"` + status + `","epochDeltaJobId":"d1"}
			}}`))
			Expect(err).NotTo(HaveOccurred())
		})
	}

	When("the validation completed", func() {
		BeforeEach(func() {
			stubPCV(ndi.PCVStateCompleted)

			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/complianceAnalysis/summary", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("$epochDeltaJobId")).To(Equal("d1"))
				_, err := w.Write([]byte(`{"value":{"data":{
					"complianceScore":87.5,
					"count":3,
					"eventsBySeverity":[{"severity":"major","count":2},{"severity":"minor","count":1}],
					"resultByRequirement":[{"requirementName":"segmentation","result":"VIOLATED","violationCount":2}]
				}}}`))
				Expect(err).NotTo(HaveOccurred())
			})
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/smartEvents", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("$category")).To(Equal("COMPLIANCE"))
				_, err := w.Write([]byte(`{"value":{"data":[{"eventName":"COMPLIANCE_VIOLATION","severity":"major"}]}}`))
				Expect(err).NotTo(HaveOccurred())
			})
			mux.HandleFunc(ndi.Prefix+"/events/insightsGroup/day2ops/fabric/prod-fabric/complianceAnalysis/unhealthyResources", func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write([]byte(`{"value":{"data":[{"resourceName":"epg-web","resourceType":"epg","reason":"segmentation violated"}]}}`))
				Expect(err).NotTo(HaveOccurred())
			})
		})

		It("assembles the report from the three result sets", func() {
			report, err := svc.Compliance(context.Background(), "day2ops", "prod-fabric", "add_vlan")

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Name).To(Equal("add_vlan"))
			Expect(report.ComplianceScore).To(Equal(87.5))
			Expect(report.Count).To(Equal(3))
			Expect(report.EventsBySeverity).To(HaveLen(2))
			Expect(report.ResultByRequirement[0].Result).To(Equal("VIOLATED"))
			Expect(report.SmartEvents).To(HaveLen(1))
			Expect(report.UnhealthyResources[0].ResourceName).To(Equal("epg-web"))
		})
	})

	When("the validation is still running", func() {
		It("returns a NotCompletedErr", func() {
			stubPCV(ndi.PCVStateRunning)

			_, err := svc.Compliance(context.Background(), "day2ops", "prod-fabric", "add_vlan")

			Expect(err).To(MatchError(ndi.NotCompletedErr{}))
			Expect(err.Error()).To(Equal("Pre-change validation add_vlan is not completed"))
		})
	})

	When("the validation does not exist", func() {
		It("returns a NotCompletedErr naming the missing validation", func() {
			mux.HandleFunc(ndi.Prefix+"/config/insightsGroup/day2ops/prechangeAnalysis", func(w http.ResponseWriter, _ *http.Request) {
				_, err := w.Write([]byte(`{"value":{"data":[]}}`))
				Expect(err).NotTo(HaveOccurred())
			})

			_, err := svc.Compliance(context.Background(), "day2ops", "prod-fabric", "non_existing")

			Expect(err).To(MatchError(ndi.NotCompletedErr{}))
			Expect(err.Error()).To(Equal("Pre-change validation non_existing is not completed"))
		})
	})
})
