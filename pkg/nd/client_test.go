package nd_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cisco-open/nd-insights-client/pkg/nd"
)

var _ = Describe("Client", func() {
	var (
		mux        *http.ServeMux
		server     *httptest.Server
		client     *nd.Client
		loginCalls int32
	)

	BeforeEach(func() {
		// Arrange
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		loginCalls = 0

		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal("POST"))
			atomic.AddInt32(&loginCalls, 1)

			payload := map[string]string{}
			Expect(json.NewDecoder(r.Body).Decode(&payload)).To(Succeed())
			Expect(payload["userName"]).To(Equal("admin"))
			Expect(payload["userPasswd"]).To(Equal("secret"))

			_, err := w.Write([]byte(`{"jwttoken":"faketokenstring"}`))
			Expect(err).NotTo(HaveOccurred())
		})

		var err error
		client, err = nd.New(&nd.Config{
			Host:     server.URL,
			Username: "admin",
			Password: "secret",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Request", func() {
		When("the controller replies with a data envelope", func() {
			It("decodes the payload and reuses the session", func() {
				// Arrange
				mux.HandleFunc("/api/things", func(w http.ResponseWriter, r *http.Request) {
					cookie, err := r.Cookie("AuthCookie")
					Expect(err).NotTo(HaveOccurred())
					Expect(cookie.Value).To(Equal("faketokenstring"))
					Expect(r.Header.Get("X-Request-Id")).NotTo(BeEmpty())

					_, err = w.Write([]byte(`{"value":{"data":[{"name":"one"}]}}`))
					Expect(err).NotTo(HaveOccurred())
				})

				// Act
				resp, err := client.Request(context.Background(), "GET", "/api/things", nil, nil)
				Expect(err).NotTo(HaveOccurred())
				_, err = client.Request(context.Background(), "GET", "/api/things", nil, nil)

				// Assert
				Expect(err).NotTo(HaveOccurred())
				Expect(string(resp.Data())).To(MatchJSON(`[{"name":"one"}]`))
				Expect(atomic.LoadInt32(&loginCalls)).To(Equal(int32(1)))
			})
		})

		When("the session is rejected", func() {
			It("returns an AuthErr", func() {
				mux.HandleFunc("/api/secret", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusUnauthorized)
				})

				_, err := client.Request(context.Background(), "GET", "/api/secret", nil, nil)

				Expect(err).To(HaveOccurred())
				Expect(err).To(MatchError(nd.AuthErr{}))
			})
		})

		When("the resource does not exist", func() {
			It("returns a NotFoundErr", func() {
				mux.HandleFunc("/api/missing", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				})

				_, err := client.Request(context.Background(), "GET", "/api/missing", nil, nil)

				Expect(err).To(MatchError(nd.NotFoundErr{}))
			})
		})

		When("the controller rejects the payload", func() {
			It("returns an APIErr carrying the controller messages", func() {
				mux.HandleFunc("/api/bad", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					_, err := w.Write([]byte(`{"messages":[{"severity":"ERROR","message":"name is not valid"}]}`))
					Expect(err).NotTo(HaveOccurred())
				})

				_, err := client.Request(context.Background(), "POST", "/api/bad", nil, map[string]string{"name": "!"})

				Expect(err).To(MatchError(nd.APIErr{}))
				Expect(err.Error()).To(ContainSubstring("name is not valid"))
			})
		})
	})

	Describe("Login", func() {
		When("the credentials are rejected", func() {
			It("returns an AuthErr", func() {
				badMux := http.NewServeMux()
				badServer := httptest.NewServer(badMux)
				defer badServer.Close()
				badMux.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusUnauthorized)
				})

				badClient, err := nd.New(&nd.Config{Host: badServer.URL, Username: "admin", Password: "wrong"})
				Expect(err).NotTo(HaveOccurred())

				err = badClient.Login(context.Background())

				Expect(err).To(MatchError(nd.AuthErr{}))
			})
		})

		When("the login response carries no token", func() {
			It("returns an AuthErr", func() {
				badMux := http.NewServeMux()
				badServer := httptest.NewServer(badMux)
				defer badServer.Close()
				badMux.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
					_, err := w.Write([]byte(`{}`))
					Expect(err).NotTo(HaveOccurred())
				})

				badClient, err := nd.New(&nd.Config{Host: badServer.URL, Username: "admin", Password: "secret"})
				Expect(err).NotTo(HaveOccurred())

				err = badClient.Login(context.Background())

				Expect(err).To(MatchError(nd.AuthErr{}))
			})
		})
	})

	Describe("New", func() {
		When("the configuration misses the host", func() {
			It("rejects the configuration", func() {
				_, err := nd.New(&nd.Config{Username: "admin", Password: "secret"})

				Expect(err).To(HaveOccurred())
			})
		})
	})
})
