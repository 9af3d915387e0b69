package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/prohunt/prohunt/internal/adapters/http/api"
	"github.com/prohunt/prohunt/internal/adapters/recommend"
	"github.com/prohunt/prohunt/internal/adapters/repository"
	serviceapp "github.com/prohunt/prohunt/internal/app"
	"github.com/prohunt/prohunt/internal/domain/analytics"
	"github.com/prohunt/prohunt/internal/domain/avatar"
	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/internal/domain/tags"
	"github.com/prohunt/prohunt/internal/domain/vocabulary"
)

// mockService implements api.Dependencies and api.StatsProvider on top of
// in-memory maps, with per-call error overrides for failure paths.
type mockService struct {
	profiles   map[string]model.Profile
	projects   map[string]model.Project
	candidates []model.Candidate

	recommendErr error
	exchangeErr  error
	avatarErr    error
	avatarMax    int64
	avatarBytes  int
}

func newMockService() *mockService {
	return &mockService{
		profiles: make(map[string]model.Profile),
		projects: make(map[string]model.Project),
	}
}

func (m *mockService) Suggest(ctx context.Context, kind vocabulary.Kind, query string, limit int) ([]string, error) {
	vocab, ok := vocabulary.ByKind(kind)
	if !ok {
		return nil, serviceapp.ErrUnknownVocabulary
	}
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	return vocab.Filter(query, limit), nil
}

func (m *mockService) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	if p.ID == "" {
		p.ID = "p-1"
	}
	p.ApplyDefaults()
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockService) GetProject(ctx context.Context, id string) (model.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return model.Project{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockService) ListProjects(ctx context.Context, createdBy string) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range m.projects {
		if p.CreatedBy == createdBy {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockService) UpdateProject(ctx context.Context, p model.Project) (model.Project, error) {
	if _, ok := m.projects[p.ID]; !ok {
		return model.Project{}, repository.ErrNotFound
	}
	p.ApplyDefaults()
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockService) DeleteProject(ctx context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockService) Dashboard(ctx context.Context, userID string) (analytics.Stats, error) {
	records, _ := m.ListProjects(ctx, userID)
	return analytics.Aggregate(records), nil
}

func (m *mockService) Recommendations(ctx context.Context, projectID, userID string) ([]model.Candidate, error) {
	if m.recommendErr != nil {
		return nil, m.recommendErr
	}
	if _, ok := m.projects[projectID]; !ok {
		return nil, repository.ErrNotFound
	}
	out := []model.Candidate{}
	for _, c := range m.candidates {
		if c.ID != userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockService) ExchangeAndEnsure(ctx context.Context, code string) (model.Session, bool, error) {
	if m.exchangeErr != nil {
		return model.Session{}, false, m.exchangeErr
	}
	id := "user-" + code
	_, existed := m.profiles[id]
	if !existed {
		m.profiles[id] = model.Profile{ID: id, Skills: []string{}, PreferredDomains: []string{}}
	}
	return model.Session{UserID: id}, !existed, nil
}

func (m *mockService) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockService) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	if _, ok := m.profiles[p.ID]; !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	m.profiles[p.ID] = p
	return p, nil
}

func (m *mockService) AddSkill(ctx context.Context, userID, skill string) ([]string, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Skills = tags.Select(skill, p.Skills)
	m.profiles[userID] = p
	return p.Skills, nil
}

func (m *mockService) RemoveSkill(ctx context.Context, userID string, index int) ([]string, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated, err := tags.Remove(index, p.Skills)
	if err != nil {
		return nil, err
	}
	p.Skills = updated
	m.profiles[userID] = p
	return updated, nil
}

func (m *mockService) AddPreferredDomain(ctx context.Context, userID, domain string) ([]string, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.PreferredDomains = tags.Select(domain, p.PreferredDomains)
	m.profiles[userID] = p
	return p.PreferredDomains, nil
}

func (m *mockService) RemovePreferredDomain(ctx context.Context, userID string, index int) ([]string, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated, err := tags.Remove(index, p.PreferredDomains)
	if err != nil {
		return nil, err
	}
	p.PreferredDomains = updated
	m.profiles[userID] = p
	return updated, nil
}

func (m *mockService) AvatarMaxBytes() int64 {
	if m.avatarMax > 0 {
		return m.avatarMax
	}
	return avatar.MaxBytes
}

func (m *mockService) EnqueueAvatar(ctx context.Context, userID string, data []byte) error {
	m.avatarBytes = len(data)
	if m.avatarErr != nil {
		return m.avatarErr
	}
	if _, ok := m.profiles[userID]; !ok {
		return repository.ErrNotFound
	}
	if _, err := avatar.Validate(data, m.AvatarMaxBytes()); err != nil {
		return err
	}
	return nil
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"started":       true,
		"totalProfiles": len(m.profiles),
		"totalProjects": len(m.projects),
	}
}

func newTestServer(m *mockService) *httptest.Server {
	srv := api.NewServer(m, m, api.AuthRedirects{})
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestSuggestEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		m := newMockService()
		ts := newTestServer(m)
		defer ts.Close()

		Convey("A skills query returns ordered matches", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/suggest?kind=skills&q=pyt", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["suggestions"], ShouldResemble, []any{"Python", "PyTorch"})
		})

		Convey("An empty query returns an empty list", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/suggest?kind=skills&q=", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["suggestions"], ShouldResemble, []any{})
		})

		Convey("The kind defaults to skills", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/suggest?q=JAVA", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["suggestions"], ShouldResemble, []any{"JavaScript", "Java"})
		})

		Convey("An unknown kind is a bad request", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/suggest?kind=languages&q=py", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "bad_request")
		})

		Convey("A malformed limit is a bad request", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/suggest?q=py&limit=ten", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestProjectEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		m := newMockService()
		ts := newTestServer(m)
		defer ts.Close()

		Convey("Creating a project fills defaults and returns 201", func() {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/projects", map[string]any{
				"created_by": "u-1",
				"name":       "Churn model",
				"status":     "Open",
			})
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)
			So(body["complexity"], ShouldEqual, "Medium")
			So(body["location"], ShouldEqual, "Remote")
			So(body["domain"], ShouldEqual, "Software Development")

			id := body["id"].(string)

			Convey("The project can be fetched", func() {
				resp, body := doJSON(t, http.MethodGet, ts.URL+"/projects/"+id, nil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["name"], ShouldEqual, "Churn model")
			})

			Convey("The project can be deleted", func() {
				resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/projects/"+id, nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNoContent)

				resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/projects/"+id, nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("A create without a name is rejected", func() {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/projects", map[string]any{"created_by": "u-1"})
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A create with an invalid status is rejected", func() {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/projects", map[string]any{
				"created_by": "u-1",
				"name":       "p",
				"status":     "Paused",
			})
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Listing requires created_by", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/projects", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Fetching a missing project is 404", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/projects/ghost", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestDashboardEndpoint(t *testing.T) {
	Convey("Given projects in every status", t, func() {
		m := newMockService()
		for i, status := range []string{"Open", "In Progress", "Completed", "On Hold", "Open"} {
			m.projects[string(rune('a'+i))] = model.Project{
				ID:             string(rune('a' + i)),
				CreatedBy:      "u-1",
				Status:         status,
				RequiredSkills: []string{"Go", "Python"},
			}
		}
		ts := newTestServer(m)
		defer ts.Close()

		Convey("The dashboard buckets them", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/dashboard?user_id=u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["total"], ShouldEqual, 5)
			So(body["completed"], ShouldEqual, 1)
			So(body["active"], ShouldEqual, 3)
			So(body["skills_used"], ShouldResemble, []any{"Go", "Python"})
		})

		Convey("A missing user_id is a bad request", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/dashboard", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	Convey("Given a project with candidates", t, func() {
		m := newMockService()
		m.projects["p-1"] = model.Project{ID: "p-1", CreatedBy: "u-1", Name: "p"}
		m.candidates = []model.Candidate{
			{ID: "u-1", Name: "Requester"},
			{ID: "u-9", Name: "Ada"},
		}
		ts := newTestServer(m)
		defer ts.Close()

		Convey("Candidates exclude the requesting user", func() {
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/projects/p-1/recommendations?user_id=u-1", nil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			var got []map[string]any
			So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(got, ShouldHaveLength, 1)
			So(got[0]["name"], ShouldEqual, "Ada")
		})

		Convey("An empty candidate list is 404", func() {
			m.candidates = []model.Candidate{{ID: "u-1", Name: "Requester"}}
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/projects/p-1/recommendations?user_id=u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A timeout maps to 504", func() {
			m.recommendErr = recommend.ErrTimeout
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/projects/p-1/recommendations?user_id=u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusGatewayTimeout)
			So(body["code"], ShouldEqual, "timeout")
		})

		Convey("A service failure maps to 502", func() {
			m.recommendErr = recommend.ErrUnavailable
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/projects/p-1/recommendations?user_id=u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
		})

		Convey("A missing user_id is a bad request", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/projects/p-1/recommendations", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAuthCallbackEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		m := newMockService()
		ts := newTestServer(m)
		defer ts.Close()

		client := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}

		Convey("A successful exchange redirects to the dashboard", func() {
			resp, err := client.Get(ts.URL + "/auth/callback?code=abc")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusFound)
			So(resp.Header.Get("Location"), ShouldEqual, "/secure/dashboard")
			So(m.profiles, ShouldContainKey, "user-abc")
		})

		Convey("A missing code redirects to login", func() {
			resp, err := client.Get(ts.URL + "/auth/callback")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusFound)
			So(resp.Header.Get("Location"), ShouldEqual, "/auth/login")
		})

		Convey("A failed exchange redirects to login with the reason", func() {
			m.exchangeErr = repository.ErrNotFound
			resp, err := client.Get(ts.URL + "/auth/callback?code=abc")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusFound)
			So(resp.Header.Get("Location"), ShouldStartWith, "/auth/login?error=")
		})
	})
}

func TestProfileEndpoints(t *testing.T) {
	Convey("Given a stored profile", t, func() {
		m := newMockService()
		m.profiles["u-1"] = model.Profile{ID: "u-1", Email: "ada@example.com", Skills: []string{}, PreferredDomains: []string{}}
		ts := newTestServer(m)
		defer ts.Close()

		Convey("The profile can be fetched", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/profiles/u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["email"], ShouldEqual, "ada@example.com")
		})

		Convey("The profile can be updated", func() {
			resp, body := doJSON(t, http.MethodPut, ts.URL+"/profiles/u-1", map[string]any{
				"user_name": "Ada",
				"location":  "Berlin",
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["user_name"], ShouldEqual, "Ada")
			So(body["location"], ShouldEqual, "Berlin")
		})

		Convey("Certifications and experience round-trip through an update", func() {
			resp, body := doJSON(t, http.MethodPut, ts.URL+"/profiles/u-1", map[string]any{
				"user_name": "Ada",
				"certifications": []map[string]any{
					{"name": "CKA", "url": "https://example.com/cka"},
					{"name": "AWS SAA", "url": ""},
				},
				"experience": []string{"Backend engineer at Initech", "SRE at Hooli"},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["certifications"], ShouldResemble, []any{
				map[string]any{"name": "CKA", "url": "https://example.com/cka"},
				map[string]any{"name": "AWS SAA", "url": ""},
			})
			So(body["experience"], ShouldResemble, []any{"Backend engineer at Initech", "SRE at Hooli"})

			resp, body = doJSON(t, http.MethodGet, ts.URL+"/profiles/u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["experience"], ShouldResemble, []any{"Backend engineer at Initech", "SRE at Hooli"})
		})

		Convey("Skills accumulate in order with duplicates", func() {
			for _, skill := range []string{"Python", "Python", "Go"} {
				resp, _ := doJSON(t, http.MethodPost, ts.URL+"/profiles/u-1/skills", map[string]any{"item": skill})
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			}

			resp, body := doJSON(t, http.MethodGet, ts.URL+"/profiles/u-1", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["skills"], ShouldResemble, []any{"Python", "Python", "Go"})

			Convey("Positional removal drops one element", func() {
				resp, body := doJSON(t, http.MethodDelete, ts.URL+"/profiles/u-1/skills/1", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["items"], ShouldResemble, []any{"Python", "Go"})
			})

			Convey("An out-of-range removal is a bad request", func() {
				resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/profiles/u-1/skills/9", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("Preferred domains use the same contract", func() {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/profiles/u-1/preferred-domains", map[string]any{"item": "Fintech"})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["items"], ShouldResemble, []any{"Fintech"})

			resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/profiles/u-1/preferred-domains/4", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A tag post without an item is a bad request", func() {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/profiles/u-1/skills", map[string]any{"item": " "})
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown profile is 404", func() {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/profiles/ghost", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAvatarEndpoint(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}

	Convey("Given a stored profile", t, func() {
		m := newMockService()
		m.profiles["u-1"] = model.Profile{ID: "u-1"}
		ts := newTestServer(m)
		defer ts.Close()

		post := func(userID string, data []byte) (*http.Response, map[string]any) {
			resp, err := http.Post(ts.URL+"/profiles/"+userID+"/avatar", "application/octet-stream", bytes.NewReader(data))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			var body map[string]any
			_ = json.NewDecoder(resp.Body).Decode(&body)
			return resp, body
		}

		Convey("A valid image is accepted for async processing", func() {
			resp, body := post("u-1", png)
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			So(body["status"], ShouldEqual, "queued")
		})

		Convey("A multipart upload is accepted", func() {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			part, err := mw.CreateFormFile("avatar", "avatar.png")
			So(err, ShouldBeNil)
			_, err = part.Write(png)
			So(err, ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			resp, err := http.Post(ts.URL+"/profiles/u-1/avatar", mw.FormDataContentType(), &buf)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
		})

		Convey("A non-image payload is a bad request", func() {
			resp, _ := post("u-1", []byte("definitely not an image"))
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A configured cap above the package default is honored", func() {
			m.avatarMax = 10 << 20
			big := append(append([]byte{}, png...), bytes.Repeat([]byte{0}, 6<<20)...)

			resp, _ := post("u-1", big)
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			So(m.avatarBytes, ShouldEqual, len(big))
		})

		Convey("A payload over the configured cap is rejected, not truncated", func() {
			m.avatarMax = 1 << 20
			big := append(append([]byte{}, png...), bytes.Repeat([]byte{0}, 2<<20)...)

			resp, _ := post("u-1", big)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Queue saturation maps to 429", func() {
			m.avatarErr = serviceapp.ErrUploadQueueSaturated
			resp, body := post("u-1", png)
			So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
			So(body["code"], ShouldEqual, "backpressure")
		})

		Convey("Disabled uploads map to 503", func() {
			m.avatarErr = serviceapp.ErrUploadsUnavailable
			resp, _ := post("u-1", png)
			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		m := newMockService()
		m.profiles["u-1"] = model.Profile{ID: "u-1"}
		ts := newTestServer(m)
		defer ts.Close()

		Convey("Stats report service state", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/stats", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["started"], ShouldEqual, true)
			So(body["totalProfiles"], ShouldEqual, 1)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		ts := newTestServer(newMockService())
		defer ts.Close()

		Convey("The metrics scrape succeeds", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
