package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/engage/internal/client"
	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/storage"
)

func setupTestServer(t *testing.T) (*httptest.Server, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "engage.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	srv := New(Settings{}, store)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	ts, _ := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateThenGetPlan(t *testing.T) {
	ts, _ := setupTestServer(t)
	plan := models.NewExamplePlan()

	resp := postJSON(t, ts.URL+"/plans", plan)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	status := decodeBody[statusResponse](t, resp)
	if !status.Success || status.ID != plan.ID {
		t.Errorf("create response = %+v, want success with id %s", status, plan.ID)
	}

	getResp, err := http.Get(ts.URL + "/plans/" + plan.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
	got := decodeBody[models.Plan](t, getResp)
	if !reflect.DeepEqual(got, plan) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, plan)
	}
}

func TestListPlans(t *testing.T) {
	ts, store := setupTestServer(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/plans")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		body := new(bytes.Buffer)
		body.ReadFrom(resp.Body)
		if strings.TrimSpace(body.String()) == "null" {
			t.Error("empty listing serialized as null, want []")
		}
	})

	t.Run("newest first", func(t *testing.T) {
		older := models.NewBlankPlan()
		older.Title = "older"
		older.CreatedAt = "2026-01-01T00:00:00Z"
		newer := models.NewBlankPlan()
		newer.Title = "newer"
		newer.CreatedAt = "2026-02-01T00:00:00Z"
		for _, p := range []models.Plan{older, newer} {
			if err := store.SavePlan(p); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		resp, err := http.Get(ts.URL + "/plans")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		plans := decodeBody[[]models.Plan](t, resp)
		if len(plans) != 2 || plans[0].Title != "newer" {
			t.Errorf("listing order wrong: %+v", plans)
		}
	})
}

func TestGetPlanNotFound(t *testing.T) {
	ts, _ := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/plans/nope")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCreatePlanRejectsInvalid(t *testing.T) {
	ts, _ := setupTestServer(t)

	t.Run("broken invariants", func(t *testing.T) {
		plan := models.NewBlankPlan()
		plan.Steps = plan.Steps[:1]
		resp := postJSON(t, ts.URL+"/plans", plan)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		errBody := decodeBody[errorResponse](t, resp)
		if errBody.Error == "" {
			t.Error("400 response carries no reason")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/plans", "application/json", strings.NewReader("{nope"))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("unknown fields", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/plans", "application/json", strings.NewReader(`{"id":"x","bogus":1}`))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestReplacePlan(t *testing.T) {
	ts, store := setupTestServer(t)
	plan := models.NewBlankPlan()
	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	t.Run("replaces wholesale", func(t *testing.T) {
		plan.Title = "Replaced"
		data, _ := json.Marshal(plan)
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/plans/"+plan.ID, bytes.NewReader(data))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		got, err := store.GetPlan(plan.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Title != "Replaced" {
			t.Errorf("title = %q, want replacement to stick", got.Title)
		}
	})

	t.Run("id mismatch", func(t *testing.T) {
		data, _ := json.Marshal(plan)
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/plans/other-id", bytes.NewReader(data))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 for body/path id mismatch", resp.StatusCode)
		}
	})
}

func TestDeletePlan(t *testing.T) {
	ts, store := setupTestServer(t)
	plan := models.NewBlankPlan()
	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/plans/"+plan.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	again, _ := http.NewRequest(http.MethodDelete, ts.URL+"/plans/"+plan.ID, nil)
	resp2, err := http.DefaultClient.Do(again)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", resp2.StatusCode)
	}
}

// TestClientRoundTrip drives the whole surface through the HTTP client
// the remote TUI uses.
func TestClientRoundTrip(t *testing.T) {
	ts, _ := setupTestServer(t)
	api := client.New(ts.URL)

	if err := api.Health(); err != nil {
		t.Fatalf("health check failed: %v", err)
	}

	plan := models.NewExamplePlan()
	if err := api.CreatePlan(plan); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := api.GetPlan(plan.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !reflect.DeepEqual(got, plan) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, plan)
	}

	plan.Title = "Edited remotely"
	if err := api.SavePlan(plan); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	all, err := api.GetAllPlans()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 || all[0].Title != "Edited remotely" {
		t.Errorf("listing = %+v, want the edited plan", all)
	}

	if err := api.DeletePlan(plan.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := api.GetPlan(plan.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after delete", err)
	}
}
