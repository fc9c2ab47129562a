//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("unknown intent is rejected", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/intent", map[string]any{"type": "dance"})
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d body=%s", status, string(body))
		}
	})

	t.Run("state intent save status replay ops", func(t *testing.T) {
		status, stateBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/state", nil)
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(stateBody))
		}
		var state map[string]any
		if err := json.Unmarshal(stateBody, &state); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(stateBody))
		}
		sessionID, _ := state["session_id"].(string)
		if sessionID == "" {
			t.Fatalf("expected session_id in state, got=%v", state)
		}
		tick := asMap(state["frame"])["tick"]

		status, moveBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/intent", map[string]any{
			"type": "move", "x": 400, "y": 300,
		})
		if status != http.StatusOK && status != http.StatusGone {
			t.Fatalf("move status=%d body=%s", status, string(moveBody))
		}

		slot := "e2e-" + time.Now().UTC().Format("20060102150405")
		status, saveBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/save", map[string]any{"slot": slot})
		if status != http.StatusOK {
			t.Fatalf("save status=%d body=%s", status, string(saveBody))
		}

		time.Sleep(200 * time.Millisecond)
		status, sinceBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/state?since=0", nil)
		if status != http.StatusOK {
			t.Fatalf("state since status=%d body=%s", status, string(sinceBody))
		}
		var since map[string]any
		if err := json.Unmarshal(sinceBody, &since); err != nil {
			t.Fatalf("unmarshal state since: %v body=%s", err, string(sinceBody))
		}
		if since["changed"] != true {
			t.Fatalf("expected changed frame after tick %v, got=%v", tick, since)
		}

		status, statusBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/status", nil)
		if status != http.StatusOK {
			t.Fatalf("status endpoint status=%d body=%s", status, string(statusBody))
		}
		var st map[string]any
		if err := json.Unmarshal(statusBody, &st); err != nil {
			t.Fatalf("unmarshal status response: %v body=%s", err, string(statusBody))
		}
		timeOfDay, _ := st["time_of_day"].(string)
		if strings.TrimSpace(timeOfDay) == "" {
			t.Fatalf("expected time_of_day in status response, got=%v", st)
		}

		status, replayBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/replay?limit=20", nil)
		if status != http.StatusOK {
			t.Fatalf("replay status=%d body=%s", status, string(replayBody))
		}
		var rep map[string]any
		if err := json.Unmarshal(replayBody, &rep); err != nil {
			t.Fatalf("unmarshal replay response: %v body=%s", err, string(replayBody))
		}
		if _, ok := rep["events"]; !ok {
			t.Fatalf("expected events in replay response, got=%v", rep)
		}

		status, kpiBody := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["intent_total"]; !ok {
			t.Fatalf("expected intent_total in kpi response")
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
