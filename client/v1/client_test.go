package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"veritime.com/veritime/security"
)

func testToken(t *testing.T) string {
	t.Helper()
	token, err := security.CreateIdentityToken(&security.VeritimeIdentity{
		Id:       5,
		UserName: "alice",
		Tenant:   "acme",
		Email:    "alice@acme.example",
	}, "IxrAjDoa2FqElO7IhrSrUJELhUckePEPVpaePlS/Xaw=", 3600)
	if err != nil {
		t.Fatalf("failed to create identity token: %v", err)
	}
	return token
}

func TestAttendanceMark(t *testing.T) {
	token := testToken(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != basePath+"/attendance" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+token {
			t.Errorf("unexpected auth header: %s", got)
		}

		var dto MarkAttendanceDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if dto.Username != "alice" || dto.WorkMode != "office" {
			t.Errorf("unexpected submission: %+v", dto)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"record": AttendanceRecordDTO{
					ID:       "b9c7a6e2-0000-0000-0000-000000000001",
					Username: "alice",
					Date:     "2024-06-12",
					WorkMode: "office",
					Status:   "present",
					ClockIn:  "09:05",
				},
				"intents": []NotificationIntentDTO{
					{Kind: "checkout-reminder", Username: "alice", Date: "2024-06-12"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewVeritimeClient(server.URL, token)

	result, err := client.Attendance.Mark(&MarkAttendanceDTO{
		Username: "alice",
		WorkMode: "office",
		Location: &GeolocationDTO{Latitude: -27.4698, Longitude: 153.0251, Accuracy: 20},
	})
	if err != nil {
		t.Fatalf("failed to mark attendance: %v", err)
	}

	if result.Record.ClockIn != "09:05" {
		t.Errorf("unexpected clock-in: %s", result.Record.ClockIn)
	}
	if len(result.Intents) != 1 || result.Intents[0].Kind != "checkout-reminder" {
		t.Errorf("unexpected intents: %+v", result.Intents)
	}
}

func TestAttendanceSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != basePath+"/attendance/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "50" || r.URL.Query().Get("offset") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []AttendanceRecordDTO{
				{Username: "alice", Date: "2024-06-12", Status: "present"},
				{Username: "bob", Date: "2024-06-12", Status: "half-day"},
			},
			"pagination": map[string]any{"total": 2},
		})
	}))
	defer server.Close()

	client := NewVeritimeClient(server.URL, "")

	records, total, err := client.Attendance.Search(&SearchParamsDTO{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
	}, 50, 100)
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("unexpected result: total=%d records=%d", total, len(records))
	}
	if records[1].Status != "half-day" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestAttendanceMarkRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "attendance already marked today at 09:05",
		})
	}))
	defer server.Close()

	client := NewVeritimeClient(server.URL, "")

	_, err := client.Attendance.Mark(&MarkAttendanceDTO{Username: "alice", WorkMode: "remote"})
	if err == nil {
		t.Fatal("expected rejection error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("unexpected status: %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "already marked") {
		t.Errorf("unexpected body: %s", apiErr.Body)
	}
}
