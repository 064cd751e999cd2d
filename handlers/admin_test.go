// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadiatamny/FFXIV-PaissaDB/auth"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
	"github.com/fadiatamny/FFXIV-PaissaDB/testutil"
)

// adminRequest routes an admin DELETE through a mux so PathValue works.
func adminRequest(t *testing.T, h *AdminHandler, path, key string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /events/{id}", h.DeleteEvent)
	mux.HandleFunc("DELETE /sweepers/{id}", h.DeleteSweeper)

	req := httptest.NewRequest("DELETE", path, nil)
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func adminKey(t *testing.T) string {
	t.Helper()
	return auth.GenerateAdminKey(auth.AdminScope, testutil.GetTestConfig().AdminKeySalt)
}

func TestDeleteEventRequiresAdminKey(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	tests := []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"wrong key", "not-a-real-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := adminRequest(t, h, "/events/1", tt.key)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestDeleteEventCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	ingest(t, conn, testutil.WardInfo(3, testutil.OpenPlot(0, 3187500), testutil.OwnedPlot(1, "Sleepy Kupo")))

	var eventID int64
	if err := conn.Get(&eventID, `SELECT id FROM events`); err != nil {
		t.Fatalf("Failed to look up event: %v", err)
	}

	w := adminRequest(t, h, fmt.Sprintf("/events/%d", eventID), adminKey(t))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deleted != "event" || resp.ID != eventID {
		t.Errorf("Unexpected delete response: %+v", resp)
	}

	// The event's derived rows go with it.
	for _, table := range []string{"events", "wardsweeps", "plots"} {
		if n := testutil.CountRows(t, conn, table); n != 0 {
			t.Errorf("Expected %s emptied by cascade, got %d rows", table, n)
		}
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	w := adminRequest(t, h, "/events/12345", adminKey(t))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteSweeperKeepsHistory(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	ingest(t, conn, testutil.WardInfo(3, testutil.OpenPlot(0, 3187500)))

	w := adminRequest(t, h, fmt.Sprintf("/sweepers/%d", testutil.TestSweeperID), adminKey(t))
	testutil.AssertStatus(t, w, http.StatusOK)

	if n := testutil.CountRows(t, conn, "sweepers"); n != 0 {
		t.Errorf("Expected sweeper deleted, got %d rows", n)
	}
	// The facts survive with attribution nulled.
	if n := testutil.CountRows(t, conn, "events"); n != 1 {
		t.Errorf("Expected event to survive sweeper deletion, got %d rows", n)
	}

	var orphaned int
	if err := conn.Get(&orphaned, `SELECT COUNT(*) FROM events WHERE sweeper_id IS NULL`); err != nil {
		t.Fatalf("Failed to count orphaned events: %v", err)
	}
	if orphaned != 1 {
		t.Errorf("Expected event attribution nulled, got %d orphaned rows", orphaned)
	}
}

func TestDeleteSweeperNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	w := adminRequest(t, h, "/sweepers/999999", adminKey(t))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
