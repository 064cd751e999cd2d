// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/cliparse"
	"github.com/fadiatamny/FFXIV-PaissaDB/db"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

// Reference ids from the embedded catalog, for readable tests.
const (
	TestWorldID    = 73  // Adamantoise
	TestWorldID2   = 54  // Faerie
	TestDistrictID = 339 // Mist
	TestSweeperID  = 1001
)

// SetupTestDB creates a fresh sqlite database in a per-test temp dir with
// the full schema and the embedded reference catalog seeded. The file is
// cleaned up with the test.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "paissa_test.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	if err := catalog.Seed(conn, TestCatalog(t)); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	return conn
}

// TestCatalog loads the embedded reference data.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return cat
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseType: "sqlite",
		DatabaseURL:  "file:unused.db",
		AdminKeySalt: "test-admin-salt",
	}
}

// WardInfo builds a submission for the test world/district with the given
// observations.
func WardInfo(ward int, plots ...models.PlotObservation) models.WardInfoRequest {
	return models.WardInfoRequest{
		WorldID:         TestWorldID,
		TerritoryTypeID: TestDistrictID,
		WardNumber:      ward,
		Sweeper:         models.SweeperIdentity{ID: TestSweeperID, Name: "Test Sweeper"},
		Plots:           plots,
	}
}

// OpenPlot is an unowned plot observation with a known price.
func OpenPlot(plotNumber, price int) models.PlotObservation {
	return models.PlotObservation{
		PlotNumber: plotNumber,
		IsOwned:    false,
		HousePrice: &price,
	}
}

// OwnedPlot is an owned plot observation with a built house and owner name.
func OwnedPlot(plotNumber int, owner string) models.PlotObservation {
	return models.PlotObservation{
		PlotNumber:    plotNumber,
		IsOwned:       true,
		HasBuiltHouse: true,
		OwnerName:     &owner,
	}
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
