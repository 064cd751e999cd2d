// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadiatamny/FFXIV-PaissaDB/models"
	"github.com/fadiatamny/FFXIV-PaissaDB/testutil"
)

func TestIngestWardInfo(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewWardInfoHandler(conn, testutil.GetTestConfig(), testutil.TestCatalog(t))

	req := testutil.MakeRequest("POST", "/wardInfo",
		testutil.WardInfo(3, testutil.OpenPlot(0, 3187500), testutil.OwnedPlot(1, "Sleepy Kupo")), nil)
	w := httptest.NewRecorder()
	h.IngestWardInfo(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.WardInfoResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.EventID == 0 || resp.SweepID == 0 {
		t.Errorf("Expected event and sweep ids, got %+v", resp)
	}
	if resp.PlotsInserted != 2 || resp.PlotsRedundant != 0 {
		t.Errorf("Expected 2 inserted / 0 redundant, got %+v", resp)
	}

	if n := testutil.CountRows(t, conn, "events"); n != 1 {
		t.Errorf("Expected 1 event row, got %d", n)
	}
	if n := testutil.CountRows(t, conn, "plots"); n != 2 {
		t.Errorf("Expected 2 plot rows, got %d", n)
	}
}

func TestIngestWardInfoValidationError(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewWardInfoHandler(conn, testutil.GetTestConfig(), testutil.TestCatalog(t))

	sub := testutil.WardInfo(99, testutil.OpenPlot(0, 3187500)) // Mist has 24 wards
	req := testutil.MakeRequest("POST", "/wardInfo", sub, nil)
	w := httptest.NewRecorder()
	h.IngestWardInfo(w, req)

	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Field != "ward_number" {
		t.Errorf("Expected field ward_number, got %q", resp.Field)
	}

	// A rejected submission must leave no trace.
	if n := testutil.CountRows(t, conn, "events"); n != 0 {
		t.Errorf("Expected 0 event rows after rejection, got %d", n)
	}
}

func TestIngestWardInfoBadJSON(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewWardInfoHandler(conn, testutil.GetTestConfig(), testutil.TestCatalog(t))

	req := httptest.NewRequest("POST", "/wardInfo", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.IngestWardInfo(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestIngestWardInfoTooLarge(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewWardInfoHandler(conn, testutil.GetTestConfig(), testutil.TestCatalog(t))

	body := bytes.Repeat([]byte("x"), maxSubmissionBytes+1)
	req := httptest.NewRequest("POST", "/wardInfo", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.IngestWardInfo(w, req)

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestIngestWardInfoResubmissionIsRedundant(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewWardInfoHandler(conn, testutil.GetTestConfig(), testutil.TestCatalog(t))

	sub := testutil.WardInfo(3, testutil.OpenPlot(0, 3187500))
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/wardInfo", sub, nil)
		w := httptest.NewRecorder()
		h.IngestWardInfo(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.WardInfoResponse
		testutil.AssertJSON(t, w, &resp)
		if i == 1 && resp.PlotsRedundant != 1 {
			t.Errorf("Expected resubmission to be redundant, got %+v", resp)
		}
	}

	// Both observations are kept; the second is just flagged.
	if n := testutil.CountRows(t, conn, "plots"); n != 2 {
		t.Errorf("Expected 2 plot rows, got %d", n)
	}
}
