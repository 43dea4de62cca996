package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hermannm.dev/bookinganalysis/api"
	"hermannm.dev/bookinganalysis/config"
)

func TestTransformRecords(t *testing.T) {
	router := newTestRouter()

	requestBody := `{
		"records": [
			{"id": 1, "category": "Hotel", "price": 120},
			{"id": 2, "category": "Flight", "price": 450},
			{"id": 3, "category": "Hotel", "price": 80}
		],
		"options": {
			"groupBy": "category",
			"aggregations": {"price": "sum"},
			"sortBy": {"field": "price", "order": "desc"}
		}
	}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(
		recorder,
		httptest.NewRequest(http.MethodPost, "/transform", strings.NewReader(requestBody)),
	)

	entries := parseGroupEntries(t, recorder)
	if len(entries) != 2 {
		t.Fatalf("expected 2 group entries, got %d", len(entries))
	}

	hotel := entries[0]
	if hotel["category"] != "Hotel" {
		t.Errorf("expected group key under dynamic 'category' field, got %v", hotel)
	}
	if hotel["count"] != 2.0 {
		t.Errorf("expected Hotel group count 2, got %v", hotel["count"])
	}
	if aggregates, ok := hotel["aggregates"].(map[string]any); !ok || aggregates["price"] != 200.0 {
		t.Errorf("expected Hotel price sum 200, got %v", hotel["aggregates"])
	}
}

func TestTransformRecordsInvalidBody(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(
		recorder,
		httptest.NewRequest(http.MethodPost, "/transform", strings.NewReader("not json")),
	)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for invalid request body, got %d", recorder.Code)
	}
}

func TestTransformRecordsFromCSV(t *testing.T) {
	router := newTestRouter()

	var requestBody bytes.Buffer
	form := multipart.NewWriter(&requestBody)
	if err := form.WriteField(
		"options",
		`{"groupBy": "category", "aggregations": {"price": "sum"}, "sortBy": {"field": "price", "order": "asc"}}`,
	); err != nil {
		t.Fatal(err)
	}
	csvFile, err := form.CreateFormFile("csvFile", "bookings.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := csvFile.Write([]byte("category,price\nHotel,120\nFlight,450\nHotel,80\n")); err != nil {
		t.Fatal(err)
	}
	if err := form.Close(); err != nil {
		t.Fatal(err)
	}

	request := httptest.NewRequest(http.MethodPost, "/transform-csv", &requestBody)
	request.Header.Set("Content-Type", form.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	entries := parseGroupEntries(t, recorder)
	if len(entries) != 2 {
		t.Fatalf("expected 2 group entries, got %d", len(entries))
	}
	if aggregates, ok := entries[0]["aggregates"].(map[string]any); !ok || aggregates["price"] != 200.0 {
		t.Errorf("expected Hotel price sum 200, got %v", entries[0]["aggregates"])
	}
}

func TestTransformRecordsFromCSVWithoutOptions(t *testing.T) {
	router := newTestRouter()

	var requestBody bytes.Buffer
	form := multipart.NewWriter(&requestBody)
	if err := form.Close(); err != nil {
		t.Fatal(err)
	}

	request := httptest.NewRequest(http.MethodPost, "/transform-csv", &requestBody)
	request.Header.Set("Content-Type", form.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing options field, got %d", recorder.Code)
	}
}

func newTestRouter() *http.ServeMux {
	router := http.NewServeMux()
	api.NewAnalysisAPI(router, config.API{Port: "8080"})
	return router
}

func parseGroupEntries(t *testing.T, recorder *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", recorder.Code, recorder.Body.String())
	}

	var entries []map[string]any
	if err := json.NewDecoder(recorder.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to parse group entries from response: %v", err)
	}

	return entries
}
