package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hermannm.dev/bookinganalysis/csv"
	"hermannm.dev/bookinganalysis/transform"
	"hermannm.dev/wrap"
)

type TransformRequest struct {
	Records []transform.Record `json:"records"`
	Options transform.Options  `json:"options"`
}

// Expects:
//   - body: JSON-encoded TransformRequest
//
// Returns:
//   - JSON-encoded list of transform.GroupEntry
func (api AnalysisAPI) TransformRecords(res http.ResponseWriter, req *http.Request) {
	var request TransformRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		sendClientError(res, err, "failed to parse transform request from request body")
		return
	}

	entries := transform.GroupAggregateSort(request.Records, request.Options)
	sendJSON(res, entries)
}

// Expects:
//   - multipart form field 'csvFile': CSV file to read records from
//   - multipart form field 'options': JSON-encoded transform.Options
//
// Returns:
//   - JSON-encoded list of transform.GroupEntry
func (api AnalysisAPI) TransformRecordsFromCSV(res http.ResponseWriter, req *http.Request) {
	options, err := getOptionsFromRequest(req)
	if err != nil {
		sendClientError(res, err, "")
		return
	}

	csvFile, _, err := req.FormFile("csvFile")
	if err != nil {
		sendClientError(res, err, "failed to get CSV file from request")
		return
	}
	defer csvFile.Close()

	csvReader, err := csv.NewReader(csvFile)
	if err != nil {
		sendServerError(res, err, "failed to read uploaded CSV file")
		return
	}

	records, err := csvReader.ReadRecords()
	if err != nil {
		sendClientError(res, err, "failed to parse records from uploaded CSV")
		return
	}

	entries := transform.GroupAggregateSort(records, options)
	sendJSON(res, entries)
}

func getOptionsFromRequest(req *http.Request) (transform.Options, error) {
	optionsInput := req.FormValue("options")
	if optionsInput == "" {
		return transform.Options{}, errors.New("missing 'options' field in request")
	}

	var options transform.Options
	if err := json.Unmarshal([]byte(optionsInput), &options); err != nil {
		return transform.Options{}, wrap.Error(
			err,
			"failed to parse transform options from request",
		)
	}

	return options, nil
}
