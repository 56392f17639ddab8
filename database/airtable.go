package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultEndpointURL = "https://api.airtable.com"

// Airtable implements Store against the Airtable REST API. One client is
// shared by all requests; it holds no per-request state beyond the
// underlying transport.
type Airtable struct {
	apiKey      string
	baseID      string
	endpointURL string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewAirtable creates a Store backed by the hosted base identified by baseID.
func NewAirtable(apiKey, baseID string) *Airtable {
	return &Airtable{
		apiKey:      apiKey,
		baseID:      baseID,
		endpointURL: defaultEndpointURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      log.With().Str("component", "airtable").Logger(),
	}
}

// WithEndpointURL overrides the API endpoint, used by tests to point the
// client at a local server.
func (a *Airtable) WithEndpointURL(endpointURL string) *Airtable {
	a.endpointURL = endpointURL
	return a
}

// wire types

type airtableRecord struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type airtableRecordList struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset,omitempty"`
}

type airtableWriteRequest struct {
	Records []airtableRecord `json:"records"`
}

type airtableErrorBody struct {
	Error json.RawMessage `json:"error"`
}

type airtableErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (a *Airtable) tableURL(table string) string {
	return fmt.Sprintf("%s/v0/%s/%s", a.endpointURL, a.baseID, url.PathEscape(table))
}

func (a *Airtable) do(ctx context.Context, operation, table, method, rawURL string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errs.NewInternalError(fmt.Sprintf("encoding %s request: %v", operation, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, errs.NewInternalError(fmt.Sprintf("building %s request: %v", operation, err))
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewStoreUnreachableError(operation, table, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewStoreUnreachableError(operation, table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		storeType, storeMessage := decodeStoreError(responseBody)
		a.logger.Error().
			Str("table", table).
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Str("storeError", storeMessage).
			Msg("record store rejected request")
		return nil, errs.NewUpstreamError(operation, table, storeType, storeMessage,
			fmt.Errorf("store returned status %d", resp.StatusCode))
	}

	return responseBody, nil
}

// decodeStoreError pulls type/message out of the store's error body. The
// store sometimes returns {"error": "STRING"} and sometimes
// {"error": {"type": ..., "message": ...}}.
func decodeStoreError(body []byte) (storeType, storeMessage string) {
	var envelope airtableErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return "", ""
	}
	var detail airtableErrorDetail
	if err := json.Unmarshal(envelope.Error, &detail); err == nil && (detail.Type != "" || detail.Message != "") {
		return detail.Type, detail.Message
	}
	var asString string
	if err := json.Unmarshal(envelope.Error, &asString); err == nil {
		return asString, ""
	}
	return "", ""
}

func (a *Airtable) Insert(ctx context.Context, table string, fields map[string]any) (Record, error) {
	request := airtableWriteRequest{Records: []airtableRecord{{Fields: fields}}}
	responseBody, err := a.do(ctx, "create record", table, http.MethodPost, a.tableURL(table), request)
	if err != nil {
		return Record{}, err
	}

	var created airtableRecordList
	if err := json.Unmarshal(responseBody, &created); err != nil {
		return Record{}, errs.NewUpstreamError("create record", table, "", "unreadable store response", err)
	}
	if len(created.Records) == 0 {
		return Record{}, errs.NewUpstreamError("create record", table, "", "store returned no record", nil)
	}

	record := created.Records[0]
	return Record{ID: record.ID, Fields: record.Fields}, nil
}

func (a *Airtable) ListAll(ctx context.Context, table string, filter *Filter) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		query := url.Values{}
		if formula := filter.Formula(); formula != "" {
			query.Set("filterByFormula", formula)
		}
		if offset != "" {
			query.Set("offset", offset)
		}
		listURL := a.tableURL(table)
		if encoded := query.Encode(); encoded != "" {
			listURL += "?" + encoded
		}

		responseBody, err := a.do(ctx, "list records", table, http.MethodGet, listURL, nil)
		if err != nil {
			return nil, err
		}

		var page airtableRecordList
		if err := json.Unmarshal(responseBody, &page); err != nil {
			return nil, errs.NewUpstreamError("list records", table, "", "unreadable store response", err)
		}

		for _, record := range page.Records {
			fields := record.Fields
			if fields == nil {
				fields = map[string]any{}
			}
			records = append(records, Record{ID: record.ID, Fields: fields})
		}

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (a *Airtable) PatchByID(ctx context.Context, table string, patches []RecordPatch) error {
	request := airtableWriteRequest{Records: make([]airtableRecord, 0, len(patches))}
	for _, patch := range patches {
		request.Records = append(request.Records, airtableRecord{ID: patch.ID, Fields: patch.Fields})
	}

	_, err := a.do(ctx, "update record", table, http.MethodPatch, a.tableURL(table), request)
	return err
}

func (a *Airtable) DeleteByIDs(ctx context.Context, table string, ids []string) error {
	query := url.Values{}
	for _, id := range ids {
		query.Add("records[]", id)
	}

	_, err := a.do(ctx, "delete record", table, http.MethodDelete, a.tableURL(table)+"?"+query.Encode(), nil)
	return err
}
