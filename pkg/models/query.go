package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

const (
	QueryField = "q"

	maxFormMemory = 1 << 20
)

// QueryRequest is the form submission accepted by the search action.
type QueryRequest struct {
	Query   string
	Present bool
}

// ParseQueryRequest reads the "q" field from a urlencoded or multipart form
// body. The value is not validated: empty and arbitrary strings pass through.
// Parsing twice on the same request is safe.
func ParseQueryRequest(r *http.Request) (*QueryRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse form data: %w", err)
	}

	q := &QueryRequest{}
	if values, ok := r.PostForm[QueryField]; ok && len(values) > 0 {
		q.Query = values[0]
		q.Present = true
	}

	return q, nil
}

// Hit is one matched document. Backends that only index identifiers
// send neither content nor metadata; a nil Metadata is left out when
// encoding so that it decodes back to nil.
type Hit struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

func (h Hit) MarshalJSON() ([]byte, error) {
	hit := struct {
		ID       string             `json:"id"`
		Content  string             `json:"content"`
		Metadata *map[string]string `json:"metadata,omitempty"`
	}{ID: h.ID, Content: h.Content}
	if h.Metadata != nil {
		hit.Metadata = &h.Metadata
	}
	return json.Marshal(&hit)
}

// UnmarshalJSON accepts numeric identifiers and list-valued metadata, as
// sent by some backends. Lists are joined with ", ".
func (h *Hit) UnmarshalJSON(b []byte) error {
	var hit struct {
		ID       json.RawMessage            `json:"id"`
		Content  string                     `json:"content"`
		Metadata map[string]json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(b, &hit); err != nil {
		return err
	}

	id, err := hitID(hit.ID)
	if err != nil {
		return err
	}

	var metadata map[string]string
	if hit.Metadata != nil {
		metadata = make(map[string]string, len(hit.Metadata))
		for k, v := range hit.Metadata {
			var value string
			if err := json.Unmarshal(v, &value); err == nil {
				metadata[k] = value
				continue
			}
			var values []string
			if err := json.Unmarshal(v, &values); err != nil {
				return fmt.Errorf("unable to unmarshal metadata %q: %w", k, err)
			}
			metadata[k] = strings.Join(values, ", ")
		}
	}

	*h = Hit{ID: id, Content: hit.Content, Metadata: metadata}
	return nil
}

func hitID(raw json.RawMessage) (string, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("unable to unmarshal hit id: %w", err)
		}
		return id, nil
	}

	var id json.Number
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("unable to unmarshal hit id: %w", err)
	}
	return id.String(), nil
}

type QueryResult struct {
	Offset             int    `json:"offset"`
	Limit              int    `json:"limit"`
	EstimatedTotalHits int    `json:"estimatedTotalHits"`
	ProcessingTimeMs   int    `json:"processingTimeMs"`
	Query              string `json:"query"`
	Hits               []Hit  `json:"hits"`
}

// ErrorResult is a logical error reported by the search backend. It is data,
// not a transport failure.
type ErrorResult struct {
	Error string `json:"error"`
}

// QueryResponse holds exactly one of Result or Failure. A response built
// by ParseQueryResponse also keeps the bytes it was parsed from and encodes
// back to them, so fields the typed view does not know about are relayed
// as they came.
type QueryResponse struct {
	Result  *QueryResult
	Failure *ErrorResult

	raw json.RawMessage
}

func (q *QueryResponse) IsError() bool {
	return q.Failure != nil
}

func (q QueryResponse) MarshalJSON() ([]byte, error) {
	if len(q.raw) > 0 {
		return q.raw, nil
	}

	switch {
	case q.Result != nil && q.Failure != nil:
		return nil, errors.New("unable to marshal query response: both variants set")
	case q.Failure != nil:
		return json.Marshal(q.Failure)
	case q.Result != nil:
		result := *q.Result
		if result.Hits == nil {
			result.Hits = []Hit{}
		}
		return json.Marshal(&result)
	}
	return nil, errors.New("unable to marshal query response: no variant set")
}

func (q *QueryResponse) UnmarshalJSON(b []byte) error {
	r, err := ParseQueryResponse(b)
	if err != nil {
		return err
	}
	*q = *r
	return nil
}

// ParseQueryResponse decodes a search backend reply. An object carrying an
// "error" key must be an ErrorResult, anything else must be a QueryResult.
// Everything that matches neither is rejected.
func ParseQueryResponse(b []byte) (*QueryResponse, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unable to unmarshal query response: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("unable to parse query response: not a JSON object")
	}

	_, hasError := obj["error"]
	_, hasHits := obj["hits"]

	switch {
	case hasError && hasHits:
		return nil, errors.New("unable to parse query response: both error and hits present")
	case hasError:
		if err := errorSchema.Validate(obj); err != nil {
			return nil, fmt.Errorf("unable to validate error response: %w", err)
		}
		var e ErrorResult
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, fmt.Errorf("unable to unmarshal error response: %w", err)
		}
		return &QueryResponse{Failure: &e, raw: clone(b)}, nil
	}

	if err := resultSchema.Validate(obj); err != nil {
		return nil, fmt.Errorf("unable to validate query result: %w", err)
	}
	var result QueryResult
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, fmt.Errorf("unable to unmarshal query result: %w", err)
	}

	seen := make(map[string]struct{}, len(result.Hits))
	for _, hit := range result.Hits {
		if _, found := seen[hit.ID]; found {
			return nil, fmt.Errorf("unable to validate query result: duplicate hit id: %s", hit.ID)
		}
		seen[hit.ID] = struct{}{}
	}

	return &QueryResponse{Result: &result, raw: clone(b)}, nil
}

func clone(b []byte) json.RawMessage {
	return append(json.RawMessage(nil), b...)
}
