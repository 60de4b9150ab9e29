package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/aum-search/aum-web/pkg/models"
)

const defaultLimit = 20

var documents = []struct {
	content  string
	metadata map[string]string
}{
	{"The cat sat on the mat.", map[string]string{"title": "Cats", "path": "/docs/cats.txt"}},
	{"A dog chased the cat up a tree.", map[string]string{"title": "Dogs", "path": "/docs/dogs.txt"}},
	{"Meeting notes for the quarterly review.", map[string]string{"title": "Notes", "path": "/docs/notes.txt"}},
}

// Hit IDs are assigned once per process.
var ids = func() []string {
	s := make([]string, len(documents))
	for i := range s {
		s[i] = uuid.NewString()
	}
	return s
}()

// Stands in for the search backend (port 8000) and a Splunk HEC sink
// (port 8088) during local development.
func main() {
	hec := mux.NewRouter()
	hec.HandleFunc("/services/collector/event", handleHECEvent).Methods("POST")

	go func() {
		log.Println("Starting mock Splunk HEC server on :8088")
		if err := http.ListenAndServe(":8088", hec); err != nil {
			log.Fatalf("HEC server failed: %v", err)
		}
	}()

	r := mux.NewRouter()
	r.HandleFunc("/", handleRoot).Methods("GET")
	r.HandleFunc("/search", handleSearch).Methods("GET")

	log.Println("Starting mock search backend on :8000")
	if err := http.ListenAndServe(":8000", r); err != nil {
		log.Fatalf("Search backend failed: %v", err)
	}
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	values, ok := r.URL.Query()["q"]
	if !ok {
		writeJSON(w, http.StatusBadRequest, &models.ErrorResult{Error: `Query parameter "q" is required.`})
		return
	}
	q := values[0]
	log.Printf("Search %q (request ID: %q)", q, r.Header.Get("X-Request-Id"))

	result := &models.QueryResult{
		Limit: defaultLimit,
		Query: q,
		Hits:  []models.Hit{},
	}

	needle := strings.ToLower(q)
	for i, d := range documents {
		if !strings.Contains(strings.ToLower(d.content), needle) {
			continue
		}
		if len(result.Hits) < defaultLimit {
			result.Hits = append(result.Hits, models.Hit{ID: ids[i], Content: d.content, Metadata: d.metadata})
		}
		result.EstimatedTotalHits++
	}
	result.ProcessingTimeMs = int(time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, &models.QueryResponse{Result: result})
}

func handleHECEvent(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Splunk ")
	if token == "" || token == r.Header.Get("Authorization") {
		log.Println("Missing or invalid Authorization header")
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"text": "Token is required", "code": 2})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"text": "Invalid request", "code": 5})
		return
	}

	var event map[string]interface{}
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"text": "Invalid data format", "code": 6})
		return
	}
	log.Printf("Received audit event: %v", event["event"])

	writeJSON(w, http.StatusOK, map[string]interface{}{"text": "Success", "code": 0})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
