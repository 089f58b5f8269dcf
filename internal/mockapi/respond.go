package mockapi

import (
	"encoding/json"
	"net/http"

	sonic "github.com/bytedance/sonic"
)

// envelope mirrors the API-Football v3 response wrapper.
type envelope struct {
	Get        string            `json:"get"`
	Parameters map[string]string `json:"parameters"`
	Errors     interface{}       `json:"errors"`
	Results    int               `json:"results"`
	Paging     paging            `json:"paging"`
	Response   interface{}       `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// writeJSON marshals v and writes it with status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// listEnvelope wraps an array response.
func listEnvelope(r *http.Request, items []json.RawMessage) envelope {
	if items == nil {
		items = []json.RawMessage{}
	}
	return envelope{
		Get:        endpointName(r),
		Parameters: queryParams(r),
		Errors:     []string{},
		Results:    len(items),
		Paging:     paging{Current: 1, Total: 1},
		Response:   items,
	}
}

// objectEnvelope wraps a single-object response.
func objectEnvelope(r *http.Request, item json.RawMessage) envelope {
	return envelope{
		Get:        endpointName(r),
		Parameters: queryParams(r),
		Errors:     []string{},
		Results:    1,
		Paging:     paging{Current: 1, Total: 1},
		Response:   item,
	}
}

// writeProviderErrors answers 200 with a populated errors object and an empty
// response, the way API-Football reports bad parameters and bad keys.
func writeProviderErrors(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	writeJSON(w, http.StatusOK, envelope{
		Get:        endpointName(r),
		Parameters: queryParams(r),
		Errors:     errs,
		Results:    0,
		Paging:     paging{Current: 1, Total: 1},
		Response:   []string{},
	})
}

// writeError sends a gateway-level error (no envelope), as RapidAPI does for
// auth and quota failures.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func endpointName(r *http.Request) string {
	name := r.URL.Path
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return name
}

func queryParams(r *http.Request) map[string]string {
	q := r.URL.Query()
	params := make(map[string]string, len(q))
	for key := range q {
		params[key] = q.Get(key)
	}
	return params
}
