package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// favoriteRequest is the JSON body the web client sends instead of query parameters
type favoriteRequest struct {
	UserID     json.Number `json:"userId"`
	PropertyID json.Number `json:"propertyId"`
	Notes      *string     `json:"notes"`
}

// requestParams resolves parameters from the query string first, then from
// the JSON body on POST, PUT and PATCH
type requestParams struct {
	r    *http.Request
	body favoriteRequest
}

func readParams(r *http.Request) (*requestParams, error) {
	p := &requestParams{r: r}

	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return p, nil
	}
	if r.Body == nil || r.ContentLength == 0 {
		return p, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&p.body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return p, nil
}

func (p *requestParams) lookup(name string) (string, bool) {
	q := p.r.URL.Query()
	if q.Has(name) {
		return q.Get(name), true
	}

	switch name {
	case "userId":
		return p.body.UserID.String(), p.body.UserID != ""
	case "propertyId":
		return p.body.PropertyID.String(), p.body.PropertyID != ""
	case "notes":
		if p.body.Notes != nil {
			return *p.body.Notes, true
		}
	}
	return "", false
}

// id returns the named positive id parameter
func (p *requestParams) id(name string) (uint, bool) {
	raw, _ := p.lookup(name)
	return parseID(raw)
}

// notes returns the notes parameter, nil when absent
func (p *requestParams) notes() *string {
	if v, ok := p.lookup("notes"); ok {
		return &v
	}
	return nil
}

// pathID returns the named positive id path variable
func pathID(r *http.Request, name string) (uint, bool) {
	return parseID(mux.Vars(r)[name])
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryInt returns the named integer query parameter or def when absent
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryString(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}
