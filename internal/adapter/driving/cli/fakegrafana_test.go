package cli

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeGrafana is an in-memory stand-in for the Grafana endpoints the
// provisioner calls.
type fakeGrafana struct {
	mu       sync.Mutex
	user     string
	password string
	orgs     map[string]int64
	nextOrg  int64
	nextKey  int64
	activeID int64
	requests []string
	orgHdrs  []string
}

func newFakeGrafana(t *testing.T) (*fakeGrafana, string, int) {
	t.Helper()

	f := &fakeGrafana{user: "admin", password: "admin", orgs: map[string]int64{}, nextOrg: 1, nextKey: 1}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return f, host, port
}

func (f *fakeGrafana) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeGrafana) active() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeID
}

func (f *fakeGrafana) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeGrafana) issueOrgHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.orgHdrs...)
}

func (f *fakeGrafana) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	if user, pass, ok := r.BasicAuth(); !ok || user != f.user || pass != f.password {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid username or password"})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/orgs":
		var body struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := f.orgs[body.Name]; ok {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Organization name taken"})
			return
		}
		id := f.nextOrg
		f.nextOrg++
		f.orgs[body.Name] = id
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Organization created", "orgId": id})

	case r.Method == http.MethodGet && r.URL.Path == "/api/orgs":
		list := []map[string]any{}
		for name, id := range f.orgs {
			list = append(list, map[string]any{"id": id, "name": name})
		}
		_ = json.NewEncoder(w).Encode(list)

	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/user/using/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/user/using/"), 10, 64)
		f.activeID = id
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Active organization changed"})

	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/keys":
		f.orgHdrs = append(f.orgHdrs, r.Header.Get("X-Grafana-Org-Id"))
		var body struct {
			Name string `json:"name"`
			Role string `json:"role"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := f.nextKey
		f.nextKey++
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "key": "secret-" + strconv.FormatInt(id, 10), "name": body.Name})

	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
	}
}
