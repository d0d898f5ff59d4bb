package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cadencehq/cadence/internal/adapters/directory"
)

// Identity configures how the caller's username is extracted from a
// request. The upstream proxy injects a credentials header carrying a
// JSON document with the authenticated username; in debug mode a query
// parameter or a fixed dev identity may stand in for it.
type Identity struct {
	// Header is the name of the credentials header, e.g.
	// "X-Connect-Credentials". Its value is JSON: {"user": "<username>"}.
	Header string

	// Debug enables the ?user= fallback and the DevIdentity default.
	Debug bool

	// DevIdentity is the username assumed in debug mode when neither the
	// header nor the query parameter is present.
	DevIdentity string
}

// credentialsPayload mirrors the proxy-injected header value.
type credentialsPayload struct {
	User string `json:"user"`
}

// username extracts the caller's username, or "" when unidentifiable.
func (id Identity) username(r *http.Request) string {
	if raw := r.Header.Get(id.Header); raw != "" {
		var creds credentialsPayload
		if err := json.Unmarshal([]byte(raw), &creds); err == nil {
			if u := strings.TrimSpace(creds.User); u != "" {
				return u
			}
		}
	}
	if id.Debug {
		if u := strings.TrimSpace(r.URL.Query().Get("user")); u != "" {
			return u
		}
		return id.DevIdentity
	}
	return ""
}

// identifier resolves callers for handlers and writes the 401 on failure.
type identifier struct {
	deps  Dependencies
	ident Identity
}

// caller resolves the requesting person. On failure it writes a 401 and
// returns false; handlers simply return.
func (i identifier) caller(w http.ResponseWriter, r *http.Request) (directory.Person, bool) {
	username := i.ident.username(r)
	if username == "" {
		writeError(w, http.StatusUnauthorized, ErrUnauthenticated)
		return directory.Person{}, false
	}
	person, err := i.deps.ResolveUser(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, ErrUnauthenticated)
		return directory.Person{}, false
	}
	return person, true
}
