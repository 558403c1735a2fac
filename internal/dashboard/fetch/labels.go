package fetch

import "net/url"

// AdHocLabel is the metric label for every endpoint that was not registered
// up front
const AdHocLabel = "adhoc"

// Labeler maps endpoints to metric labels. Registered paths keep their own
// label with the query dropped; anything else shares AdHocLabel, so the
// number of series stays fixed however many endpoints are probed.
type Labeler struct {
	known map[string]bool
}

// NewLabeler registers the paths of endpoints
func NewLabeler(endpoints ...string) *Labeler {
	l := &Labeler{known: make(map[string]bool, len(endpoints))}
	for _, e := range endpoints {
		if p := endpointPath(e); p != "" {
			l.known[p] = true
		}
	}
	return l
}

// Label returns the metric label for endpoint
func (l *Labeler) Label(endpoint string) string {
	if l == nil {
		return AdHocLabel
	}
	if p := endpointPath(endpoint); p != "" && l.known[p] {
		return p
	}
	return AdHocLabel
}

func endpointPath(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return u.Path
}
