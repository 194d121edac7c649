package client

import "net/url"

var secretParams = []string{"apikey", "apiKey", "x_cg_demo_api_key"}

// redact masks API keys in a URL before it is logged.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Get(p) != "" {
			q.Set(p, "***")
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}
