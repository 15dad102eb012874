package mapview

import (
	"net/url"
	"strings"
)

// DefaultScriptEndpoint is the vendor's map script location.
const DefaultScriptEndpoint = "https://openapi.map.naver.com/openapi/v3/maps.js"

// ScriptURL appends the client id to the script endpoint as ncpKeyId. An
// empty client id yields an empty URL.
func ScriptURL(endpoint, clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ""
	}
	if endpoint == "" {
		endpoint = DefaultScriptEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("ncpKeyId", clientID)
	u.RawQuery = q.Encode()
	return u.String()
}
