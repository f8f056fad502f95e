package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
)

// client is an HTTP client with a cookie jar, so the access and refresh
// token cookies flow between requests like they do for a browser.
type client struct {
	http    *http.Client
	baseURL string
}

func (s *Suite) newClient() *client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)

	return &client{
		http:    &http.Client{Jar: jar},
		baseURL: s.BaseURL,
	}
}

func (c *client) do(s *Suite, method, path string, body interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	s.Require().NoError(err)
	return resp
}

func decode(s *Suite, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}
