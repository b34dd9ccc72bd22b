// service.go — contest server communicator.
//
// The School of the Bound Variable speaks ICFP programs over HTTP: POST the
// wire text to the communicate endpoint with an Authorization header, and
// the response body is another ICFP program. Plain chat messages are sent as
// a single S string token.
//
// Identical requests short-circuit through an on-disk cache keyed by a
// BLAKE3 digest of the request body; the server is rate-limited and probe
// messages tend to repeat. Set CacheDir to "" to disable caching.

package icfp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/fasthttp"
	"github.com/zeebo/blake3"
)

// DefaultEndpoint is the ICFP 2024 contest server.
const DefaultEndpoint = "https://boundvariable.space/communicate"

// Client talks to the contest server.
type Client struct {
	Endpoint   string
	AuthName   string // header name, usually "Authorization"
	AuthValue  string
	CacheDir   string
	HTTPClient *fasthttp.Client
}

// NewClient builds a client from the environment: ICFP_ENDPOINT overrides
// the default server, ICFP_TOKEN supplies a bearer token, and
// ICFP_TOKEN_FILE points at a file whose first line is a complete
// "Header-Name: value" pair (the shape the contest handed out).
func NewClient() (*Client, error) {
	c := &Client{
		Endpoint:   DefaultEndpoint,
		HTTPClient: &fasthttp.Client{},
	}
	if ep := os.Getenv("ICFP_ENDPOINT"); ep != "" {
		c.Endpoint = ep
	}
	if dir := os.Getenv("ICFP_CACHE_DIR"); dir != "" {
		c.CacheDir = dir
	}
	switch {
	case os.Getenv("ICFP_TOKEN") != "":
		c.AuthName = "Authorization"
		c.AuthValue = "Bearer " + os.Getenv("ICFP_TOKEN")
	case os.Getenv("ICFP_TOKEN_FILE") != "":
		name, value, err := readAuthHeader(os.Getenv("ICFP_TOKEN_FILE"))
		if err != nil {
			return nil, err
		}
		c.AuthName, c.AuthValue = name, value
	}
	return c, nil
}

// readAuthHeader parses the first line of path as "Header-Name: value".
func readAuthHeader(path string) (name, value string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	name, value, ok := strings.Cut(strings.TrimSpace(line), ": ")
	if !ok {
		return "", "", fmt.Errorf("auth header file %s: want \"Name: value\", got %q", path, line)
	}
	return name, value, nil
}

// Send posts wire text to the server and returns the raw reply text.
func (c *Client) Send(wire string) (string, error) {
	if reply, ok := c.cacheGet(wire); ok {
		return reply, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.Endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	if c.AuthName != "" {
		req.Header.Set(c.AuthName, c.AuthValue)
	}
	req.SetBodyString(wire)

	if err := c.HTTPClient.Do(req, resp); err != nil {
		return "", err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode(), resp.Body())
	}

	reply := string(resp.Body())
	c.cachePut(wire, reply)
	return reply, nil
}

// Message wraps plain text as an S string token, sends it, and parses the
// reply as a program.
func (c *Client) Message(text string) (Expr, error) {
	reply, err := c.Send("S" + EncodeString(text))
	if err != nil {
		return nil, err
	}
	return Parse(reply)
}

// --- response cache --------------------------------------------------------

func (c *Client) cachePath(wire string) string {
	sum := blake3.Sum256([]byte(wire))
	return filepath.Join(c.CacheDir, fmt.Sprintf("%x", sum))
}

func (c *Client) cacheGet(wire string) (string, bool) {
	if c.CacheDir == "" {
		return "", false
	}
	data, err := os.ReadFile(c.cachePath(wire))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (c *Client) cachePut(wire, reply string) {
	if c.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return
	}
	// Best effort: a failed cache write must not fail the send.
	_ = os.WriteFile(c.cachePath(wire), []byte(reply), 0o644)
}
