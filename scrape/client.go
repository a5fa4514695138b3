// Package scrape fetches puzzle pages from the target site and
// decodes their compact task strings into puzzle descriptions.  It
// is the only package that knows the site's encodings; downstream of
// BuildSpec everything is typed.
package scrape

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"resty.dev/v3"

	"gridbot/puzzle"
)

// DefaultBaseURL is the puzzle site's root.
const DefaultBaseURL = "https://www.puzzles-mobile.com"

// A Task is one scraped puzzle instance: the family, the variant
// segment of the page path (daily, weekly, a size), and the raw task
// string still to be decoded.
type Task struct {
	Kind    puzzle.Kind
	Variant string
	Raw     string
}

// A Client fetches puzzle pages.  It wraps one resty client and is
// safe for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient makes a page fetcher for the given site root; an empty
// baseURL means the default site.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2)
	return &Client{http: c}
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.http.Close()
}

// The task string rides inside the page's bootstrap script, as a
// quoted value under a "task" key.
var taskPattern = regexp.MustCompile(`"task"\s*:\s*"([^"]+)"`)

// Fetch retrieves the puzzle page for a family and variant and
// extracts its raw task string.
func (c *Client) Fetch(ctx context.Context, kind puzzle.Kind, variant string) (*Task, error) {
	if !puzzle.IsKnownKind(kind) {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.UnknownKindCondition,
			Attribute: puzzle.KindAttribute,
			Values:    puzzle.ErrorData{kind},
		}
	}
	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/%s/%s", kind, variant))
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s: %w", kind, variant, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetching %s/%s: status %s", kind, variant, res.Status())
	}
	raw, err := ExtractTask(res.String())
	if err != nil {
		return nil, err
	}
	return &Task{Kind: kind, Variant: variant, Raw: raw}, nil
}

// ExtractTask pulls the raw task string out of a puzzle page body.
func ExtractTask(body string) (string, error) {
	m := taskPattern.FindStringSubmatch(body)
	if m == nil {
		return "", puzzle.TaskError("page carries no task data", puzzle.GeneralCondition)
	}
	return m[1], nil
}
