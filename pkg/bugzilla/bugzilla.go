package bugzilla

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Bugzilla bug IDs live in a known numeric range; bare numbers outside it
// are dates, CVE fragments, or other noise.
const (
	minBugID = 100000
	maxBugID = 9999999
)

var bugPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bug\s+(\d+)`),
	regexp.MustCompile(`#(\d+)`),
	regexp.MustCompile(`(\d{6,})`),
}

// ExtractIDs scans commit text for bug references and returns the unique
// IDs in ascending order.
func ExtractIDs(text string) []int {
	seen := make(map[int]struct{})
	for _, pattern := range bugPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			id, err := strconv.Atoi(match[1])
			if err != nil || id < minBugID || id > maxBugID {
				continue
			}
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Union merges bug ID sets, deduplicating by ID, ascending.
func Union(sets ...[]int) []int {
	seen := make(map[int]struct{})
	for _, set := range sets {
		for _, id := range set {
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(seen map[int]struct{}) []int {
	if len(seen) == 0 {
		return nil
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Client queries the bug tracker's REST search endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient points at the given /rest/bug endpoint.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// milestoneForms lists the spellings Firefox has used for the
// target_milestone field over the years.
func milestoneForms(version string) []string {
	return []string{
		"firefox" + version,
		"Firefox " + version,
		version,
		"mozilla" + version,
	}
}

// SearchMilestone returns the IDs of FIXED bugs targeted at the version's
// milestone, trying each milestone spelling and unioning the results. A
// partial result with a non-nil error means some queries failed; the caller
// decides whether that is worth more than a warning.
func (c *Client) SearchMilestone(version string) ([]int, error) {
	seen := make(map[int]struct{})
	var errs []error
	for _, milestone := range milestoneForms(version) {
		ids, err := c.searchByMilestone(milestone)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen), errors.Join(errs...)
}

func (c *Client) searchByMilestone(milestone string) ([]int, error) {
	params := url.Values{
		"target_milestone": {milestone},
		"resolution":       {"FIXED"},
		"limit":            {"1000"},
		"include_fields":   {"id"},
	}

	resp, err := c.HTTPClient.Get(c.BaseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("milestone search %q: %w", milestone, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("milestone search %q: %w", milestone, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("milestone search %q: status %d", milestone, resp.StatusCode)
	}

	var result struct {
		Bugs []struct {
			ID int `json:"id"`
		} `json:"bugs"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("milestone search %q: %w", milestone, err)
	}

	ids := make([]int, 0, len(result.Bugs))
	for _, bug := range result.Bugs {
		ids = append(ids, bug.ID)
	}
	return ids, nil
}
