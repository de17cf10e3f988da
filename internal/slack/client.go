// Package slack talks to the undocumented emoji.adminList endpoint.
// It is not a general Slack client: one endpoint, one request shape.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/M3t0r/slack-emoji/internal/domain"
)

const metadataTimeout = 10 * time.Second

type Client struct {
	http    *http.Client
	token   string
	baseURL string // overridable in tests
}

func New(workspace, token string) *Client {
	u := url.URL{
		Scheme: "https",
		Host:   workspace + ".slack.com",
		Path:   "/api/emoji.adminList",
	}
	return &Client{
		http:    &http.Client{Timeout: metadataTimeout},
		token:   token,
		baseURL: u.String(),
	}
}

// adminList is one page response. When OK is false the emoji list must
// not be trusted; Extra then carries whatever the service said instead.
type adminList struct {
	TotalCount int
	Paging     paging
	OK         bool
	Emoji      []domain.Emoji
	Extra      map[string]json.RawMessage
}

type paging struct {
	Count int
	Extra map[string]json.RawMessage
}

var adminListKnownFields = []string{"custom_emoji_total_count", "paging", "ok", "emoji"}

func (l *adminList) UnmarshalJSON(data []byte) error {
	var known struct {
		TotalCount int            `json:"custom_emoji_total_count"`
		Paging     paging         `json:"paging"`
		OK         bool           `json:"ok"`
		Emoji      []domain.Emoji `json:"emoji"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("parse admin list: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parse admin list fields: %w", err)
	}
	for _, k := range adminListKnownFields {
		delete(fields, k)
	}
	if len(fields) == 0 {
		fields = nil
	}

	*l = adminList{
		TotalCount: known.TotalCount,
		Paging:     known.Paging,
		OK:         known.OK,
		Emoji:      known.Emoji,
		Extra:      fields,
	}
	return nil
}

func (p *paging) UnmarshalJSON(data []byte) error {
	var known struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("parse paging: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parse paging fields: %w", err)
	}
	delete(fields, "count")
	if len(fields) == 0 {
		fields = nil
	}

	*p = paging{Count: known.Count, Extra: fields}
	return nil
}

// FetchAll retrieves the complete custom emoji catalog of the
// workspace, sorted ascending by creation time.
//
// The endpoint has no real cursor pagination, so the catalog is pulled
// in two round-trips: a count-of-one probe to learn the total, then a
// single page sized to hold everything. Neither call is retried; a
// transport failure aborts the fetch.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Emoji, error) {
	probe, err := c.adminList(ctx, 1, 1)
	if err != nil {
		return nil, err
	}

	full, err := c.adminList(ctx, 1, probe.TotalCount)
	if err != nil {
		return nil, err
	}

	domain.SortByCreated(full.Emoji)
	return full.Emoji, nil
}

func (c *Client) adminList(ctx context.Context, page, count int) (*adminList, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"page":  strconv.Itoa(page),
		"count": strconv.Itoa(count),
		"token": c.token,
	} {
		if err := form.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("build form field %q: %w", field, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("create admin list request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	// The token travels in the body, never in the URL or the logs.
	log.Info().Str("url", c.baseURL).Int("count", count).Msg("requesting emoji page")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &TransportError{URL: c.baseURL, Status: res.StatusCode}
	}

	var list adminList
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}

	if !list.OK {
		return nil, &APIError{Fields: list.Extra}
	}
	return &list, nil
}
