// Package sheets reads lead rows from the spreadsheet API.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"almatiq-service/internal/domain/lead"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// leadRange covers the five positional lead columns, skipping the
// header row.
const leadRange = "A2:E"

// TokenSource supplies a bearer token for each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client reads spreadsheet tabs and value ranges.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource

	// Overridable for testing.
	baseURL string
}

func NewClient(tokens TokenSource) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	return &Client{
		httpClient: &http.Client{},
		tokens:     tokens,
		baseURL:    defaultBaseURL,
	}, nil
}

// SheetTitles returns the titles of every tab in the spreadsheet.
func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	var meta struct {
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
		Error *apiError `json:"error"`
	}

	path := fmt.Sprintf("%s/spreadsheets/%s", c.baseURL, url.PathEscape(spreadsheetID))
	if err := c.get(ctx, path, &meta); err != nil {
		return nil, fmt.Errorf("fetching spreadsheet metadata: %w", err)
	}
	if meta.Error != nil {
		return nil, fmt.Errorf("spreadsheet metadata: %s", meta.Error.Message)
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

// ReadLeads reads the lead rows of one tab. Cells hold whatever the
// spreadsheet returns (strings, numbers); everything is coerced to a
// string and missing cells become "".
func (c *Client) ReadLeads(ctx context.Context, spreadsheetID, sheetTitle string) ([]lead.Lead, error) {
	var result struct {
		Values [][]any   `json:"values"`
		Error  *apiError `json:"error"`
	}

	rangeRef := fmt.Sprintf("'%s'!%s", sheetTitle, leadRange)
	path := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(rangeRef))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetTitle, err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("reading sheet %q: %s", sheetTitle, result.Error.Message)
	}

	leads := make([]lead.Lead, 0, len(result.Values))
	for _, row := range result.Values {
		leads = append(leads, lead.Lead{
			Source: sheetTitle,
			Email:  cell(row, 0),
			Phone:  cell(row, 1),
			Type:   cell(row, 2),
			Addons: cell(row, 3),
			Time:   cell(row, 4),
		})
	}
	return leads, nil
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("acquiring token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// cell fetches a positional cell as a string. The values API returns
// untyped JSON, so numeric cells are formatted without an exponent.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
