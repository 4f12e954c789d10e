package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"handwerk/portal_backend/internal/domain/offer"
)

// Renderer is the remote document-generation collaborator.
type Renderer interface {
	Render(ctx context.Context, d *offer.Draft) (*Artifact, error)
}

// Client renders drafts against the document-generation endpoint. Preview
// renders always go out with commit=false; committing a final offer is a
// separate call path.
type Client struct {
	URL   string
	Token string
	HTTP  *http.Client
}

func NewClient(rawURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{URL: rawURL, Token: token, HTTP: httpClient}
}

type renderMeta struct {
	Title           string         `json:"title"`
	Intro           string         `json:"intro"`
	Commit          bool           `json:"commit"`
	Date            string         `json:"date"`
	ValidUntil      string         `json:"validUntil"`
	TaxRate         float64        `json:"taxRate"`
	BillingSettings map[string]any `json:"billingSettings"`
	OfferNumber     string         `json:"offerNumber"`
	OfferID         string         `json:"offerId,omitempty"`
	Discount        offer.Discount `json:"discount"`
}

type renderRequest struct {
	Customer  offer.Customer   `json:"customer"`
	Positions []offer.Position `json:"positions"`
	Meta      renderMeta       `json:"meta"`
}

func (c *Client) Render(ctx context.Context, d *offer.Draft) (*Artifact, error) {
	payload := renderRequest{
		Customer:  d.Customer,
		Positions: d.Positions,
		Meta: renderMeta{
			Title:           d.Title,
			Intro:           d.Intro,
			Commit:          false,
			Date:            d.IssueDate,
			ValidUntil:      d.ValidUntil,
			TaxRate:         d.TaxRate,
			BillingSettings: map[string]any{"template": d.Template},
			OfferNumber:     d.Number,
			OfferID:         d.OfferID,
			Discount:        d.Discount,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("X-Internal-Token", c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("render status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename: suggestedFilename(resp.Header.Get("Content-Disposition")),
		Data:     data,
	}, nil
}

// suggestedFilename pulls the filename out of a Content-Disposition header,
// tolerating quoting and percent-encoding. Empty on anything unparsable.
func suggestedFilename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if name == "" {
		return ""
	}
	if strings.Contains(name, "%") {
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
	}
	return name
}
