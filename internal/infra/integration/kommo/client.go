// Package kommo mirrors new leads into the Kommo CRM through its v4 REST
// API.
package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/nhfg-leads/internal/infra/queue"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
)

var (
	ErrNotConfigured   = errors.New("kommo api token not configured")
	errContactNotFound = errors.New("contact not found")
)

const (
	defaultTimeout      = 10 * time.Second
	defaultLeadTag      = "nhfg_leads"
	maxErrorBodyPreview = 512
)

type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// NewClient expects the account base URL, e.g. https://acme.kommo.com.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v4",
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CreateLead attaches the lead to an existing contact with the same phone
// or email, creating the contact first when none matches.
func (c *Client) CreateLead(ctx context.Context, event queue.LeadEvent) (int, error) {
	if c.apiToken == "" {
		return 0, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("find or create contact: %w", err)
	}

	tags := []Tag{{Name: defaultLeadTag}}
	if event.Source != "" {
		tags = append(tags, Tag{Name: event.Source})
	}

	leads := []LeadRequest{{
		Name: leadTitle(event),
		Embedded: LeadEmbedded{
			Tags:     tags,
			Contacts: []EntityRef{{ID: contactID}},
		},
	}}

	var result struct {
		Embedded struct {
			Leads []EntityRef `json:"leads"`
		} `json:"_embedded"`
	}
	if err := c.do(ctx, http.MethodPost, "/leads", leads, &result); err != nil {
		return 0, fmt.Errorf("create lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, errors.New("create lead: empty response")
	}

	return result.Embedded.Leads[0].ID, nil
}

func leadTitle(event queue.LeadEvent) string {
	if event.Interest != "" {
		return fmt.Sprintf("%s - %s", event.Name, event.Interest)
	}
	return event.Name
}

func (c *Client) findOrCreateContact(ctx context.Context, event queue.LeadEvent) (int, error) {
	for _, q := range []string{event.Phone, event.Email} {
		if normalizer.IsPlaceholder(q) {
			continue
		}
		id, err := c.findContact(ctx, q)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, errContactNotFound) {
			return 0, err
		}
	}
	return c.createContact(ctx, event)
}

func (c *Client) findContact(ctx context.Context, query string) (int, error) {
	var result struct {
		Embedded struct {
			Contacts []EntityRef `json:"contacts"`
		} `json:"_embedded"`
	}
	// Kommo answers 204 with no body when the search is empty.
	if err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(query), nil, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errContactNotFound
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, event queue.LeadEvent) (int, error) {
	contact := ContactRequest{Name: event.Name}
	if !normalizer.IsPlaceholder(event.Phone) {
		contact.CustomFieldsValues = append(contact.CustomFieldsValues, workField("PHONE", event.Phone))
	}
	if !normalizer.IsPlaceholder(event.Email) {
		contact.CustomFieldsValues = append(contact.CustomFieldsValues, workField("EMAIL", event.Email))
	}

	var result struct {
		Embedded struct {
			Contacts []EntityRef `json:"contacts"`
		} `json:"_embedded"`
	}
	if err := c.do(ctx, http.MethodPost, "/contacts", []ContactRequest{contact}, &result); err != nil {
		return 0, fmt.Errorf("create contact: %w", err)
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errors.New("create contact: empty response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

func workField(code, value string) CustomFieldValue {
	return CustomFieldValue{
		FieldCode: code,
		Values:    []FieldValue{{Value: value, EnumCode: "WORK"}},
	}
}

// do sends body as JSON and decodes a 2xx response into out. A 204 leaves
// out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBodyPreview {
			raw = raw[:maxErrorBodyPreview]
		}
		return fmt.Errorf("kommo %s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
