// Package normalizer maps the lead payloads of each ad platform onto one
// canonical tuple. Adding a platform means adding one Strategy to the table
// in NewRegistry.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Placeholders used whenever a platform payload lacks a field.
const (
	EmailNotProvided = "Not Provided"
	PhoneNotProvided = "N/A"
)

// IsPlaceholder reports whether v is one of the fill-in values above rather
// than real contact data.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == EmailNotProvided || v == PhoneNotProvided
}

// NormalizedLead is the tuple extracted from a platform payload.
type NormalizedLead struct {
	Name       string
	Email      string
	Phone      string
	Interest   string
	CampaignID string
}

// Strategy extracts a NormalizedLead from a decoded JSON payload. It must
// never fail: every missing field degrades to a placeholder.
type Strategy func(payload any) NormalizedLead

type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: map[string]Strategy{
			"google": normalizeGoogle,
			"meta":   normalizeMeta,
			"tiktok": normalizeTikTok,
		},
	}
}

func (r *Registry) Supports(platform string) bool {
	_, ok := r.strategies[platform]
	return ok
}

func (r *Registry) Platforms() []string {
	platforms := make([]string, 0, len(r.strategies))
	for p := range r.strategies {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// Normalize decodes payload and dispatches on platform. Only an unknown
// platform or a body that is not JSON at all produces an error.
func (r *Registry) Normalize(platform string, payload json.RawMessage) (NormalizedLead, error) {
	strategy, ok := r.strategies[platform]
	if !ok {
		return NormalizedLead{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}

	var decoded any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return NormalizedLead{}, fmt.Errorf("decode %s payload: %w", platform, err)
		}
	}
	return strategy(decoded), nil
}

// Google Ads lead form: user_column_data is a list of
// {column_id, string_value}.
func normalizeGoogle(payload any) NormalizedLead {
	columns := asSlice(field(payload, "user_column_data"))

	fields := make(map[string]string, len(columns))
	for _, col := range columns {
		id := asString(field(col, "column_id"))
		if id == "" {
			continue
		}
		fields[id] = asString(field(col, "string_value"))
	}

	name := fields["FULL_NAME"]
	if name == "" {
		name = strings.TrimSpace(fields["FIRST_NAME"] + " " + fields["LAST_NAME"])
	}
	if name == "" && len(columns) > 0 {
		name = asString(field(columns[0], "string_value"))
	}

	return NormalizedLead{
		Name:       firstNonEmpty(name, "Google Lead"),
		Email:      firstNonEmpty(fields["EMAIL"], EmailNotProvided),
		Phone:      firstNonEmpty(fields["PHONE_NUMBER"], PhoneNotProvided),
		Interest:   firstNonEmpty(fields["PRODUCT_INTEREST"], "Life Insurance"),
		CampaignID: asString(field(payload, "campaign_id")),
	}
}

// Meta lead ads arrive either as the Graph webhook envelope
// (entry[0].changes[0].value) or as the flattened lead itself.
func normalizeMeta(payload any) NormalizedLead {
	change := field(index(field(index(field(payload, "entry"), 0), "changes"), 0), "value")
	if asMap(change) == nil {
		change = payload
	}

	fieldMap := make(map[string]string)
	for _, f := range asSlice(field(change, "field_data")) {
		name := asString(field(f, "name"))
		values := asSlice(field(f, "values"))
		if name == "" || len(values) == 0 {
			continue
		}
		fieldMap[name] = asString(values[0])
	}

	return NormalizedLead{
		Name:       firstNonEmpty(fieldMap["full_name"], asString(field(change, "full_name")), "Meta Lead"),
		Email:      firstNonEmpty(fieldMap["email"], asString(field(change, "email")), EmailNotProvided),
		Phone:      firstNonEmpty(fieldMap["phone_number"], asString(field(change, "phone_number")), PhoneNotProvided),
		Interest:   firstNonEmpty(fieldMap["job_title"], "Business Insurance"),
		CampaignID: asString(field(change, "campaign_id")),
	}
}

func normalizeTikTok(payload any) NormalizedLead {
	data := field(payload, "data")
	details := field(data, "details")

	return NormalizedLead{
		Name:       firstNonEmpty(asString(field(details, "name")), "TikTok Lead"),
		Email:      firstNonEmpty(asString(field(details, "email")), EmailNotProvided),
		Phone:      firstNonEmpty(asString(field(details, "phone")), PhoneNotProvided),
		Interest:   "Indexed Universal Life (IUL)",
		CampaignID: asString(field(data, "campaign_id")),
	}
}
