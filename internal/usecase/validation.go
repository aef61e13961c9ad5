package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var leadStatuses = map[string]bool{
	entity.LeadStatusNew:         true,
	entity.LeadStatusContacted:   true,
	entity.LeadStatusUnavailable: true,
	entity.LeadStatusProposal:    true,
	entity.LeadStatusApproved:    true,
	entity.LeadStatusClosed:      true,
	entity.LeadStatusLost:        true,
	entity.LeadStatusAssigned:    true,
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Status != "" && !leadStatuses[input.Status] {
		errors = append(errors, ValidationError{"status", "is not a known pipeline stage"})
	}

	if input.AssignedTo != "" && !isValidUUID(input.AssignedTo) {
		errors = append(errors, ValidationError{"assignedTo", "must be a valid id"})
	}

	details := []struct {
		field string
		raw   json.RawMessage
	}{
		{"lifeDetails", input.LifeDetails},
		{"realEstateDetails", input.RealEstateDetails},
		{"securitiesDetails", input.SecuritiesDetails},
		{"customDetails", input.CustomDetails},
	}
	for _, d := range details {
		if !isJSONObjectOrEmpty(d.raw) {
			errors = append(errors, ValidationError{d.field, "must be an object"})
		}
	}

	return errors
}

func ValidateCreateClientInput(input CreateClientInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.AdvisorID != "" && !isValidUUID(input.AdvisorID) {
		errors = append(errors, ValidationError{"advisorId", "must be a valid id"})
	}

	if input.Premium != nil && *input.Premium < 0 {
		errors = append(errors, ValidationError{"premium", "must not be negative"})
	}
	if input.CommissionAmount != nil && *input.CommissionAmount < 0 {
		errors = append(errors, ValidationError{"commissionAmount", "must not be negative"})
	}

	return errors
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// isJSONObjectOrEmpty accepts an absent value, JSON null, or an object.
func isJSONObjectOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	if trimmed[0] != '{' {
		return false
	}
	var obj map[string]any
	return json.Unmarshal(trimmed, &obj) == nil
}

// detailBlob normalizes an optional JSON object for storage; null and
// absent both become nil.
func detailBlob(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.RawMessage(trimmed)
}
