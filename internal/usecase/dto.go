package usecase

import (
	"encoding/json"
	"time"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type UserOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Category     *string  `json:"category"`
	Avatar       *string  `json:"avatar"`
	ProductsSold []string `json:"productsSold"`
}

type LoginOutput struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"-"`
	User        UserOutput `json:"user"`
}

type ListLeadsInput struct {
	AdvisorID string
}

// LeadOutput is the external shape of a lead. Field names are camelCase and
// createdAt is exposed as date.
type LeadOutput struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             *string         `json:"email"`
	Phone             *string         `json:"phone"`
	Interest          *string         `json:"interest"`
	Status            string          `json:"status"`
	AssignedTo        *string         `json:"assignedTo"`
	Source            *string         `json:"source"`
	Priority          *string         `json:"priority"`
	Score             *int            `json:"score"`
	Qualification     *string         `json:"qualification"`
	Message           *string         `json:"message"`
	Campaign          *string         `json:"campaign"`
	Date              time.Time       `json:"date"`
	LifeDetails       json.RawMessage `json:"lifeDetails"`
	RealEstateDetails json.RawMessage `json:"realEstateDetails"`
	SecuritiesDetails json.RawMessage `json:"securitiesDetails"`
	CustomDetails     json.RawMessage `json:"customDetails"`
	IsArchived        bool            `json:"isArchived"`
}

func toLeadOutput(l *entity.Lead) LeadOutput {
	return LeadOutput{
		ID:                l.ID,
		Name:              l.Name,
		Email:             l.Email,
		Phone:             l.Phone,
		Interest:          l.Interest,
		Status:            l.Status,
		AssignedTo:        l.AssignedTo,
		Source:            l.Source,
		Priority:          l.Priority,
		Score:             l.Score,
		Qualification:     l.Qualification,
		Message:           l.Message,
		Campaign:          l.CampaignID,
		Date:              l.CreatedAt,
		LifeDetails:       nullableJSON(l.LifeDetails),
		RealEstateDetails: nullableJSON(l.RealEstateDetails),
		SecuritiesDetails: nullableJSON(l.SecuritiesDetails),
		CustomDetails:     nullableJSON(l.CustomDetails),
		IsArchived:        l.IsArchived,
	}
}

// An empty RawMessage would encode as invalid JSON.
func nullableJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

type CreateLeadInput struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Interest          string          `json:"interest"`
	Status            string          `json:"status"`
	Source            string          `json:"source"`
	AssignedTo        string          `json:"assignedTo"`
	Message           string          `json:"message"`
	LifeDetails       json.RawMessage `json:"lifeDetails"`
	RealEstateDetails json.RawMessage `json:"realEstateDetails"`
	SecuritiesDetails json.RawMessage `json:"securitiesDetails"`
	CustomDetails     json.RawMessage `json:"customDetails"`
}

type CreateLeadOutput struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type IngestWebhookInput struct {
	Platform string
	Payload  json.RawMessage
}

type IngestWebhookOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MonthlyPerformanceOutput struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
	Leads   int    `json:"leads"`
}

type DashboardOutput struct {
	TotalRevenue       float64                    `json:"totalRevenue"`
	ActiveClients      int                        `json:"activeClients"`
	PendingLeads       int                        `json:"pendingLeads"`
	MonthlyPerformance []MonthlyPerformanceOutput `json:"monthlyPerformance"`
}

type ListClientsInput struct {
	AdvisorID string
}

type CreateClientInput struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	AdvisorID        string   `json:"advisorId"`
	Product          string   `json:"product"`
	PolicyNumber     string   `json:"policyNumber"`
	Carrier          string   `json:"carrier"`
	Premium          *float64 `json:"premium"`
	CommissionAmount *float64 `json:"commissionAmount"`
}

type ClientOutput struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            *string   `json:"email"`
	Phone            *string   `json:"phone"`
	AdvisorID        *string   `json:"advisorId"`
	Product          *string   `json:"product"`
	PolicyNumber     *string   `json:"policyNumber"`
	Carrier          *string   `json:"carrier"`
	Premium          float64   `json:"premium"`
	CommissionAmount *float64  `json:"commissionAmount"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toClientOutput(c *entity.Client) ClientOutput {
	return ClientOutput{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		AdvisorID:        c.AdvisorID,
		Product:          c.Product,
		PolicyNumber:     c.PolicyNumber,
		Carrier:          c.Carrier,
		Premium:          c.Premium,
		CommissionAmount: c.CommissionAmount,
		CreatedAt:        c.CreatedAt,
	}
}
