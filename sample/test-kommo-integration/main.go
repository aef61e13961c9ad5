// Pushes one fake lead to Kommo to check KOMMO_BASE_URL and KOMMO_API_TOKEN
// before enabling the lead worker.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/xavierca1/nhfg-leads/internal/infra/integration/kommo"
	"github.com/xavierca1/nhfg-leads/internal/infra/queue"
)

func main() {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("KOMMO_BASE_URL", "https://api.kommo.com")

	token := v.GetString("KOMMO_API_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "KOMMO_API_TOKEN must be set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := kommo.NewClient(v.GetString("KOMMO_BASE_URL"), token)
	id, err := client.CreateLead(ctx, queue.LeadEvent{
		Type:       queue.EventNewLead,
		LeadID:     "smoke-test",
		Name:       "Smoke Test Lead",
		Email:      "smoke.test@example.com",
		Phone:      "+15555550100",
		Interest:   "Term Life",
		Source:     "manual",
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "kommo:", err)
		os.Exit(1)
	}

	fmt.Printf("created kommo lead #%d\n", id)
}
