package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyayabharat/nyaya-go/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show gateway status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("NyayaBharat Gateway Status")
	fmt.Println()
	fmt.Printf("Config: %s\n", config.GetConfigPath())
	fmt.Printf("Port: %d\n", cfg.Server.Port)
	if cfg.Redis.URL != "" {
		fmt.Printf("Sessions: redis (%s)\n", cfg.Redis.URL)
	} else {
		fmt.Println("Sessions: in-memory")
	}
	if wa := cfg.Channel.WhatsApp; wa != nil && wa.BridgeURL != "" {
		fmt.Printf("WhatsApp bridge: %s\n", wa.BridgeURL)
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port))
	if err != nil {
		fmt.Println("\nGateway: not running")
		return nil
	}
	defer resp.Body.Close()

	var health struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}

	fmt.Printf("\nGateway: %s\n", health.Status)
	fmt.Println("Services:")
	for name, state := range health.Services {
		fmt.Printf("  %s: %s\n", name, state)
	}
	return nil
}
