package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nyayabharat/nyaya-go/internal/api"
	"github.com/nyayabharat/nyaya-go/internal/bus"
	"github.com/nyayabharat/nyaya-go/internal/channels"
	"github.com/nyayabharat/nyaya-go/internal/config"
	redisx "github.com/nyayabharat/nyaya-go/internal/redis"
	"github.com/nyayabharat/nyaya-go/internal/router"
	"github.com/nyayabharat/nyaya-go/internal/services/complaint"
	"github.com/nyayabharat/nyaya-go/internal/services/legallens"
	"github.com/nyayabharat/nyaya-go/internal/services/officer"
	"github.com/nyayabharat/nyaya-go/internal/services/rights"
	"github.com/nyayabharat/nyaya-go/internal/session"
)

var (
	servePort   int
	serveAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the NyayaBharat gateway (HTTP API + WhatsApp bridge)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP API port (default from config, 8000)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key for auth (or NYAYA_API_KEY env)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Resolve settings: CLI flag → env var → config file.
	port := cfg.Server.Port
	if p := os.Getenv("NYAYA_PORT"); p != "" {
		if pv, err := strconv.Atoi(p); err == nil {
			port = pv
		}
	}
	if servePort != 0 {
		port = servePort
	}

	apiKey := serveAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("NYAYA_API_KEY")
	}
	if apiKey == "" {
		apiKey = cfg.Server.APIKey
	}

	redisURL := cfg.Redis.URL
	if u := os.Getenv("NYAYA_REDIS_URL"); u != "" {
		redisURL = u
	}

	fmt.Printf("Starting NyayaBharat gateway on port %d...\n", port)

	// Session store: Redis when reachable, in-memory otherwise.
	var sessions session.Store = session.NewMemoryStore()
	if redisx.Init(redisx.Config{URL: redisURL, Password: cfg.Redis.Password, DB: cfg.Redis.DB}) {
		sessions = session.NewRedisStore(redisx.Client())
		defer redisx.Close()
	}

	// Service data tables.
	departments, err := complaint.LoadDepartments(cfg.Services.DepartmentsFile)
	if err != nil {
		return fmt.Errorf("loading departments: %w", err)
	}
	corpus, err := rights.LoadCorpus(cfg.Services.CorpusFile)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	srv := api.NewServer(api.ServerConfig{
		Port:       port,
		APIKey:     apiKey,
		LegalLens:  legallens.NewDefault(),
		Officer:    officer.NewDefault(),
		Complaints: complaint.New(complaint.StubTranscriber{}, departments),
		Rights:     rights.New(rights.NewCorpusRetriever(corpus), corpus),
		Sessions:   sessions,
	})

	// Channel manager + WhatsApp bridge.
	msgBus := bus.NewMessageBus()
	chMgr := channels.NewManager(msgBus)
	if wa := cfg.Channel.WhatsApp; wa != nil && wa.BridgeURL != "" {
		chMgr.Register(channels.NewWhatsAppChannel(wa.BridgeURL, wa.BridgeToken, wa.AllowFrom, msgBus))
		log.Println("WhatsApp channel enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		chMgr.StopAll()
		srv.Stop()
		cancel()
	}()

	// Inbound routing loop: messages from channels get routed, the
	// turn is recorded in the contact's session, and the routing
	// acknowledgment goes back out on the same channel.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgBus.Inbound:
				handleInbound(ctx, msgBus, sessions, msg)
			}
		}
	}()
	go chMgr.StartAll(ctx)

	return srv.Start(ctx)
}

// handleInbound routes one channel message and acknowledges it.
func handleInbound(ctx context.Context, msgBus *bus.MessageBus, sessions session.Store, msg bus.InboundMessage) {
	decision, err := router.Route(msg)
	if err != nil {
		log.Printf("[Gateway] unroutable message from %s: %v", msg.SenderID, err)
		msgBus.PublishOutbound(bus.OutboundMessage{
			Channel: msg.Channel,
			ChatID:  msg.ChatID,
			Content: "Sorry, that message type is not supported.",
		})
		return
	}

	sc, err := sessions.Get(ctx, msg.SenderID)
	if err != nil {
		log.Printf("[Gateway] session load failed for %s: %v", msg.SenderID, err)
		sc = session.Context{}
	}
	sc["last_service"] = string(decision.Service)
	sc["last_action"] = decision.Action
	sc["language"] = msg.Language
	if err := sessions.Update(ctx, msg.SenderID, sc); err != nil {
		log.Printf("[Gateway] session update failed for %s: %v", msg.SenderID, err)
	}

	ack, _ := json.Marshal(decision)
	msgBus.PublishOutbound(bus.OutboundMessage{
		Channel: msg.Channel,
		ChatID:  msg.ChatID,
		Content: string(ack),
	})
}
