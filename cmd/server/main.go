package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/abdulrafay-07/slack/internal/config"
	"github.com/abdulrafay-07/slack/internal/database"
	postgresrepo "github.com/abdulrafay-07/slack/internal/repository/postgres"
	"github.com/abdulrafay-07/slack/internal/service"
	"github.com/abdulrafay-07/slack/internal/storage"
	"github.com/abdulrafay-07/slack/internal/transport/http/handlers"
	"github.com/abdulrafay-07/slack/internal/transport/http/middleware"
	"github.com/abdulrafay-07/slack/internal/transport/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Object storage
	store, err := storage.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	workspaceRepo := postgresrepo.NewWorkspaceRepo(pool)
	memberRepo := postgresrepo.NewMemberRepo(pool)
	channelRepo := postgresrepo.NewChannelRepo(pool)
	conversationRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	reactionRepo := postgresrepo.NewReactionRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	workspaceService := service.NewWorkspaceService(workspaceRepo, memberRepo, channelRepo)
	channelService := service.NewChannelService(channelRepo, memberRepo)
	conversationService := service.NewConversationService(conversationRepo, memberRepo)
	messageService := service.NewMessageService(messageRepo, reactionRepo, channelRepo, conversationRepo, memberRepo)
	reactionService := service.NewReactionService(reactionRepo, messageRepo, memberRepo)

	// WebSocket hub
	hub := ws.NewHub()
	notifier := ws.NewHubNotifier(hub)
	messageService.SetNotifier(notifier)
	reactionService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	channelHandler := handlers.NewChannelHandler(channelService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	uploadHandler := handlers.NewUploadHandler(store)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Workspaces
	mux.Handle("POST /api/v1/workspaces", auth(http.HandlerFunc(workspaceHandler.Create)))
	mux.Handle("GET /api/v1/workspaces", auth(http.HandlerFunc(workspaceHandler.List)))
	mux.Handle("GET /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Get)))
	mux.Handle("GET /api/v1/workspaces/{id}/info", auth(http.HandlerFunc(workspaceHandler.GetInfo)))
	mux.Handle("PATCH /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Update)))
	mux.Handle("DELETE /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Delete)))
	mux.Handle("POST /api/v1/workspaces/{id}/join", auth(http.HandlerFunc(workspaceHandler.Join)))
	mux.Handle("POST /api/v1/workspaces/{id}/join-code/reset", auth(http.HandlerFunc(workspaceHandler.ResetJoinCode)))

	// Protected - Members
	mux.Handle("GET /api/v1/workspaces/{id}/members", auth(http.HandlerFunc(workspaceHandler.ListMembers)))
	mux.Handle("GET /api/v1/workspaces/{id}/members/me", auth(http.HandlerFunc(workspaceHandler.CurrentMember)))
	mux.Handle("GET /api/v1/workspaces/{id}/members/{uid}", auth(http.HandlerFunc(workspaceHandler.GetMember)))
	mux.Handle("PATCH /api/v1/workspaces/{id}/members/{uid}", auth(http.HandlerFunc(workspaceHandler.UpdateMemberRole)))
	mux.Handle("DELETE /api/v1/workspaces/{id}/members/{uid}", auth(http.HandlerFunc(workspaceHandler.RemoveMember)))

	// Protected - Channels
	mux.Handle("POST /api/v1/workspaces/{id}/channels", auth(http.HandlerFunc(channelHandler.Create)))
	mux.Handle("GET /api/v1/workspaces/{id}/channels", auth(http.HandlerFunc(channelHandler.List)))
	mux.Handle("GET /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Get)))
	mux.Handle("PATCH /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Update)))
	mux.Handle("DELETE /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Delete)))

	// Protected - Conversations
	mux.Handle("POST /api/v1/workspaces/{id}/conversations", auth(http.HandlerFunc(conversationHandler.CreateOrGet)))
	mux.Handle("GET /api/v1/conversations/{id}", auth(http.HandlerFunc(conversationHandler.Get)))

	// Protected - Messages
	mux.Handle("POST /api/v1/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.SendToChannel)))
	mux.Handle("GET /api/v1/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.ListChannel)))
	mux.Handle("POST /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(messageHandler.SendToConversation)))
	mux.Handle("GET /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(messageHandler.ListConversation)))
	mux.Handle("GET /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Get)))
	mux.Handle("PATCH /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Edit)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("POST /api/v1/messages/{id}/replies", auth(http.HandlerFunc(messageHandler.Reply)))
	mux.Handle("GET /api/v1/messages/{id}/replies", auth(http.HandlerFunc(messageHandler.ListThread)))

	// Protected - Reactions
	mux.Handle("POST /api/v1/messages/{id}/reactions", auth(http.HandlerFunc(reactionHandler.Toggle)))

	// Protected - Files
	mux.Handle("POST /api/v1/files", auth(http.HandlerFunc(uploadHandler.Upload)))
	mux.Handle("GET /api/v1/files/{key}", auth(http.HandlerFunc(uploadHandler.Download)))

	// WebSocket (token in query, validated by the handler)
	mux.HandleFunc("GET /api/v1/ws", ws.ServeWS(hub, cfg.JWTSecret))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		hub.Run()
		return nil
	})
	g.Go(func() error {
		return http.ListenAndServe(addr, middleware.CORS(mux))
	})
	log.Fatal(g.Wait())
}
