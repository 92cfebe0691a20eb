package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"courier/internal/auth"
	"courier/internal/config"
	"courier/internal/handlers"
	"courier/internal/middleware"
	"courier/internal/store/sqlstore"
	"courier/internal/ws"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	store, err := sqlstore.New(cfg.DBPath)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub(cfg.OfflineGrace)
	router := ws.NewRouter(store, hub)

	authHandler := &handlers.AuthHandler{Store: store, Verifier: verifier}
	messageHandler := &handlers.MessageHandler{Store: store}
	contactHandler := &handlers.ContactHandler{Store: store}
	mediaHandler := &handlers.MediaHandler{UploadDir: cfg.UploadDir}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	// API Endpoints
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.Handle("/auth/me", middleware.Auth(verifier, http.HandlerFunc(authHandler.Me))).Methods("GET")
	r.Handle("/users/search", middleware.Auth(verifier, http.HandlerFunc(authHandler.SearchUsers))).Methods("GET")
	r.Handle("/contacts", middleware.Auth(verifier, http.HandlerFunc(contactHandler.GetContacts))).Methods("GET")
	r.Handle("/friends/requests", middleware.Auth(verifier, http.HandlerFunc(contactHandler.GetFriendRequests))).Methods("GET")
	r.Handle("/messages/unread", middleware.Auth(verifier, http.HandlerFunc(messageHandler.GetUnreadCounts))).Methods("GET")
	r.Handle("/messages/{contactID}", middleware.Auth(verifier, http.HandlerFunc(messageHandler.GetHistory))).Methods("GET")
	r.Handle("/media/upload", middleware.Auth(verifier, http.HandlerFunc(mediaHandler.Upload))).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP"}`))
	}).Methods("GET")

	// Uploaded media
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// WebSocket Endpoint
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, router, verifier, w, r)
	})

	logrus.WithField("addr", cfg.Addr).Info("starting server")
	logrus.Fatal(http.ListenAndServe(cfg.Addr, r))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
