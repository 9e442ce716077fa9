package dummy

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type ServerConfig struct {
	Port int
}

// Start serves a local stand-in for the demo servers so the tool can
// be tried without a real target. Handlers add jitter so latency
// percentiles have some shape.
func Start(cfg ServerConfig) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		sleep(1, 5)
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		sleep(5, 30)
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusCreated, map[string]string{"id": "prod-1", "status": "created"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "prod-1", "name": "Widget", "price": 99.99},
			{"id": "prod-2", "name": "Gadget", "price": 149.99},
		})
	})

	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		sleep(5, 20)
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "user-1", "email": "demo@example.com"})
	})

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		sleep(10, 40)
		writeJSON(w, http.StatusOK, map[string]string{"token": "demo-token"})
	})

	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		sleep(10, 50)
		// 5% of queries fail, so error histograms are never empty on
		// longer runs.
		if rand.Float32() < 0.05 {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "resolver failure"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"health": "ok"}})
	})

	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		sleep(1, 5)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "requests_total 12345")
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("👻 Dummy target running on http://localhost%s\n", addr)
	fmt.Println("   Endpoints: /health, /api/products, /api/users/me, /api/auth/login, /graphql, /metrics")

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed: %v\n", err)
		}
	}()
}

func sleep(minMs, maxMs int) {
	time.Sleep(time.Duration(rand.Intn(maxMs-minMs)+minMs) * time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(status)
	w.Write(data)
}
