package server

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"shadowbound/internal/game"
)

// NewHandler wires the session gateway onto an HTTP mux. The registry is
// injected so tests can drive it with a fake clock.
func NewHandler(cfg Config, reg *game.Registry) http.Handler {
	gw := &gateway{
		reg:     reg,
		limiter: newIPLimiter(cfg.ConnRatePerIP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"shadowbound server alive"}`))
	})
	mux.HandleFunc("/ws", gw.handleWS)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

func StartApp(cfg Config) error {
	reg := game.NewRegistry(clockwork.NewRealClock())
	handler := NewHandler(cfg, reg)

	log.Info().Str("addr", cfg.Addr).Msg("shadowbound server listening")
	return http.ListenAndServe(cfg.Addr, handler)
}
