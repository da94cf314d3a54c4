// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	httpin "github.com/sudipto39/Shop-Xpress/internal/adapters/in/http"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	appcfg "github.com/sudipto39/Shop-Xpress/internal/infra/config"
	"github.com/sudipto39/Shop-Xpress/internal/platform/di"
)

// atomicHandler lets us listen on PORT immediately with /healthz only,
// then swap in the full router once DI finishes in the background.
type atomicHandler struct{ v atomic.Value }

func (a *atomicHandler) Store(h http.Handler) { a.v.Store(h) }

func (a *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := a.v.Load().(http.Handler); ok && h != nil {
		h.ServeHTTP(w, r)
		return
	}
	http.Error(w, "service starting", http.StatusServiceUnavailable)
}

func healthzMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func main() {
	cfg := appcfg.Load()

	switcher := &atomicHandler{}
	switcher.Store(middleware.CORS(cfg.AllowedOrigin)(middleware.Recover(healthzMux())))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// holds *di.Container once init succeeds
	var contHolder atomic.Value

	// Heavy deps in the background so Cloud Run sees the port quickly.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cont, err := di.NewContainer(ctx)
		if err != nil {
			log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
			return
		}
		contHolder.Store(cont)

		full := healthzMux()
		httpin.Register(full, cont.RouterDeps())
		switcher.Store(middleware.CORS(cfg.AllowedOrigin)(middleware.Recover(full)))
		log.Printf("[boot] router attached")

		// Expired guest carts are swept periodically; sweep is cheap.
		go func() {
			t := time.NewTicker(1 * time.Hour)
			defer t.Stop()
			for range t.C {
				if n := cont.GuestCarts.Sweep(); n > 0 {
					log.Printf("[boot] swept %d expired guest cart(s)", n)
				}
			}
		}()
	}()

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		if cont, ok := contHolder.Load().(*di.Container); ok && cont != nil {
			if err := cont.Close(); err != nil {
				log.Printf("[boot] container close error: %v", err)
			}
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
