package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/piechiang/taxengine/internal/api"
	"github.com/piechiang/taxengine/internal/calculation"
	"github.com/piechiang/taxengine/internal/rules"
)

type serverLogger struct{}

func (serverLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (serverLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (serverLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (serverLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	federalRules := flag.String("rules", "", "additional federal rule YAML file")
	stateRules := flag.String("state-rules", "", "additional state rule YAML file")
	flag.Parse()

	registry := rules.NewDefaultRegistry()
	if *federalRules != "" {
		if _, err := registry.LoadFederalFile(*federalRules); err != nil {
			log.Fatalf("loading federal rules: %v", err)
		}
	}
	if *stateRules != "" {
		if _, err := registry.LoadStateFile(*stateRules); err != nil {
			log.Fatalf("loading state rules: %v", err)
		}
	}

	engine := calculation.NewEngine()
	engine.SetLogger(serverLogger{})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewRouter(api.NewServer(engine, registry)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
