package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/castorhq/castor/admin"
	"github.com/castorhq/castor/proxy"
	"github.com/castorhq/castor/registry"
)

func main() {
	_ = godotenv.Load()
	listen := getEnv("CASTOR_LISTEN", ":8080")
	upstream := getEnv("CASTOR_UPSTREAM", "http://localhost:3000")
	adminAddr := getEnv("CASTOR_ADMIN", ":8081")
	checks := getEnv("CASTOR_CHECKS", "1")
	output := getEnv("CASTOR_OUTPUT", "")
	level := getEnv("CASTOR_LOG", "info")

	if err := setupLogging(level); err != nil {
		slog.Error("could not init logging", "err", err)
		return
	}

	u, err := url.Parse(upstream)
	if err != nil {
		slog.Error("could not parse CASTOR_UPSTREAM", "err", err)
		return
	}

	reg := registry.New()
	p := proxy.New(reg, proxy.Config{
		Upstream:  u,
		Checks:    checks != "0",
		OutputDir: output,
	})

	proxySrv := &http.Server{Addr: listen, Handler: p}
	adminSrv := &http.Server{Addr: adminAddr, Handler: admin.NewServer(reg).Handler()}

	term := make(chan os.Signal, 1)
	signal.Notify(term, syscall.SIGINT, syscall.SIGTERM)

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go serveJob(wg, "proxy", proxySrv)
	go serveJob(wg, "admin", adminSrv)

	slog.Info("listening", "proxy", listen, "admin", adminAddr, "upstream", upstream)
	<-term

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := proxySrv.Shutdown(ctx); err != nil {
		slog.Warn("proxy shutdown", "err", err)
	}
	if err := adminSrv.Shutdown(ctx); err != nil {
		slog.Warn("admin shutdown", "err", err)
	}
	wg.Wait()
}

func serveJob(wg *sync.WaitGroup, name string, srv *http.Server) {
	defer wg.Done()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "name", name, "err", err)
	}
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
