package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/askwiki/gateway/cmd"
	"github.com/askwiki/gateway/frontend"
	"github.com/askwiki/gateway/health"
	"github.com/askwiki/gateway/proxy"
	"github.com/askwiki/gateway/proxyprotocol"
	"github.com/askwiki/gateway/static"
	"github.com/askwiki/gateway/web"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	config := cmd.GetConfigFromEnvironment()
	if err := config.Validate(); err != nil {
		logger.Fatalln(err)
	}

	transport, err := proxy.NewTransport(
		config.UpstreamURL,
		proxy.TransportOptions{
			DialTimeout:           config.UpstreamDialTimeout,
			ResponseHeaderTimeout: config.UpstreamResponseTimeout,
		},
	)
	if err != nil {
		logger.Fatalln(err)
	}

	root, err := staticRoot(config, logger)
	if err != nil {
		logger.Fatalln(err)
	}

	server := &http.Server{
		Handler: &frontend.Handler{
			AskPath: config.AskPath,
			Proxy: &proxy.Handler{
				Upstream:  config.UpstreamURL,
				Transport: transport,
				Logger:    logger,
			},
			Static: &static.Handler{
				Root:     root,
				Fallback: config.FallbackDocument,
			},
			HealthCheck: &health.HTTPHandler{
				Checker: &health.UpstreamChecker{
					Upstream: config.UpstreamURL,
					Timeout:  config.CheckTimeout,
				},
				Logger: logger,
			},
			Logger: logger,
		},
		ErrorLog: logger,
	}

	listener, err := net.Listen("tcp", ":"+config.Port)
	if err != nil {
		logger.Fatalln(err)
	}

	if config.ProxyProtocol {
		listener = proxyprotocol.NewListener(listener)
	}

	done := make(chan struct{})
	go shutdownOnSignal(server, config, logger, done)

	logger.Printf("Listening on port %s", config.Port)
	logger.Printf("Forwarding %s to %s", config.AskPath, config.UpstreamURL)

	err = server.Serve(listener)
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalln(err)
	}

	<-done
}

// staticRoot returns the file system that static files are served from.
func staticRoot(config *cmd.Config, logger *log.Logger) (fs.FS, error) {
	if config.StaticRoot == "" {
		logger.Println("Serving the built-in web client")
		return web.Assets, nil
	}

	info, err := os.Stat(config.StaticRoot)
	if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: config.StaticRoot, Err: errors.New("not a directory")}
	}

	logger.Printf("Serving static files from %s", config.StaticRoot)
	return os.DirFS(config.StaticRoot), nil
}

// shutdownOnSignal stops server gracefully when the process is interrupted.
func shutdownOnSignal(
	server *http.Server,
	config *cmd.Config,
	logger *log.Logger,
	done chan<- struct{},
) {
	defer close(done)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	sig := <-signals

	logger.Printf("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("Shutdown did not complete: %s", err)
	}
}
