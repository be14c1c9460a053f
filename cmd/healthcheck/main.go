package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/askwiki/gateway/cmd"
	"github.com/askwiki/gateway/health"
	"github.com/askwiki/gateway/proxyprotocol"
)

func main() {
	config := cmd.GetConfigFromEnvironment()

	checker := health.HTTPChecker{
		Address: ":" + config.Port,
		Client:  checkerHTTPClientProvider(config),
	}

	status := checker.Check()
	fmt.Println(status.Message)
	if !status.IsHealthy {
		os.Exit(1)
	}
}

func checkerHTTPClientProvider(config *cmd.Config) *http.Client {
	transport := &http.Transport{}
	if config.ProxyProtocol {
		transport.DialContext = proxyprotocol.DialLocal
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.CheckTimeout,
	}
}
