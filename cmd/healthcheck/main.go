package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

func main() {
	os.Exit(check(healthURL(os.Getenv("KEYPROVISIONER_SCHEME"), os.Getenv("KEYPROVISIONER_HOST"), os.Getenv("KEYPROVISIONER_PORT"))))
}

func check(url string) int {
	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

// healthURL builds the Grafana health endpoint from the same settings the
// provisioner uses, falling back to its defaults.
func healthURL(scheme, host, port string) string {
	if scheme == "" {
		scheme = "http"
	}
	if port == "" {
		port = "3000"
	}
	return fmt.Sprintf("%s://%s/api/health", scheme, net.JoinHostPort(normalizeHost(host), port))
}

// normalizeHost maps empty and bind-all hosts to loopback.
func normalizeHost(raw string) string {
	if raw == "" || raw == "0.0.0.0" {
		return "127.0.0.1"
	}
	return raw
}
