// Package main is a small probe for container health checks. It exits 0 when
// the bot's liveness endpoint answers 200 and 1 otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	url := flag.String("url", "http://127.0.0.1:5000/", "Liveness URL to probe")
	timeout := flag.Duration("timeout", 5*time.Second, "Request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	body, err := probe(ctx, newClient(*timeout), *url)
	if err != nil {
		slog.Error("Health check failed", "url", *url, "error", err)
		os.Exit(1)
	}
	slog.Info("Health check passed", "url", *url, "body", body)
}

func newClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "swapguard-healthcheck")
}

func probe(ctx context.Context, client *resty.Client, url string) (string, error) {
	resp, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}
