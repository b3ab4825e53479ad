// Package main provides a CLI tool for validating simulator server endpoints.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path        string
	method      string
	body        string
	contentType string
	contains    []string
}

var endpoints = []endpoint{
	// Pages
	{path: "/simulator", method: "GET", contentType: "text/html", contains: []string{"Simulator"}},

	// API
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/api/population/preview", method: "POST", body: "{}", contentType: "application/json", contains: []string{"total"}},
	{path: "/api/simulate", method: "POST", body: "{}", contentType: "application/json", contains: []string{"run_id", "years"}},
	{path: "/api/simulate", method: "POST", body: `{"population_size":200,"num_years":3,"seed":7}`, contentType: "application/json", contains: []string{"total_reward"}},
	{path: "/api/optimize", method: "POST", body: `{"population_size":200,"num_years":3,"optimizer_iterations":5}`, contentType: "application/json", contains: []string{"best_policy", "history"}},
	{path: "/api/compare", method: "POST", body: `{"population_size":200,"num_years":3,"optimizer_iterations":5}`, contentType: "application/json", contains: []string{"baseline", "optimized"}},
	{path: "/api/twopanel", method: "POST", body: `{"population_size":200,"num_years":3,"optimizer_iterations":5}`, contentType: "application/json", contains: []string{"complex_heavy", "representative"}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 30, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int

	for _, ep := range endpoints {
		r := validateEndpoint(client, *url, ep)

		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		} else if r.status != http.StatusOK {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d (expected 200)\n", r.status)
		} else {
			passed++
			if *verbose {
				fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration)
			}
		}
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func validateEndpoint(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()

	var reqBody io.Reader
	if ep.body != "" {
		reqBody = strings.NewReader(ep.body)
	}

	req, err := http.NewRequest(ep.method, baseURL+ep.path, reqBody)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to create request: %w", err)}
	}
	if ep.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to read body: %w", err)}
	}

	r := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: time.Since(start),
		body:     string(body),
	}

	// Validate content type
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, ep.contentType) {
		r.err = fmt.Errorf("wrong content type: got %q, expected %q", ct, ep.contentType)
		return r
	}

	// Validate JSON if expected
	if ep.contentType == "application/json" {
		var js interface{}
		if err := json.Unmarshal(body, &js); err != nil {
			r.err = fmt.Errorf("invalid JSON: %w", err)
			return r
		}
	}

	// Validate required content
	for _, needle := range ep.contains {
		if !strings.Contains(string(body), needle) {
			r.err = fmt.Errorf("missing expected content: %q", needle)
			return r
		}
	}

	return r
}
