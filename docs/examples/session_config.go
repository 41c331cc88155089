// Package examples demonstrates Client configuration patterns with the requests library.
//
// This file shows how to configure a Client with:
// - Retry policies
// - Middleware
// - Functional-option chaining
// - Proxy, DNS, and authentication
package examples

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sunerpy/requests"
)

// BasicClientExample demonstrates creating and configuring a basic client.
func BasicClientExample() {
	client := requests.NewClient(
		requests.WithBaseURL("https://api.example.com"),
		requests.WithClientTimeout(30*time.Second),
		requests.WithClientHeader("User-Agent", "MyApp/1.0"),
		requests.WithClientHeader("Accept", "application/json"),
	)
	defer client.Close()

	// All requests will use the base URL and default headers
	resp, err := client.Get("/users").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// RetryPolicyExample demonstrates configuring retry behavior per request.
func RetryPolicyExample() {
	client := requests.NewClient(requests.WithBaseURL("https://api.example.com"))
	defer client.Close()

	policy := requests.RetryPolicy{
		MaxAttempts:     3,                      // Try up to 3 times
		InitialInterval: 100 * time.Millisecond, // Start with 100ms delay
		MaxInterval:     5 * time.Second,        // Cap delay at 5 seconds
		Multiplier:      2.0,                    // Double delay each retry
		Jitter:          0.1,                    // Add 10% randomness
		RetryIf: func(resp *requests.InMemoryResponse, err error) bool {
			// Retry on network errors
			if err != nil {
				return true
			}
			// Retry on server errors (5xx) and rate limiting (429)
			if resp != nil {
				return resp.StatusCode >= 500 || resp.StatusCode == 429
			}
			return false
		},
	}

	resp, err := client.Get("/data").WithOptions(requests.WithRetry(policy)).Do()
	if err != nil {
		log.Printf("Request failed after retries: %v", err)
		return
	}

	fmt.Printf("Success! Status: %d\n", resp.StatusCode)
}

// CustomRetryConditionExample shows how to create custom retry conditions,
// installed as a client-wide middleware instead of a per-request option.
func CustomRetryConditionExample() {
	retryOnSpecificCodes := func(resp *requests.InMemoryResponse, err error) bool {
		if err != nil {
			return true
		}
		if resp != nil {
			// Only retry on 502, 503, 504
			switch resp.StatusCode {
			case 502, 503, 504:
				return true
			}
		}
		return false
	}

	client := requests.NewClient(
		requests.WithMiddleware(requests.RetryMiddleware(requests.RetryPolicy{
			MaxAttempts:     5,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     10 * time.Second,
			Multiplier:      1.5,
			RetryIf:         retryOnSpecificCodes,
		})),
	)
	defer client.Close()

	resp, err := client.Get("https://api.example.com/data").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// MiddlewareExample demonstrates adding middleware to a client.
func MiddlewareExample() {
	// Create a logging middleware
	loggingMiddleware := requests.MiddlewareFunc(func(ctx context.Context, req requests.InMemoryRequest, next requests.Next) (requests.Response, error) {
		start := time.Now()
		fmt.Printf("[LOG] %s %s\n", req.Method, req.URL)

		resp, err := next.Run(ctx, req)

		duration := time.Since(start)
		if err == nil {
			fmt.Printf("[LOG] %d %s (%v)\n", resp.StatusCode, req.URL, duration)
		}
		return resp, err
	})

	// Create an auth middleware
	authMiddleware := requests.MiddlewareFunc(func(ctx context.Context, req requests.InMemoryRequest, next requests.Next) (requests.Response, error) {
		req.Headers.Set("Authorization", "Bearer my-secret-token")
		return next.Run(ctx, req)
	})

	// Create client with middlewares (executed in order)
	client := requests.NewClient(
		requests.WithBaseURL("https://api.example.com"),
		requests.WithMiddleware(loggingMiddleware),
		requests.WithMiddleware(authMiddleware),
	)
	defer client.Close()

	resp, err := client.Get("/protected/data").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// OptionChainingExample demonstrates building a fully-configured client from
// a single functional-option call.
func OptionChainingExample() {
	client := requests.NewClient(
		requests.WithBaseURL("https://api.example.com"),
		requests.WithClientTimeout(30*time.Second),
		requests.WithClientDNS(nil),
		requests.WithHTTP2(true),
		requests.WithClientHeader("User-Agent", "MyApp/1.0"),
		requests.WithClientHeader("Accept", "application/json"),
		requests.WithMiddleware(requests.RetryMiddleware(requests.RetryPolicy{
			MaxAttempts:     3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
		})),
	)
	defer client.Close()

	// Client is fully configured and ready to use
	resp, err := client.Get("/users").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// DerivedClientExample demonstrates deriving an independently-configured
// client from a base one via WithOptions, without mutating the base.
func DerivedClientExample() {
	base := requests.NewClient(
		requests.WithBaseURL("https://api.example.com"),
		requests.WithClientTimeout(10 * time.Second),
	)
	defer base.Close()

	derived := base.WithOptions(requests.WithClientHeader("X-Team", "payments"))
	defer derived.Close()

	resp, err := derived.Get("/data").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}
	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// ProxyAndDNSExample demonstrates proxy and custom DNS configuration.
func ProxyAndDNSExample() {
	client := requests.NewClient(
		requests.WithClientProxy("http://proxy.example.com:8080"),
		requests.WithClientDNS([]string{"8.8.8.8", "8.8.4.4"}),
	)
	defer client.Close()

	resp, err := client.Get("https://api.example.com/data").Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// AuthenticationExample demonstrates various authentication methods, applied
// per request via RequestOption rather than baked into the client.
func AuthenticationExample() {
	client := requests.NewClient(requests.WithBaseURL("https://api.example.com"))
	defer client.Close()

	resp1, _ := client.Get("/data").WithOptions(requests.WithBasicAuth("username", "password")).Do()
	fmt.Printf("Basic Auth: %d\n", resp1.StatusCode)

	resp2, _ := client.Get("/data").WithOptions(requests.WithBearerToken("my-jwt-token")).Do()
	fmt.Printf("Bearer Token: %d\n", resp2.StatusCode)

	resp3, _ := client.Get("/data").WithHeader("X-API-Key", "my-api-key").Do()
	fmt.Printf("API Key: %d\n", resp3.StatusCode)
}
