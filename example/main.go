package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sunerpy/requests"
)

// HTTPBinResponse represents a response from httpbin.org
type HTTPBinResponse struct {
	Args    map[string]string `json:"args"`
	Headers map[string]string `json:"headers"`
	Origin  string            `json:"origin"`
	URL     string            `json:"url"`
}

func main() {
	fmt.Println("=== HTTP Client Library Examples ===")
	fmt.Println()
	basicGetExample()
	clientExample()
	genericMethodsExample()
	builderExample()
	middlewareExample()
	retryExample()
	hooksExample()
	contextExample()
	clientRetryExample()
	clientMiddlewareExample()
}

func basicGetExample() {
	fmt.Println("--- Example 1: Basic GET Request ---")
	resp, err := requests.Get("https://httpbin.org/get", requests.WithQuery("query", "golang"))
	if err != nil {
		log.Printf("GET Error: %v\n", err)
		return
	}
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Println()
}

func clientExample() {
	fmt.Println("--- Example 2: Client with Configuration ---")
	client := requests.NewClient(
		requests.WithBaseURL("https://httpbin.org"),
		requests.WithClientHeader("X-Custom-Header", "custom-value"),
		requests.WithClientTimeout(30*time.Second),
		requests.WithHTTP2(true),
	)
	defer client.Close()
	resp, err := client.Get("/headers").Do()
	if err != nil {
		log.Printf("Client Error: %v\n", err)
		return
	}
	text, _ := resp.Body.Text()
	fmt.Printf("Status: %d\n", resp.StatusCode)
	if len(text) > 200 {
		text = text[:200]
	}
	fmt.Printf("Response: %s\n", text)
	fmt.Println()
}

func genericMethodsExample() {
	fmt.Println("--- Example 3: Generic HTTP Methods ---")
	// GET with automatic JSON parsing - returns Result[T] which wraps both data and response
	result, err := requests.GetJSON[HTTPBinResponse](
		"https://httpbin.org/get",
		requests.WithQuery("name", "John"),
		requests.WithHeader("Accept", "application/json"),
	)
	if err != nil {
		log.Printf("GetJSON Error: %v\n", err)
		return
	}
	fmt.Printf("Origin: %s\n", result.Data().Origin)
	fmt.Printf("Args: %v\n", result.Data().Args)
	fmt.Printf("Status: %d, IsSuccess: %v\n", result.StatusCode(), result.IsSuccess())
	// POST with JSON body and automatic response parsing
	postData := map[string]string{"name": "John", "email": "john@example.com"}
	postResult, err := requests.PostJSON[HTTPBinResponse]("https://httpbin.org/post", postData)
	if err != nil {
		log.Printf("PostJSON Error: %v\n", err)
		return
	}
	fmt.Printf("POST URL: %s\n", postResult.Data().URL)
	fmt.Println()
}

func builderExample() {
	fmt.Println("--- Example 4: RequestBuilder ---")
	req, err := requests.NewPost("https://httpbin.org/post").
		WithHeader("Accept", "application/json").
		WithQuery("version", "v1").
		WithOptions(requests.WithBearerToken("my-token")).
		WithJSON(map[string]any{
			"name":  "John Doe",
			"email": "john@example.com",
			"age":   30,
		}).
		Build()
	if err != nil {
		log.Printf("Builder Error: %v\n", err)
		return
	}
	fmt.Printf("Built Request: %s %s\n", req.Method, req.URL)
	fmt.Printf("Headers: %v\n", req.Headers)
	fmt.Println()
}

func middlewareExample() {
	fmt.Println("--- Example 5: Middleware ---")
	logging := requests.MiddlewareFunc(func(ctx context.Context, req requests.InMemoryRequest, next requests.Next) (requests.Response, error) {
		fmt.Printf("  [Middleware] Request: %s %s\n", req.Method, req.URL)
		resp, err := next.Run(ctx, req)
		if err == nil {
			fmt.Printf("  [Middleware] Response: %d\n", resp.StatusCode)
		}
		return resp, err
	})
	client := requests.NewClient(
		requests.WithBaseURL("https://httpbin.org"),
		requests.WithMiddleware(logging),
		requests.WithMiddleware(requests.HeaderMiddleware(map[string]string{"X-Request-ID": "12345"})),
	)
	defer client.Close()
	resp, err := client.Get("/get").Do()
	if err != nil {
		log.Printf("Middleware Error: %v\n", err)
		return
	}
	fmt.Printf("Final Status: %d\n", resp.StatusCode)
	fmt.Println()
}

func retryExample() {
	fmt.Println("--- Example 6: Retry Mechanism ---")
	var attempts int
	policy := requests.RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.1,
		RetryIf: func(resp *requests.InMemoryResponse, err error) bool {
			attempts++
			fmt.Printf("  Attempt %d\n", attempts)
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= 500
		},
	}
	resp, err := requests.NewGet("https://httpbin.org/get").WithOptions(requests.WithRetry(policy)).Do()
	if err != nil {
		log.Printf("Retry Error: %v\n", err)
		return
	}
	fmt.Printf("Success after %d attempt(s), Status: %d\n", attempts, resp.StatusCode)
	fmt.Println()
}

func hooksExample() {
	fmt.Println("--- Example 7: Hooks for Observability ---")
	hooks := requests.NewHooks()
	hooks.OnRequest(func(req requests.InMemoryRequest) {
		fmt.Printf("  [Hook] Sending request to: %s\n", req.URL)
	})
	hooks.OnResponse(func(req requests.InMemoryRequest, resp requests.InMemoryResponse, duration time.Duration) {
		fmt.Printf("  [Hook] Received response: %d in %v\n", resp.StatusCode, duration)
	})
	hooks.OnError(func(req requests.InMemoryRequest, err error, duration time.Duration) {
		fmt.Printf("  [Hook] Error: %v in %v\n", err, duration)
	})
	metrics := requests.NewMetricsHook()
	metricsHooks := requests.NewHooks().
		OnRequest(metrics.RequestHook()).
		OnResponse(metrics.ResponseHook()).
		OnError(metrics.ErrorHook())
	client := requests.NewClient(
		requests.WithBaseURL("https://httpbin.org"),
		requests.WithMiddleware(requests.HooksMiddleware(hooks)),
		requests.WithMiddleware(requests.HooksMiddleware(metricsHooks)),
	)
	defer client.Close()
	fmt.Println("  Making request with hooks...")
	resp, err := client.Get("/get").Do()
	if err != nil {
		log.Printf("Hooks Error: %v\n", err)
		return
	}
	fmt.Printf("Final Status: %d\n", resp.StatusCode)
	fmt.Println()
	fmt.Println("--- Metrics Hook Example ---")
	for i := 0; i < 3; i++ {
		client.Get("/get").Do()
	}
	totalRequests, responses, errors, avgDuration := metrics.Stats()
	fmt.Printf("Metrics: %d requests, %d responses, %d errors, avg duration: %v\n",
		totalRequests, responses, errors, avgDuration)
}

func contextExample() {
	fmt.Println("--- Example 8: Context with Timeout and Cancellation ---")

	fmt.Println("  8a: Context with timeout")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := requests.NewClient()
	defer client.Close()

	resp, err := client.Get("https://httpbin.org/get").WithContext(ctx).Do()
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			fmt.Println("  Request timed out")
		case errors.Is(err, context.Canceled):
			fmt.Println("  Request was canceled")
		default:
			log.Printf("  Context Error: %v\n", err)
		}
		return
	}
	fmt.Printf("  Status: %d\n", resp.StatusCode)

	fmt.Println("  8b: Context cancellation (simulated)")
	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = cancelFunc // replace this line with cancelFunc() to test cancellation
	}()

	resp2, err := client.Get("https://httpbin.org/delay/1").WithContext(cancelCtx).Do()
	if err != nil {
		fmt.Printf("  Canceled or error: %v\n", err)
	} else {
		fmt.Printf("  Completed with status: %d\n", resp2.StatusCode)
	}
	cancelFunc()

	fmt.Println()
}

func clientRetryExample() {
	fmt.Println("--- Example 9: Client with Retry Policy ---")
	policy := requests.RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.1,
		RetryIf: func(resp *requests.InMemoryResponse, err error) bool {
			if err != nil {
				fmt.Println("  Retrying due to error...")
				return true
			}
			if resp != nil && (resp.StatusCode >= 500 || resp.StatusCode == 429) {
				fmt.Printf("  Retrying due to status %d...\n", resp.StatusCode)
				return true
			}
			return false
		},
	}
	client := requests.NewClient(
		requests.WithBaseURL("https://httpbin.org"),
		requests.WithClientTimeout(30*time.Second),
		requests.WithMiddleware(requests.RetryMiddleware(policy)),
	)
	defer client.Close()

	resp, err := client.Get("/get").Do()
	if err != nil {
		log.Printf("  Client Retry Error: %v\n", err)
		return
	}
	fmt.Printf("  Success! Status: %d\n", resp.StatusCode)
	fmt.Println()
}

func clientMiddlewareExample() {
	fmt.Println("--- Example 10: Client with Middleware ---")

	logging := requests.MiddlewareFunc(func(ctx context.Context, req requests.InMemoryRequest, next requests.Next) (requests.Response, error) {
		start := time.Now()
		fmt.Printf("  [Middleware] Starting request: %s %s\n", req.Method, req.URL)
		resp, err := next.Run(ctx, req)
		duration := time.Since(start)
		if err == nil {
			fmt.Printf("  [Middleware] Completed: %d in %v\n", resp.StatusCode, duration)
		} else {
			fmt.Printf("  [Middleware] Failed: %v in %v\n", err, duration)
		}
		return resp, err
	})

	auth := requests.MiddlewareFunc(func(ctx context.Context, req requests.InMemoryRequest, next requests.Next) (requests.Response, error) {
		req.Headers.Set("X-Auth-Token", "secret-token-123")
		fmt.Println("  [Auth Middleware] Added auth header")
		return next.Run(ctx, req)
	})

	client := requests.NewClient(
		requests.WithBaseURL("https://httpbin.org"),
		requests.WithMiddleware(logging),
		requests.WithMiddleware(auth),
	)
	defer client.Close()

	resp, err := client.Get("/headers").Do()
	if err != nil {
		log.Printf("  Client Middleware Error: %v\n", err)
		return
	}
	text, _ := resp.Body.Text()
	if len(text) > 100 {
		text = text[:100]
	}
	fmt.Printf("  Response preview: %s...\n", text)
	fmt.Println()
}
