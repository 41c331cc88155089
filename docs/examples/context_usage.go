// Package examples demonstrates context usage patterns with the requests library.
//
// This file shows how to use context.Context for:
// - Request timeout control
// - Request cancellation
// - Deadline management
package examples

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sunerpy/requests"
)

// TimeoutExample demonstrates using context with timeout.
// The request will be canceled if it takes longer than the specified timeout.
func TimeoutExample() {
	// Create a context with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel() // Always call cancel to release resources

	client := requests.NewClient()
	defer client.Close()

	// WithContext makes Do respect the context's deadline and cancellation.
	resp, err := client.Get("https://api.example.com/data").WithContext(ctx).Do()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Println("Request timed out after 5 seconds")
			return
		}
		log.Printf("Request failed: %v", err)
		return
	}

	text, _ := resp.Body.Text()
	fmt.Printf("Response status: %d\n", resp.StatusCode)
	fmt.Printf("Response body: %s\n", text)
}

// CancellationExample demonstrates canceling a request programmatically.
// This is useful when you need to cancel a request based on user action or other events.
func CancellationExample() {
	// Create a cancellable context
	ctx, cancel := context.WithCancel(context.Background())

	client := requests.NewClient()
	defer client.Close()

	// Simulate cancellation after 2 seconds (e.g., user clicks cancel button)
	go func() {
		time.Sleep(2 * time.Second)
		fmt.Println("Canceling request...")
		cancel()
	}()

	// This request will be canceled after 2 seconds
	resp, err := client.Get("https://api.example.com/slow-endpoint").WithContext(ctx).Do()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Request was canceled by user")
			return
		}
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Response status: %d\n", resp.StatusCode)
}

// DeadlineExample demonstrates using context with a specific deadline.
// The request must complete before the deadline.
func DeadlineExample() {
	// Set a deadline 10 seconds from now
	deadline := time.Now().Add(10 * time.Second)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	client := requests.NewClient()
	defer client.Close()

	resp, err := client.Get("https://api.example.com/data").WithContext(ctx).Do()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Printf("Request did not complete before deadline: %v\n", deadline)
			return
		}
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Response status: %d\n", resp.StatusCode)
}

// ContextWithClientTimeoutExample shows how context timeout interacts with the
// client's own configured timeout. The shorter of the two wins, since the
// context deadline is enforced alongside the transport's http.Client.Timeout.
func ContextWithClientTimeoutExample() {
	// Client has 30 second timeout
	client := requests.NewClient(requests.WithClientTimeout(30 * time.Second))
	defer client.Close()

	// But context has 5 second timeout - this will be used
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The 5 second context timeout will be respected
	resp, err := client.Get("https://api.example.com/data").WithContext(ctx).Do()
	if err != nil {
		log.Printf("Request failed: %v", err)
		return
	}

	fmt.Printf("Response status: %d\n", resp.StatusCode)
}

// ParallelRequestsWithCancellationExample demonstrates canceling multiple parallel requests.
func ParallelRequestsWithCancellationExample() {
	// Create a cancellable context for all requests
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := requests.NewClient()
	defer client.Close()

	urls := []string{
		"https://api.example.com/users",
		"https://api.example.com/posts",
		"https://api.example.com/comments",
	}

	results := make(chan string, len(urls))
	errors := make(chan error, len(urls))

	// Start parallel requests
	for _, url := range urls {
		go func(url string) {
			resp, err := client.Get(url).WithContext(ctx).Do()
			if err != nil {
				errors <- err
				return
			}

			results <- fmt.Sprintf("%s: %d", url, resp.StatusCode)
		}(url)
	}

	// Wait for first result or error
	select {
	case result := <-results:
		fmt.Printf("First result: %s\n", result)
		// Cancel remaining requests
		cancel()
	case err := <-errors:
		fmt.Printf("First error: %v\n", err)
		// Cancel remaining requests
		cancel()
	case <-time.After(10 * time.Second):
		fmt.Println("Overall timeout")
		cancel()
	}
}

// ContextValueExample demonstrates passing values through context.
// Note: This is for demonstration - the requests library doesn't use context values internally.
func ContextValueExample() {
	type requestIDKey struct{}

	// Create context with request ID
	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-12345")

	client := requests.NewClient()
	defer client.Close()

	// You can use the request ID for logging or tracing
	requestID := ctx.Value(requestIDKey{}).(string)
	fmt.Printf("Making request with ID: %s\n", requestID)

	resp, err := client.Get("https://api.example.com/data").
		WithHeader("X-Request-ID", requestID).
		WithContext(ctx).
		Do()
	if err != nil {
		log.Printf("Request %s failed: %v", requestID, err)
		return
	}

	fmt.Printf("Request %s completed with status: %d\n", requestID, resp.StatusCode)
}
