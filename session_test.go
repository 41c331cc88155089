package requests

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_BaseURLApplied(t *testing.T) {
	var receivedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	defer client.Close()
	_, err := client.Get("/api/users").Do()
	assert.NoError(t, err)
	assert.Equal(t, "/api/users", receivedPath)
}

func TestClient_DefaultHeaderApplied(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Custom-Header")
	}))
	defer server.Close()

	client := NewClient(WithClientHeader("X-Custom-Header", "hello"))
	defer client.Close()
	_, err := client.Get(server.URL).Do()
	assert.NoError(t, err)
	assert.Equal(t, "hello", received)
}

func TestClient_WithOptionsIsIndependent(t *testing.T) {
	base := NewClient(WithClientHeader("X-Test", "base"))
	defer base.Close()
	derived := base.WithOptions(WithClientHeader("X-Test", "derived"))
	defer derived.Close()

	var baseReceived, derivedReceived string
	server1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		baseReceived = r.Header.Get("X-Test")
	}))
	defer server1.Close()
	server2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		derivedReceived = r.Header.Get("X-Test")
	}))
	defer server2.Close()

	_, err := base.Get(server1.URL).Do()
	assert.NoError(t, err)
	_, err = derived.Get(server2.URL).Do()
	assert.NoError(t, err)
	assert.Equal(t, "base", baseReceived)
	assert.Equal(t, "derived", derivedReceived)
}

func TestClient_RequestHeaderOverridesDefault(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Test")
	}))
	defer server.Close()

	client := NewClient(WithClientHeader("X-Test", "client-value"))
	defer client.Close()
	_, err := client.Get(server.URL).WithHeader("X-Test", "request-value").Do()
	assert.NoError(t, err)
	assert.Equal(t, "request-value", received)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(WithClientTimeout(10 * time.Millisecond))
	defer client.Close()
	_, err := client.Get(server.URL).Do()
	assert.Error(t, err)
}

func TestClient_ConcurrentSafety(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()
	const goroutines = 50
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Get(server.URL).Do(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_PostPutDeletePatchBuilders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Method))
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()

	for _, tc := range []struct {
		do     func() (InMemoryResponse, error)
		method string
	}{
		{func() (InMemoryResponse, error) { return client.Post(server.URL).WithJSON(map[string]int{"a": 1}).Do() }, "POST"},
		{func() (InMemoryResponse, error) { return client.Put(server.URL).Do() }, "PUT"},
		{func() (InMemoryResponse, error) { return client.Delete(server.URL).Do() }, "DELETE"},
		{func() (InMemoryResponse, error) { return client.Patch(server.URL).Do() }, "PATCH"},
	} {
		resp, err := tc.do()
		assert.NoError(t, err)
		text, _ := resp.Body.Text()
		assert.Equal(t, tc.method, text)
	}
}
