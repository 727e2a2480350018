package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEndpointRing_StrictRoundRobin(t *testing.T) {
	r := NewEndpointRing([]string{"a", "b", "c"})
	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Errorf("step %d: got %q, want %q", i, got, w)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len: got %d, want 3", r.Len())
	}
}

func TestEndpointRing_SingleEndpoint(t *testing.T) {
	r := NewEndpointRing([]string{"only"})
	for i := 0; i < 5; i++ {
		if got := r.Next(); got != "only" {
			t.Errorf("step %d: got %q", i, got)
		}
	}
}

func TestNewPool_RejectsEmptyList(t *testing.T) {
	if _, err := NewPool(nil, ""); err == nil {
		t.Error("NewPool should reject an empty endpoint list")
	}
}

func TestPool_DispatchRotatesEndpoints(t *testing.T) {
	var hits []string
	backend := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var in denoiseRequestBody
			_ = json.NewDecoder(r.Body).Decode(&in)
			hits = append(hits, name)
			_ = json.NewEncoder(w).Encode(denoiseResponseBody{FilenameDenoised: in.FilenameDenoised})
		}
	}

	srvA := httptest.NewServer(backend("A"))
	defer srvA.Close()
	srvB := httptest.NewServer(backend("B"))
	defer srvB.Close()

	p, err := NewPool([]string{srvA.URL, srvB.URL}, "")
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	// Three items against a pool of two: endpoints A, B, A in strict order.
	for i, in := range []string{"/in/a.wav", "/in/b.wav", "/in/c.wav"} {
		out, err := p.Dispatch(context.Background(), Request{Input: in, Output: "/out/x.wav"})
		if err != nil {
			t.Fatalf("Dispatch %d: %v", i, err)
		}
		if !out.OK {
			t.Errorf("Dispatch %d: outcome not OK", i)
		}
	}

	want := []string{"A", "B", "A"}
	if len(hits) != len(want) {
		t.Fatalf("hits: got %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit %d: got %q, want %q", i, hits[i], want[i])
		}
	}
}

func TestPool_BadEndpointFailsTheRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in denoiseRequestBody
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(denoiseResponseBody{FilenameDenoised: in.FilenameDenoised})
	}))
	defer srv.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	p, err := NewPool([]string{srv.URL, deadURL}, "")
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	if _, err := p.Dispatch(context.Background(), Request{Input: "/in/a.wav", Output: "/out/a.wav"}); err != nil {
		t.Fatalf("first dispatch (live endpoint): %v", err)
	}
	// No failover: the dead endpoint's turn is a transport error.
	if _, err := p.Dispatch(context.Background(), Request{Input: "/in/b.wav", Output: "/out/b.wav"}); err == nil {
		t.Error("second dispatch should fail on the dead endpoint")
	}
}
