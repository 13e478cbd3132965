package cadastral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "lotlens/internal/platform/errors"
	"lotlens/internal/services/lookup/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, NewClient(Options{BaseURL: srv.URL})
}

func TestDispatchSendsOneQueryKey(t *testing.T) {
	var got map[string]string
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/consulta" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"found": false}) //nolint:errcheck
	})

	_, err := c.Dispatch(context.Background(), domain.Request{
		Kind:  domain.KindCadastralCode,
		Value: "0123456789",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(got) != 1 || got["cbml"] != "0123456789" {
		t.Fatalf("query body = %v", got)
	}
}

func TestDispatchFoundPayload(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"found": true,
			"data":  map[string]any{"area": 320.5, "clasificacion": "Suelo Urbano"},
		})
	})

	raw, err := c.Dispatch(context.Background(), domain.Request{
		Kind:  domain.KindAddress,
		Value: "Calle 10 # 43-12",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !raw.Found || raw.Payload == nil {
		t.Fatalf("raw = %+v", raw)
	}
	if raw.Payload.Area == nil || *raw.Payload.Area != 320.5 {
		t.Fatalf("payload area = %v", raw.Payload.Area)
	}
}

func TestDispatchUpstreamStatus(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Dispatch(context.Background(), domain.Request{
		Kind:  domain.KindRegistrationNumber,
		Value: "12345",
	})
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v, want upstream code", err)
	}
	if perr.StatusOf(err) != http.StatusBadGateway {
		t.Fatalf("status = %d", perr.StatusOf(err))
	}
}

func TestDispatchParseFailure(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>")) //nolint:errcheck
	})

	_, err := c.Dispatch(context.Background(), domain.Request{
		Kind:  domain.KindRegistrationNumber,
		Value: "12345",
	})
	if !perr.IsCode(err, perr.ErrorCodeParse) {
		t.Fatalf("err = %v, want parse code", err)
	}
}

func TestDispatchTransportFailure(t *testing.T) {
	srv, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.Dispatch(context.Background(), domain.Request{
		Kind:  domain.KindRegistrationNumber,
		Value: "12345",
	})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable code", err)
	}
}

func TestPing(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	_, bad := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if err := bad.Ping(context.Background()); err == nil {
		t.Fatalf("Ping should fail on 500")
	}
}
