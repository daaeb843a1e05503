package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newDiscordStub(t *testing.T, user map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":604800}`))
	})
	mux.HandleFunc("/api/users/@me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"401: Unauthorized","code":0}`))
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newStubProvider(srv *httptest.Server) *DiscordProvider {
	return NewDiscordProvider(DiscordConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/discord/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/oauth2/authorize",
			TokenURL:  srv.URL + "/api/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		APIBase: srv.URL + "/api",
	})
}

func TestDiscordProvider_AuthCodeURL(t *testing.T) {
	p := NewDiscordProvider(DiscordConfig{ClientID: "cid", RedirectURL: "http://localhost/cb"})
	raw := p.AuthCodeURL("st-1")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(raw, "https://discord.com/oauth2/authorize") {
		t.Fatalf("unexpected authorize url %s", raw)
	}
	q := u.Query()
	if q.Get("state") != "st-1" || q.Get("client_id") != "cid" || q.Get("scope") != "identify email" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestDiscordProvider_ExchangeVerifiedEmail(t *testing.T) {
	srv := newDiscordStub(t, map[string]any{
		"id": "80351110224678912", "username": "nelly", "global_name": "Nelly",
		"avatar": "8342729096ea3675442027381ff50dfe", "email": "nelly@discord.com", "verified": true,
	})
	p := newStubProvider(srv)

	id, err := p.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if id.ExternalUserID != "80351110224678912" || id.Name != "Nelly" || id.Email != "nelly@discord.com" {
		t.Fatalf("unexpected identity %#v", id)
	}
	if !strings.HasSuffix(id.Image, "/80351110224678912/8342729096ea3675442027381ff50dfe.png") {
		t.Fatalf("unexpected avatar %s", id.Image)
	}
}

func TestDiscordProvider_UnverifiedEmailDropped(t *testing.T) {
	srv := newDiscordStub(t, map[string]any{
		"id": "1", "username": "raw", "email": "raw@discord.com", "verified": false,
	})
	p := newStubProvider(srv)

	id, err := p.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if id.Email != "" {
		t.Fatalf("unverified email must not be exposed, got %q", id.Email)
	}
	if id.Name != "raw" || id.Image != "" {
		t.Fatalf("unexpected identity %#v", id)
	}
}

func TestDiscordProvider_ExchangeFailure(t *testing.T) {
	srv := newDiscordStub(t, map[string]any{"id": "1"})
	p := newStubProvider(srv)

	if _, err := p.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatalf("expected exchange error")
	}
	if _, err := p.Exchange(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty code")
	}
}
