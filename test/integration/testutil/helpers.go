//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// POST performs a POST request, optionally authenticated.
func (env *TestEnv) POST(path string, body any, token string) *http.Response {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode body: %v", path, err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// GET performs a GET request, optionally authenticated.
func (env *TestEnv) GET(path string, token string) *http.Response {
	env.t.Helper()

	req, err := http.NewRequest(http.MethodGet, env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// DecodeBody decodes a response body into dst and closes it.
func (env *TestEnv) DecodeBody(resp *http.Response, dst any) {
	env.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		env.t.Fatalf("decode response: %v", err)
	}
}

// RegisterUser creates an account and returns the token and user id.
func (env *TestEnv) RegisterUser(username, email, password string) (string, uuid.UUID) {
	env.t.Helper()

	resp := env.POST("/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterUser: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		User struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	env.DecodeBody(resp, &result)
	return result.Token, result.User.ID
}

// CreateTask creates a task for the authenticated user and returns its id.
func (env *TestEnv) CreateTask(token, name string, energy, points int) uuid.UUID {
	env.t.Helper()

	resp := env.POST("/tasks", map[string]any{
		"name":   name,
		"energy": energy,
		"points": points,
	}, token)
	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("CreateTask: expected 201, got %d", resp.StatusCode)
	}

	var task struct {
		ID uuid.UUID `json:"id"`
	}
	env.DecodeBody(resp, &task)
	return task.ID
}
