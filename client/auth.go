package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials is returned when the registry rejects a login
// or replies with a shape the client does not recognize. The two cases
// are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse mirrors the auth endpoint response. Only `success` and
// `results.token` are consulted; no other field is depended on.
type loginResponse struct {
	Success bool `json:"success"`
	Results *struct {
		Token string `json:"token"`
	} `json:"results"`
}

// Authenticate exchanges operator credentials for a bearer token via
// POST /api/auth/login.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/api/auth/login", c.baseURL)
	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	observeRequest("login", err)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ErrInvalidCredentials
	}
	if !out.Success || out.Results == nil || out.Results.Token == "" {
		return "", ErrInvalidCredentials
	}
	return out.Results.Token, nil
}
