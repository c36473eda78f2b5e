// Minimal end-to-end check against a running AI service.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	rootURL  = getenv("SERVICE_URL", "http://localhost:8000")
	baseURL  = rootURL + "/api/v1"
	redisURL = getenv("REDIS_URL", "")
	secret   = os.Getenv("JWT_SECRET")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

type agentResponse struct {
	AgentID         string         `json:"agent_id"`
	TaskID          string         `json:"task_id"`
	Status          string         `json:"status"`
	Result          map[string]any `json:"result"`
	Error           *string        `json:"error"`
	ConfidenceScore *float64       `json:"confidence_score"`
}

func main() {
	token := mintToken()

	checkHealth()
	checkAgents(token)

	taskID := "smoke-" + uuid.NewString()
	resp := generateScript(token, taskID)
	checkPerformance(token)
	if redisURL != "" {
		checkCachedResult(resp.AgentID, taskID)
	}

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- auth

func mintToken() string {
	if secret == "" {
		return ""
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "smoke-test",
		"exp": time.Now().Add(10 * time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	return signed
}

// ----------------------------- endpoints

func checkHealth() {
	var resp struct{ Status string }
	doReq("GET", rootURL+"/health", "", nil, &resp, http.StatusOK)
	if resp.Status != "healthy" {
		log.Fatalf("health: status %q", resp.Status)
	}
}

func checkAgents(tok string) {
	var resp struct {
		Count int `json:"count"`
	}
	doReq("GET", baseURL+"/agents", tok, nil, &resp, http.StatusOK)
	if resp.Count == 0 {
		log.Fatal("agents: none registered")
	}
}

func generateScript(tok, taskID string) agentResponse {
	var resp agentResponse
	doReq("POST", baseURL+"/content/script", tok, map[string]any{
		"task_id":         taskID,
		"topic":           "budget home espresso",
		"niche":           "coffee",
		"target_duration": 8,
	}, &resp, http.StatusOK)
	if resp.Status != "completed" {
		log.Fatalf("script: status %q", resp.Status)
	}
	if s, _ := resp.Result["script"].(string); s == "" {
		log.Fatal("script: empty script")
	}
	return resp
}

func checkPerformance(tok string) {
	var resp struct {
		TasksCompleted int `json:"tasks_completed"`
	}
	doReq("GET", baseURL+"/agents/content_strategist/performance", tok, nil, &resp, http.StatusOK)
	if resp.TasksCompleted == 0 {
		log.Fatal("performance: no completed tasks recorded")
	}
}

func checkCachedResult(agentID, taskID string) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	key := fmt.Sprintf("agent_result:%s:%s", agentID, taskID)
	ttl, err := rdb.TTL(context.Background(), key).Result()
	if err != nil || ttl <= 0 {
		log.Fatalf("redis: %s missing or without ttl (%v)", key, err)
	}
}

// ----------------------------- helpers

func doReq(method, url, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, url, err)
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, url, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, url, err)
		}
	}
}
