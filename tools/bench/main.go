package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// -------------------- 统计 --------------------

type APITestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	totalLatency       time.Duration
	MaxLatency         time.Duration
	MinLatency         time.Duration
	mu                 sync.Mutex
}

func (s *APITestStats) Add(success bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalRequests++
	if !success {
		s.FailedRequests++
		return
	}
	s.SuccessfulRequests++
	s.totalLatency += latency
	if latency > s.MaxLatency {
		s.MaxLatency = latency
	}
	if s.MinLatency == 0 || latency < s.MinLatency {
		s.MinLatency = latency
	}
}

func (s *APITestStats) AverageLatency() time.Duration {
	if s.SuccessfulRequests == 0 {
		return 0
	}
	return s.totalLatency / time.Duration(s.SuccessfulRequests)
}

// -------------------- HTTP 客户端 --------------------

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	base  string
	token string
	http  *http.Client
	stats *APITestStats
}

// call 发送请求并解析统一响应，code 非 0 视为失败
func (c *apiClient) call(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.stats.Add(false, time.Since(start))
		return err
	}
	defer resp.Body.Close()

	var env envelope
	err = json.NewDecoder(resp.Body).Decode(&env)
	ok := err == nil && resp.StatusCode == http.StatusOK && env.Code == 0
	c.stats.Add(ok, time.Since(start))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: code=%d %s", method, path, env.Code, env.Message)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

type idResp struct {
	ID uint `json:"id"`
}

// runWorker 注册用户、创建联系人，然后走完消息生命周期 QUEUED -> SENT -> DELIVERED
func runWorker(c *apiClient, worker, messages int, runID int64) error {
	var auth struct {
		AccessToken string `json:"access_token"`
	}
	username := fmt.Sprintf("bench_%d_%d", runID, worker)
	if err := c.call("POST", "/api/v1/users/register", map[string]string{
		"username": username,
		"password": "bench-password",
	}, &auth); err != nil {
		return err
	}
	c.token = auth.AccessToken

	var contact idResp
	if err := c.call("POST", "/api/v1/contacts", map[string]string{
		"name":  fmt.Sprintf("contact %d", worker),
		"phone": fmt.Sprintf("555-%04d", worker),
	}, &contact); err != nil {
		return err
	}

	for i := 0; i < messages; i++ {
		var msg idResp
		if err := c.call("POST", "/api/v1/messages", map[string]interface{}{
			"type":       "text",
			"body":       fmt.Sprintf("bench message %d", i),
			"contact_id": contact.ID,
		}, &msg); err != nil {
			return err
		}
		for _, status := range []string{"sent", "delivered"} {
			path := fmt.Sprintf("/api/v1/messages/%d/status", msg.ID)
			if err := c.call("PUT", path, map[string]string{"status": status}, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// -------------------- 入口 --------------------

func main() {
	base := flag.String("base", "http://localhost:8080", "server base url")
	concurrency := flag.Int("c", 5, "concurrent workers")
	messages := flag.Int("n", 10, "messages per worker")
	flag.Parse()

	fmt.Println("=== 通讯录消息服务压测 ===")
	fmt.Printf("开始时间: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("目标: %s 并发: %d 每协程消息: %d\n", *base, *concurrency, *messages)

	stats := &APITestStats{}
	httpClient := &http.Client{Timeout: 8 * time.Second}
	runID := time.Now().Unix()

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c := &apiClient{base: *base, http: httpClient, stats: stats}
			if err := runWorker(c, id, *messages, runID); err != nil {
				fmt.Printf("worker %d 中止: %v\n", id, err)
			}
		}(i)
	}
	wg.Wait()

	took := time.Since(start)
	fmt.Println("\n=== 测试结果 ===")
	fmt.Printf("耗时: %v\n", took)
	fmt.Printf("总请求: %d 成功: %d 失败: %d\n", stats.TotalRequests, stats.SuccessfulRequests, stats.FailedRequests)
	fmt.Printf("延迟 平均: %v 最大: %v 最小: %v\n", stats.AverageLatency(), stats.MaxLatency, stats.MinLatency)
	if took > 0 {
		fmt.Printf("QPS: %.2f\n", float64(stats.SuccessfulRequests)/took.Seconds())
	}
	if stats.TotalRequests > 0 {
		rate := float64(stats.SuccessfulRequests) / float64(stats.TotalRequests) * 100
		fmt.Printf("成功率: %.2f%%\n", rate)
	}
}
