package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"
)

// APIBenchmark 对单个接口发起并发请求并汇总结果
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult 基准测试结果
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	EnvelopeErrors int           `json:"envelope_errors"` // HTTP 2xx 但 success=false
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	P95Time        time.Duration `json:"p95_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// envelope 接口统一响应中用到的字段
type envelope struct {
	Success bool            `json:"success"`
	Mensaje string          `json:"mensaje"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	body       envelope
	err        error
}

// NewAPIBenchmark 创建新的API基准测试实例
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency < 1 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login 调用登录接口并返回令牌
func (b *APIBenchmark) Login(email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	result := b.do(http.MethodPost, b.BaseURL+"/auth/login", payload)
	if result.err != nil {
		return "", result.err
	}
	if result.statusCode != http.StatusOK || !result.body.Success {
		return "", fmt.Errorf("登录失败: %d %s", result.statusCode, result.body.Mensaje)
	}
	if result.body.Token == "" {
		return "", fmt.Errorf("登录响应中没有令牌")
	}
	return result.body.Token, nil
}

// RunGET 执行GET请求的基准测试
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.runTest(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST 执行POST请求的基准测试
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runWithBody(http.MethodPost, path, payload)
}

// RunPUT 执行PUT请求的基准测试
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runWithBody(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runWithBody(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: method,
			Errors: []string{fmt.Sprintf("JSON编码错误: %v", err)},
		}
	}
	return b.runTest(method, url, jsonData)
}

// do 发送单个请求并解析响应体
func (b *APIBenchmark) do(method, url string, payload []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return requestResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return requestResult{err: err}
	}
	result := requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result.body); err != nil {
			result.err = fmt.Errorf("响应不是JSON: %w", err)
		}
	}
	return result
}

// runTest 用有限并发执行全部请求
func (b *APIBenchmark) runTest(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan requestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()
			results <- b.do(method, url, payload)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		StatusCodes:   make(map[int]int),
	}
	var durations []time.Duration
	var totalTime time.Duration
	for r := range results {
		if r.err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.err.Error())
			continue
		}

		totalTime += r.duration
		durations = append(durations, r.duration)
		result.StatusCodes[r.statusCode]++
		switch {
		case r.statusCode < 200 || r.statusCode >= 300:
			result.FailureCount++
		case !r.body.Success:
			result.FailureCount++
			result.EnvelopeErrors++
		default:
			result.SuccessCount++
		}
	}

	result.TotalTime = time.Since(startTime)
	if result.TotalTime > 0 {
		result.RequestsPerSec = float64(b.Requests) / result.TotalTime.Seconds()
	}
	if len(durations) > 0 {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		result.AverageTime = totalTime / time.Duration(len(durations))
		result.MinTime = durations[0]
		result.MaxTime = durations[len(durations)-1]
		result.P95Time = durations[(len(durations)*95-1)/100]
	}
	return result
}

// SuccessRate 成功请求占比（百分比）
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// PrintResult 打印基准测试结果
func (r *BenchmarkResult) PrintResult() {
	fmt.Printf("基准测试结果: %s %s\n", r.Method, r.URL)
	fmt.Printf("并发数: %d, 总请求数: %d\n", r.Concurrency, r.TotalRequests)
	fmt.Printf("成功: %d, 失败: %d (其中 success=false: %d)\n", r.SuccessCount, r.FailureCount, r.EnvelopeErrors)
	fmt.Printf("总耗时: %s, 平均: %s, 最小: %s, P95: %s, 最大: %s\n",
		r.TotalTime, r.AverageTime, r.MinTime, r.P95Time, r.MaxTime)
	fmt.Printf("每秒请求数: %.2f\n", r.RequestsPerSec)
	for code, count := range r.StatusCodes {
		fmt.Printf("  %d: %d\n", code, count)
	}
	if len(r.Errors) > 0 {
		fmt.Printf("错误信息 (最多显示5个):\n")
		for i, err := range r.Errors {
			if i >= 5 {
				fmt.Printf("  ... 还有 %d 个错误\n", len(r.Errors)-5)
				break
			}
			fmt.Printf("  %s\n", err)
		}
	}
}
