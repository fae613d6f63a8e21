package conf

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLLMBaseURL Gemini 的 OpenAI 兼容接口
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultLLMModel   = "gemini-2.5-pro"
	DefaultAPIKeyEnv  = "GOOGLE_API_KEY"
)

// Bootstrap 服务整体配置
type Bootstrap struct {
	Server  *Server  `yaml:"server"`
	LLM     *LLM     `yaml:"llm"`
	Fetcher *Fetcher `yaml:"fetcher"`
	Log     *Log     `yaml:"log"`
}

type Server struct {
	Http *HTTP `yaml:"http"`
}

type HTTP struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LLM 模型调用相关配置，进程启动时构造一次，之后只读
type LLM struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	Timeout   string `yaml:"timeout"`
}

// Fetcher 文章抓取配置
type Fetcher struct {
	Timeout      string `yaml:"timeout"`
	UserAgent    string `yaml:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Log 日志配置
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// HasCredential 是否已配置模型服务的 API Key
func (c *LLM) HasCredential() bool {
	return c != nil && c.APIKey != ""
}

// RequestTimeout 解析模型调用超时，未配置时返回 0（使用客户端默认值）
func (c *LLM) RequestTimeout() time.Duration {
	return parseDuration(c.Timeout, 0)
}

// RequestTimeout 解析抓取超时
func (c *Fetcher) RequestTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// Load 从 YAML 文件加载配置。
// 文件不存在时使用默认配置；envFiles 中的 .env 文件会先被加载到进程环境变量中，
// 若 llm.api_key 为空则从 llm.api_key_env 指定的环境变量读取。
func Load(path string, envFiles ...string) (*Bootstrap, error) {
	var bc Bootstrap
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &bc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	bc.setDefaults()
	if bc.LLM.APIKey == "" {
		bc.LLM.APIKey = os.Getenv(bc.LLM.APIKeyEnv)
	}
	return &bc, nil
}

// loadEnvFiles 加载存在的 .env 文件，已存在的环境变量不会被覆盖
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

func (bc *Bootstrap) setDefaults() {
	if bc.Server == nil {
		bc.Server = &Server{}
	}
	if bc.Server.Http == nil {
		bc.Server.Http = &HTTP{}
	}
	if bc.Server.Http.Addr == "" {
		bc.Server.Http.Addr = "0.0.0.0:8501"
	}
	// 生成报告可能耗时数十秒，kratos 默认 1s 超时不够用
	if bc.Server.Http.Timeout == "" {
		bc.Server.Http.Timeout = "300s"
	}

	if bc.LLM == nil {
		bc.LLM = &LLM{}
	}
	if bc.LLM.BaseURL == "" {
		bc.LLM.BaseURL = DefaultLLMBaseURL
	}
	if bc.LLM.Model == "" {
		bc.LLM.Model = DefaultLLMModel
	}
	if bc.LLM.APIKeyEnv == "" {
		bc.LLM.APIKeyEnv = DefaultAPIKeyEnv
	}
	if bc.LLM.Timeout == "" {
		bc.LLM.Timeout = "180s"
	}

	if bc.Fetcher == nil {
		bc.Fetcher = &Fetcher{}
	}
	if bc.Fetcher.Timeout == "" {
		bc.Fetcher.Timeout = "30s"
	}
	if bc.Fetcher.UserAgent == "" {
		bc.Fetcher.UserAgent = "Mozilla/5.0 (compatible; FinBot/1.0; +https://github.com/iWorld-y/finbot)"
	}
	if bc.Fetcher.MaxBodyBytes <= 0 {
		bc.Fetcher.MaxBodyBytes = 5 << 20
	}

	if bc.Log == nil {
		bc.Log = &Log{}
	}
	if bc.Log.Level == "" {
		bc.Log.Level = "info"
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}
