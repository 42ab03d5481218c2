package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Log    LogConfig    `mapstructure:"log"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"` // 来自 PORT，必须是 uint16
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"` // 0 表示不限制，上游调用可能较慢
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AIConfig 上游 LLM 配置
type AIConfig struct {
	APIKey      string        `mapstructure:"api_key"` // 来自 OPENAI_API_KEY
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"` // 0 使用 HTTP 客户端默认值
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置，URI 为空时不记录对话流水
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置，Addr 为空时不统计结果计数
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var (
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY must be set")
	ErrMissingPort   = errors.New("PORT must be set")
)

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return ErrMissingAPIKey
	}

	if _, err := c.Server.ListenPort(); err != nil {
		return err
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return nil
}

// ListenPort 解析监听端口：十进制，可带一个前导 +，不允许空白
func (s *ServerConfig) ListenPort() (uint16, error) {
	if s.Port == "" {
		return 0, ErrMissingPort
	}
	raw := strings.TrimPrefix(s.Port, "+")
	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("PORT must be an unsigned 16-bit integer: %w", err)
	}
	return uint16(port), nil
}

// Addr 返回监听地址 host:port
func (c *Config) Addr() string {
	port, _ := c.Server.ListenPort()
	return net.JoinHostPort(c.Server.Host, strconv.FormatUint(uint64(port), 10))
}

// CompletionsURL 上游 chat completions 地址
func (c *AIConfig) CompletionsURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
}
