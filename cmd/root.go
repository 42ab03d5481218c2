package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"askrelay/internal/config"
	"askrelay/internal/pkg/logger"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "askrelay",
	Short: "AskRelay - question relay for OpenAI chat completions",
	Long: `AskRelay accepts a question over HTTP, forwards it to the OpenAI
chat completions API and returns the first answer.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"dotenv file loaded before reading the environment")
}

func initConfig() {
	// .env 可选，任何加载错误都忽略；已有的环境变量优先
	envErr := loadEnvFile(envFile)

	loaded, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if envErr != nil {
		log.Debug().Err(envErr).Str("env_file", envFile).Msg("env file not loaded")
	}
	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

// loadConfig 按 默认值 -> 配置文件 -> 环境变量 -> flag 的优先级读取配置
func loadConfig(v *viper.Viper, file string) (*config.Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.askrelay")
	}

	// 环境变量设置
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, err
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	out := &config.Config{}
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return out, nil
}

func setDefaults(v *viper.Viper) {
	// Server，port 没有默认值
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// AI
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", "0s")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.time_format", "RFC3339")

	// MongoDB，uri 为空时不记录流水
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "askrelay")
	v.SetDefault("mongo.max_pool_size", 20)
	v.SetDefault("mongo.min_pool_size", 0)

	// Redis，addr 为空时不计数
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
