package cmd

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"askrelay/internal/config"
)

// unsetEnv 清除变量，测试结束后恢复原值
func unsetEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func freePort(t *testing.T) int {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

func TestLoadConfig(t *testing.T) {
	Convey("loadConfig 读取环境变量", t, func() {
		t.Setenv("HOME", t.TempDir())
		unsetEnv(t, "OPENAI_API_KEY", "PORT", "RELAY_AI_MODEL")

		Convey("OPENAI_API_KEY 和 PORT 映射到配置", func() {
			t.Setenv("OPENAI_API_KEY", "sk-env")
			t.Setenv("PORT", "+18080")
			t.Setenv("RELAY_AI_MODEL", "gpt-4o")

			loaded, err := loadConfig(viper.New(), "")
			So(err, ShouldBeNil)
			So(loaded.AI.APIKey, ShouldEqual, "sk-env")
			So(loaded.Server.Port, ShouldEqual, "+18080")
			So(loaded.AI.Model, ShouldEqual, "gpt-4o")
			So(loaded.AI.BaseURL, ShouldEqual, "https://api.openai.com/v1")
			So(loaded.Validate(), ShouldBeNil)
			So(loaded.Addr(), ShouldEqual, "0.0.0.0:18080")
		})

		Convey("未设置时校验失败", func() {
			loaded, err := loadConfig(viper.New(), "")
			So(err, ShouldBeNil)
			So(errors.Is(loaded.Validate(), config.ErrMissingAPIKey), ShouldBeTrue)

			t.Setenv("OPENAI_API_KEY", "sk-env")
			loaded, err = loadConfig(viper.New(), "")
			So(err, ShouldBeNil)
			So(errors.Is(loaded.Validate(), config.ErrMissingPort), ShouldBeTrue)
		})

		Convey("配置文件不存在时报错", func() {
			_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadEnvFile(t *testing.T) {
	Convey("env 文件", t, func() {
		unsetEnv(t, "OPENAI_API_KEY", "PORT")

		Convey("正常文件写入环境变量，已有变量优先", func() {
			t.Setenv("PORT", "9000")
			path := writeFile(t, ".env", "OPENAI_API_KEY=sk-file\nPORT=7000\n")

			So(loadEnvFile(path), ShouldBeNil)
			So(os.Getenv("OPENAI_API_KEY"), ShouldEqual, "sk-file")
			So(os.Getenv("PORT"), ShouldEqual, "9000")
		})

		Convey("路径为空时跳过", func() {
			So(loadEnvFile(""), ShouldBeNil)
		})
	})
}

func TestInitConfig_EnvFileErrorsIgnored(t *testing.T) {
	Convey("env 文件加载失败不影响启动配置", t, func() {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("OPENAI_API_KEY", "sk-env")
		t.Setenv("PORT", "18089")

		prevEnv, prevCfg := envFile, cfgFile
		defer func() { envFile, cfgFile = prevEnv, prevCfg }()
		cfgFile = ""

		for _, path := range []string{
			writeFile(t, ".env", "FOO\n"),
			t.TempDir(),
			filepath.Join(t.TempDir(), "absent.env"),
		} {
			envFile = path
			So(loadEnvFile(path), ShouldNotBeNil)

			// 加载失败时 initConfig 不会退出进程
			initConfig()
			So(GetConfig().AI.APIKey, ShouldEqual, "sk-env")
			So(GetConfig().Server.Port, ShouldEqual, "18089")
			So(GetConfig().Validate(), ShouldBeNil)
		}
	})
}

func TestRunServe_InvalidConfig(t *testing.T) {
	Convey("缺少凭据或端口时不监听", t, func() {
		port := freePort(t)
		prev := cfg
		defer func() { cfg = prev }()

		cfg = &config.Config{
			Server: config.ServerConfig{Host: "127.0.0.1", Port: strconv.Itoa(port), Mode: "release"},
			AI:     config.AIConfig{BaseURL: "https://api.openai.com/v1"},
		}

		Convey("缺少 API key", func() {
			err := runServe(serveCmd, nil)
			So(errors.Is(err, config.ErrMissingAPIKey), ShouldBeTrue)
		})

		Convey("缺少端口", func() {
			cfg.AI.APIKey = "sk-test"
			cfg.Server.Port = ""
			err := runServe(serveCmd, nil)
			So(errors.Is(err, config.ErrMissingPort), ShouldBeTrue)
		})

		Convey("端口非法", func() {
			cfg.AI.APIKey = "sk-test"
			cfg.Server.Port = "70000"
			So(runServe(serveCmd, nil), ShouldNotBeNil)
		})

		ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		So(err, ShouldBeNil)
		_ = ln.Close()
	})

	Convey("serve 命令在 env 文件异常且缺少端口时返回错误", t, func() {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("OPENAI_API_KEY", "sk-env")
		unsetEnv(t, "PORT")

		prevEnv := envFile
		defer func() { envFile = prevEnv }()

		rootCmd.SetArgs([]string{"serve", "--env-file", writeFile(t, ".env", "FOO\n")})
		defer rootCmd.SetArgs(nil)

		err := Execute()
		So(errors.Is(err, config.ErrMissingPort), ShouldBeTrue)
	})
}
