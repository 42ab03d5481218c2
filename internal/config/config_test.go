package config

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: "8080", Mode: "release"},
		AI:     AIConfig{APIKey: "sk-test", BaseURL: "https://api.openai.com/v1"},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Validate 检查启动前置条件", t, func() {
		Convey("完整配置通过", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("缺少 API key 失败", func() {
			cfg := validConfig()
			cfg.AI.APIKey = ""
			So(errors.Is(cfg.Validate(), ErrMissingAPIKey), ShouldBeTrue)
		})

		Convey("API key 只要求非空", func() {
			cfg := validConfig()
			cfg.AI.APIKey = " "
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("缺少端口失败", func() {
			cfg := validConfig()
			cfg.Server.Port = ""
			So(errors.Is(cfg.Validate(), ErrMissingPort), ShouldBeTrue)
		})

		Convey("端口不是 uint16 失败", func() {
			for _, p := range []string{"abc", "-1", "65536", "80.5", " 8080 ", "8080\n", " ", "+", "++8080", "+-1", "0x50"} {
				cfg := validConfig()
				cfg.Server.Port = p
				So(cfg.Validate(), ShouldNotBeNil)
			}
		})

		Convey("端口边界值可用", func() {
			for _, p := range []string{"0", "65535", "+8080", "008080"} {
				cfg := validConfig()
				cfg.Server.Port = p
				So(cfg.Validate(), ShouldBeNil)
			}
		})

		Convey("非法 mode 失败", func() {
			cfg := validConfig()
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestConfig_Addr(t *testing.T) {
	Convey("Addr 和 CompletionsURL 拼接正确", t, func() {
		cfg := validConfig()
		So(cfg.Addr(), ShouldEqual, "0.0.0.0:8080")

		cfg.Server.Port = "+9000"
		So(cfg.Addr(), ShouldEqual, "0.0.0.0:9000")

		cfg.AI.BaseURL = "http://127.0.0.1:9000/v1/"
		So(cfg.AI.CompletionsURL(), ShouldEqual, "http://127.0.0.1:9000/v1/chat/completions")
	})
}
