package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"askrelay/internal/config"
)

func newTestClient(baseURL string) *Client {
	c, err := NewClient(&config.AIConfig{
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
	})
	if err != nil {
		panic(err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	Convey("NewClient 校验必需配置", t, func() {
		_, err := NewClient(&config.AIConfig{BaseURL: "http://x"})
		So(err, ShouldNotBeNil)

		_, err = NewClient(&config.AIConfig{APIKey: "k"})
		So(err, ShouldNotBeNil)

		c, err := NewClient(&config.AIConfig{APIKey: "k", BaseURL: "http://x/v1", Model: "m"})
		So(err, ShouldBeNil)
		So(c.url, ShouldEqual, "http://x/v1/chat/completions")
		So(c.Model(), ShouldEqual, "m")
	})
}

func TestClient_Complete(t *testing.T) {
	Convey("Complete 调用上游 completions 接口", t, func() {
		var (
			gotMethod string
			gotPath   string
			gotAuth   string
			gotType   string
			gotBody   map[string]any
			status    = http.StatusOK
			respBody  = `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"42"}}]}`
		)
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(status)
			_, _ = io.WriteString(w, respBody)
		}))
		defer upstream.Close()

		client := newTestClient(upstream.URL + "/v1")

		Convey("请求体和请求头正确", func() {
			resp, err := client.Complete(context.Background(), "What is the answer?")
			So(err, ShouldBeNil)
			So(gotMethod, ShouldEqual, http.MethodPost)
			So(gotPath, ShouldEqual, "/v1/chat/completions")
			So(gotAuth, ShouldEqual, "Bearer sk-test")
			So(gotType, ShouldStartWith, "application/json")
			So(gotBody["model"], ShouldEqual, "gpt-4o-mini")
			So(gotBody["temperature"], ShouldEqual, 0.7)
			So(gotBody["messages"], ShouldResemble, []any{
				map[string]any{"role": "user", "content": "What is the answer?"},
			})

			content, ok := resp.FirstContent()
			So(ok, ShouldBeTrue)
			So(content, ShouldEqual, "42")
		})

		Convey("非 2xx 返回 StatusError", func() {
			status = http.StatusTooManyRequests
			respBody = `{"error":{"message":"slow down"}}`

			_, err := client.Complete(context.Background(), "q")
			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, 429)
			So(statusErr.Error(), ShouldEqual, "429 Too Many Requests")
			So(statusErr.Body, ShouldContainSubstring, "slow down")
		})

		Convey("2xx 但结构不对返回 DecodeError", func() {
			respBody = `{"id":"x"}`

			_, err := client.Complete(context.Background(), "q")
			var decodeErr *DecodeError
			So(errors.As(err, &decodeErr), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "choices")
		})

		Convey("2xx 但不是 JSON 返回 DecodeError", func() {
			respBody = `<html>gateway</html>`

			_, err := client.Complete(context.Background(), "q")
			var decodeErr *DecodeError
			So(errors.As(err, &decodeErr), ShouldBeTrue)
		})
	})

	Convey("连接失败返回 TransportError", t, func() {
		upstream := httptest.NewServer(http.NotFoundHandler())
		baseURL := upstream.URL
		upstream.Close()

		_, err := newTestClient(baseURL).Complete(context.Background(), "q")
		var transportErr *TransportError
		So(errors.As(err, &transportErr), ShouldBeTrue)
		So(err.Error(), ShouldNotBeEmpty)
	})
}

func TestStatusError_Error(t *testing.T) {
	Convey("StatusError 文本包含状态码", t, func() {
		So((&StatusError{StatusCode: 404}).Error(), ShouldEqual, "404 Not Found")
		So((&StatusError{StatusCode: 599}).Error(), ShouldEqual, "599 <unknown status code>")
	})
}
