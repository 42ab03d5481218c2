package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"askrelay/internal/ai"
	"askrelay/internal/model"
	"askrelay/internal/pkg/ctxutil"
	"askrelay/internal/pkg/id"
)

// observeTimeout 写流水和计数的超时，与调用方请求解耦
const observeTimeout = 3 * time.Second

// ErrStatsDisabled 未配置 Redis
var ErrStatsDisabled = errors.New("outcome stats are disabled (redis not configured)")

// Completer 上游 LLM 调用
type Completer interface {
	Complete(ctx context.Context, question string) (*ai.CompletionResponse, error)
	Model() string
}

// ExchangeRecorder 问答流水写入
type ExchangeRecorder interface {
	Create(ctx context.Context, exchange *model.Exchange) error
}

// OutcomeCounter 结果计数
type OutcomeCounter interface {
	Incr(ctx context.Context, outcome string) error
	Counts(ctx context.Context) (map[string]int64, error)
}

// AskResult 一次转发的结果，Status 即返回给调用方的 HTTP 状态码
type AskResult struct {
	Status         int
	Response       model.AskResponse
	Outcome        model.Outcome
	UpstreamStatus int
}

// RelayService 转发服务 - 业务逻辑层
// 职责: 调用上游，把结果或失败翻译成统一响应；流水和计数是可选的旁路
type RelayService struct {
	completer Completer
	journal   ExchangeRecorder // 可为 nil
	counter   OutcomeCounter   // 可为 nil
}

// NewRelayService 创建转发服务
func NewRelayService(completer Completer, journal ExchangeRecorder, counter OutcomeCounter) *RelayService {
	return &RelayService{
		completer: completer,
		journal:   journal,
		counter:   counter,
	}
}

// Ask 转发问题，每次调用都会请求上游，不做缓存或去重
func (s *RelayService) Ask(ctx context.Context, question string) *AskResult {
	start := time.Now()
	resp, err := s.completer.Complete(ctx, question)
	latency := time.Since(start)

	result := translate(resp, err)
	s.observe(ctx, question, result, latency, err)
	return result
}

// Reject 入参不合法，不调用上游
func (s *RelayService) Reject(ctx context.Context, cause error) *AskResult {
	result := &AskResult{
		Status:   http.StatusBadRequest,
		Response: model.NewFailure(fmt.Sprintf("Invalid request body: %v", cause)),
		Outcome:  model.OutcomeBadRequest,
	}
	s.observe(ctx, "", result, 0, cause)
	return result
}

// Stats 返回结果计数
func (s *RelayService) Stats(ctx context.Context) (map[string]int64, error) {
	if s.counter == nil {
		return nil, ErrStatsDisabled
	}
	return s.counter.Counts(ctx)
}

// translate 把上游结果映射为响应
func translate(resp *ai.CompletionResponse, err error) *AskResult {
	var (
		transportErr *ai.TransportError
		statusErr    *ai.StatusError
		decodeErr    *ai.DecodeError
	)

	switch {
	case err == nil:
		answer, ok := resp.FirstContent()
		if !ok {
			return &AskResult{
				Status:         http.StatusOK,
				Response:       model.NewAnswer(model.NoResponseAnswer),
				Outcome:        model.OutcomeEmpty,
				UpstreamStatus: http.StatusOK,
			}
		}
		return &AskResult{
			Status:         http.StatusOK,
			Response:       model.NewAnswer(answer),
			Outcome:        model.OutcomeAnswered,
			UpstreamStatus: http.StatusOK,
		}
	case errors.As(err, &statusErr):
		return &AskResult{
			Status:         http.StatusBadGateway,
			Response:       model.NewFailure(fmt.Sprintf("OpenAI API error: %v", statusErr)),
			Outcome:        model.OutcomeUpstreamError,
			UpstreamStatus: statusErr.StatusCode,
		}
	case errors.As(err, &decodeErr):
		return &AskResult{
			Status:         http.StatusInternalServerError,
			Response:       model.NewFailure(fmt.Sprintf("Failed to parse OpenAI response: %v", decodeErr)),
			Outcome:        model.OutcomeParseError,
			UpstreamStatus: http.StatusOK,
		}
	case errors.As(err, &transportErr):
		return &AskResult{
			Status:   http.StatusInternalServerError,
			Response: model.NewFailure(fmt.Sprintf("Request failed: %v", transportErr)),
			Outcome:  model.OutcomeTransportError,
		}
	default:
		// 未分类的错误按请求失败处理
		return &AskResult{
			Status:   http.StatusInternalServerError,
			Response: model.NewFailure(fmt.Sprintf("Request failed: %v", err)),
			Outcome:  model.OutcomeTransportError,
		}
	}
}

// observe 记录日志、计数和流水，失败只打日志，不影响响应
func (s *RelayService) observe(ctx context.Context, question string, result *AskResult, latency time.Duration, cause error) {
	requestID, _ := ctxutil.GetRequestID(ctx)
	logger := log.With().
		Str("request_id", requestID).
		Str("outcome", string(result.Outcome)).
		Int("status", result.Status).
		Logger()

	if cause != nil {
		logger.Warn().Err(cause).Int("upstream_status", result.UpstreamStatus).Dur("latency", latency).Msg("relay failed")
	} else {
		logger.Info().Dur("latency", latency).Msg("relay completed")
	}

	if s.counter == nil && s.journal == nil {
		return
	}

	octx, cancel := context.WithTimeout(context.WithoutCancel(ctx), observeTimeout)
	defer cancel()

	if s.counter != nil {
		if err := s.counter.Incr(octx, string(result.Outcome)); err != nil {
			logger.Warn().Err(err).Msg("failed to count outcome")
		}
	}

	if s.journal != nil {
		exchange := &model.Exchange{
			ID:             id.New(),
			RequestID:      requestID,
			Model:          s.completer.Model(),
			Question:       question,
			Answer:         result.Response.Answer,
			Outcome:        result.Outcome,
			Status:         result.Status,
			UpstreamStatus: result.UpstreamStatus,
			LatencyMS:      latency.Milliseconds(),
			CreatedAt:      time.Now(),
		}
		if result.Response.Error != nil {
			exchange.Error = *result.Response.Error
		}
		if err := s.journal.Create(octx, exchange); err != nil {
			logger.Warn().Err(err).Msg("failed to record exchange")
		}
	}
}
