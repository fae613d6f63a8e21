package biz

import (
	"fmt"
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
)

// 失败类型，调用方通过 Reason 区分，而不是解析错误文本
const (
	ReasonValidation    = "VALIDATION_FAILURE"
	ReasonFetch         = "FETCH_FAILURE"
	ReasonConfiguration = "CONFIGURATION_FAILURE"
	ReasonGeneration    = "GENERATION_FAILURE"
)

// MsgEmptyURL 空 URL 提示
const MsgEmptyURL = "Please enter a URL to proceed."

// ErrValidation 用户输入为空
func ErrValidation() *errors.Error {
	return errors.New(http.StatusBadRequest, ReasonValidation, MsgEmptyURL)
}

// ErrFetch 抓取或解析文章失败
func ErrFetch(cause error) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonFetch,
		fmt.Sprintf("Error fetching article from URL: %v", cause)).WithCause(cause)
}

// MsgMissingAPIKey 缺少凭证提示
const MsgMissingAPIKey = "Google API key not found. Please set it in your .env file."

// ErrConfiguration 缺少模型服务凭证，变量名放在 metadata["env"] 中
func ErrConfiguration(envName string) *errors.Error {
	return errors.New(http.StatusServiceUnavailable, ReasonConfiguration, MsgMissingAPIKey).
		WithMetadata(map[string]string{"env": envName})
}

// ErrGeneration 模型调用失败，携带服务端返回的详情
func ErrGeneration(cause error) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonGeneration,
		fmt.Sprintf("An error occurred during analysis: %v", cause)).WithCause(cause)
}

func IsValidationFailure(err error) bool    { return errors.Reason(err) == ReasonValidation }
func IsFetchFailure(err error) bool         { return errors.Reason(err) == ReasonFetch }
func IsConfigurationFailure(err error) bool { return errors.Reason(err) == ReasonConfiguration }
func IsGenerationFailure(err error) bool    { return errors.Reason(err) == ReasonGeneration }

// Message 返回适合直接展示给用户的错误信息
func Message(err error) string {
	if err == nil {
		return ""
	}
	if e := errors.FromError(err); e != nil && e.Reason != "" {
		return e.Message
	}
	return err.Error()
}
