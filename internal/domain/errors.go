package domain

import (
	"errors"
	"strings"
)

// ErrorKind categorizes failures surfaced by the generation pipeline.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConfiguration ErrorKind = "configuration"
	KindProvider      ErrorKind = "provider"
	KindPersistence   ErrorKind = "persistence"
)

// User-facing messages.
const (
	MsgEmptyInput         = "请输入原始文案"
	MsgMissingCredentials = "请在 .env 文件中配置 DEEPSEEK_API_KEY 或 GEMINI_API_KEY"
	MsgGenerationPrefix   = "生成文案时出错: "
	MsgGenericFailure     = "请检查您的API密钥和网络连接。"
	MsgPrimaryPrefix      = "DeepSeek API 错误: "
	MsgEmptyCompletion    = "模型没有返回任何内容"
	MsgPersistencePrefix  = "保存历史记录失败: "
)

// Error is the categorized error carried through the pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError constructs a categorized error.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: strings.TrimSpace(message), Cause: cause}
}

func ValidationError(message string) *Error {
	return NewError(KindValidation, message, nil)
}

func ConfigurationError(message string) *Error {
	return NewError(KindConfiguration, message, nil)
}

func ProviderError(message string, cause error) *Error {
	return NewError(KindProvider, message, cause)
}

func PersistenceError(message string, cause error) *Error {
	return NewError(KindPersistence, message, cause)
}

// KindOf extracts the kind of err, or "" if it is not categorized.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind checks if err belongs to a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage renders a pipeline failure as the single line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return e.Message
		case KindPersistence:
			return MsgPersistencePrefix + detail(e)
		}
		return MsgGenerationPrefix + detail(e)
	}
	return MsgGenerationPrefix + valueOr(strings.TrimSpace(err.Error()), MsgGenericFailure)
}

func detail(e *Error) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil && strings.TrimSpace(e.Cause.Error()) != "" {
		return strings.TrimSpace(e.Cause.Error())
	}
	return MsgGenericFailure
}
