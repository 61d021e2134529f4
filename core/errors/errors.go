package errors

import (
	"errors"
	"fmt"
)

// Code 代表核心业务的错误类型。
type Code string

const (
	// ErrCodeUnknown 表示未知或未分类错误。
	ErrCodeUnknown Code = "UNKNOWN"
	// ErrCodeInvalidArgument 表示调用方传入的参数非法。
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig 表示配置缺失或取值非法。
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	// ErrCodeValidation 表示必填字段缺失或字段取值非法。
	ErrCodeValidation Code = "VALIDATION"
	// ErrCodeCrypto 表示密钥长度错误或加密/签名失败。
	ErrCodeCrypto Code = "CRYPTO"
	// ErrCodeEncoding 表示编码或解码失败。
	ErrCodeEncoding Code = "ENCODING"
	// ErrCodeInvalidState 表示流程状态不允许当前操作。
	ErrCodeInvalidState Code = "INVALID_STATE"
)

// 按错误码匹配的 sentinel，配合 errors.Is 使用。
var (
	ErrValidation   = New(ErrCodeValidation, "")
	ErrCrypto       = New(ErrCodeCrypto, "")
	ErrEncoding     = New(ErrCodeEncoding, "")
	ErrInvalidState = New(ErrCodeInvalidState, "")
)

// CoreError 提供核心层统一的结构化错误。
type CoreError struct {
	Code    Code
	Message string
	Raw     error
}

func (e *CoreError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("core: [%s] %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Raw != nil:
		return e.Raw.Error()
	case e.Code != "":
		return fmt.Sprintf("core: 错误码=%s", e.Code)
	default:
		return "core: 未知错误"
	}
}

// Unwrap 允许 errors.Is/As 解构底层错误。
func (e *CoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Raw
}

// Is 支持按错误码或同一实例匹配，兼容 sentinel 用法。
func (e *CoreError) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	if e == target {
		return true
	}
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// New 创建基本的 CoreError。
func New(code Code, message string) *CoreError {
	return &CoreError{Code: code, Message: message}
}

// Wrap 在保留底层错误的同时生成 CoreError。
func Wrap(code Code, message string, raw error) *CoreError {
	if message == "" && raw != nil {
		message = raw.Error()
	}
	return &CoreError{
		Code:    code,
		Message: message,
		Raw:     raw,
	}
}

// Validation 生成字段校验错误。
func Validation(format string, args ...any) *CoreError {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// CodeOf 提取错误链上第一个 CoreError 的错误码，非 CoreError 返回 ErrCodeUnknown。
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ce *CoreError
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	return ErrCodeUnknown
}
