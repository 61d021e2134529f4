// Package link 负责反馈问卷链接的规范化、签名/加密与拼装。
package link

import (
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// 固定字段名。
const (
	FieldAPIKey    = "apiKey"
	FieldCheckin   = "checkin"
	FieldCheckout  = "checkout"
	FieldEmail     = "email"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldPMSID     = "pmsId"
	FieldSurveyID  = "surveyId"
)

// 输出链接中保留的参数名。
const (
	ParamSig        = "sig"
	ParamEncryption = "encryption"
	ParamKey        = "key"
)

// FixedFields 按字典序排列的固定字段。
var FixedFields = []string{
	FieldAPIKey,
	FieldCheckin,
	FieldCheckout,
	FieldEmail,
	FieldFirstName,
	FieldLastName,
	FieldPMSID,
	FieldSurveyID,
}

// IsFixed 判断是否为固定字段。
func IsFixed(name string) bool {
	for _, f := range FixedFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsReserved 判断是否为固定字段或输出保留参数，额外参数不允许使用这些名称。
func IsReserved(name string) bool {
	switch name {
	case ParamSig, ParamEncryption, ParamKey:
		return true
	}
	return IsFixed(name)
}

func isOptional(name string) bool {
	return name == FieldFirstName || name == FieldLastName
}

// FieldSet 字段名到字段值的映射。
type FieldSet map[string]string

// Clone 返回副本。
func (f FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge 合并额外参数，名称与已有字段冲突时返回校验错误。
func (f FieldSet) Merge(extra map[string]string) error {
	for k, v := range extra {
		if k == "" {
			return coreerrors.Validation("额外参数名不能为空")
		}
		if IsReserved(k) {
			return coreerrors.Validation("额外参数 %s 与保留字段重名", k)
		}
		if _, exists := f[k]; exists {
			return coreerrors.Validation("参数 %s 重复", k)
		}
		f[k] = v
	}
	return nil
}

// Mode 决定规范化与输出形态。
type Mode int

const (
	// ModeUnsigned 未签名链接，不允许生成。
	ModeUnsigned Mode = iota
	// ModeSign HMAC 签名，原始字段可见并追加 sig。
	ModeSign
	// ModeEncrypt 分组密码加密，原始字段全部隐藏在 key 中。
	ModeEncrypt
)

// String 返回模式的字符串表示。
func (m Mode) String() string {
	switch m {
	case ModeUnsigned:
		return "unsigned"
	case ModeSign:
		return "hmac-sign"
	case ModeEncrypt:
		return "block-cipher-encrypt"
	default:
		return "unknown"
	}
}

// requiredFields 返回模式下必须存在且非空的字段。
func requiredFields(mode Mode) []string {
	switch mode {
	case ModeSign:
		return []string{FieldAPIKey, FieldCheckin, FieldCheckout, FieldEmail, FieldPMSID, FieldSurveyID}
	case ModeEncrypt:
		return []string{FieldCheckin, FieldCheckout, FieldEmail, FieldPMSID, FieldSurveyID}
	default:
		return nil
	}
}
