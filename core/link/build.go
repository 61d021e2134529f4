package link

import (
	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// Request 生成单条链接所需的全部输入，按值传入，不依赖外部状态。
type Request struct {
	Environment Environment
	Encryption  Encryption
	SecretKey   string
	Fields      FieldSet
}

// Build 生成单条链接。失败时不返回任何部分结果。
func Build(req Request) (string, error) {
	switch req.Encryption.Mode() {
	case ModeSign:
		return buildSigned(req)
	case ModeEncrypt:
		return buildEncrypted(req)
	default:
		return "", coreerrors.Validation("不支持未签名链接: %q", req.Encryption)
	}
}

func buildSigned(req Request) (string, error) {
	canonical, err := Canonicalize(req.Fields, ModeSign)
	if err != nil {
		return "", err
	}
	sig, err := Sign(req.SecretKey, canonical)
	if err != nil {
		return "", err
	}
	pairs := append(canonical.Pairs(), crypto.Pair{Key: ParamSig, Value: sig})
	return req.Environment.BaseURL() + "?" + crypto.EncodePairs(pairs), nil
}

func buildEncrypted(req Request) (string, error) {
	apiKey := req.Fields[FieldAPIKey]
	if apiKey == "" {
		return "", coreerrors.Validation("字段 %s 不能为空", FieldAPIKey)
	}
	c, err := req.Encryption.Cipher()
	if err != nil {
		return "", err
	}
	canonical, err := Canonicalize(req.Fields, ModeEncrypt)
	if err != nil {
		return "", err
	}
	token, err := Encrypt(c, req.SecretKey, canonical)
	if err != nil {
		return "", err
	}
	pairs := []crypto.Pair{
		{Key: FieldAPIKey, Value: apiKey},
		{Key: ParamEncryption, Value: string(req.Encryption)},
		{Key: ParamKey, Value: token},
	}
	return req.Environment.BaseURL() + "?" + crypto.EncodePairs(pairs), nil
}
