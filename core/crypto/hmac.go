package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// ErrEmptyKey 在签名密钥为空时返回，避免对空密钥计算 HMAC。
var ErrEmptyKey = errors.New("crypto: HMAC 密钥为空")

// SignSHA256 计算字符串的 HMAC-SHA256 十六进制签名（小写，64 位）。
func SignSHA256(message, key string) (string, error) {
	raw, err := SignBytes([]byte(message), []byte(key))
	if err != nil {
		return "", err
	}
	return encodeHex(raw), nil
}

// SignBytes 计算原始 HMAC-SHA256 摘要。
func SignBytes(message, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// VerifySHA256 以常量时间比较十六进制签名。
func VerifySHA256(message, key, signature string) bool {
	expected, err := SignSHA256(message, key)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}
