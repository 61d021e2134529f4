package link

import (
	"encoding/base64"

	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// Sign 对签名模式的规范化文本计算 HMAC-SHA256。
func Sign(secretKey string, c *Canonical) (string, error) {
	if c == nil || c.Mode != ModeSign {
		return "", coreerrors.New(coreerrors.ErrCodeInvalidArgument, "link: 需要签名模式的规范化文本")
	}
	sig, err := crypto.SignSHA256(c.Text, secretKey)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.ErrCodeCrypto, "link: 签名失败", err)
	}
	return sig, nil
}

// Encrypt 以 CBC/零 IV 加密规范化查询串，返回 base64 令牌。
// 密钥按原始字节使用，长度必须与算法一致。
func Encrypt(c crypto.Cipher, secretKey string, canonical *Canonical) (string, error) {
	if canonical == nil || canonical.Mode != ModeEncrypt {
		return "", coreerrors.New(coreerrors.ErrCodeInvalidArgument, "link: 需要加密模式的规范化文本")
	}
	if secretKey == "" {
		return "", coreerrors.Wrap(coreerrors.ErrCodeCrypto, "link: 加密密钥为空", crypto.ErrEmptyKey)
	}
	ciphertext, err := crypto.EncryptCBC(c, []byte(secretKey), []byte(canonical.Text))
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.ErrCodeCrypto, "link: 加密失败: "+err.Error(), err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open 解密 base64 令牌，返回规范化查询串。
func Open(c crypto.Cipher, secretKey, token string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.ErrCodeEncoding, "link: key 不是合法的 base64", err)
	}
	plaintext, err := crypto.DecryptCBC(c, []byte(secretKey), ciphertext)
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.ErrCodeCrypto, "link: 解密失败: "+err.Error(), err)
	}
	return string(plaintext), nil
}
