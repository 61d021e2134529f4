package link

import (
	"net/url"

	"github.com/dnslin/feedback-links/core/crypto"
	coreerrors "github.com/dnslin/feedback-links/core/errors"
)

// ErrSignatureMismatch 表示 sig 与重新计算的签名不一致。
var ErrSignatureMismatch = coreerrors.New(coreerrors.ErrCodeCrypto, "link: 签名不匹配")

// Parsed 表示解析后的问卷链接。
type Parsed struct {
	Environment Environment
	Query       url.Values
}

// Encrypted 判断链接是否为加密形态。
func (p *Parsed) Encrypted() bool {
	return p.Query.Has(ParamEncryption) || p.Query.Has(ParamKey)
}

// Parse 解析问卷链接并识别环境。
func Parse(rawURL string) (*Parsed, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.ErrCodeEncoding, "link: 链接格式错误", err)
	}
	var env Environment
	switch u.Host {
	case EnvProduction.Host():
		env = EnvProduction
	case EnvQA.Host():
		env = EnvQA
	default:
		return nil, coreerrors.Validation("link: 未知问卷域名 %s", u.Host)
	}
	if u.Path != MailPath {
		return nil, coreerrors.Validation("link: 未知问卷路径 %s", u.Path)
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.ErrCodeEncoding, "link: 查询串解码失败", err)
	}
	for name, vals := range query {
		if len(vals) != 1 {
			return nil, coreerrors.Validation("link: 参数 %s 重复", name)
		}
	}
	return &Parsed{Environment: env, Query: query}, nil
}

// VerifySigned 校验签名链接，返回链接中的字段（不含 sig）。
func VerifySigned(rawURL, secretKey string) (FieldSet, error) {
	parsed, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	sig := parsed.Query.Get(ParamSig)
	if sig == "" {
		return nil, coreerrors.Validation("link: 缺少 sig 参数")
	}
	fields := make(FieldSet, len(parsed.Query))
	for name := range parsed.Query {
		if name != ParamSig {
			fields[name] = parsed.Query.Get(name)
		}
	}
	canonical, err := Canonicalize(fields, ModeSign)
	if err != nil {
		return nil, err
	}
	if secretKey == "" {
		return nil, coreerrors.Wrap(coreerrors.ErrCodeCrypto, "link: 签名密钥为空", crypto.ErrEmptyKey)
	}
	if !crypto.VerifySHA256(canonical.Text, secretKey, sig) {
		return nil, ErrSignatureMismatch
	}
	return fields, nil
}

// Decrypt 解密加密链接，返回还原后的字段（含 apiKey）。
func Decrypt(rawURL, secretKey string) (FieldSet, error) {
	parsed, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	enc, err := ParseEncryption(parsed.Query.Get(ParamEncryption))
	if err != nil {
		return nil, err
	}
	if enc.Mode() != ModeEncrypt {
		return nil, coreerrors.Validation("link: 链接未加密")
	}
	c, err := enc.Cipher()
	if err != nil {
		return nil, err
	}
	plaintext, err := Open(c, secretKey, parsed.Query.Get(ParamKey))
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(plaintext)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.ErrCodeEncoding, "link: 明文查询串解码失败", err)
	}
	fields := make(FieldSet, len(values)+1)
	for name := range values {
		fields[name] = values.Get(name)
	}
	fields[FieldAPIKey] = parsed.Query.Get(FieldAPIKey)
	return fields, nil
}
