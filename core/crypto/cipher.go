package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"errors"
	"fmt"
	"strings"
)

// Cipher 表示链接加密支持的分组密码。
type Cipher int

const (
	// CipherTripleDES 三密钥 3DES（DES-EDE3），密钥 24 字节。
	CipherTripleDES Cipher = iota + 1
	// CipherAES128 AES-128，密钥 16 字节。
	CipherAES128
	// CipherAES256 AES-256，密钥 32 字节。
	CipherAES256
)

// ErrUnknownCipher 表示不支持的加密算法名称。
var ErrUnknownCipher = errors.New("crypto: 不支持的加密算法")

// String 返回链接中 encryption 参数使用的名称。
func (c Cipher) String() string {
	switch c {
	case CipherTripleDES:
		return "tripledes"
	case CipherAES128:
		return "aes"
	case CipherAES256:
		return "aes256"
	default:
		return "unknown"
	}
}

// ParseCipher 按 encryption 参数名解析算法。
func ParseCipher(name string) (Cipher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tripledes", "des-ede3":
		return CipherTripleDES, nil
	case "aes", "aes128":
		return CipherAES128, nil
	case "aes256":
		return CipherAES256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCipher, name)
	}
}

// KeySize 返回算法要求的密钥字节数。
func (c Cipher) KeySize() int {
	switch c {
	case CipherTripleDES:
		return 24
	case CipherAES128:
		return 16
	case CipherAES256:
		return 32
	default:
		return 0
	}
}

// BlockSize 返回分组长度，也是零 IV 的长度。
func (c Cipher) BlockSize() int {
	switch c {
	case CipherTripleDES:
		return des.BlockSize
	case CipherAES128, CipherAES256:
		return aes.BlockSize
	default:
		return 0
	}
}

// KeySizeError 表示密钥长度与算法不符。
type KeySizeError struct {
	Cipher Cipher
	Got    int
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("crypto: %s 密钥长度应为 %d 字节，实际 %d", e.Cipher, e.Cipher.KeySize(), e.Got)
}

func (c Cipher) newBlock(key []byte) (cipher.Block, error) {
	size := c.KeySize()
	if size == 0 {
		return nil, ErrUnknownCipher
	}
	if len(key) != size {
		return nil, &KeySizeError{Cipher: c, Got: len(key)}
	}
	if c == CipherTripleDES {
		return des.NewTripleDESCipher(key)
	}
	return aes.NewCipher(key)
}

// EncryptCBC 使用 CBC 模式与全零 IV 加密，内部执行 PKCS7 填充。
// 全零 IV 为对端校验服务所要求，相同前缀的明文会得到相同的密文前缀。
func EncryptCBC(c Cipher, key, plaintext []byte) ([]byte, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, err
	}
	blockSize := block.BlockSize()
	padded := pkcs7Padding(plaintext, blockSize)
	ciphertext := make([]byte, len(padded))
	iv := make([]byte, blockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// DecryptCBC 使用 CBC 模式与全零 IV 解密，内部执行 PKCS7 去填充。
func DecryptCBC(c Cipher, key, ciphertext []byte) ([]byte, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, err
	}
	blockSize := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, errors.New("ciphertext size error")
	}
	plaintext := make([]byte, len(ciphertext))
	iv := make([]byte, blockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7Unpadding(plaintext, blockSize)
}

func pkcs7Padding(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+padding)
	copy(out, data)
	for i := 0; i < padding; i++ {
		out = append(out, byte(padding))
	}
	return out
}

func pkcs7Unpadding(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padding size")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for i := len(data) - padding; i < len(data); i++ {
		if int(data[i]) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

func encodeHex(data []byte) string {
	const alphabet = "0123456789abcdef"
	dst := make([]byte, len(data)*2)
	for i, b := range data {
		dst[i*2] = alphabet[b>>4]
		dst[i*2+1] = alphabet[b&0x0f]
	}
	return string(dst)
}
