package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
)

const canonicalQuery = "checkin=2024-01-01&checkout=2024-01-03&email=a%40b.com&firstName=Test&lastName=User&pmsId=P1&surveyId=S1"

// TestEncryptCBC_KnownVectors 向量由 Node.js crypto.createCipheriv 以全零 IV 生成。
func TestEncryptCBC_KnownVectors(t *testing.T) {
	cases := []struct {
		cipher   Cipher
		key      string
		expected string
	}{
		{CipherTripleDES, "0123456789abcdef01234567", "8juJI/b0uhNsVf0aIxKldyLexsK+iPM3n5s1iTK2pC+6lZWfPgPdTOANWDmaSPiG1AiPSRrQqsawFsCKVI+pBP0wk1K4eS5kz3OMXlK9juU5lNewlRG1mxHqsyc45z0M00vVw0ohcpnIfKxHcorItA=="},
		{CipherAES128, "0123456789abcdef", "spxhHi3/QYyvEqFEZFs0648tM+eQ7GVZdwmnhln5sPsKkV+B950+Ud42NRdT5H1/frf+xaqt87AMwdJx68xTQy9MEYC88tNDjqBwnTudS/VsWr3sH5cW0RnYSwqYv4ZO20GnNpYvHp/AZXFCKs7WZQ=="},
		{CipherAES256, "0123456789abcdef0123456789abcdef", "rSQ8OG7TuzCsctSDxio/Zt229xRPKsgLtTy1SkcAWYnELqXTTtMAGLIivJANHuMpeNpoEnVzJ9Q5lajsaqFmW4GwJDCVUNE3Q8Yl6b0bC/lo1M1fS+e5DZOC5E5//AZxSlw9J5A0pKrIBpeeETyfgw=="},
	}
	for _, tc := range cases {
		t.Run(tc.cipher.String(), func(t *testing.T) {
			ciphertext, err := EncryptCBC(tc.cipher, []byte(tc.key), []byte(canonicalQuery))
			if err != nil {
				t.Fatalf("加密失败: %v", err)
			}
			if got := base64.StdEncoding.EncodeToString(ciphertext); got != tc.expected {
				t.Fatalf("密文不匹配，期望 %s，实际 %s", tc.expected, got)
			}
			plaintext, err := DecryptCBC(tc.cipher, []byte(tc.key), ciphertext)
			if err != nil {
				t.Fatalf("解密失败: %v", err)
			}
			if string(plaintext) != canonicalQuery {
				t.Fatalf("解密结果不一致，期望 %q，实际 %q", canonicalQuery, plaintext)
			}
		})
	}
}

// TestEncryptCBC_SingleBlockMatchesECB 单分组且 IV 为零时 CBC 与 ECB 结果相同。
func TestEncryptCBC_SingleBlockMatchesECB(t *testing.T) {
	ciphertext, err := EncryptCBC(CipherAES128, []byte("0123456789abcdef"), []byte("hello survey"))
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	const expectedHex = "9ac99c63cb702dc795da8cbd7a2cb08f"
	if hex.EncodeToString(ciphertext) != expectedHex {
		t.Fatalf("密文不匹配，期望 %s 实际 %s", expectedHex, hex.EncodeToString(ciphertext))
	}
}

func TestEncryptCBC_InvalidKeyLength(t *testing.T) {
	cases := map[Cipher][]int{
		CipherTripleDES: {0, 8, 16, 23, 25, 32},
		CipherAES128:    {0, 15, 17, 24, 32},
		CipherAES256:    {0, 16, 24, 31, 33},
	}
	for c, sizes := range cases {
		for _, size := range sizes {
			_, err := EncryptCBC(c, make([]byte, size), []byte("data"))
			var kse *KeySizeError
			if !errors.As(err, &kse) {
				t.Fatalf("%s 密钥长度 %d 应报错，实际 %v", c, size, err)
			}
			if kse.Got != size {
				t.Fatalf("错误中的长度不匹配，期望 %d 实际 %d", size, kse.Got)
			}
		}
	}
}

func TestEncryptCBC_UnknownCipher(t *testing.T) {
	if _, err := EncryptCBC(Cipher(0), make([]byte, 16), []byte("data")); !errors.Is(err, ErrUnknownCipher) {
		t.Fatalf("未知算法应报错，实际 %v", err)
	}
}

func TestDecryptCBC_InvalidInput(t *testing.T) {
	key := []byte("0123456789abcdef")
	if _, err := DecryptCBC(CipherAES128, key, make([]byte, 15)); err == nil {
		t.Fatalf("非整块密文应返回错误")
	}
	if _, err := DecryptCBC(CipherAES128, key, make([]byte, 16)); err == nil {
		t.Fatalf("无效填充应返回错误")
	}
}

func TestEncryptCBC_DoesNotMutateInput(t *testing.T) {
	input := make([]byte, 5, 64)
	copy(input, "hello")
	if _, err := EncryptCBC(CipherAES128, []byte("0123456789abcdef"), input); err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	if string(input[:cap(input)][5:6]) != "\x00" {
		t.Fatalf("填充不应写入调用方的底层数组")
	}
}

func TestParseCipher(t *testing.T) {
	cases := map[string]Cipher{
		"tripledes": CipherTripleDES,
		"des-ede3":  CipherTripleDES,
		"AES":       CipherAES128,
		"aes256":    CipherAES256,
	}
	for name, want := range cases {
		got, err := ParseCipher(name)
		if err != nil || got != want {
			t.Fatalf("解析 %q 失败，期望 %s 实际 %s (%v)", name, want, got, err)
		}
	}
	if _, err := ParseCipher("no-encryption"); !errors.Is(err, ErrUnknownCipher) {
		t.Fatalf("no-encryption 不是加密算法")
	}
	if CipherTripleDES.BlockSize() != 8 || CipherAES128.BlockSize() != 16 || CipherAES256.BlockSize() != 16 {
		t.Fatalf("分组长度不匹配")
	}
}
