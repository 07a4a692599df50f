package shortcode

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"unicode"
)

const (
	// ByteLength 每个短码消耗的随机字节数
	ByteLength = 4
	// CodeLength 生成短码的长度（十六进制编码后）
	CodeLength = ByteLength * 2
	// MaxCustomLength 自定义短码的最大长度，与 urls.shortcode 列宽一致
	MaxCustomLength = 64
	// DefaultMaxAttempts 默认的最大生成尝试次数
	DefaultMaxAttempts = 10
)

var (
	ErrEmptyCode        = errors.New("shortcode is empty")
	ErrCodeTooLong      = errors.New("shortcode is too long")
	ErrInvalidCharacter = errors.New("shortcode contains invalid characters")
)

// Generator 从随机源生成固定长度的小写十六进制短码
// 生成本身不访问数据库，唯一性由调用方和存储层的唯一索引共同保证
type Generator struct {
	source io.Reader
}

// NewGenerator 使用 crypto/rand 创建生成器
func NewGenerator() *Generator {
	return &Generator{source: rand.Reader}
}

// NewGeneratorFromReader 使用指定的随机源创建生成器，主要用于测试
func NewGeneratorFromReader(r io.Reader) *Generator {
	return &Generator{source: r}
}

// Probe 在启动时检查随机源是否可用
func (g *Generator) Probe() error {
	b := make([]byte, ByteLength)
	if _, err := io.ReadFull(g.source, b); err != nil {
		return fmt.Errorf("随机源不可用: %w", err)
	}
	return nil
}

// Generate 返回一个新的候选短码
// 随机源不可用属于致命错误，直接 panic
func (g *Generator) Generate() string {
	b := make([]byte, ByteLength)
	if _, err := io.ReadFull(g.source, b); err != nil {
		panic(fmt.Sprintf("shortcode: 随机源不可用: %v", err))
	}
	return hex.EncodeToString(b)
}

// ValidateCustom 检查用户自定义短码
// 格式（字母数字）由接入层校验，这里只拒绝空值、超长和控制/空白字符
func ValidateCustom(code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	if len(code) > MaxCustomLength {
		return ErrCodeTooLong
	}
	for _, r := range code {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '/' || r == unicode.ReplacementChar {
			return ErrInvalidCharacter
		}
	}
	return nil
}
