package id

import (
	"github.com/google/uuid"
)

// maxExternalIDLen 外部传入 ID 的最大长度
const maxExternalIDLen = 128

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// FromExternal 复用调用方传入的 ID，为空或过长时生成新的
func FromExternal(external string) string {
	if external == "" || len(external) > maxExternalIDLen {
		return New()
	}
	return external
}
