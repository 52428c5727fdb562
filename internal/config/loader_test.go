package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_API_KEY", "secret-value")

	// 环境变量存在时替换
	assert.Equal(t, "key: secret-value", expandEnv("key: ${TEST_API_KEY}"))
	assert.Equal(t, "key: secret-value", expandEnv("key: ${TEST_API_KEY:fallback}"))
}

func TestExpandEnv_Default(t *testing.T) {
	assert.Equal(t, "env: development", expandEnv("env: ${UNSET_TEST_VAR:development}"))
}

func TestExpandEnv_EmptyDefault(t *testing.T) {
	// ${VAR:} 形式的空默认值替换为空字符串
	assert.Equal(t, `key: ""`, expandEnv(`key: "${UNSET_TEST_VAR:}"`))
}

func TestExpandEnv_NoDefault(t *testing.T) {
	// 无默认值且变量未设置时保持原样
	assert.Equal(t, "key: ${UNSET_TEST_VAR}", expandEnv("key: ${UNSET_TEST_VAR}"))
}

func TestExpandEnv_Multiple(t *testing.T) {
	t.Setenv("TEST_HOST", "example.com")

	got := expandEnv("addr: ${TEST_HOST}:${TEST_PORT:4317}")
	assert.Equal(t, "addr: example.com:4317", got)
}
