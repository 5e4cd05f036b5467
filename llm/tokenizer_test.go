package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxTokens(t *testing.T) {
	assert.Equal(t, 0, ApproxTokens(""))
	assert.Equal(t, 1, ApproxTokens("hi"))
	assert.Equal(t, 3, ApproxTokens("hello world!")) // 12 chars / 4
	assert.Equal(t, 4, ApproxTokens("知识图谱"))         // one token per CJK rune
}
