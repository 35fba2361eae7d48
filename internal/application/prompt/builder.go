// Package prompt renders the rewrite instruction sent to providers.
package prompt

import (
	"strings"

	"github.com/doeshing/copywriter-go/internal/domain"
)

const (
	instructionHead = "请严格使用 "
	instructionBody = " 模型，对以下文案进行优化和重写，使其更具吸引力、说服力和传播性，更好的应用于短视频脚本创作领域。请直接输出优化后的文案，不要包含任何额外的解释或标题。原始文案：\n\n"
)

// Build embeds the raw style key and the verbatim input into the fixed instruction.
// The output is byte-identical for identical arguments.
func Build(input string, style domain.StyleKey) string {
	var b strings.Builder
	b.Grow(len(instructionHead) + len(style) + len(instructionBody) + len(input))
	b.WriteString(instructionHead)
	b.WriteString(string(style))
	b.WriteString(instructionBody)
	b.WriteString(input)
	return b.String()
}
