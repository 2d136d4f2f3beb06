package openai

import (
	"fmt"
	"strings"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPromptDraft   = "あなたは補助金申請書の作成を支援する専門家です。出力は指定スキーマに一致するJSONのみとし、マークダウンは使用しないでください。"
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."

	draftSchema = `{"title": string, "summary": string, "sections": [{"heading": string, "body": string}], "keyPhrases": [string]}`
)

// BuildDraftPrompt creates the chat messages for a drafting request.
func BuildDraftPrompt(input llm.DraftInput) []Message {
	var b strings.Builder
	fmt.Fprintf(&b, "以下の情報に基づいて、補助金「%s」への申請書の下書きを作成してください。\n\n", input.ProgramName)
	if input.ProgramSummary != "" {
		fmt.Fprintf(&b, "## 補助金の概要\n%s\n\n", input.ProgramSummary)
	}
	fmt.Fprintf(&b, "## 企業情報\n企業名: %s\n業種: %s\n事業内容: %s\n", input.CompanyName, input.Industry, input.Description)
	if len(input.Strengths) > 0 {
		fmt.Fprintf(&b, "強み: %s\n", strings.Join(input.Strengths, "、"))
	}
	fmt.Fprintf(&b, "\n## 事業計画\nタイトル: %s\n目的: %s\n背景: %s\n実施内容: %s\n", input.PlanTitle, input.PlanPurpose, input.PlanBackground, input.Implementation)
	fmt.Fprintf(&b, "\n次のJSONスキーマに従って出力してください:\n%s\n", draftSchema)
	b.WriteString("keyPhrasesには申請書の核となるキーワードを5件以上含めてください。")

	return []Message{
		{Role: "system", Content: systemPromptDraft},
		{Role: "user", Content: b.String()},
	}
}

func buildFixPrompt(raw string) []Message {
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "user", Content: fmt.Sprintf("Repair the following output so it is valid JSON matching the schema %s:\n%s", draftSchema, raw)},
	}
}
