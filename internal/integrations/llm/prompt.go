package llm

import "github.com/Dan9191/finhealth-service/internal/analysis"

var systemPrompts = map[analysis.Locale]string{
	analysis.LocaleZH: `你是一位专业的个人财务分析师和理财顾问。请根据用户提供的财务数据，为用户提供专业、实用的财务建议。

请遵循以下准则：

1. **专业性**：基于财务分析理论和最佳实践提供建议
2. **个性化**：根据用户的具体财务状况定制建议
3. **实用性**：提供可操作、可执行的具体建议
4. **风险意识**：适当提醒投资风险和财务风险
5. **通俗易懂**：避免过多专业术语，用简单明了的语言解释

您可以帮助用户：
- 分析个人财务健康状况
- 制定储蓄和投资策略
- 优化资产配置
- 规划应急基金
- 债务管理建议
- 理财目标设定
- 风险评估和管理

请始终保持客观、专业的态度，为用户提供有价值的财务指导。`,
	analysis.LocaleEN: `You are a professional personal finance analyst and advisor. Based on the financial data the user provides, give professional and practical financial advice.

Follow these guidelines:

1. **Professional**: ground advice in financial analysis theory and good practice
2. **Personal**: tailor advice to the user's actual situation
3. **Practical**: give concrete steps the user can act on
4. **Risk aware**: point out investment and financial risks where relevant
5. **Plain language**: avoid jargon and explain things simply

You can help the user:
- Assess their financial health
- Plan savings and investment strategies
- Improve asset allocation
- Plan an emergency fund
- Manage debt
- Set financial goals
- Assess and manage risk

Always stay objective and professional and provide valuable financial guidance.`,
}

var dataPreamble = map[analysis.Locale]string{
	analysis.LocaleZH: "以下是用户的财务数据，请基于这些数据为用户提供个性化的财务建议：\n\n",
	analysis.LocaleEN: "Below is the user's financial data. Use it to give personalized financial advice:\n\n",
}

func localized(m map[analysis.Locale]string, loc analysis.Locale) string {
	if s, ok := m[loc]; ok {
		return s
	}
	return m[analysis.DefaultLocale]
}

// BuildConversation prepends the advisor system prompt and, when snap is
// not nil, a second system message carrying the snapshot summary.
func BuildConversation(history []Message, snap *analysis.Snapshot, loc analysis.Locale) []Message {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: localized(systemPrompts, loc)})
	if snap != nil {
		msgs = append(msgs, Message{
			Role:    RoleSystem,
			Content: localized(dataPreamble, loc) + analysis.Summary(*snap, loc),
		})
	}
	return append(msgs, history...)
}
