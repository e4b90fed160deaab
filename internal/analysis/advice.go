package analysis

type adviceID int

const (
	recBuildEmergencyFund adviceID = iota
	recRaiseSavings
	recRepayDebt
	recImproveLiquidity

	strengthSavings
	strengthDebtLevel
	strengthNetWorth
	strengthLiquidity

	improveSavings
	improveDebtRatio
	improveLiquidity
	improveCreditCard

	riskNoEmergencyFund
	riskDebtRatio
	riskCreditCard
)

var adviceText = map[adviceID]bilingual{
	recBuildEmergencyFund: {
		zh: "建议优先建立应急基金，目标是3-6个月的生活费用，以应对突发情况。",
		en: "Prioritize building an emergency fund covering 3-6 months of living expenses for unexpected situations.",
	},
	recRaiseSavings: {
		zh: "尝试提高储蓄率到收入的10-20%，可以从减少非必要支出开始。",
		en: "Try to increase savings rate to 10-20% of income, starting by reducing non-essential expenses.",
	},
	recRepayDebt: {
		zh: "负债比例较高，建议制定还债计划，优先偿还高利率债务。",
		en: "Debt ratio is high, recommend creating a debt repayment plan, prioritizing high-interest debt.",
	},
	recImproveLiquidity: {
		zh: "流动比率较低，建议增加流动资产或减少短期债务，提高短期偿债能力。",
		en: "Low liquidity ratio, recommend increasing liquid assets or reducing short-term debt to improve short-term solvency.",
	},

	strengthSavings:   {zh: "储蓄率表现优秀", en: "Excellent savings rate"},
	strengthDebtLevel: {zh: "负债水平健康", en: "Healthy debt level"},
	strengthNetWorth:  {zh: "净资产为正", en: "Positive net worth"},
	strengthLiquidity: {zh: "流动性表现出色", en: "Excellent liquidity performance"},

	improveSavings:    {zh: "提高储蓄率", en: "Increase savings rate"},
	improveDebtRatio:  {zh: "降低负债比例", en: "Reduce debt ratio"},
	improveLiquidity:  {zh: "提高流动性", en: "Improve liquidity"},
	improveCreditCard: {zh: "偿还信用卡债务", en: "Pay off credit card debt"},

	riskNoEmergencyFund: {zh: "没有应急基金", en: "No emergency fund"},
	riskDebtRatio:       {zh: "负债比例过高", en: "Excessive debt ratio"},
	riskCreditCard:      {zh: "信用卡债务过高", en: "Excessive credit card debt"},
}

// rule emits its message when the condition holds. Rules of one category
// run in declaration order, which is also the output order.
type rule struct {
	id   adviceID
	when func(s Snapshot, r Ratios) bool
}

var recommendationRules = []rule{
	{recBuildEmergencyFund, func(_ Snapshot, r Ratios) bool { return r.EmergencyFundCoverage < 3 }},
	{recRaiseSavings, func(_ Snapshot, r Ratios) bool { return r.SavingsRate < 10 }},
	{recRepayDebt, func(_ Snapshot, r Ratios) bool { return r.DebtToIncomeRatio > 36 }},
	{recImproveLiquidity, func(s Snapshot, r Ratios) bool {
		return r.CurrentRatio < 1.5 && s.CreditCardDebt+s.ConsumerLoans > 0
	}},
}

var strengthRules = []rule{
	{strengthSavings, func(_ Snapshot, r Ratios) bool { return r.SavingsRate >= 15 }},
	{strengthDebtLevel, func(_ Snapshot, r Ratios) bool { return r.DebtToIncomeRatio <= 20 }},
	{strengthNetWorth, func(_ Snapshot, r Ratios) bool { return r.NetWorth > 0 }},
	{strengthLiquidity, func(_ Snapshot, r Ratios) bool { return r.CurrentRatio >= 2 }},
}

var improvementRules = []rule{
	{improveSavings, func(_ Snapshot, r Ratios) bool { return r.SavingsRate < 10 }},
	{improveDebtRatio, func(_ Snapshot, r Ratios) bool { return r.DebtToIncomeRatio > 36 }},
	{improveLiquidity, func(_ Snapshot, r Ratios) bool { return r.CurrentRatio < 1.5 }},
	{improveCreditCard, func(s Snapshot, _ Ratios) bool { return s.CreditCardDebt > 0 }},
}

var riskRules = []rule{
	{riskNoEmergencyFund, func(_ Snapshot, r Ratios) bool { return r.EmergencyFundCoverage < 1 }},
	{riskDebtRatio, func(_ Snapshot, r Ratios) bool { return r.DebtToIncomeRatio > 50 }},
	{riskCreditCard, func(s Snapshot, _ Ratios) bool {
		return s.CreditCardDebt > (s.AnnualSalary+s.AnnualOtherIncome)/4
	}},
}

func apply(rules []rule, s Snapshot, r Ratios, loc Locale) []string {
	out := []string{}
	for _, ru := range rules {
		if ru.when(s, r) {
			out = append(out, adviceText[ru.id].in(loc))
		}
	}
	return out
}

// Recommendations returns actionable suggestions.
func Recommendations(s Snapshot, r Ratios, loc Locale) []string {
	return apply(recommendationRules, s, r, loc)
}

// Strengths returns what the household already does well.
func Strengths(s Snapshot, r Ratios, loc Locale) []string {
	return apply(strengthRules, s, r, loc)
}

// Improvements returns short labels for the weakest areas.
func Improvements(s Snapshot, r Ratios, loc Locale) []string {
	return apply(improvementRules, s, r, loc)
}

// Risks returns the risk factors present in the snapshot.
func Risks(s Snapshot, r Ratios, loc Locale) []string {
	return apply(riskRules, s, r, loc)
}
