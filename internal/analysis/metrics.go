package analysis

// MetricStatus is the display tier of a headline metric. Its thresholds are
// deliberately coarser than the score bands.
type MetricStatus string

const (
	StatusGood    MetricStatus = "good"
	StatusWarning MetricStatus = "warning"
	StatusDanger  MetricStatus = "danger"
)

// Metric is one headline figure with its target band.
type Metric struct {
	Name        string       `json:"name" yaml:"name"`
	ActualValue float64      `json:"actualValue" yaml:"actualValue"`
	TargetValue string       `json:"targetValue" yaml:"targetValue"`
	Description string       `json:"description" yaml:"description"`
	Status      MetricStatus `json:"status" yaml:"status"`
	Explanation string       `json:"explanation" yaml:"explanation"`
}

type metricText struct {
	name        bilingual
	description bilingual
	explanation bilingual
}

var (
	netWorthText = metricText{
		name:        bilingual{zh: "净资产", en: "Net Worth"},
		description: bilingual{zh: "总资产减去总负债", en: "Total assets minus total liabilities"},
		explanation: bilingual{zh: "净资产是衡量个人财富的重要指标。", en: "Net worth is an important indicator of personal wealth."},
	}
	savingsRateText = metricText{
		name:        bilingual{zh: "储蓄率", en: "Savings Rate"},
		description: bilingual{zh: "年度净储蓄占收入的比例", en: "Annual net savings as percentage of income"},
		explanation: bilingual{zh: "理想的储蓄率应该在15-20%以上。", en: "Ideal savings rate should be 15-20% or above."},
	}
	debtToIncomeText = metricText{
		name:        bilingual{zh: "负债收入比", en: "Debt-to-Income Ratio"},
		description: bilingual{zh: "年度偿债支出占收入的比例", en: "Annual debt payments as percentage of income"},
		explanation: bilingual{zh: "负债收入比不应超过36%。", en: "Debt-to-income ratio should not exceed 36%."},
	}
	emergencyText = metricText{
		name:        bilingual{zh: "应急储备覆盖率", en: "Emergency Fund Coverage"},
		description: bilingual{zh: "应急基金可覆盖的生活月数", en: "Months of living expenses covered by emergency fund"},
		explanation: bilingual{zh: "应急基金应能覆盖3-6个月的基本生活费用。", en: "Emergency fund should cover 3-6 months of basic living expenses."},
	}
	emergencyTarget = bilingual{zh: "3-6月", en: "3-6 months"}
)

func (t metricText) metric(loc Locale, actual float64, target string, status MetricStatus) Metric {
	return Metric{
		Name:        t.name.in(loc),
		ActualValue: actual,
		TargetValue: target,
		Description: t.description.in(loc),
		Status:      status,
		Explanation: t.explanation.in(loc),
	}
}

// Metrics returns the four headline metrics in fixed order: net worth,
// savings rate, debt to income, emergency fund coverage.
func Metrics(a Analysis, loc Locale) []Metric {
	netWorth := StatusWarning
	if a.NetWorth > 0 {
		netWorth = StatusGood
	}

	savings := StatusDanger
	switch {
	case a.SavingsRate >= 15:
		savings = StatusGood
	case a.SavingsRate >= 5:
		savings = StatusWarning
	}

	dti := StatusDanger
	switch {
	case a.DebtToIncomeRatio <= 20:
		dti = StatusGood
	case a.DebtToIncomeRatio <= 36:
		dti = StatusWarning
	}

	emergency := StatusDanger
	switch {
	case a.EmergencyFundCoverage >= 3:
		emergency = StatusGood
	case a.EmergencyFundCoverage >= 1:
		emergency = StatusWarning
	}

	return []Metric{
		netWorthText.metric(loc, a.NetWorth, "> 0", netWorth),
		savingsRateText.metric(loc, a.SavingsRate, "15-20%", savings),
		debtToIncomeText.metric(loc, a.DebtToIncomeRatio, "< 36%", dti),
		emergencyText.metric(loc, a.EmergencyFundCoverage, emergencyTarget.in(loc), emergency),
	}
}
