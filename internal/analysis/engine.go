// Package analysis scores a household financial snapshot.
//
// Everything here is a pure function of its inputs: no I/O, no shared state,
// safe to call from any number of goroutines.
package analysis

// NoShortTermDebt is the current ratio reported when there is no short-term
// debt to divide by. Presentation layers render it as infinity.
const NoShortTermDebt = 999.0

// HealthLevel classifies a health score.
type HealthLevel string

const (
	LevelExcellent HealthLevel = "excellent"
	LevelGood      HealthLevel = "good"
	LevelFair      HealthLevel = "fair"
	LevelPoor      HealthLevel = "poor"
)

var levelLabels = map[HealthLevel]bilingual{
	LevelExcellent: {zh: "优秀", en: "Excellent"},
	LevelGood:      {zh: "良好", en: "Good"},
	LevelFair:      {zh: "一般", en: "Fair"},
	LevelPoor:      {zh: "需改善", en: "Needs Improvement"},
}

// Label returns the display name of the level.
func (l HealthLevel) Label(loc Locale) string {
	if b, ok := levelLabels[l]; ok {
		return b.in(loc)
	}
	return string(l)
}

// Ratios are the derived figures the score and the advice rules read.
type Ratios struct {
	SavingsRate           float64 `json:"savingsRate"`
	DebtToIncomeRatio     float64 `json:"debtToIncomeRatio"`
	EmergencyFundCoverage float64 `json:"emergencyFundCoverage"`
	CurrentRatio          float64 `json:"currentRatio"`
	DebtToAssetRatio      float64 `json:"debtToAssetRatio"`
	AssetReturnRate       float64 `json:"assetReturnRate"`
	NetWorth              float64 `json:"netWorth"`
	TotalAssets           float64 `json:"totalAssets"`
	TotalDebt             float64 `json:"totalDebt"`
}

type AssetStructure struct {
	LiquidAssets         float64 `json:"liquidAssets" yaml:"liquidAssets"`
	InvestmentAssets     float64 `json:"investmentAssets" yaml:"investmentAssets"`
	PersonalAssets       float64 `json:"personalAssets" yaml:"personalAssets"`
	LiquidPercentage     float64 `json:"liquidPercentage" yaml:"liquidPercentage"`
	InvestmentPercentage float64 `json:"investmentPercentage" yaml:"investmentPercentage"`
	PersonalPercentage   float64 `json:"personalPercentage" yaml:"personalPercentage"`
}

type DebtStructure struct {
	ShortTermDebt       float64 `json:"shortTermDebt" yaml:"shortTermDebt"`
	LongTermDebt        float64 `json:"longTermDebt" yaml:"longTermDebt"`
	ShortTermPercentage float64 `json:"shortTermPercentage" yaml:"shortTermPercentage"`
	LongTermPercentage  float64 `json:"longTermPercentage" yaml:"longTermPercentage"`
}

type FinancialRatios struct {
	CurrentRatio     float64 `json:"currentRatio" yaml:"currentRatio"`
	QuickRatio       float64 `json:"quickRatio" yaml:"quickRatio"`
	DebtToAssetRatio float64 `json:"debtToAssetRatio" yaml:"debtToAssetRatio"`
	AssetReturnRate  float64 `json:"assetReturnRate" yaml:"assetReturnRate"`
}

type AnnualData struct {
	TotalIncome   float64 `json:"totalIncome" yaml:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses" yaml:"totalExpenses"`
	DebtPayments  float64 `json:"debtPayments" yaml:"debtPayments"`
	NetSavings    float64 `json:"netSavings" yaml:"netSavings"`
}

// Analysis is the full result of scoring a snapshot.
type Analysis struct {
	NetWorth              float64 `json:"netWorth" yaml:"netWorth"`
	TotalAssets           float64 `json:"totalAssets" yaml:"totalAssets"`
	TotalDebt             float64 `json:"totalDebt" yaml:"totalDebt"`
	SavingsRate           float64 `json:"savingsRate" yaml:"savingsRate"`
	DebtToIncomeRatio     float64 `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
	EmergencyFundCoverage float64 `json:"emergencyFundCoverage" yaml:"emergencyFundCoverage"`

	AssetStructure  AssetStructure  `json:"assetStructure" yaml:"assetStructure"`
	DebtStructure   DebtStructure   `json:"debtStructure" yaml:"debtStructure"`
	FinancialRatios FinancialRatios `json:"financialRatios" yaml:"financialRatios"`
	AnnualData      AnnualData      `json:"annualData" yaml:"annualData"`

	HealthScore int         `json:"healthScore" yaml:"healthScore"`
	HealthLevel HealthLevel `json:"healthLevel" yaml:"healthLevel"`

	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	Strengths       []string `json:"strengths" yaml:"strengths"`
	Improvements    []string `json:"improvements" yaml:"improvements"`
	RiskFactors     []string `json:"riskFactors" yaml:"riskFactors"`
}

// percentOf returns part/whole*100, or 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// ComputeRatios derives the ratio block from a snapshot.
func ComputeRatios(s Snapshot) Ratios {
	return s.totals().ratios(s)
}

func (t totals) ratios(s Snapshot) Ratios {
	r := Ratios{
		NetWorth:    t.totalAssets - t.totalDebt,
		TotalAssets: t.totalAssets,
		TotalDebt:   t.totalDebt,
	}
	if t.annualIncome > 0 {
		r.SavingsRate = t.annualNetSavings / t.annualIncome * 100
		r.DebtToIncomeRatio = t.annualDebtPayments / t.annualIncome * 100
	}
	if t.monthlyLiving > 0 {
		r.EmergencyFundCoverage = s.EmergencyFund / t.monthlyLiving
	}
	if t.shortTermDebt > 0 {
		r.CurrentRatio = t.liquidAssets / t.shortTermDebt
	} else {
		r.CurrentRatio = NoShortTermDebt
	}
	if t.totalAssets > 0 {
		r.DebtToAssetRatio = t.totalDebt / t.totalAssets * 100
		r.AssetReturnRate = s.AnnualInvestmentIncome / t.totalAssets * 100
	}
	return r
}

// Compute scores the snapshot and produces advice in the given locale.
func Compute(s Snapshot, loc Locale) Analysis {
	t := s.totals()
	r := t.ratios(s)
	score := Score(r)

	return Analysis{
		NetWorth:              r.NetWorth,
		TotalAssets:           r.TotalAssets,
		TotalDebt:             r.TotalDebt,
		SavingsRate:           r.SavingsRate,
		DebtToIncomeRatio:     r.DebtToIncomeRatio,
		EmergencyFundCoverage: r.EmergencyFundCoverage,
		AssetStructure: AssetStructure{
			LiquidAssets:         t.liquidAssets,
			InvestmentAssets:     t.investmentAssets,
			PersonalAssets:       t.personalAssets,
			LiquidPercentage:     percentOf(t.liquidAssets, t.totalAssets),
			InvestmentPercentage: percentOf(t.investmentAssets, t.totalAssets),
			PersonalPercentage:   percentOf(t.personalAssets, t.totalAssets),
		},
		DebtStructure: DebtStructure{
			ShortTermDebt:       t.shortTermDebt,
			LongTermDebt:        t.longTermDebt,
			ShortTermPercentage: percentOf(t.shortTermDebt, t.totalDebt),
			LongTermPercentage:  percentOf(t.longTermDebt, t.totalDebt),
		},
		FinancialRatios: FinancialRatios{
			CurrentRatio:     r.CurrentRatio,
			QuickRatio:       r.CurrentRatio,
			DebtToAssetRatio: r.DebtToAssetRatio,
			AssetReturnRate:  r.AssetReturnRate,
		},
		AnnualData: AnnualData{
			TotalIncome:   t.annualIncome,
			TotalExpenses: t.annualExpenses,
			DebtPayments:  t.annualDebtPayments,
			NetSavings:    t.annualNetSavings,
		},
		HealthScore:     score,
		HealthLevel:     LevelFor(score),
		Recommendations: Recommendations(s, r, loc),
		Strengths:       Strengths(s, r, loc),
		Improvements:    Improvements(s, r, loc),
		RiskFactors:     Risks(s, r, loc),
	}
}
