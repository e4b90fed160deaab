package analysis

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestComputeZeroSnapshot(t *testing.T) {
	a := Compute(Snapshot{}, LocaleEN)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"totalAssets", a.TotalAssets, 0},
		{"totalDebt", a.TotalDebt, 0},
		{"netWorth", a.NetWorth, 0},
		{"savingsRate", a.SavingsRate, 0},
		{"debtToIncomeRatio", a.DebtToIncomeRatio, 0},
		{"emergencyFundCoverage", a.EmergencyFundCoverage, 0},
		{"currentRatio", a.FinancialRatios.CurrentRatio, NoShortTermDebt},
		{"quickRatio", a.FinancialRatios.QuickRatio, NoShortTermDebt},
		{"debtToAssetRatio", a.FinancialRatios.DebtToAssetRatio, 0},
		{"assetReturnRate", a.FinancialRatios.AssetReturnRate, 0},
		{"liquidPercentage", a.AssetStructure.LiquidPercentage, 0},
		{"shortTermPercentage", a.DebtStructure.ShortTermPercentage, 0},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}

	// Zero debt earns the debt-to-income (20), liquidity (15) and
	// debt-to-asset (10) bands; nothing else scores.
	if a.HealthScore != 45 {
		t.Errorf("expected score 45, got %d", a.HealthScore)
	}
	if a.HealthLevel != LevelFair {
		t.Errorf("expected level fair, got %s", a.HealthLevel)
	}
	if a.Recommendations == nil || a.Strengths == nil || a.Improvements == nil || a.RiskFactors == nil {
		t.Fatalf("advice lists must be non-nil")
	}
}

func TestScenarioHighSaver(t *testing.T) {
	s := Snapshot{
		AnnualSalary:         300000,
		AnnualLivingExpenses: 180000,
		CashAndDeposits:      50000,
		EmergencyFund:        50000,
	}
	a := Compute(s, LocaleEN)

	if !approx(a.SavingsRate, 40) {
		t.Errorf("savings rate: expected 40, got %v", a.SavingsRate)
	}
	if a.DebtToIncomeRatio != 0 {
		t.Errorf("DTI: expected 0, got %v", a.DebtToIncomeRatio)
	}
	if math.Abs(a.EmergencyFundCoverage-3.3333333) > 1e-6 {
		t.Errorf("emergency coverage: expected 3.33, got %v", a.EmergencyFundCoverage)
	}
	if a.FinancialRatios.CurrentRatio != NoShortTermDebt {
		t.Errorf("current ratio: expected sentinel, got %v", a.FinancialRatios.CurrentRatio)
	}
	if a.HealthScore != 85 {
		t.Errorf("expected score 85, got %d", a.HealthScore)
	}
	if a.HealthLevel != LevelExcellent {
		t.Errorf("expected excellent, got %s", a.HealthLevel)
	}
	if a.AnnualData.NetSavings != 120000 {
		t.Errorf("net savings: expected 120000, got %v", a.AnnualData.NetSavings)
	}
}

func TestScenarioCreditCardHeavy(t *testing.T) {
	s := Snapshot{
		CreditCardDebt:       50000,
		AnnualLivingExpenses: 120000,
		AnnualSalary:         200000,
	}
	a := Compute(s, LocaleEN)

	wantRecs := []string{
		adviceText[recBuildEmergencyFund].en,
		adviceText[recImproveLiquidity].en,
	}
	wantImprovements := []string{"Improve liquidity", "Pay off credit card debt"}
	wantRisks := []string{"No emergency fund"}
	wantStrengths := []string{"Excellent savings rate", "Healthy debt level"}

	assertList(t, "recommendations", a.Recommendations, wantRecs)
	assertList(t, "improvements", a.Improvements, wantImprovements)
	assertList(t, "risks", a.RiskFactors, wantRisks)
	assertList(t, "strengths", a.Strengths, wantStrengths)

	// 30% of the card balance counts as yearly debt service.
	if !approx(a.AnnualData.DebtPayments, 15000) {
		t.Errorf("debt payments: expected 15000, got %v", a.AnnualData.DebtPayments)
	}
	if a.HealthScore != 55 || a.HealthLevel != LevelFair {
		t.Errorf("expected 55/fair, got %d/%s", a.HealthScore, a.HealthLevel)
	}
}

func TestCreditCardRiskIsStrict(t *testing.T) {
	s := Snapshot{CreditCardDebt: 50001, AnnualSalary: 200000, AnnualLivingExpenses: 120000}
	risks := Risks(s, ComputeRatios(s), LocaleEN)
	assertList(t, "risks", risks, []string{"No emergency fund", "Excessive credit card debt"})
}

func TestSyntheticAmortization(t *testing.T) {
	s := Snapshot{
		AnnualSalary:          100000,
		AnnualMortgagePayment: 12000,
		AnnualCarPayment:      3000,
		CreditCardDebt:        10000,
		ConsumerLoans:         5000,
	}
	a := Compute(s, LocaleZH)
	want := 12000 + 3000 + 0.3*10000 + 0.4*5000
	if !approx(a.AnnualData.DebtPayments, want) {
		t.Fatalf("expected %v, got %v", want, a.AnnualData.DebtPayments)
	}
	if !approx(a.DebtToIncomeRatio, want/100000*100) {
		t.Fatalf("DTI mismatch: %v", a.DebtToIncomeRatio)
	}
	// Expenses only count stated payments.
	if a.AnnualData.TotalExpenses != 15000 {
		t.Fatalf("expected expenses 15000, got %v", a.AnnualData.TotalExpenses)
	}
}

func TestCurrentRatioSentinel(t *testing.T) {
	cases := []Snapshot{
		{},
		{CashAndDeposits: 1},
		{EmergencyFund: 1e9, MortgageBalance: 500000, CarLoanBalance: 20000},
	}
	for i, s := range cases {
		r := ComputeRatios(s)
		if r.CurrentRatio != NoShortTermDebt {
			t.Errorf("case %d: expected sentinel, got %v", i, r.CurrentRatio)
		}
	}

	r := ComputeRatios(Snapshot{CashAndDeposits: 3000, EmergencyFund: 1000, ConsumerLoans: 2000})
	if !approx(r.CurrentRatio, 2) {
		t.Errorf("expected current ratio 2, got %v", r.CurrentRatio)
	}
}

func TestPercentageClosure(t *testing.T) {
	cases := []Snapshot{
		{CashAndDeposits: 1},
		{OwnerHouseValue: 2500000, CarValue: 150000, StocksValue: 33333, FundsValue: 7, EmergencyFund: 19000},
		{InvestmentProperty: 1, PensionAccount: 2, CashAndDeposits: 3, CarValue: 4},
	}
	for i, s := range cases {
		a := Compute(s, LocaleEN)
		sum := a.AssetStructure.LiquidPercentage + a.AssetStructure.InvestmentPercentage + a.AssetStructure.PersonalPercentage
		if math.Abs(sum-100) > 1e-6 {
			t.Errorf("case %d: asset percentages sum to %v", i, sum)
		}
	}

	a := Compute(Snapshot{MortgageBalance: 300, CreditCardDebt: 100}, LocaleEN)
	if !approx(a.DebtStructure.ShortTermPercentage, 25) || !approx(a.DebtStructure.LongTermPercentage, 75) {
		t.Errorf("debt structure: %+v", a.DebtStructure)
	}
	if a.AssetStructure.LiquidPercentage != 0 || a.AssetStructure.InvestmentPercentage != 0 || a.AssetStructure.PersonalPercentage != 0 {
		t.Errorf("asset percentages must be 0 without assets: %+v", a.AssetStructure)
	}
}

func TestComputeIgnoresLocaleForNumbers(t *testing.T) {
	s := Snapshot{
		OwnerHouseValue:        1200000,
		StocksValue:            80000,
		CashAndDeposits:        20000,
		EmergencyFund:          5000,
		MortgageBalance:        700000,
		CreditCardDebt:         9000,
		ConsumerLoans:          3000,
		AnnualSalary:           150000,
		AnnualLivingExpenses:   90000,
		AnnualMortgagePayment:  48000,
		AnnualInvestmentIncome: 2000,
	}
	zh := Compute(s, LocaleZH)
	en := Compute(s, LocaleEN)

	if zh.HealthScore != en.HealthScore || zh.NetWorth != en.NetWorth || zh.SavingsRate != en.SavingsRate ||
		zh.FinancialRatios != en.FinancialRatios || zh.AssetStructure != en.AssetStructure {
		t.Fatalf("numeric fields differ between locales")
	}
	pairs := []struct {
		name   string
		zh, en []string
	}{
		{"recommendations", zh.Recommendations, en.Recommendations},
		{"strengths", zh.Strengths, en.Strengths},
		{"improvements", zh.Improvements, en.Improvements},
		{"risks", zh.RiskFactors, en.RiskFactors},
	}
	for _, p := range pairs {
		if len(p.zh) != len(p.en) {
			t.Errorf("%s: %d zh vs %d en messages", p.name, len(p.zh), len(p.en))
			continue
		}
		for i := range p.zh {
			if p.zh[i] == p.en[i] {
				t.Errorf("%s[%d]: expected different text per locale, got %q", p.name, i, p.zh[i])
			}
		}
	}
}

func assertList(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", name, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d]: expected %q, got %q", name, i, want[i], got[i])
		}
	}
}
