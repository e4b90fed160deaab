package analysis

// Snapshot is a point-in-time record of a household's assets, liabilities
// and annual cash flows. All amounts are in a single currency unit and a
// missing field decodes to zero.
type Snapshot struct {
	// Assets
	OwnerHouseValue    float64 `json:"ownerHouseValue" yaml:"ownerHouseValue"`
	InvestmentProperty float64 `json:"investmentProperty" yaml:"investmentProperty"`
	CarValue           float64 `json:"carValue" yaml:"carValue"`
	StocksValue        float64 `json:"stocksValue" yaml:"stocksValue"`
	FundsValue         float64 `json:"fundsValue" yaml:"fundsValue"`
	CashAndDeposits    float64 `json:"cashAndDeposits" yaml:"cashAndDeposits"`
	PensionAccount     float64 `json:"pensionAccount" yaml:"pensionAccount"`
	EmergencyFund      float64 `json:"emergencyFund" yaml:"emergencyFund"`

	// Liabilities
	MortgageBalance float64 `json:"mortgageBalance" yaml:"mortgageBalance"`
	CarLoanBalance  float64 `json:"carLoanBalance" yaml:"carLoanBalance"`
	CreditCardDebt  float64 `json:"creditCardDebt" yaml:"creditCardDebt"`
	ConsumerLoans   float64 `json:"consumerLoans" yaml:"consumerLoans"`

	// Annual flows
	AnnualSalary           float64 `json:"annualSalary" yaml:"annualSalary"`
	AnnualOtherIncome      float64 `json:"annualOtherIncome" yaml:"annualOtherIncome"`
	AnnualLivingExpenses   float64 `json:"annualLivingExpenses" yaml:"annualLivingExpenses"`
	AnnualMortgagePayment  float64 `json:"annualMortgagePayment" yaml:"annualMortgagePayment"`
	AnnualCarPayment       float64 `json:"annualCarPayment" yaml:"annualCarPayment"`
	AnnualInvestmentIncome float64 `json:"annualInvestmentIncome" yaml:"annualInvestmentIncome"`
}

// Revolving balances have no payment field, so a fixed share of each balance
// is counted as yearly debt service.
const (
	creditCardRepaymentShare   = 0.30
	consumerLoanRepaymentShare = 0.40
)

// totals holds the aggregates every other figure is derived from.
type totals struct {
	liquidAssets     float64
	investmentAssets float64
	personalAssets   float64
	totalAssets      float64

	shortTermDebt float64
	longTermDebt  float64
	totalDebt     float64

	annualIncome       float64
	annualExpenses     float64
	annualDebtPayments float64
	annualNetSavings   float64
	monthlyLiving      float64
}

func (s Snapshot) totals() totals {
	var t totals
	t.liquidAssets = s.CashAndDeposits + s.EmergencyFund
	t.investmentAssets = s.InvestmentProperty + s.StocksValue + s.FundsValue + s.PensionAccount
	t.personalAssets = s.OwnerHouseValue + s.CarValue
	t.totalAssets = t.liquidAssets + t.investmentAssets + t.personalAssets

	t.shortTermDebt = s.CreditCardDebt + s.ConsumerLoans
	t.longTermDebt = s.MortgageBalance + s.CarLoanBalance
	t.totalDebt = t.shortTermDebt + t.longTermDebt

	t.annualIncome = s.AnnualSalary + s.AnnualOtherIncome
	t.annualExpenses = s.AnnualLivingExpenses + s.AnnualMortgagePayment + s.AnnualCarPayment
	t.annualDebtPayments = s.AnnualMortgagePayment + s.AnnualCarPayment +
		creditCardRepaymentShare*s.CreditCardDebt +
		consumerLoanRepaymentShare*s.ConsumerLoans
	t.annualNetSavings = t.annualIncome - t.annualExpenses
	t.monthlyLiving = s.AnnualLivingExpenses / 12
	return t
}
