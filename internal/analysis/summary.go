package analysis

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

type summaryLine struct {
	label bilingual
	value func(s Snapshot, t totals) float64
}

type summarySection struct {
	title bilingual
	lines []summaryLine
}

func field(f func(Snapshot) float64) func(Snapshot, totals) float64 {
	return func(s Snapshot, _ totals) float64 { return f(s) }
}

var summarySections = []summarySection{
	{
		title: bilingual{zh: "收入情况", en: "Income"},
		lines: []summaryLine{
			{bilingual{zh: "年薪资收入", en: "Annual salary"}, field(func(s Snapshot) float64 { return s.AnnualSalary })},
			{bilingual{zh: "年其他收入", en: "Other annual income"}, field(func(s Snapshot) float64 { return s.AnnualOtherIncome })},
			{bilingual{zh: "年投资收益", en: "Annual investment income"}, field(func(s Snapshot) float64 { return s.AnnualInvestmentIncome })},
		},
	},
	{
		title: bilingual{zh: "资产情况", en: "Assets"},
		lines: []summaryLine{
			{bilingual{zh: "现金和储蓄", en: "Cash and deposits"}, field(func(s Snapshot) float64 { return s.CashAndDeposits })},
			{bilingual{zh: "应急储备资金", en: "Emergency fund"}, field(func(s Snapshot) float64 { return s.EmergencyFund })},
			{bilingual{zh: "股票市值", en: "Stocks"}, field(func(s Snapshot) float64 { return s.StocksValue })},
			{bilingual{zh: "基金市值", en: "Funds"}, field(func(s Snapshot) float64 { return s.FundsValue })},
			{bilingual{zh: "养老金账户", en: "Pension account"}, field(func(s Snapshot) float64 { return s.PensionAccount })},
			{bilingual{zh: "自用住房价值", en: "Primary residence"}, field(func(s Snapshot) float64 { return s.OwnerHouseValue })},
			{bilingual{zh: "投资房产价值", en: "Investment property"}, field(func(s Snapshot) float64 { return s.InvestmentProperty })},
			{bilingual{zh: "自用汽车价值", en: "Vehicle"}, field(func(s Snapshot) float64 { return s.CarValue })},
		},
	},
	{
		title: bilingual{zh: "负债情况", en: "Liabilities"},
		lines: []summaryLine{
			{bilingual{zh: "房贷余额", en: "Mortgage balance"}, field(func(s Snapshot) float64 { return s.MortgageBalance })},
			{bilingual{zh: "车贷余额", en: "Car loan balance"}, field(func(s Snapshot) float64 { return s.CarLoanBalance })},
			{bilingual{zh: "信用卡欠款", en: "Credit card debt"}, field(func(s Snapshot) float64 { return s.CreditCardDebt })},
			{bilingual{zh: "消费贷款", en: "Consumer loans"}, field(func(s Snapshot) float64 { return s.ConsumerLoans })},
		},
	},
	{
		title: bilingual{zh: "支出情况", en: "Expenses"},
		lines: []summaryLine{
			{bilingual{zh: "年日常开销", en: "Annual living expenses"}, field(func(s Snapshot) float64 { return s.AnnualLivingExpenses })},
			{bilingual{zh: "年房贷还款", en: "Annual mortgage payment"}, field(func(s Snapshot) float64 { return s.AnnualMortgagePayment })},
			{bilingual{zh: "年车贷还款", en: "Annual car payment"}, field(func(s Snapshot) float64 { return s.AnnualCarPayment })},
		},
	},
	{
		title: bilingual{zh: "财务指标", en: "Totals"},
		lines: []summaryLine{
			{bilingual{zh: "总资产", en: "Total assets"}, func(_ Snapshot, t totals) float64 { return t.totalAssets }},
			{bilingual{zh: "总负债", en: "Total liabilities"}, func(_ Snapshot, t totals) float64 { return t.totalDebt }},
			{bilingual{zh: "年度总收入", en: "Total annual income"}, func(_ Snapshot, t totals) float64 { return t.annualIncome }},
			{bilingual{zh: "年度总支出", en: "Total annual expenses"}, func(_ Snapshot, t totals) float64 { return t.annualExpenses }},
		},
	},
}

var (
	summaryHeading = bilingual{zh: "用户财务数据概览：", en: "Financial data overview:"}
	currencySuffix = bilingual{zh: " 元", en: ""}
	labelSeparator = bilingual{zh: "：", en: ": "}
)

// FormatAmount renders an amount with thousands separators and at most two
// decimals.
func FormatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// Summary renders the snapshot as plain text for a chat assistant. Totals use
// the same aggregation as Compute.
func Summary(s Snapshot, loc Locale) string {
	t := s.totals()
	sep := labelSeparator.in(loc)
	suffix := currencySuffix.in(loc)

	var b strings.Builder
	b.WriteString(summaryHeading.in(loc))
	b.WriteString("\n")
	for _, sec := range summarySections {
		fmt.Fprintf(&b, "\n**%s**%s\n", sec.title.in(loc), strings.TrimSpace(sep))
		for _, l := range sec.lines {
			fmt.Fprintf(&b, "- %s%s%s%s\n", l.label.in(loc), sep, FormatAmount(l.value(s, t)), suffix)
		}
	}
	return b.String()
}
