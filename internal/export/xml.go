package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeXML(w io.Writer, items []Item, batch bool) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	parent := &doc.Element
	if batch {
		parent = doc.CreateElement("financialReports")
	}
	for _, it := range items {
		el := reportElement(parent, it)
		if it.Source != "" {
			el.CreateAttr("source", it.Source)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xml: %w", err)
	}
	return nil
}

func reportElement(parent *etree.Element, it Item) *etree.Element {
	r := it.Report
	a := r.Analysis

	root := parent.CreateElement("financialReport")
	root.CreateAttr("locale", string(r.Locale))

	health := root.CreateElement("health")
	health.CreateAttr("score", strconv.Itoa(a.HealthScore))
	health.CreateAttr("level", string(a.HealthLevel))
	health.SetText(r.LevelLabel)

	totals := root.CreateElement("totals")
	totals.CreateElement("netWorth").SetText(num(a.NetWorth))
	totals.CreateElement("totalAssets").SetText(num(a.TotalAssets))
	totals.CreateElement("totalDebt").SetText(num(a.TotalDebt))
	totals.CreateElement("savingsRate").SetText(num(a.SavingsRate))
	totals.CreateElement("debtToIncomeRatio").SetText(num(a.DebtToIncomeRatio))
	totals.CreateElement("emergencyFundCoverage").SetText(num(a.EmergencyFundCoverage))

	assets := root.CreateElement("assetStructure")
	for _, p := range []struct {
		kind          string
		amount, share float64
	}{
		{"liquid", a.AssetStructure.LiquidAssets, a.AssetStructure.LiquidPercentage},
		{"investment", a.AssetStructure.InvestmentAssets, a.AssetStructure.InvestmentPercentage},
		{"personal", a.AssetStructure.PersonalAssets, a.AssetStructure.PersonalPercentage},
	} {
		e := assets.CreateElement("asset")
		e.CreateAttr("kind", p.kind)
		e.CreateAttr("percentage", num(p.share))
		e.SetText(num(p.amount))
	}

	debts := root.CreateElement("debtStructure")
	for _, p := range []struct {
		kind          string
		amount, share float64
	}{
		{"shortTerm", a.DebtStructure.ShortTermDebt, a.DebtStructure.ShortTermPercentage},
		{"longTerm", a.DebtStructure.LongTermDebt, a.DebtStructure.LongTermPercentage},
	} {
		e := debts.CreateElement("debt")
		e.CreateAttr("kind", p.kind)
		e.CreateAttr("percentage", num(p.share))
		e.SetText(num(p.amount))
	}

	ratios := root.CreateElement("financialRatios")
	ratios.CreateElement("currentRatio").SetText(ratio(a.FinancialRatios.CurrentRatio))
	ratios.CreateElement("quickRatio").SetText(ratio(a.FinancialRatios.QuickRatio))
	ratios.CreateElement("debtToAssetRatio").SetText(num(a.FinancialRatios.DebtToAssetRatio))
	ratios.CreateElement("assetReturnRate").SetText(num(a.FinancialRatios.AssetReturnRate))

	annual := root.CreateElement("annualData")
	annual.CreateElement("totalIncome").SetText(num(a.AnnualData.TotalIncome))
	annual.CreateElement("totalExpenses").SetText(num(a.AnnualData.TotalExpenses))
	annual.CreateElement("debtPayments").SetText(num(a.AnnualData.DebtPayments))
	annual.CreateElement("netSavings").SetText(num(a.AnnualData.NetSavings))

	metrics := root.CreateElement("metrics")
	for _, m := range r.Metrics {
		e := metrics.CreateElement("metric")
		e.CreateAttr("name", m.Name)
		e.CreateAttr("status", string(m.Status))
		e.CreateElement("actual").SetText(num(m.ActualValue))
		e.CreateElement("target").SetText(m.TargetValue)
		e.CreateElement("explanation").SetText(m.Explanation)
	}

	lists := []struct {
		name  string
		items []string
	}{
		{"recommendations", a.Recommendations},
		{"strengths", a.Strengths},
		{"improvements", a.Improvements},
		{"riskFactors", a.RiskFactors},
	}
	for _, l := range lists {
		e := root.CreateElement(l.name)
		for _, s := range l.items {
			e.CreateElement("item").SetText(s)
		}
	}
	return root
}
