package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// palette hands out colors that are switched off per call, independent of
// the package-global color.NoColor.
type palette struct {
	enabled bool
}

func (p palette) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

type humanLabels struct {
	title, score, netWorth, assets, debt, savings, dti, emergency        string
	ratios, current, debtToAsset, assetReturn, metrics, target           string
	recommendations, strengths, improvements, risks, months, none, outOf string
}

var labelsByLocale = map[analysis.Locale]humanLabels{
	analysis.LocaleZH: {
		title: "财务健康报告", score: "健康评分", netWorth: "净资产", assets: "总资产", debt: "总负债",
		savings: "储蓄率", dti: "负债收入比", emergency: "应急储备覆盖",
		ratios: "财务比率", current: "流动比率", debtToAsset: "资产负债率", assetReturn: "资产收益率",
		metrics: "关键指标", target: "目标",
		recommendations: "建议", strengths: "优势", improvements: "改进方向", risks: "风险因素",
		months: "个月", none: "无", outOf: "/100",
	},
	analysis.LocaleEN: {
		title: "Financial Health Report", score: "Health score", netWorth: "Net worth", assets: "Total assets", debt: "Total debt",
		savings: "Savings rate", dti: "Debt-to-income", emergency: "Emergency coverage",
		ratios: "Financial ratios", current: "Current ratio", debtToAsset: "Debt-to-asset", assetReturn: "Asset return",
		metrics: "Key metrics", target: "target",
		recommendations: "Recommendations", strengths: "Strengths", improvements: "Improvements", risks: "Risk factors",
		months: " months", none: "none", outOf: "/100",
	},
}

func labelsFor(loc analysis.Locale) humanLabels {
	if l, ok := labelsByLocale[loc]; ok {
		return l
	}
	return labelsByLocale[analysis.DefaultLocale]
}

func (p palette) level(level analysis.HealthLevel) *color.Color {
	switch level {
	case analysis.LevelExcellent:
		return p.color(color.FgGreen, color.Bold)
	case analysis.LevelGood:
		return p.color(color.FgGreen)
	case analysis.LevelFair:
		return p.color(color.FgYellow)
	default:
		return p.color(color.FgRed, color.Bold)
	}
}

func (p palette) status(s analysis.MetricStatus) *color.Color {
	switch s {
	case analysis.StatusGood:
		return p.color(color.FgGreen)
	case analysis.StatusWarning:
		return p.color(color.FgYellow)
	default:
		return p.color(color.FgRed)
	}
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func writeHuman(w io.Writer, r models.Report, p palette) {
	l := labelsFor(r.Locale)
	a := r.Analysis
	header := p.color(color.FgWhite, color.Bold)

	p.color(color.FgCyan, color.Bold).Fprintln(w, l.title)
	fmt.Fprintf(w, "  %-20s %s  ", l.score, p.level(a.HealthLevel).Sprintf("%d%s", a.HealthScore, l.outOf))
	p.level(a.HealthLevel).Fprintln(w, r.LevelLabel)
	fmt.Fprintln(w)

	rows := [][2]string{
		{l.netWorth, money(a.NetWorth)},
		{l.assets, money(a.TotalAssets)},
		{l.debt, money(a.TotalDebt)},
		{l.savings, fmt.Sprintf("%.2f%%", a.SavingsRate)},
		{l.dti, fmt.Sprintf("%.2f%%", a.DebtToIncomeRatio)},
		{l.emergency, fmt.Sprintf("%.1f%s", a.EmergencyFundCoverage, l.months)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-20s %s\n", row[0], row[1])
	}
	fmt.Fprintln(w)

	header.Fprintln(w, l.ratios)
	fmt.Fprintf(w, "  %-20s %s\n", l.current, ratio(a.FinancialRatios.CurrentRatio))
	fmt.Fprintf(w, "  %-20s %.2f%%\n", l.debtToAsset, a.FinancialRatios.DebtToAssetRatio)
	fmt.Fprintf(w, "  %-20s %.2f%%\n", l.assetReturn, a.FinancialRatios.AssetReturnRate)
	fmt.Fprintln(w)

	header.Fprintln(w, l.metrics)
	for _, m := range r.Metrics {
		fmt.Fprintf(w, "  %s %-24s %12s  (%s %s)\n",
			p.status(m.Status).Sprint("●"), m.Name, money(m.ActualValue), l.target, m.TargetValue)
	}

	sections := []struct {
		title string
		items []string
		c     *color.Color
	}{
		{l.strengths, a.Strengths, p.color(color.FgGreen)},
		{l.improvements, a.Improvements, p.color(color.FgYellow)},
		{l.risks, a.RiskFactors, p.color(color.FgRed)},
		{l.recommendations, a.Recommendations, p.color(color.FgCyan)},
	}
	for _, s := range sections {
		fmt.Fprintln(w)
		s.c.Fprintln(w, s.title)
		if len(s.items) == 0 {
			fmt.Fprintf(w, "  %s\n", p.color(color.FgHiBlack).Sprint(l.none))
			continue
		}
		for i, item := range s.items {
			fmt.Fprintf(w, "  %d. %s\n", i+1, item)
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
}
