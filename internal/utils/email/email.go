package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/export"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

type reportText struct {
	subject    string
	greeting   string
	intro      string
	score      string
	netWorth   string
	savings    string
	coverage   string
	advice     string
	risks      string
	attachment string
	signature  string
}

var reportTexts = map[analysis.Locale]reportText{
	analysis.LocaleZH: {
		subject:    "财务健康报告：%s",
		greeting:   "%s，您好：\n\n",
		intro:      "您的财务分析「%s」已完成评估。\n\n",
		score:      "健康评分：%d（%s）\n",
		netWorth:   "净资产：%s 元\n",
		savings:    "储蓄率：%.1f%%\n",
		coverage:   "应急资金覆盖：%.1f 个月\n",
		advice:     "\n建议：\n",
		risks:      "\n风险提示：\n",
		attachment: "\n完整报告见附件（XML）。\n",
		signature:  "\n此致\n财务健康服务",
	},
	analysis.LocaleEN: {
		subject:    "Financial health report: %s",
		greeting:   "Dear %s,\n\n",
		intro:      "Your analysis \"%s\" has been scored.\n\n",
		score:      "Health score: %d (%s)\n",
		netWorth:   "Net worth: %s\n",
		savings:    "Savings rate: %.1f%%\n",
		coverage:   "Emergency fund coverage: %.1f months\n",
		advice:     "\nRecommendations:\n",
		risks:      "\nRisk factors:\n",
		attachment: "\nThe full report is attached as XML.\n",
		signature:  "\nBest regards,\nFinHealth Service",
	},
}

func textsFor(loc analysis.Locale) reportText {
	if t, ok := reportTexts[loc]; ok {
		return t
	}
	return reportTexts[analysis.DefaultLocale]
}

// reportBody renders the plain-text mail body in the report's locale.
func reportBody(username, title string, r models.Report) string {
	t := textsFor(r.Locale)
	a := r.Analysis

	var b strings.Builder
	fmt.Fprintf(&b, t.greeting, username)
	fmt.Fprintf(&b, t.intro, title)
	fmt.Fprintf(&b, t.score, a.HealthScore, r.LevelLabel)
	fmt.Fprintf(&b, t.netWorth, analysis.FormatAmount(a.NetWorth))
	fmt.Fprintf(&b, t.savings, a.SavingsRate)
	fmt.Fprintf(&b, t.coverage, a.EmergencyFundCoverage)
	if len(a.Recommendations) > 0 {
		b.WriteString(t.advice)
		for _, s := range a.Recommendations {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(a.RiskFactors) > 0 {
		b.WriteString(t.risks)
		for _, s := range a.RiskFactors {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	b.WriteString(t.attachment)
	b.WriteString(t.signature)
	return b.String()
}

func (s *Sender) analysisEmail(to, username string, rec *models.AnalysisRecord, r models.Report) (*email.Email, error) {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf(textsFor(r.Locale).subject, rec.Title)
	e.Text = []byte(reportBody(username, rec.Title, r))

	var xml bytes.Buffer
	if err := export.Render(&xml, r, export.FormatXML); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	filename := fmt.Sprintf("analysis-%s.%s", rec.ID, export.FormatXML.Extension())
	if _, err := e.Attach(&xml, filename, "application/xml"); err != nil {
		return nil, fmt.Errorf("failed to attach report: %w", err)
	}
	return e, nil
}

// SendAnalysisReport mails the scored record with the XML export attached
func (s *Sender) SendAnalysisReport(to, username string, rec *models.AnalysisRecord, r models.Report) error {
	e, err := s.analysisEmail(to, username, rec, r)
	if err != nil {
		return err
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send analysis report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
