package usecase

import (
	"fmt"
	"strings"

	"fedwatch/internal/domain"
)

// buildDigest renders a committed verdict as a Telegram-friendly Markdown
// summary. Only headline fields are surfaced; the full payload lives in the
// verdict row.
func buildDigest(v domain.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*FOMC Meeting Analysis — %s*\n\n", domain.FormatDate(v.AnchorDate))

	for _, t := range domain.DocumentTypes() {
		if d := v.Date(t); !d.IsZero() {
			fmt.Fprintf(&b, "• %s: %s\n", strings.ReplaceAll(string(t), "_", " "), domain.FormatDate(d))
		}
	}

	content := v.Content
	if regime := content.MeetingCycleSynthesis.PolicyRegime.Current; regime != "" {
		fmt.Fprintf(&b, "\n*Regime*: %s\n", regime)
	}
	if base := content.CrossAssetImpact.BaseCase; base.Scenario != "" {
		fmt.Fprintf(&b, "*Base case*: %s (%s)\n", base.Scenario, base.Probability)
	}

	clusters := content.CommunicationClusters
	if h := clusters.PolicyStance.Headline; h != "" {
		fmt.Fprintf(&b, "\n*Policy stance*: %s\n", h)
	}
	if h := clusters.EconomicAssessment.Headline; h != "" {
		fmt.Fprintf(&b, "*Economic outlook*: %s\n", h)
	}
	if h := clusters.MarketTransmission.Headline; h != "" {
		fmt.Fprintf(&b, "*Transmission*: %s\n", h)
	}

	return strings.TrimSpace(b.String())
}
