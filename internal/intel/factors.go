package intel

// Provider IDs used by the default factor catalog. Provider implementations
// under internal/providers register with these IDs.
const (
	ProviderBreach       = "breach"
	ProviderVerification = "verification"
	ProviderReputation   = "reputation"
	ProviderAuthRecords  = "authrecords"
	ProviderThreatScore  = "threatscore"
	ProviderAdvisory     = "advisory"
)

// DefaultFactors is the built-in scoring rule table. Weights are additive
// and positive; the clamp in the scorer keeps the total inside [0,100].
// Keep this catalog in sync with the payload fields documented on each
// provider; factors_test.go validates the weights and messages.
func DefaultFactors() []Factor {
	return []Factor{
		{
			ID:      "breach-found",
			Weight:  40,
			Message: "Credentials for this subject appear in known data breaches. Rotate affected passwords and enable multi-factor authentication.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderBreach)
				return ok && o.Payload.Bool("found")
			},
		},
		{
			ID:      "breach-widespread",
			Weight:  15,
			Message: "The subject appears in five or more distinct breaches, indicating long-term credential exposure.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderBreach)
				return ok && o.Payload.Bool("found") && o.Payload.Int("count") >= 5
			},
		},
		{
			ID:      "disposable-address",
			Weight:  25,
			Message: "The address belongs to a disposable email service. Treat registrations from it as low-trust.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderVerification)
				return ok && o.Payload.Bool("disposable")
			},
		},
		{
			ID:      "honeypot-address",
			Weight:  35,
			Message: "The address is a known spam-trap/honeypot. Sending to it will damage sender reputation.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderVerification)
				return ok && o.Payload.Bool("honeypot")
			},
		},
		{
			ID:      "undeliverable-address",
			Weight:  10,
			Message: "The mailbox does not accept mail; the address may be fabricated or abandoned.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderVerification)
				return ok && o.Payload.Has("deliverable") && !o.Payload.Bool("deliverable")
			},
		},
		{
			ID:      "lookalike-domain",
			Weight:  20,
			Message: "The domain closely imitates a well-known mail provider, a common phishing pattern. Verify the sender through another channel.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderVerification)
				return ok && o.Payload.Bool("lookalike")
			},
		},
		{
			ID:      "missing-spf",
			Weight:  10,
			Message: "The domain publishes no SPF record, so anyone can spoof mail from it. Publish an SPF policy.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderAuthRecords)
				return ok && !o.Payload.Bool("spf")
			},
		},
		{
			ID:      "missing-dmarc",
			Weight:  15,
			Message: "The domain publishes no DMARC record; spoofed mail will not be rejected. Publish a DMARC policy.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderAuthRecords)
				return ok && !o.Payload.Bool("dmarc")
			},
		},
		{
			ID:      "recent-abuse",
			Weight:  30,
			Message: "Recent abusive activity has been reported for this subject. Review related account activity.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderReputation)
				return ok && o.Payload.Bool("recentAbuse")
			},
		},
		{
			ID:      "anonymized-network",
			Weight:  15,
			Message: "Traffic originates from a proxy, VPN, or Tor exit node, masking the true source.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderReputation)
				return ok && (o.Payload.Bool("proxy") || o.Payload.Bool("vpn") || o.Payload.Bool("tor"))
			},
		},
		{
			ID:      "poor-reputation",
			Weight:  20,
			Message: "Reputation sources rate this subject as high fraud risk. Apply additional verification before trusting it.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderReputation)
				return ok && o.Payload.Float("fraudScore") >= 75
			},
		},
		{
			ID:      "elevated-threat",
			Weight:  10,
			Message: "Threat intelligence places this subject in an elevated risk band. Monitor for suspicious activity.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderThreatScore)
				score := o.Payload.Float("score")
				return ok && score >= 50 && score < 75
			},
		},
		{
			ID:      "high-threat",
			Weight:  25,
			Message: "Threat intelligence rates this subject as high risk. Consider blocking until investigated.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderThreatScore)
				return ok && o.Payload.Float("score") >= 75
			},
		},
		{
			ID:      "suspicious-activity",
			Weight:  20,
			Message: "At least one intelligence source flags this subject as suspicious. Corroborate before taking action.",
			When: func(outcomes []Outcome) bool {
				return AnyPayload(outcomes, func(p Payload) bool { return p.Bool("suspicious") })
			},
		},
		{
			ID:      "vulnerable-package-critical",
			Weight:  40,
			Message: "The package has at least one critical-severity vulnerability. Upgrade or replace it immediately.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderAdvisory)
				return ok && o.Payload.String("maxSeverity") == "critical"
			},
		},
		{
			ID:      "vulnerable-package",
			Weight:  20,
			Message: "Known vulnerabilities are published for this package. Review the advisories and upgrade.",
			When: func(outcomes []Outcome) bool {
				o, ok := ByProvider(outcomes, ProviderAdvisory)
				return ok && o.Payload.Bool("found")
			},
		},
	}
}
