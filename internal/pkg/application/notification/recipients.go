package notification

import (
	"fmt"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/samber/lo"
)

// TierRule sets the lowest recipient tier that is notified on a channel for a severity.
type TierRule struct {
	Severity types.Severity `yaml:"severity"`
	Channel  types.Channel  `yaml:"channel"`
	MinTier  types.Tier     `yaml:"mintier"`
}

// TierPolicy is evaluated first match wins. Combinations without a rule are open to every tier.
type TierPolicy []TierRule

func DefaultTierPolicy() TierPolicy {
	return TierPolicy{
		{Severity: types.SeverityAlert, Channel: types.ChannelEmail, MinTier: types.TierMedia},
		{Severity: types.SeverityAlert, Channel: types.ChannelSMS, MinTier: types.TierCritica},
		{Severity: types.SeverityCritical, Channel: types.ChannelEmail, MinTier: types.TierBaja},
		{Severity: types.SeverityCritical, Channel: types.ChannelSMS, MinTier: types.TierAlta},
	}
}

func (p TierPolicy) Validate() error {
	for _, r := range p {
		if r.Severity == types.SeverityNormal {
			return fmt.Errorf("tier rule for NORMAL severity is not allowed")
		}
		if _, err := types.ParseChannel(string(r.Channel)); err != nil {
			return err
		}
		if r.MinTier < types.TierBaja || r.MinTier > types.TierCritica {
			return fmt.Errorf("%w in rule for %s/%s", types.ErrUnknownTier, r.Severity, r.Channel)
		}
	}
	return nil
}

func (p TierPolicy) MinTier(s types.Severity, c types.Channel) types.Tier {
	for _, r := range p {
		if r.Severity == s && r.Channel == c {
			return r.MinTier
		}
	}
	return types.TierBaja
}

func (p TierPolicy) Eligible(r types.Recipient, s types.Severity, c types.Channel) bool {
	tier := r.Tier
	if tier == 0 {
		tier = types.TierBaja
	}
	return tier >= p.MinTier(s, c)
}

// SelectRecipients keeps the configured order of recipients.
func SelectRecipients(recipients []types.Recipient, c types.Channel, s types.Severity, policy TierPolicy) []types.Recipient {
	return lo.Filter(recipients, func(r types.Recipient, _ int) bool {
		return r.Accepts(c) && policy.Eligible(r, s, c)
	})
}
