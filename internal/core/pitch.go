package core

import (
	"fmt"
	"strings"
)

// Caller identifies who is dialling and which market report they cite.
type Caller struct {
	Name   string // e.g. "Mankwe"
	Market string // e.g. "Randburg plumbers"
}

// Pitch holds the scripted lines shown in the call suit for one prospect.
type Pitch struct {
	Opener     string
	Gatekeeper string
	Owner      string
	TrustLeak  string
}

const competitorPainData = "their high review count"

// BuildPitch fills the gatekeeper and owner hooks with the prospect's details.
func BuildPitch(p Prospect, c Caller) Pitch {
	trust := trustLeak(p)
	painData := strings.TrimSpace(p.PainData)
	if painData == "" {
		if trust != "" {
			painData = "your " + trust
		} else {
			painData = "your low reviews"
		}
	}

	trustLine := trust
	if trustLine == "" {
		trustLine = "low rating"
	}

	return Pitch{
		Opener: fmt.Sprintf("Hi, I'm calling for the owner of %s.", p.BusinessName),
		Gatekeeper: fmt.Sprintf(
			"Yes, my name is %s. I've just completed a competition report on %s and I see that Google is promoting %s over %s. I'm calling to share this data with the owner. Are they available?",
			c.Name, c.Market, p.Competitor, p.BusinessName),
		Owner: fmt.Sprintf(
			"Ok great, I'll be quick. My name is %s, and I've just done a competition report for %s. I noticed Google is showing your competitor, %s, to all new customers. I found it's because your website has %s, while your competition has %s. My job is to fix that. Are you the right person to discuss this with?",
			c.Name, c.Market, p.Competitor, painData, competitorPainData),
		TrustLeak: trustLine,
	}
}

func trustLeak(p Prospect) string {
	if p.Leaks.Trust == "" {
		return ""
	}
	return "Trust: " + string(p.Leaks.Trust)
}
