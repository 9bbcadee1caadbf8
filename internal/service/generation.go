package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/model"
)

// Generator produces campaign copy. Implementations own retries and
// transport; the builder only sees content or ErrGenerationFailed.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error)
}

// DefaultGenerationLatency mirrors the delay of the demo generator.
const DefaultGenerationLatency = 2 * time.Second

// StubGenerator returns templated copy after a fixed delay.
type StubGenerator struct {
	Latency time.Duration
}

func NewStubGenerator(latency time.Duration) *StubGenerator {
	return &StubGenerator{Latency: latency}
}

func (g *StubGenerator) Generate(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return model.GeneratedContent{}, appErrors.NewGenerationFailed(appErrors.ErrEmptyPrompt)
	}

	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.GeneratedContent{}, appErrors.NewGenerationFailed(ctx.Err())
		case <-timer.C:
		}
	}

	images := []string{}
	if req.IncludeImages {
		images = append(images,
			"https://via.placeholder.com/400x300?text=Generated+Image+1",
			"https://via.placeholder.com/400x300?text=Generated+Image+2",
		)
	}

	return model.GeneratedContent{Text: stubText(req), Images: images}, nil
}

func stubText(req model.GenerationRequest) string {
	business := req.BusinessName
	if business == "" {
		business = "our company"
	}
	signOff := req.BusinessName
	if signOff == "" {
		signOff = "The Team"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Exciting news from %s!\n\n", business)
	b.WriteString(strings.TrimSpace(req.Prompt))
	b.WriteString("\n\nDon't miss out on this amazing opportunity!\n\n")
	switch req.CampaignType {
	case "Promotional Sale":
		b.WriteString("Limited time offer - act fast!\n\n")
	case "Product Launch":
		b.WriteString("Be among the first to experience innovation!\n\n")
	}
	b.WriteString("Visit our website or contact us today!\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s", signOff)
	return b.String()
}

const smsImproveKeep = 130

// Improve rewrites text in the house style of ch. Unknown channels get the
// text back unchanged.
func Improve(ch model.Channel, text string) string {
	switch ch {
	case model.ChannelSMS:
		r := []rune(text)
		if len(r) > smsImproveKeep {
			r = r[:smsImproveKeep]
		}
		return "✅ " + string(r) + " Text STOP to opt out."
	case model.ChannelEmail:
		return "Dear {FirstName},\n\n" + text + "\n\nThank you for your continued support!\n\nBest regards,\n{BrandName} Team"
	case model.ChannelWhatsApp:
		return "👋 Hi {FirstName}!\n\n" + text + "\n\n💬 Reply to this message for instant support!"
	case model.ChannelRCS:
		return "🎉 " + text + "\n\n[Learn More] [Contact Us]\n\nPowered by {BrandName}"
	}
	return text
}
