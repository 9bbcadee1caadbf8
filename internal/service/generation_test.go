package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/service"
)

func TestStubGeneratorTemplatesByCampaignType(t *testing.T) {
	g := service.NewStubGenerator(0)

	out, err := g.Generate(context.Background(), model.GenerationRequest{
		Prompt:        "Spring collection is here",
		BusinessName:  "Acme",
		CampaignType:  "Promotional Sale",
		IncludeImages: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"Acme", "Spring collection is here", "Limited time offer"} {
		if !strings.Contains(out.Text, want) {
			t.Errorf("expected %q in %q", want, out.Text)
		}
	}
	if len(out.Images) != 2 {
		t.Errorf("expected 2 images, got %v", out.Images)
	}
}

func TestStubGeneratorWithoutImages(t *testing.T) {
	out, err := service.NewStubGenerator(0).Generate(context.Background(), model.GenerationRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Images == nil || len(out.Images) != 0 {
		t.Errorf("expected empty images, got %v", out.Images)
	}
	if !strings.Contains(out.Text, "our company") || !strings.Contains(out.Text, "The Team") {
		t.Errorf("expected default business wording, got %q", out.Text)
	}
}

func TestStubGeneratorRejectsEmptyPrompt(t *testing.T) {
	_, err := service.NewStubGenerator(0).Generate(context.Background(), model.GenerationRequest{Prompt: "  "})
	if !appErrors.IsGenerationFailed(err) {
		t.Errorf("expected GenerationFailed, got %v", err)
	}
}

func TestStubGeneratorHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.NewStubGenerator(time.Hour).Generate(ctx, model.GenerationRequest{Prompt: "hi"})
	if !appErrors.IsGenerationFailed(err) {
		t.Errorf("expected GenerationFailed on cancelled context, got %v", err)
	}
}

func TestImprove(t *testing.T) {
	long := strings.Repeat("a", 200)
	sms := service.Improve(model.ChannelSMS, long)
	if !strings.HasPrefix(sms, "✅ ") || !strings.HasSuffix(sms, " Text STOP to opt out.") {
		t.Errorf("unexpected sms improvement %q", sms)
	}
	if strings.Count(sms, "a") != 130 {
		t.Errorf("expected sms text truncated to 130 characters")
	}

	if got := service.Improve(model.ChannelEmail, "body"); !strings.HasPrefix(got, "Dear {FirstName},") {
		t.Errorf("unexpected email improvement %q", got)
	}
	if got := service.Improve(model.ChannelWhatsApp, "body"); !strings.Contains(got, "Hi {FirstName}") {
		t.Errorf("unexpected whatsapp improvement %q", got)
	}
	if got := service.Improve(model.ChannelRCS, "body"); !strings.Contains(got, "[Learn More]") {
		t.Errorf("unexpected rcs improvement %q", got)
	}
	if got := service.Improve("fax", "body"); got != "body" {
		t.Errorf("unknown channel should be untouched, got %q", got)
	}
}

func TestRenderTemplate(t *testing.T) {
	got := service.RenderTemplate("Hi {FirstName} from {BrandName}", map[string]string{
		"FirstName": "Jane",
		"BrandName": "Acme",
	})
	if got != "Hi Jane from Acme" {
		t.Errorf("unexpected render %q", got)
	}
}
