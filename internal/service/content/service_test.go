package content

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

func TestSlidesAndBanners(t *testing.T) {
	svc := New(document.NewMemory[domain.Slide](), document.NewMemory[domain.Banner]())
	ctx := context.Background()

	if _, err := svc.CreateSlide(ctx, domain.Slide{Title: "no image"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	s, err := svc.CreateSlide(ctx, domain.Slide{Title: "Summer", Image: "summer.jpg"})
	if err != nil || s.ID == "" {
		t.Fatalf("create slide: %+v, %v", s, err)
	}
	b, err := svc.CreateBanner(ctx, domain.Banner{ID: "b1", Image: "b.jpg", Position: "top"})
	if err != nil || b.ID != "b1" {
		t.Fatalf("create banner: %+v, %v", b, err)
	}

	slides, _ := svc.Slides(ctx)
	banners, _ := svc.Banners(ctx)
	if len(slides) != 1 || len(banners) != 1 {
		t.Fatalf("unexpected content: slides=%d banners=%d", len(slides), len(banners))
	}
}
