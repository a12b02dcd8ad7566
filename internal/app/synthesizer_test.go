package app_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"pytech_site/internal/app"
	"pytech_site/internal/domain"
)

func newSynth() *app.Synthesizer {
	return app.NewSynthesizer(app.DefaultSiteProfile(), 0)
}

func TestSynthesize_WebsiteDesignDelhi(t *testing.T) {
	p := newSynth().Synthesize(websiteDesign(), delhi())

	if !strings.Contains(p.MetaTitle, "Website Design Company in Delhi") {
		t.Fatalf("meta title: %q", p.MetaTitle)
	}
	if p.MetaTitle != "Website Design Company in Delhi | PyTech Digital" {
		t.Fatalf("meta title: %q", p.MetaTitle)
	}
	if p.StructuredData.AreaServed.Name != "Delhi" {
		t.Fatalf("areaServed: %+v", p.StructuredData.AreaServed)
	}
	var offers []string
	for _, o := range p.StructuredData.HasOfferCatalog.ItemListElement {
		offers = append(offers, o.ItemOffered.Name)
	}
	if diff := cmp.Diff([]string{"SEO", "Responsive Design"}, offers); diff != "" {
		t.Fatalf("offers (-want +got):\n%s", diff)
	}
	if p.CanonicalPath != "/website-design/delhi" || p.CanonicalURL != "https://pytech.digital/website-design/delhi" {
		t.Fatalf("canonical: %q %q", p.CanonicalPath, p.CanonicalURL)
	}
	if !strings.HasPrefix(p.MetaDescription, "Professional Website Design services in Delhi. ") {
		t.Fatalf("meta description: %q", p.MetaDescription)
	}
	wantKW := []string{
		"website design company in delhi",
		"website design services in delhi",
		"best website design agency in delhi",
		"website design near me",
		"professional website design delhi",
	}
	if diff := cmp.Diff(wantKW, p.Keywords); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := newSynth()
	a := s.Synthesize(websiteDesign(), delhi())
	b := s.Synthesize(websiteDesign(), delhi())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("pages differ (-a +b):\n%s", diff)
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Fatalf("serialized pages differ")
	}
}

func TestSynthesize_BlockOrder(t *testing.T) {
	p := newSynth().Synthesize(websiteDesign(), delhi())
	var got []domain.BlockKind
	for _, b := range p.ContentBlocks {
		got = append(got, b.Kind())
	}
	if diff := cmp.Diff(domain.PageBlockOrder, got); diff != "" {
		t.Fatalf("block order (-want +got):\n%s", diff)
	}

	hero := p.ContentBlocks[0].(domain.HeroBlock)
	if hero.Badge != "Delhi, Delhi" || hero.Icon != domain.IconGlobe {
		t.Fatalf("hero: %+v", hero)
	}
}

func TestSynthesize_EmptyFeaturesAndAreas(t *testing.T) {
	svc := websiteDesign()
	svc.Features = nil
	city := delhi()
	city.Areas = nil

	p := newSynth().Synthesize(svc, city)
	if p.StructuredData.HasOfferCatalog.ItemListElement == nil {
		t.Fatalf("offer list must be empty, not nil")
	}
	b, err := json.Marshal(p.StructuredData.HasOfferCatalog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"itemListElement":[]`) {
		t.Fatalf("expected empty array, got %s", b)
	}
	areas := p.ContentBlocks[5].(domain.AreaListBlock)
	if areas.Areas == nil || len(areas.Areas) != 0 {
		t.Fatalf("area list: %+v", areas.Areas)
	}
}

func TestSynthesize_StepsVerbatim(t *testing.T) {
	svc := websiteDesign()
	svc.ProcessSteps = []domain.ProcessStep{
		{Step: 3, Title: "C"}, {Step: 1, Title: "A"}, {Step: 7, Title: "Z"},
	}
	p := newSynth().Synthesize(svc, delhi())
	steps := p.ContentBlocks[4].(domain.ProcessStepsBlock).Steps
	if diff := cmp.Diff(svc.ProcessSteps, steps); diff != "" {
		t.Fatalf("steps (-want +got):\n%s", diff)
	}
	// the page holds a copy
	svc.ProcessSteps[0].Title = "mutated"
	if steps[0].Title != "C" {
		t.Fatalf("steps alias the catalog slice")
	}
}

func TestSynthesize_FAQ(t *testing.T) {
	p := newSynth().Synthesize(websiteDesign(), delhi())
	faq := p.ContentBlocks[6].(domain.FAQListBlock)
	if len(faq.Items) != 5 || faq.Version != app.FAQTemplatesVersion {
		t.Fatalf("faq: %d items, version %q", len(faq.Items), faq.Version)
	}
	if faq.Items[1].Question != "How much does website design cost in Delhi?" {
		t.Fatalf("faq question: %q", faq.Items[1].Question)
	}
	if faq.Items[0].Question != "What makes PyTech Digital the best website design company in Delhi?" {
		t.Fatalf("faq question: %q", faq.Items[0].Question)
	}
}

func TestSynthesize_ServiceKeywordsAndGenericIcon(t *testing.T) {
	svc := domain.Service{Slug: "video-production", Name: "Video Production", Keywords: []string{"Explainer Videos", " "}}
	p := newSynth().Synthesize(svc, delhi())
	if got := p.Keywords[len(p.Keywords)-1]; got != "explainer videos delhi" {
		t.Fatalf("last keyword: %q", got)
	}
	if len(p.Keywords) != 6 {
		t.Fatalf("blank service keywords must be skipped: %v", p.Keywords)
	}
	if hero := p.ContentBlocks[0].(domain.HeroBlock); hero.Icon != domain.IconGeneric {
		t.Fatalf("icon: %q", hero.Icon)
	}
	if got := app.UnmappedIcons([]domain.Service{svc, websiteDesign()}); len(got) != 1 || got[0] != "video-production" {
		t.Fatalf("unmapped: %v", got)
	}
}

func TestSynthesize_LongDescriptionTruncated(t *testing.T) {
	svc := websiteDesign()
	svc.Description = strings.Repeat("fast modern websites ", 20)
	p := newSynth().Synthesize(svc, delhi())

	if n := utf8.RuneCountInString(p.MetaDescription); n > app.DefaultMetaDescriptionMax {
		t.Fatalf("meta description has %d runes", n)
	}
	if !strings.HasSuffix(p.MetaDescription, "…") {
		t.Fatalf("expected ellipsis: %q", p.MetaDescription)
	}
	if p.StructuredData.Description != p.MetaDescription {
		t.Fatalf("structured description should match meta description")
	}
}

func TestTruncateWords(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short text", 20, "short text"},
		{"hello brave new world", 12, "hello brave…"},
		{"hello, world again", 8, "hello…"},
		{"supercalifragilistic", 6, "super…"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := app.TruncateWords(tc.in, tc.max); got != tc.want {
			t.Fatalf("TruncateWords(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestSynthesizeLookup_PanicsWhenNotFound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	newSynth().SynthesizeLookup(domain.LookupResult{Status: domain.LookupSourceUnavailable})
}
