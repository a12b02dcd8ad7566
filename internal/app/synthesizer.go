package app

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pytech_site/internal/domain"
)

const DefaultMetaDescriptionMax = 160

// SiteProfile is the brand data stamped onto every synthesized page.
type SiteProfile struct {
	Brand      string
	BaseURL    string // absolute, no trailing slash
	Phone      string
	Email      string
	PriceRange string
	Address    domain.PostalAddress
}

func DefaultSiteProfile() SiteProfile {
	return SiteProfile{
		Brand:      "PyTech Digital",
		BaseURL:    "https://pytech.digital",
		Phone:      "+919205222170",
		Email:      "info@pytechdigital.com",
		PriceRange: "$$",
		Address: domain.PostalAddress{
			Type:            "PostalAddress",
			StreetAddress:   "2nd Floor, Plot No. 21 & 21A, Sector 142",
			AddressLocality: "Noida",
			AddressRegion:   "Uttar Pradesh",
			PostalCode:      "201304",
			AddressCountry:  "IN",
		},
	}
}

// Synthesizer derives a SyntheticPage from a resolved pair. It holds only
// immutable settings, so one instance is safe for concurrent use.
type Synthesizer struct {
	site    SiteProfile
	descMax int
}

func NewSynthesizer(site SiteProfile, metaDescriptionMax int) *Synthesizer {
	if metaDescriptionMax <= 0 {
		metaDescriptionMax = DefaultMetaDescriptionMax
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	if site.Address.Type == "" {
		site.Address.Type = "PostalAddress"
	}
	return &Synthesizer{site: site, descMax: metaDescriptionMax}
}

// SynthesizeLookup is Synthesize for a LookupResult; it panics unless the result is Found.
func (s *Synthesizer) SynthesizeLookup(r domain.LookupResult) domain.SyntheticPage {
	svc, city := r.MustFound()
	return s.Synthesize(svc, city)
}

func (s *Synthesizer) Synthesize(svc domain.Service, city domain.City) domain.SyntheticPage {
	path := CanonicalPath(svc.Slug, city.Slug)
	desc := TruncateWords(
		"Professional "+svc.Name+" services in "+city.Name+". "+strings.TrimSpace(svc.Description),
		s.descMax,
	)

	return domain.SyntheticPage{
		ServiceSlug:     svc.Slug,
		CitySlug:        city.Slug,
		MetaTitle:       svc.Name + " Company in " + city.Name + " | " + s.site.Brand,
		MetaDescription: desc,
		Keywords:        buildKeywords(svc, city),
		CanonicalPath:   path,
		CanonicalURL:    s.site.BaseURL + path,
		StructuredData:  s.structuredData(svc, city, desc, s.site.BaseURL+path),
		ContentBlocks: []domain.ContentBlock{
			s.hero(svc, city),
			s.intro(svc, city),
			featureGrid(svc, city),
			s.whyChooseUs(city),
			processSteps(svc),
			areaList(city),
			s.faqList(svc, city),
		},
	}
}

func CanonicalPath(serviceSlug, citySlug string) string {
	return "/" + serviceSlug + "/" + citySlug
}

func buildKeywords(svc domain.Service, city domain.City) []string {
	s, c := strings.ToLower(svc.Name), strings.ToLower(city.Name)
	out := []string{
		s + " company in " + c,
		s + " services in " + c,
		"best " + s + " agency in " + c,
		s + " near me",
		"professional " + s + " " + c,
	}
	for _, k := range svc.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k+" "+c)
		}
	}
	return out
}

func (s *Synthesizer) structuredData(svc domain.Service, city domain.City, desc, url string) domain.LocalBusiness {
	offers := make([]domain.Offer, 0, len(svc.Features))
	for _, f := range svc.Features {
		offers = append(offers, domain.Offer{
			Type:        "Offer",
			ItemOffered: domain.OfferedService{Type: "Service", Name: f},
		})
	}
	return domain.LocalBusiness{
		Context:     "https://schema.org",
		Type:        "LocalBusiness",
		Name:        s.site.Brand,
		Description: desc,
		Address:     s.site.Address,
		Telephone:   s.site.Phone,
		Email:       s.site.Email,
		URL:         url,
		PriceRange:  s.site.PriceRange,
		AreaServed:  domain.AreaServed{Type: "City", Name: city.Name},
		HasOfferCatalog: domain.OfferCatalog{
			Type:            "OfferCatalog",
			Name:            svc.Name,
			ItemListElement: offers,
		},
	}
}

func (s *Synthesizer) hero(svc domain.Service, city domain.City) domain.HeroBlock {
	badge := city.Name
	if city.State != "" {
		badge += ", " + city.State
	}
	return domain.HeroBlock{
		Type:        domain.BlockHero,
		Badge:       badge,
		Heading:     svc.Name + " Company in " + city.Name,
		Description: svc.Description,
		Icon:        IconFor(svc.Slug),
	}
}

func (s *Synthesizer) intro(svc domain.Service, city domain.City) domain.IntroBlock {
	lower := strings.ToLower(svc.Name)
	return domain.IntroBlock{
		Type:    domain.BlockIntro,
		Heading: "Welcome to " + s.site.Brand + " - Your Trusted " + svc.Name + " Partner in " + city.Name,
		Paragraphs: []string{
			"Looking for professional " + lower + " in " + city.Name + "? " + s.site.Brand +
				" is your trusted partner for delivering exceptional digital solutions. With over 10 years of experience" +
				" and a team of expert professionals, we've helped hundreds of businesses in " + city.Name +
				" and across India achieve their digital goals.",
			"Our " + lower + " solutions are tailored to meet the unique needs of businesses in " + city.Name +
				". We understand the local market dynamics and combine our expertise with cutting-edge technology" +
				" to deliver results that exceed expectations.",
		},
	}
}

func featureGrid(svc domain.Service, city domain.City) domain.FeatureGridBlock {
	items := make([]domain.FeatureItem, 0, len(svc.Features))
	for _, f := range svc.Features {
		items = append(items, domain.FeatureItem{
			Title:       f,
			Description: "Professional " + strings.ToLower(f) + " services tailored for businesses in " + city.Name,
		})
	}
	return domain.FeatureGridBlock{
		Type:     domain.BlockFeatureGrid,
		Heading:  "Our " + svc.Name + " Solutions",
		Subtitle: "Comprehensive services designed to help your business succeed",
		Items:    items,
	}
}

func (s *Synthesizer) whyChooseUs(city domain.City) domain.WhyChooseUsBlock {
	return domain.WhyChooseUsBlock{
		Type:    domain.BlockWhyChooseUs,
		Heading: "Why Choose " + s.site.Brand + " in " + city.Name + "?",
		Items: []domain.Highlight{
			{Badge: "10+", Title: "Years of Experience", Description: "Proven track record in delivering quality digital solutions"},
			{Badge: "200+", Title: "Happy Clients", Description: "Trusted by businesses across " + city.Name + " and India"},
			{Badge: "24/7", Title: "Support", Description: "Round-the-clock customer support and assistance"},
			{Badge: "100%", Title: "Client Satisfaction", Description: "Committed to delivering results that exceed expectations"},
			{Badge: "₹₹", Title: "Competitive Pricing", Description: "Best value for money with transparent pricing"},
			{Badge: "✓", Title: "On-Time Delivery", Description: "Reliable project timelines and delivery schedules"},
		},
	}
}

// processSteps copies the catalog steps verbatim; numbering is the catalog's.
func processSteps(svc domain.Service) domain.ProcessStepsBlock {
	steps := make([]domain.ProcessStep, len(svc.ProcessSteps))
	copy(steps, svc.ProcessSteps)
	return domain.ProcessStepsBlock{
		Type:     domain.BlockProcessSteps,
		Heading:  "Our Process",
		Subtitle: "A streamlined approach to deliver exceptional results",
		Steps:    steps,
	}
}

func areaList(city domain.City) domain.AreaListBlock {
	areas := make([]string, len(city.Areas))
	copy(areas, city.Areas)
	return domain.AreaListBlock{
		Type:    domain.BlockAreaList,
		Heading: "We Serve " + city.Name + " and Surrounding Areas",
		Areas:   areas,
	}
}

func (s *Synthesizer) faqList(svc domain.Service, city domain.City) domain.FAQListBlock {
	r := strings.NewReplacer(
		"{service}", strings.ToLower(svc.Name),
		"{city}", city.Name,
		"{brand}", s.site.Brand,
	)
	items := make([]domain.FAQ, 0, len(faqTemplates))
	for _, t := range faqTemplates {
		items = append(items, domain.FAQ{Question: r.Replace(t.question), Answer: r.Replace(t.answer)})
	}
	return domain.FAQListBlock{
		Type:    domain.BlockFAQList,
		Heading: "Frequently Asked Questions",
		Version: FAQTemplatesVersion,
		Items:   items,
	}
}

// TruncateWords bounds s to max runes. An over-long string is cut at the last
// word boundary that leaves room for a trailing "…"; trailing spaces and
// punctuation before the ellipsis are dropped. A single word longer than the
// budget is cut hard.
func TruncateWords(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	cut := r[:max-1]
	if !unicode.IsSpace(r[max-1]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	out := strings.TrimRightFunc(string(cut), func(c rune) bool {
		return unicode.IsSpace(c) || unicode.IsPunct(c)
	})
	return out + "…"
}
