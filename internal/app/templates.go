package app

import (
	"fmt"

	"pytech_site/internal/domain"
)

// FAQTemplatesVersion changes whenever faqTemplates wording changes.
const FAQTemplatesVersion = "2025-01"

type faqTemplate struct{ question, answer string }

// Placeholders: {service} (lower-cased service name), {city}, {brand}.
var faqTemplates = []faqTemplate{
	{
		question: "What makes {brand} the best {service} company in {city}?",
		answer: "We combine years of experience, expert professionals, and cutting-edge technology to deliver exceptional results. " +
			"Our local presence in {city} ensures we understand your market and deliver tailored solutions.",
	},
	{
		question: "How much does {service} cost in {city}?",
		answer: "Our pricing is competitive and transparent. Costs vary based on project scope and requirements. " +
			"Contact us for a free consultation and customized quote.",
	},
	{
		question: "How long does it take to complete a {service} project?",
		answer: "Project timelines depend on complexity and scope. We provide realistic timelines during consultation " +
			"and ensure on-time delivery.",
	},
	{
		question: "Do you provide ongoing support after project completion?",
		answer:   "Yes, we offer comprehensive ongoing support and maintenance services to ensure your continued success.",
	},
	{
		question: "Can I see examples of your previous {service} work in {city}?",
		answer:   "Absolutely! We have a portfolio of successful projects. Contact us to see relevant case studies and examples.",
	},
}

var serviceIcons = map[string]domain.Icon{
	"branding-services":           domain.IconPalette,
	"website-design":              domain.IconGlobe,
	"app-development":             domain.IconSmartphone,
	"digital-marketing-services":  domain.IconTrendingUp,
	"enquiry-generation-services": domain.IconTarget,
	"search-engine-optimization":  domain.IconSearch,
	"app-marketing":               domain.IconMegaphone,
	"content-marketing":           domain.IconPenTool,
	"ppc-paid-marketing":          domain.IconMousePtr,
}

var knownIcons = map[domain.Icon]struct{}{
	domain.IconPalette: {}, domain.IconGlobe: {}, domain.IconSmartphone: {},
	domain.IconTrendingUp: {}, domain.IconTarget: {}, domain.IconSearch: {},
	domain.IconMegaphone: {}, domain.IconPenTool: {}, domain.IconMousePtr: {},
	domain.IconGeneric: {},
}

func init() {
	for slug, icon := range serviceIcons {
		if _, ok := knownIcons[icon]; !ok {
			panic(fmt.Sprintf("app: service %q mapped to unknown icon %q", slug, icon))
		}
	}
}

// IconFor returns the icon for a service slug, IconGeneric when unmapped.
func IconFor(slug string) domain.Icon {
	if icon, ok := serviceIcons[slug]; ok {
		return icon
	}
	return domain.IconGeneric
}

// UnmappedIcons lists catalog services that fall back to IconGeneric.
func UnmappedIcons(services []domain.Service) []string {
	var out []string
	for _, s := range services {
		if _, ok := serviceIcons[s.Slug]; !ok {
			out = append(out, s.Slug)
		}
	}
	return out
}
