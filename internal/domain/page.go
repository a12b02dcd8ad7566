package domain

// SyntheticPage is derived per request from a resolved (Service, City) pair.
// It is never persisted.
type SyntheticPage struct {
	ServiceSlug     string         `json:"service_slug"`
	CitySlug        string         `json:"city_slug"`
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `json:"meta_description"`
	Keywords        []string       `json:"keywords"`
	CanonicalPath   string         `json:"canonical_path"`
	CanonicalURL    string         `json:"canonical_url"`
	StructuredData  LocalBusiness  `json:"structured_data"`
	ContentBlocks   []ContentBlock `json:"content_blocks"`
}

// ---- schema.org LocalBusiness / OfferCatalog ----

type LocalBusiness struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Address         PostalAddress `json:"address"`
	Telephone       string        `json:"telephone"`
	Email           string        `json:"email"`
	URL             string        `json:"url"`
	PriceRange      string        `json:"priceRange"`
	AreaServed      AreaServed    `json:"areaServed"`
	HasOfferCatalog OfferCatalog  `json:"hasOfferCatalog"`
}

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

type AreaServed struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type OfferCatalog struct {
	Type            string  `json:"@type"`
	Name            string  `json:"name"`
	ItemListElement []Offer `json:"itemListElement"` // never nil
}

type Offer struct {
	Type        string         `json:"@type"`
	ItemOffered OfferedService `json:"itemOffered"`
}

type OfferedService struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ---- content blocks ----

type BlockKind string

const (
	BlockHero         BlockKind = "hero"
	BlockIntro        BlockKind = "intro"
	BlockFeatureGrid  BlockKind = "feature_grid"
	BlockWhyChooseUs  BlockKind = "why_choose_us"
	BlockProcessSteps BlockKind = "process_steps"
	BlockAreaList     BlockKind = "area_list"
	BlockFAQList      BlockKind = "faq_list"
)

// ContentBlock is one typed section of a synthesized page.
type ContentBlock interface {
	Kind() BlockKind
}

type Icon string

const (
	IconPalette    Icon = "palette"
	IconGlobe      Icon = "globe"
	IconSmartphone Icon = "smartphone"
	IconTrendingUp Icon = "trending-up"
	IconTarget     Icon = "target"
	IconSearch     Icon = "search"
	IconMegaphone  Icon = "megaphone"
	IconPenTool    Icon = "pen-tool"
	IconMousePtr   Icon = "mouse-pointer"
	IconGeneric    Icon = "sparkles"
)

type HeroBlock struct {
	Type        BlockKind `json:"type"`
	Badge       string    `json:"badge"` // "{City}, {State}"
	Heading     string    `json:"heading"`
	Description string    `json:"description"`
	Icon        Icon      `json:"icon"`
}

type IntroBlock struct {
	Type       BlockKind `json:"type"`
	Heading    string    `json:"heading"`
	Paragraphs []string  `json:"paragraphs"`
}

type FeatureGridBlock struct {
	Type     BlockKind     `json:"type"`
	Heading  string        `json:"heading"`
	Subtitle string        `json:"subtitle"`
	Items    []FeatureItem `json:"items"`
}

type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type WhyChooseUsBlock struct {
	Type    BlockKind   `json:"type"`
	Heading string      `json:"heading"`
	Items   []Highlight `json:"items"`
}

type Highlight struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProcessStepsBlock struct {
	Type     BlockKind     `json:"type"`
	Heading  string        `json:"heading"`
	Subtitle string        `json:"subtitle"`
	Steps    []ProcessStep `json:"steps"`
}

type AreaListBlock struct {
	Type    BlockKind `json:"type"`
	Heading string    `json:"heading"`
	Areas   []string  `json:"areas"` // never nil
}

type FAQListBlock struct {
	Type    BlockKind `json:"type"`
	Heading string    `json:"heading"`
	Version string    `json:"version"`
	Items   []FAQ     `json:"items"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (HeroBlock) Kind() BlockKind         { return BlockHero }
func (IntroBlock) Kind() BlockKind        { return BlockIntro }
func (FeatureGridBlock) Kind() BlockKind  { return BlockFeatureGrid }
func (WhyChooseUsBlock) Kind() BlockKind  { return BlockWhyChooseUs }
func (ProcessStepsBlock) Kind() BlockKind { return BlockProcessSteps }
func (AreaListBlock) Kind() BlockKind     { return BlockAreaList }
func (FAQListBlock) Kind() BlockKind      { return BlockFAQList }

// PageBlockOrder is the fixed section order of every synthesized page.
var PageBlockOrder = []BlockKind{
	BlockHero, BlockIntro, BlockFeatureGrid, BlockWhyChooseUs,
	BlockProcessSteps, BlockAreaList, BlockFAQList,
}
