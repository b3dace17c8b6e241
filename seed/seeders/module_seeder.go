package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// ModuleSeeder handles seeding learning modules
type ModuleSeeder struct {
	db *gorm.DB
}

// NewModuleSeeder creates a new module seeder
func NewModuleSeeder(db *gorm.DB) *ModuleSeeder {
	return &ModuleSeeder{db: db}
}

// SeedModules seeds the starter curriculum
func (s *ModuleSeeder) SeedModules() error {
	modules := s.getModules()

	for _, module := range modules {
		var existing model.Module
		err := s.db.Where("id = ?", module.ID).First(&existing).Error
		if err == nil {
			log.Printf("Module %s already exists, skipping", module.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&module).Error; err != nil {
			log.Printf("Error creating module %s: %v", module.Title, err)
			return err
		}
		log.Printf("Created module: %s", module.Title)
	}

	log.Println("Module seeding completed successfully")
	return nil
}

func (s *ModuleSeeder) getModules() []model.Module {
	now := time.Now()

	return []model.Module{
		{
			ID:            "mod_amazon_seo",
			Title:         "Understanding Amazon SEO",
			Description:   "Learn the fundamentals of Amazon's A9 algorithm and how to rank.",
			Category:      "Keyword Research",
			Difficulty:    "beginner",
			EstimatedTime: 15,
			Order:         1,
			Content: markdownContent("# Amazon SEO Fundamentals\n\nAmazon's search engine is transactional. It cares about two things: **Relevance** and **Performance**.\n\n## Key Ranking Factors\n\n1. **Text Match Relevancy**:\n   - **Title**: The most important field. Must contain your high-volume root keywords.\n   - **Bullet Points**: Indexing for secondary keywords and long-tail variations.\n   - **Backend Keywords**: Invisible to customers but indexed by the algorithm.\n\n2. **Sales Velocity**:\n   - Amazon rewards products that sell. The more you sell, the higher you rank.\n\n3. **Conversion Rate (CVR)**:\n   - CVR = Orders / Sessions. A high CVR signals to Amazon that customers love your product.\n\n## Action Plan\n- Audit your title for the top 5 keywords.\n- Ensure your main image is click-worthy (CTR).\n- Check your price competitiveness."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "mod_long_tail",
			Title:         "Long-tail Keywords",
			Description:   "Finding low competition gems.",
			Category:      "Keyword Research",
			Difficulty:    "beginner",
			EstimatedTime: 10,
			Order:         2,
			Content: markdownContent("# Long-tail Keywords Strategy\n\nLong-tail keywords are search phrases with 3+ words. They have lower search volume but **higher conversion rates**.\n\n## Why Target Long-tails?\n- **Lower CPC**: Fewer competitors bid on them.\n- **High Intent**: A customer searching for *\"blue yoga mat for sensitive knees\"* knows exactly what they want.\n- **Easier Ranking**: You can rank on Page 1 for long-tails quickly.\n\n## How to Find Them\n1. Use **Helium 10 Magnet** or **MerchantWords**.\n2. Filter for keywords with 500-2000 search volume.\n\n## Implementation\n- Place these phrases in your bullet points and backend search terms.\n- Create exact match PPC campaigns with low bids."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "mod_ppc_basics",
			Title:         "PPC Campaign Basics",
			Description:   "Introduction to Sponsored Products, Brands, and Display ads.",
			Category:      "PPC",
			Difficulty:    "beginner",
			EstimatedTime: 20,
			Order:         1,
			Content: markdownContent("# Amazon PPC Basics\n\nPay-Per-Click (PPC) is the fastest way to get visibility. You pay only when a customer clicks your ad.\n\n## Campaign Types\n\n### 1. Sponsored Products\n- Appear in search results and on product pages.\n- **Highest conversion rate**. Start here!\n\n### 2. Sponsored Brands\n- Banner ads at the top of search results.\n- Good for brand awareness and top-of-funnel traffic.\n\n### 3. Sponsored Display\n- Retargeting ads that appear on and off Amazon.\n\n## Key Metrics\n- **ACOS (Advertising Cost of Sales)**: Ad Spend / Ad Sales. Lower is usually better.\n- **ROAS (Return on Ad Spend)**: Ad Sales / Ad Spend. Higher is better."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "mod_negative_keywords",
			Title:         "Negative Keywords",
			Description:   "Stop wasting money on bad clicks.",
			Category:      "PPC",
			Difficulty:    "intermediate",
			EstimatedTime: 10,
			Order:         2,
			Content: markdownContent("# Negative Keywords Mastery\n\nA Negative Keyword tells Amazon **where NOT to show your ad**.\n\n## Why Use Them?\n- **Save Money**: Stop paying for clicks that never convert.\n- **Increase CTR**: Show ads only to relevant searches.\n\n## Types\n1. **Negative Exact**: Excludes the exact phrase only.\n2. **Negative Phrase**: Excludes the phrase and anything added to it.\n\n## Strategy\n- Download your **Search Term Report** weekly.\n- Sort by Spend descending.\n- Identify terms with high spend and 0 sales.\n- Add them to your Negative Exact list immediately."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "mod_listing_optimization",
			Title:         "Listing Optimization",
			Description:   "How to craft high-converting titles, bullets, and A+ content.",
			Category:      "Listing",
			Difficulty:    "intermediate",
			EstimatedTime: 25,
			Order:         1,
			Content: markdownContent("# Listing Optimization Guide\n\nYour listing is your digital storefront. It must persuade and convert.\n\n## The Layout\n\n### 1. Title\n- **Role**: SEO & CTR.\n- **Format**: Brand + Hero Keyword + Key Features + Size/Color.\n\n### 2. Bullet Points\n- **Role**: Conversion.\n- Focus on BENEFITS, not features. Don't say \"1000mAH battery\". Say \"Lasts 3 days on a single charge\".\n\n### 3. Images\n- Main image on pure white. 6 lifestyle/infographic images.\n- **Video**: Increases CVR by up to 80%.\n\n### 4. A+ Content\n- Use rich graphics to tell your brand story and cross-sell other products."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "mod_share_of_voice",
			Title:         "Reading Share of Voice",
			Description:   "Analyze competitor market share using Pi data.",
			Category:      "Competitor Analysis",
			Difficulty:    "intermediate",
			EstimatedTime: 10,
			Order:         1,
			Content: markdownContent("# Share of Voice (SOV) Analysis\n\nSOV is the percentage of the market traffic that your brand captures.\n\n## Measurements\n1. **Desktop vs. Mobile**: Where are you winning?\n2. **Organic vs. Paid**: Are you buying your traffic or earning it?\n\n## Danger Signs\n- **Decreasing Organic SOV**: Competitors are outranking you. Check their content and price.\n- **Decreasing Paid SOV**: You are being outbid. Check your CPCs.\n\n## Actionable Insight\nIf you see a competitor's SOV spiking, check what they changed. Reverse engineer their success."),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func markdownContent(md string) json.RawMessage {
	data, _ := json.Marshal(md)
	return data
}
