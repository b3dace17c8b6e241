package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// ScenarioSeeder handles seeding scored simulation scenarios
type ScenarioSeeder struct {
	db *gorm.DB
}

// NewScenarioSeeder creates a new scenario seeder
func NewScenarioSeeder(db *gorm.DB) *ScenarioSeeder {
	return &ScenarioSeeder{db: db}
}

// SeedScenarios seeds the starter simulations
func (s *ScenarioSeeder) SeedScenarios() error {
	scenarios := s.getScenarios()

	for _, scenario := range scenarios {
		var existing model.Scenario
		err := s.db.Where("id = ?", scenario.ID).First(&existing).Error
		if err == nil {
			log.Printf("Scenario %s already exists, skipping", scenario.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&scenario).Error; err != nil {
			log.Printf("Error creating scenario %s: %v", scenario.Title, err)
			return err
		}
		log.Printf("Created scenario: %s", scenario.Title)
	}

	log.Println("Scenario seeding completed successfully")
	return nil
}

func (s *ScenarioSeeder) getScenarios() []model.Scenario {
	now := time.Now()

	return []model.Scenario{
		{
			ID:          "sc_ranking_drop",
			Title:       "Ranking Drop Crisis",
			Description: "Your hero product's organic rank plummeted from #3 to #14. Diagnose and fix.",
			Category:    "PPC",
			Difficulty:  "advanced",
			Context: contextJSON(model.ScenarioContext{
				Situation: "It's Tuesday morning. You notice sales are down 40% week-over-week. Your main competitor has a 'Limited Time Deal' badge.",
				MarketData: mustJSON(map[string]string{
					"Your Price":                        "$24.99",
					"Competitor Price":                  "$19.99 (Deal)",
					"Your Conversion Rate (prev week)":  "12.5%",
					"Your Conversion Rate (today)":      "8.2%",
					"PPC ACOS":                          "Rising (35% -> 48%)",
					"Sessions":                          "Stable",
				}),
			}),
			Questions: questionsJSON([]model.ScenarioQuestion{
				{
					Text: "Based on the data, what is the root cause of the sales drop?",
					Options: []model.ScenarioQuestionOption{
						{Text: "Traffic issue: Competitor is stealing search volume.", IsCorrect: false, Explanation: "Sessions are stable, so you are getting the same traffic. The problem is they aren't buying (Conversion drop)."},
						{Text: "Conversion issue: Competitor's low price is killing your CR.", IsCorrect: true, Explanation: "Correct. Stable traffic + Dropping CR + Rising ACOS = Price disadvantage."},
						{Text: "Algorithm update: Amazon penalized your listing.", IsCorrect: false, Explanation: "Unlikely to see this specific ACOS rise/CR drop pattern from an algo update without session changes."},
					},
				},
				{
					Text: "What is your immediate tactical response?",
					Options: []model.ScenarioQuestionOption{
						{Text: "Lower price to $18.99 to undercut.", IsCorrect: false, Explanation: "Too aggressive. You destroy margins and start a price war."},
						{Text: "Run a 15% off coupon to close the gap temporarily.", IsCorrect: true, Explanation: "Coupons increase CTR/CR without permanently lowering price history."},
						{Text: "Pause PPC to stop the bleeding.", IsCorrect: false, Explanation: "This will kill your sessions and rank even further."},
					},
				},
			}),
			IdealAnswer: "Identify price sensitivity issue. Use coupons to recover CR without resetting price anchor.",
			Rubric:      `{"keyPoints":["Identify CR drop","Use Coupons for short term fix"]}`,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "sc_suspension_appeal",
			Title:       "Listing Suspension Appeal",
			Description: "Amazon flagged your listing for 'Used Sold as New'. Draft the Plan of Action (POA).",
			Category:    "Compliance",
			Difficulty:  "intermediate",
			Context: contextJSON(model.ScenarioContext{
				Situation: "Three customers returned your item claiming the box was open or seal broken. Amazon deactivated the ASIN.",
				InternalAudit: mustJSON(map[string]string{
					"Return Rate": "4.5% (Category avg: 2%)",
					"FBA Prep":    "Polybagged, no safety seal",
					"Inventory":   "Commingled (stickerless)",
				}),
			}),
			Questions: questionsJSON([]model.ScenarioQuestion{
				{
					Text: "Which root cause will Amazon accept?",
					Options: []model.ScenarioQuestionOption{
						{Text: "Customers are lying.", IsCorrect: false, Explanation: "Never blame the customer."},
						{Text: "Amazon FBA restocking error.", IsCorrect: false, Explanation: "You must take ownership of the packaging flaw that allowed this."},
						{Text: "Inadequate packaging (no tamper seal) allowed used returns to be resold.", IsCorrect: true, Explanation: "Specific, actionable, accepts responsibility."},
					},
				},
				{
					Text: "What is the Preventive Action?",
					Options: []model.ScenarioQuestionOption{
						{Text: "We will inspect every unit manually.", IsCorrect: false, Explanation: "Impossible with FBA."},
						{Text: "Recall inventory, apply safety seals to all future units, disable Repackaging.", IsCorrect: true, Explanation: "Comprehensive fix."},
					},
				},
			}),
			IdealAnswer: "Root Cause: Inadequate packaging. Fix: Safety seals + Settings change.",
			Rubric:      `{"keyPoints":["Accept responsibility","Safety seals"]}`,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "sc_q4_inventory",
			Title:       "Q4 Inventory Management",
			Description: "Calculate the exact restock order to avoid stockout during Christmas.",
			Category:    "Inventory",
			Difficulty:  "advanced",
			Context: contextJSON(model.ScenarioContext{
				Situation: "It is October 15th. Supplier lead time is 45 days. You need stock for Dec 1 - Jan 15.",
				Metrics: mustJSON(map[string]string{
					"Current Inventory":              "2,000 units",
					"Oct Avg Sales/Day":              "50 units",
					"Expected Dec Sales Multiplier":  "3.5x (based on last year)",
					"Safety Stock":                   "10 days",
				}),
			}),
			Questions: questionsJSON([]model.ScenarioQuestion{
				{
					Text: "How many units should you order NOW to cover the Q4 rush?",
					Options: []model.ScenarioQuestionOption{
						{Text: "2,000 units", IsCorrect: false, Explanation: "Too low. 50 units/day * 3.5x = 175/day in Dec. You need thousands."},
						{Text: "5,000 units", IsCorrect: false, Explanation: "45 days of Dec/Jan demand at 175/day is 7,875. You have 2,000. Need more."},
						{Text: "8,000 units", IsCorrect: true, Explanation: "Dec demand plus the January buffer minus stock on hand. 8,000 is the safest bet to avoid a Q4 stockout."},
					},
				},
			}),
			IdealAnswer: "Order 8,000 units. Calculation: (Dec Demand: 5,425) + (Jan Buffer: 2,500) - (Stock: 2,000) + (Lead Time Buffer). Better to overstock slightly in Q4 than stockout.",
			Rubric:      `{"keyPoints":["Apply seasonality multiplier","Factor in lead time","Account for existing stock"]}`,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "sc_high_acos",
			Title:       "High ACOS Nightmare",
			Description: "Your new Auto Campaign is spending $500/day with 120% ACOS.",
			Category:    "PPC",
			Difficulty:  "beginner",
			Context: contextJSON(model.ScenarioContext{
				Situation: "You launched an Auto campaign for a 'Leather Wallet'. It's getting tons of clicks but few sales.",
				Metrics: mustJSON(map[string]string{
					"Top Spend Keyword": "'phone case wallet' ($150 spend, 0 sales)",
					"Second Spend":      "'cheap velcro wallet' ($80 spend, 0 sales)",
					"CTR":               "0.3%",
					"Conversion Rate":   "1.5%",
				}),
			}),
			Questions: questionsJSON([]model.ScenarioQuestion{
				{
					Text: "What is the single most effective action to reduce ACOS within 24 hours?",
					Options: []model.ScenarioQuestionOption{
						{Text: "Lower the daily budget to $50.", IsCorrect: false, Explanation: "This caps the bleeding but doesn't fix the efficiency."},
						{Text: "Add 'phone case' and 'velcro' as Negative Phrase keywords.", IsCorrect: true, Explanation: "Correct. These terms are irrelevant (you sell leather wallets). Negating them stops the wasted spend immediately."},
						{Text: "Increase the bid to get better ad placement.", IsCorrect: false, Explanation: "Increasing bids on bad keywords will just lose you money faster."},
					},
				},
			}),
			IdealAnswer: "Aggressively add Negative Keywords from the Search Term Report. 'Phone case' and 'velcro' are wasting budget. Negating them will immediately drop ACOS.",
			Rubric:      `{"keyPoints":["Analyze Search Term Report","Identify irrelevant traffic","Use Negative Keywords"]}`,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "sc_hijacker",
			Title:       "Hijacker Battle",
			Description: "A random seller 'JustLaunched123' is selling your Private Label product for 50% less.",
			Category:    "Listing",
			Difficulty:  "advanced",
			Context: contextJSON(model.ScenarioContext{
				Situation: "You own the brand 'EcoBottle'. You are the manufacturer. Suddenly, 'JustLaunched123' appears on your listing and takes the Buy Box.",
				MarketData: mustJSON(map[string]string{
					"Your Price":      "$29.99",
					"Hijacker Price":  "$14.99",
					"Test Buy Result": "Item arrived in a generic plastic bag, different material, no logo.",
				}),
			}),
			Questions: questionsJSON([]model.ScenarioQuestion{
				{
					Text: "How do you remove this hijacker legally?",
					Options: []model.ScenarioQuestionOption{
						{Text: "Message them threatening legal action.", IsCorrect: false, Explanation: "Harassment is against TOS. Plus, bots often ignore messages."},
						{Text: "Buy out their inventory to clear them.", IsCorrect: false, Explanation: "Expensive and risky. They might just restock fake inventory."},
						{Text: "Report 'Counterfeit' violation to Amazon using Brand Registry with photos from the Test Buy.", IsCorrect: true, Explanation: "Correct. You have proof that the product does not match the detail page. This is the only official removal path."},
					},
				},
			}),
			IdealAnswer: "Conduct a Test Buy. Photograph the differences (Material, Logo, Packaging). Open a Trademark/Counterfeit violation case via Brand Registry referencing the Test Buy Order ID.",
			Rubric:      `{"keyPoints":["Conduct Test Buy","Identify material differences","Report via Brand Registry"]}`,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func contextJSON(ctx model.ScenarioContext) json.RawMessage {
	data, _ := json.Marshal(ctx)
	return data
}

func questionsJSON(questions []model.ScenarioQuestion) json.RawMessage {
	data, _ := json.Marshal(questions)
	return data
}

func mustJSON(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
