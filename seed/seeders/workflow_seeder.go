package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// WorkflowSeeder handles seeding multi-step workflows
type WorkflowSeeder struct {
	db *gorm.DB
}

// NewWorkflowSeeder creates a new workflow seeder
func NewWorkflowSeeder(db *gorm.DB) *WorkflowSeeder {
	return &WorkflowSeeder{db: db}
}

// SeedWorkflows seeds the starter playbooks
func (s *WorkflowSeeder) SeedWorkflows() error {
	workflows := s.getWorkflows()

	for _, workflow := range workflows {
		var existing model.Workflow
		err := s.db.Where("id = ?", workflow.ID).First(&existing).Error
		if err == nil {
			log.Printf("Workflow %s already exists, skipping", workflow.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&workflow).Error; err != nil {
			log.Printf("Error creating workflow %s: %v", workflow.Title, err)
			return err
		}
		log.Printf("Created workflow: %s", workflow.Title)
	}

	log.Println("Workflow seeding completed successfully")
	return nil
}

func (s *WorkflowSeeder) getWorkflows() []model.Workflow {
	now := time.Now()

	return []model.Workflow{
		{
			ID:            "wf_product_launch",
			Title:         "New Product Launch",
			Description:   "Step-by-step playbook for launching a product to page 1.",
			Category:      "Launch",
			Difficulty:    "intermediate",
			EstimatedTime: 120,
			Steps: stepsJSON([]model.WorkflowStep{
				{Title: "Keyword Setup", Instruction: "Identify top 10 'hero' keywords using Helium 10.", ToolReference: "helium10", InputPrompt: "List your 10 hero keywords"},
				{Title: "Listing Audit", Instruction: "Ensure Listing score > 9/10.", ToolReference: "none", InputPrompt: "Confirm your listing score"},
				{Title: "PPC Setup", Instruction: "Create Auto campaign and Manual Exact for hero keywords.", ToolReference: "none", InputPrompt: "Describe your campaign structure"},
				{Title: "Price Strategy", Instruction: "Set launch price 15% below market average for velocity.", ToolReference: "pi", InputPrompt: "What launch price did you set and why"},
				{Title: "Review Request", Instruction: "Enable Vine program for early reviews.", ToolReference: "none", InputPrompt: "Confirm Vine enrollment"},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "wf_low_impressions",
			Title:         "Low Impressions Troubleshooting",
			Description:   "Diagnose and fix campaigns with no visibility.",
			Category:      "PPC",
			Difficulty:    "beginner",
			EstimatedTime: 45,
			Steps: stepsJSON([]model.WorkflowStep{
				{Title: "Check Indexing", Instruction: "Search for your ASIN + Keyword. Do you show up?", ToolReference: "none", InputPrompt: "Is your product indexed for the keyword"},
				{Title: "Review Bids", Instruction: "Are bids below suggested range? Increase by 20%.", ToolReference: "helium10", InputPrompt: "What bid changes did you make"},
				{Title: "Budget Check", Instruction: "Is the campaign out of budget early in the day?", ToolReference: "none", InputPrompt: "Report the campaign budget status"},
				{Title: "Relevance", Instruction: "Check if ads are suppressed due to irrelevance.", ToolReference: "none", InputPrompt: "Any suppression warnings found"},
				{Title: "Targeting", Instruction: "Add broader distinct keywords.", ToolReference: "helium10", InputPrompt: "Which keywords did you add"},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "wf_ppc_optimization",
			Title:         "PPC Campaign Optimization",
			Description:   "Weekly routine to cut wasted spend and boost profitable keywords.",
			Category:      "PPC",
			Difficulty:    "intermediate",
			EstimatedTime: 60,
			Steps: stepsJSON([]model.WorkflowStep{
				{Title: "Download Search Term Report", Instruction: "Go to Campaign Manager > Reports. Download the last 30 days of data.", ToolReference: "none", InputPrompt: "Confirm you downloaded the report"},
				{Title: "Identify Wasted Spend", Instruction: "Filter for keywords with > 10 clicks and 0 sales. Add them as Negative Exact.", ToolReference: "none", InputPrompt: "List the negatives you added"},
				{Title: "Find High ACOS Targets", Instruction: "Filter for ACOS > 40% (or your target). Lower bids by 20% on these keywords.", ToolReference: "none", InputPrompt: "Which bids did you lower"},
				{Title: "Scale Winners", Instruction: "Filter for ACOS < 20%. Raise bids by 20% to get more traffic.", ToolReference: "helium10", InputPrompt: "Which bids did you raise"},
				{Title: "Keyword Harvest", Instruction: "Find search terms with 3+ sales in Auto campaigns. Move them to Manual Exact campaigns.", ToolReference: "helium10", InputPrompt: "Which keywords did you harvest"},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func stepsJSON(steps []model.WorkflowStep) json.RawMessage {
	data, _ := json.Marshal(steps)
	return data
}
