package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
)

// systemPromptTemplate frames the assistant as an Amazon selling trainer.
// The %s slot receives the retrieved data context as JSON.
const systemPromptTemplate = `You are an expert Amazon selling trainer for a Learning Management System.
Your role is to teach e-commerce executives about:
- Amazon SEO and Listings
- PPC Campaigns (Sponsored Products, Brands, Display)
- Market Intelligence (using Pi data)
- Keyword Research (using Helium 10 data)
- Competitor Analysis (using Amazon Ads Library)

Available Data Context:
%s

Instructions:
1. CONTEXT RELEVANCE CHECK: the data context may describe a different product
   than the user is asking about. If the products do not match, ignore the
   context entirely and answer from general knowledge. Do not mention that
   data was missing or offer data for the other product.
2. Answering rule: with relevant context, provide specific data tables and
   analysis; without it, give a theoretical answer based on general Amazon
   best practices with example keywords and metrics.
3. Response structure: Concept, Data Analysis, Action Steps (3-5 items),
   Example.
4. When answering from general knowledge, add the note: "Note: Generated
   based on general market knowledge as specific account data was not found."`

// evaluationPromptTemplate grades a scenario submission out of 100.
// Slots: description, context JSON, questions text, ideal answer, user answer.
const evaluationPromptTemplate = `You are grading a student's answer to an Amazon business scenario.

**Scenario**: %s
**Context**: %s

**Assessment Questions & Correct Answers**:
%s

**Ideal Answer / Key Concepts**: %s

**Student's Submitted Answers**:
"%s"

Evaluate the student on:
1. Correctness - Did they choose the right options?
2. Data Understanding - Did they use the context?
3. Reasoning - Does their choice make sense?
4. Actionability - Is it a good business decision?

Return a JSON object ONLY (no markdown):
{
  "score": number,      // out of 100
  "isCorrect": boolean, // pass if score > 70
  "feedback": "string", // which questions were right or wrong and why
  "breakdown": {
    "correctness": number,       // out of 40
    "dataUnderstanding": number, // out of 20
    "reasoning": number,         // out of 20
    "actionability": number      // out of 20
  }
}

IMPORTANT SCORING RULES:
1. PERFECT SCORE (100): if the student selects ALL correct options for ALL questions the score MUST be 100.
2. ZERO SCORE (0): if the student selects ANY incorrect option for a single-question scenario, or fails more than half of a multi-question scenario.
3. CRITICAL OVERRIDE: if the core decision is WRONG the total score MUST be 0. No partial credit for reasoning or data understanding on a factually wrong answer.
4. PARTIAL SCORE: only for multi-question scenarios where some questions are entirely correct (e.g. 1 of 2 correct = 50).
5. FEEDBACK: explain exactly which questions were wrong and why.`

// mockChatResponse is served when the AI provider rate-limits us.
const mockChatResponse = `**Note: The AI service is currently busy (Rate Limit Reached).**

Here is a simulated response for demonstration purposes:

**Concept**: Efficient keyword ranking strategies.
**Data Analysis**: The system suggests looking for high-volume, low-competition keywords (Simulated Data).
**Action Steps**:
1. Optimize your backend search terms.
2. Run an auto-campaign to discover new keywords.
3. Check back later for live AI analysis.`

// EvaluationResult is the graded outcome of a scenario submission.
type EvaluationResult struct {
	Score     int                 `json:"score"`
	IsCorrect bool                `json:"isCorrect"`
	Feedback  string              `json:"feedback"`
	Breakdown EvaluationBreakdown `json:"breakdown"`
}

type EvaluationBreakdown struct {
	Correctness       int `json:"correctness"`
	DataUnderstanding int `json:"dataUnderstanding"`
	Reasoning         int `json:"reasoning"`
	Actionability     int `json:"actionability"`
}

// RagContext holds the dataset records retrieved for a chat message,
// bucketed by source tool.
type RagContext struct {
	PiData         []json.RawMessage `json:"piData"`
	Helium10Data   []json.RawMessage `json:"helium10Data"`
	AdsLibraryData []json.RawMessage `json:"adsLibraryData"`
}

// References lists the non-empty buckets, recorded on assistant messages.
func (c RagContext) References() []string {
	var refs []string
	if len(c.PiData) > 0 {
		refs = append(refs, shared.DatasetTypePi)
	}
	if len(c.Helium10Data) > 0 {
		refs = append(refs, shared.DatasetTypeHelium10)
	}
	if len(c.AdsLibraryData) > 0 {
		refs = append(refs, shared.DatasetTypeAdsLibrary)
	}
	return refs
}

type AIService struct {
	appContext.DefaultService
	httpClient *http.Client

	apiURL string
	apiKey string
	model  string

	redisSvc    *RedisService
	datasetRepo *repositories.DatasetRepository
	cacheExpiry time.Duration
}

const AI_SVC = "ai_svc"

var ErrAINotConfigured = errors.New("AI service not configured (Missing API Key)")

func (svc AIService) Id() string {
	return AI_SVC
}

func (svc *AIService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 60 * time.Second,
	}
	svc.apiURL = os.Getenv("GEMINI_API_URL")
	if svc.apiURL == "" {
		svc.apiURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	svc.apiKey = os.Getenv("GEMINI_API_KEY")
	svc.model = os.Getenv("GEMINI_MODEL")
	if svc.model == "" {
		svc.model = "gemini-2.0-flash"
	}
	svc.cacheExpiry = 10 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *AIService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	var db DbService
	if sqlSvc, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && sqlSvc != nil {
		db = sqlSvc
	} else {
		db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	svc.datasetRepo = repositories.NewDatasetRepository(db.Db())

	if svc.apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI features will be unavailable")
	}
	return nil
}

func (svc *AIService) Configured() bool {
	return svc.apiKey != ""
}

// ==================== GEMINI WIRE TYPES ====================

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (svc *AIService) generateContent(req geminiRequest) (string, error) {
	if svc.apiKey == "" {
		return "", ErrAINotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", svc.apiURL, svc.model, svc.apiKey)

	resp, err := svc.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.WithError(err).Error("AI request failed")
		return "", shared.NewUpstreamError(err, "AI service unavailable")
	}
	defer resp.Body.Close()

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", shared.NewUpstreamError(err, "Failed to decode AI response")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", shared.NewRateLimitError(fmt.Errorf("429: %s", statusMessage(result)), "AI service rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", shared.NewUpstreamError(fmt.Errorf("AI API returned status %d: %s", resp.StatusCode, statusMessage(result)), "AI service error")
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", shared.NewUpstreamError(errors.New("empty AI response"), "AI service returned no content")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func statusMessage(resp geminiResponse) string {
	if resp.Error != nil {
		return resp.Error.Message
	}
	return "unknown error"
}

// ==================== CHAT ====================

// Chat sends message with the prior conversation window and the retrieved
// data context. Assistant turns map to the provider's "model" role.
func (svc *AIService) Chat(message string, history []model.ChatMessage, ragCtx RagContext) (string, error) {
	contextJSON, err := json.MarshalIndent(ragCtx, "", "  ")
	if err != nil {
		contextJSON = []byte("{}")
	}

	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: fmt.Sprintf(systemPromptTemplate, string(contextJSON))}}},
		{Role: "model", Parts: []geminiPart{{Text: "Understood. I am ready to act as the Amazon expert trainer."}}},
	}

	for _, msg := range history {
		role := "user"
		if msg.Role == shared.MessageRoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Content}}})
	}

	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	return svc.generateContent(geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			MaxOutputTokens: 1000,
			Temperature:     0.7,
		},
	})
}

// MockChatResponse is the canned reply used when the provider rate-limits.
func (svc *AIService) MockChatResponse() string {
	return mockChatResponse
}

// Hint asks for a short nudge on a workflow step without giving the answer away.
func (svc *AIService) Hint(workflow *model.Workflow, step model.WorkflowStep, question string) (string, error) {
	prompt := fmt.Sprintf(`You are coaching an Amazon seller through the workflow "%s".
They are on the step "%s" with the instruction: %s
Their question: %s

Give a short hint (3 sentences max) that points them in the right direction without completing the step for them.`,
		workflow.Title, step.Title, step.Instruction, question)

	return svc.generateContent(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			MaxOutputTokens: 300,
			Temperature:     0.7,
		},
	})
}

// ==================== SCENARIO EVALUATION ====================

// EvaluateScenario grades answer against the scenario rubric. On any AI
// failure it returns a zero-score fallback result instead of an error.
func (svc *AIService) EvaluateScenario(scenario *model.Scenario, answer string) *EvaluationResult {
	prompt := fmt.Sprintf(evaluationPromptTemplate,
		scenario.Description,
		string(scenario.Context),
		questionsText(scenario),
		scenario.IdealAnswer,
		answer)

	text, err := svc.generateContent(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			MaxOutputTokens: 1000,
			Temperature:     0.2,
		},
	})
	if err != nil {
		log.WithError(err).Error("Scenario evaluation failed")
		return fallbackEvaluation()
	}

	result, err := ParseEvaluation(text)
	if err != nil {
		log.WithError(err).Error("Failed to parse evaluation response")
		return fallbackEvaluation()
	}
	return result
}

func questionsText(scenario *model.Scenario) string {
	var questions []model.ScenarioQuestion
	if err := json.Unmarshal(scenario.Questions, &questions); err != nil || len(questions) == 0 {
		return "Question: " + scenario.Description
	}

	var sb strings.Builder
	for i, q := range questions {
		correct := ""
		for _, o := range q.Options {
			if o.IsCorrect {
				correct = o.Text
				break
			}
		}
		fmt.Fprintf(&sb, "Q%d: %s (Correct: %s)\n", i+1, q.Text, correct)
	}
	return sb.String()
}

// ParseEvaluation extracts the JSON object from a model reply that may be
// wrapped in prose or markdown fences.
func ParseEvaluation(text string) (*EvaluationResult, error) {
	firstOpen := strings.Index(text, "{")
	lastClose := strings.LastIndex(text, "}")

	var jsonStr string
	if firstOpen != -1 && lastClose > firstOpen {
		jsonStr = text[firstOpen : lastClose+1]
	} else {
		jsonStr = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", ""))
	}

	var result EvaluationResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func fallbackEvaluation() *EvaluationResult {
	return &EvaluationResult{
		Score:     0,
		IsCorrect: false,
		Feedback:  "Evaluation unavailable at the moment. Please try again later.",
	}
}

// ==================== RETRIEVAL ====================

var commonWords = map[string]bool{
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"do": true, "can": true, "is": true, "are": true, "a": true, "an": true,
	"the": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "i": true, "my": true, "me": true,
}

// ExtractKeywords strips punctuation and filler words from a chat message.
func ExtractKeywords(message string) []string {
	var cleaned strings.Builder
	for _, r := range strings.ToLower(message) {
		if r == ' ' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			cleaned.WriteRune(r)
		}
	}

	var keywords []string
	for _, word := range strings.Fields(cleaned.String()) {
		if len(word) > 2 && !commonWords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// explicitDatasetTypes maps message phrasing to dataset buckets the user
// is clearly asking about.
func explicitDatasetTypes(message string) []string {
	lower := strings.ToLower(message)

	var types []string
	if strings.Contains(lower, "helium") || strings.Contains(lower, "keyword") {
		types = append(types, shared.DatasetTypeHelium10)
	}
	if strings.Contains(lower, "pi") || strings.Contains(lower, "market") || strings.Contains(lower, "share") {
		types = append(types, shared.DatasetTypePi)
	}
	if strings.Contains(lower, "ads") || strings.Contains(lower, "competitor") || strings.Contains(lower, "creative") {
		types = append(types, shared.DatasetTypeAdsLibrary)
	}
	return types
}

// RelevantContext retrieves up to 5 datasets whose category or description
// match the message keywords, or whose type the message names explicitly.
// Retrieval failures degrade to an empty context.
func (svc *AIService) RelevantContext(message string) RagContext {
	keywords := ExtractKeywords(message)
	explicitTypes := explicitDatasetTypes(message)

	if len(keywords) == 0 && len(explicitTypes) == 0 {
		return RagContext{}
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("rag:context:%s", strings.Join(keywords, "-"))

	if svc.redisSvc != nil {
		var cached RagContext
		if err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached.References()) > 0 {
			log.Debug("RAG context cache hit")
			return cached
		}
	}

	db := svc.datasetRepo.DB()
	cond := db.Where("1 = 0")
	for _, kw := range keywords {
		pattern := "%" + kw + "%"
		cond = cond.Or("LOWER(category) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(explicitTypes) > 0 {
		cond = cond.Or("type IN ?", explicitTypes)
	}

	var datasets []model.Dataset
	if err := db.Model(&model.Dataset{}).Where(cond).Limit(5).Find(&datasets).Error; err != nil {
		log.WithError(err).Error("Context retrieval error")
		return RagContext{}
	}

	var ragCtx RagContext
	for _, d := range datasets {
		switch d.Type {
		case shared.DatasetTypePi:
			ragCtx.PiData = append(ragCtx.PiData, d.Data)
		case shared.DatasetTypeHelium10:
			ragCtx.Helium10Data = append(ragCtx.Helium10Data, d.Data)
		case shared.DatasetTypeAdsLibrary:
			ragCtx.AdsLibraryData = append(ragCtx.AdsLibraryData, d.Data)
		}
	}

	if svc.redisSvc != nil && len(ragCtx.References()) > 0 {
		if err := svc.redisSvc.Set(ctx, cacheKey, ragCtx, svc.cacheExpiry); err != nil {
			log.WithError(err).Warn("Failed to cache RAG context")
		}
	}

	return ragCtx
}
