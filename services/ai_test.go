package services

import (
	"encoding/json"
	"testing"

	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluation_PlainJSON(t *testing.T) {
	result, err := ParseEvaluation(`{"score":85,"isCorrect":true,"feedback":"Good analysis","breakdown":{"correctness":40,"dataUnderstanding":15,"reasoning":15,"actionability":15}}`)
	require.NoError(t, err)

	assert.Equal(t, 85, result.Score)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "Good analysis", result.Feedback)
	assert.Equal(t, 40, result.Breakdown.Correctness)
}

func TestParseEvaluation_JSONWrappedInProse(t *testing.T) {
	text := `Here is my evaluation of the submission:

{"score":50,"isCorrect":false,"feedback":"One of two correct"}

Let me know if you need anything else.`

	result, err := ParseEvaluation(text)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.False(t, result.IsCorrect)
}

func TestParseEvaluation_MarkdownFences(t *testing.T) {
	text := "```json\n{\"score\":100,\"isCorrect\":true,\"feedback\":\"Perfect\"}\n```"

	result, err := ParseEvaluation(text)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.IsCorrect)
}

func TestParseEvaluation_InvalidPayload(t *testing.T) {
	_, err := ParseEvaluation("the model refused to answer")
	assert.Error(t, err)

	_, err = ParseEvaluation("{score: not valid json}")
	assert.Error(t, err)
}

func TestFallbackEvaluation(t *testing.T) {
	result := fallbackEvaluation()

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "Evaluation unavailable at the moment. Please try again later.", result.Feedback)
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("How do I improve my PPC campaigns for yoga mats?")

	assert.Equal(t, []string{"improve", "ppc", "campaigns", "yoga", "mats"}, keywords)
}

func TestExtractKeywords_DropsShortAndCommonWords(t *testing.T) {
	assert.Empty(t, ExtractKeywords("how do I do it"))
	assert.Empty(t, ExtractKeywords(""))

	keywords := ExtractKeywords("What is the market?!")
	assert.Equal(t, []string{"market"}, keywords)
}

func TestExplicitDatasetTypes(t *testing.T) {
	assert.Equal(t, []string{shared.DatasetTypeHelium10}, explicitDatasetTypes("show me helium data"))
	assert.Equal(t, []string{shared.DatasetTypeHelium10}, explicitDatasetTypes("keyword volume please"))
	assert.Contains(t, explicitDatasetTypes("what is my market share"), shared.DatasetTypePi)
	assert.Equal(t, []string{shared.DatasetTypeAdsLibrary}, explicitDatasetTypes("competitor creative hooks"))
	assert.Empty(t, explicitDatasetTypes("hello there"))
}

func TestRagContext_References(t *testing.T) {
	assert.Empty(t, RagContext{}.References())

	ctx := RagContext{
		PiData:       []json.RawMessage{json.RawMessage(`{"a":1}`)},
		Helium10Data: []json.RawMessage{json.RawMessage(`{"b":2}`)},
	}
	assert.Equal(t, []string{shared.DatasetTypePi, shared.DatasetTypeHelium10}, ctx.References())
}

func TestQuestionsText(t *testing.T) {
	questions, err := json.Marshal([]model.ScenarioQuestion{
		{
			Text: "What is the root cause?",
			Options: []model.ScenarioQuestionOption{
				{Text: "Traffic issue", IsCorrect: false},
				{Text: "Conversion issue", IsCorrect: true},
			},
		},
	})
	require.NoError(t, err)

	scenario := &model.Scenario{Description: "Sales dropped", Questions: questions}
	text := questionsText(scenario)

	assert.Contains(t, text, "Q1: What is the root cause?")
	assert.Contains(t, text, "(Correct: Conversion issue)")
}

func TestQuestionsText_FallsBackToDescription(t *testing.T) {
	scenario := &model.Scenario{Description: "Sales dropped", Questions: json.RawMessage("not json")}

	assert.Equal(t, "Question: Sales dropped", questionsText(scenario))
}

func TestMockChatResponse(t *testing.T) {
	svc := &AIService{}

	assert.Contains(t, svc.MockChatResponse(), "Rate Limit Reached")
}
