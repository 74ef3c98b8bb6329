package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saransh09/pageindex/internal/llm"
	"github.com/saransh09/pageindex/internal/pageindex"
)

const judgeRelevancePrompt = `You are an expert judge evaluating the quality of retrieved content for answering a question.

Question: %s

Retrieved Content:
%s
%s

Evaluate the retrieved content on these criteria:
1. Relevance: How relevant is the content to the question? (1=not relevant, 5=highly relevant)
2. Answerability: Could someone answer the question using ONLY this retrieved content?

Respond in JSON format:
{
    "relevance": <1-5>,
    "answerable": <true/false>,
    "explanation": "<brief explanation>"
}

Respond with only the JSON, no other text.`

const judgeComparePrompt = `You are an expert judge comparing two retrieval systems.

Question: %s

System A (%s) Retrieved:
%s

---

System B (%s) Retrieved:
%s
%s

Compare the two systems:
1. Which system retrieved more relevant content for answering the question?
2. Rate each system's retrieval quality (1-5).

Respond in JSON format:
{
    "winner": "<A, B, or TIE>",
    "score_system_a": <1-5>,
    "score_system_b": <1-5>,
    "explanation": "<brief explanation of why one system is better>"
}

Respond with only the JSON, no other text.`

// JudgeResult grades one retrieval.
type JudgeResult struct {
	// Relevance is a 1-5 score.
	Relevance int `json:"relevance"`
	// Answerable reports whether the content alone could answer the question.
	Answerable  bool   `json:"answerable"`
	Explanation string `json:"explanation"`
}

// Comparison is the head-to-head verdict for two systems.
type Comparison struct {
	// Winner is 1 for system A, 2 for system B, 0 for a tie.
	Winner int `json:"winner"`
	// ScoreA and ScoreB are 1-5 scores.
	ScoreA      int    `json:"score_a"`
	ScoreB      int    `json:"score_b"`
	Explanation string `json:"explanation"`
}

// Judge evaluates retrieval quality with an LLM.
type Judge struct {
	client pageindex.Completer
}

// NewJudge creates a judge backed by the given client.
func NewJudge(client pageindex.Completer) *Judge {
	return &Judge{client: client}
}

func groundTruthSection(groundTruth string) string {
	if groundTruth == "" {
		return ""
	}
	return "\n\nGround Truth Answer: " + groundTruth
}

// JudgeRelevance grades a single retrieval for a query.
func (j *Judge) JudgeRelevance(ctx context.Context, query, content, groundTruth string) (*JudgeResult, error) {
	prompt := fmt.Sprintf(judgeRelevancePrompt, query, content, groundTruthSection(groundTruth))
	response, err := j.client.Complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var result JudgeResult
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("parsing judge response: %w", err)
	}
	result.Relevance = clampScore(result.Relevance)
	return &result, nil
}

// Compare judges two systems head-to-head on the same query.
func (j *Judge) Compare(ctx context.Context, query, nameA, contentA, nameB, contentB, groundTruth string) (*Comparison, error) {
	prompt := fmt.Sprintf(judgeComparePrompt, query, nameA, contentA, nameB, contentB, groundTruthSection(groundTruth))
	response, err := j.client.Complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Winner      string `json:"winner"`
		ScoreA      int    `json:"score_system_a"`
		ScoreB      int    `json:"score_system_b"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &raw); err != nil {
		return nil, fmt.Errorf("parsing comparison response: %w", err)
	}

	return &Comparison{
		Winner:      parseWinner(raw.Winner),
		ScoreA:      clampScore(raw.ScoreA),
		ScoreB:      clampScore(raw.ScoreB),
		Explanation: raw.Explanation,
	}, nil
}

// parseWinner maps the judge's label to 1 (A), 2 (B), or 0 (tie). Anything
// unrecognized counts as a tie.
func parseWinner(label string) int {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "A":
		return 1
	case "B":
		return 2
	default:
		return 0
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}
