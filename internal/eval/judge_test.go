package eval

import (
	"context"
	"testing"
)

type scriptedClient struct {
	responses []string
	calls     int
}

func (s *scriptedClient) Complete(ctx context.Context, system, user string) (string, error) {
	response := s.responses[s.calls%len(s.responses)]
	s.calls++
	return response, nil
}

func TestParseWinner(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"A", 1},
		{"a", 1},
		{" B ", 2},
		{"TIE", 0},
		{"tie", 0},
		{"neither", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseWinner(tt.label); got != tt.want {
			t.Errorf("parseWinner(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {3, 3}, {5, 5}, {9, 5}, {-2, 1},
	}
	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestJudgeRelevance(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"relevance": 4, "answerable": true, "explanation": "covers the topic"}`,
	}}
	judge := NewJudge(client)

	result, err := judge.JudgeRelevance(context.Background(), "what?", "retrieved text", "truth")
	if err != nil {
		t.Fatal(err)
	}
	if result.Relevance != 4 || !result.Answerable {
		t.Errorf("result = %+v", result)
	}
}

func TestJudgeCompare(t *testing.T) {
	t.Run("system A wins", func(t *testing.T) {
		client := &scriptedClient{responses: []string{
			"```json\n{\"winner\": \"A\", \"score_system_a\": 5, \"score_system_b\": 2, \"explanation\": \"A was better\"}\n```",
		}}
		judge := NewJudge(client)

		cmp, err := judge.Compare(context.Background(), "q?", "TreeSearch", "a content", "VectorRAG", "b content", "")
		if err != nil {
			t.Fatal(err)
		}
		if cmp.Winner != 1 || cmp.ScoreA != 5 || cmp.ScoreB != 2 {
			t.Errorf("comparison = %+v", cmp)
		}
	})

	t.Run("out of range scores clamped", func(t *testing.T) {
		client := &scriptedClient{responses: []string{
			`{"winner": "TIE", "score_system_a": 7, "score_system_b": 0, "explanation": "odd"}`,
		}}
		cmp, err := NewJudge(client).Compare(context.Background(), "q?", "A", "x", "B", "y", "")
		if err != nil {
			t.Fatal(err)
		}
		if cmp.Winner != 0 || cmp.ScoreA != 5 || cmp.ScoreB != 1 {
			t.Errorf("comparison = %+v", cmp)
		}
	})

	t.Run("malformed response", func(t *testing.T) {
		client := &scriptedClient{responses: []string{"the first one, obviously"}}
		if _, err := NewJudge(client).Compare(context.Background(), "q?", "A", "x", "B", "y", ""); err == nil {
			t.Error("expected parse error")
		}
	})
}
