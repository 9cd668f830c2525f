package service

import (
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
)

func scoredEdges(scores ...int) []domain.ScoredEdge {
	edges := make([]domain.ScoredEdge, len(scores))
	for i, score := range scores {
		edges[i] = domain.ScoredEdge{EdgeID: string(rune('a' + i)), Score: score}
	}
	return edges
}

func TestVisible_ScoreBoundary(t *testing.T) {
	edges := scoredEdges(5, 0, -3, -4)

	visible := Visible(edges)

	if len(visible) != 3 {
		t.Fatalf("visible count = %d, want 3", len(visible))
	}
	for _, edge := range visible {
		if edge.Score < rejectionThreshold {
			t.Errorf("edge with score %d should be hidden", edge.Score)
		}
	}
}

func TestVisible_KeepsOrder(t *testing.T) {
	edges := scoredEdges(7, -10, 3, -3)

	visible := Visible(edges)

	want := []int{7, 3, -3}
	for i, edge := range visible {
		if edge.Score != want[i] {
			t.Errorf("position %d: score %d, want %d", i, edge.Score, want[i])
		}
	}
}

func TestVisiblePage(t *testing.T) {
	edges := scoredEdges(8, 7, 6, 5, 4, 3, 2, 1)

	page := VisiblePage(edges, defaultSimilarPageSize, false)
	if len(page) != defaultSimilarPageSize {
		t.Errorf("default page = %d edges, want %d", len(page), defaultSimilarPageSize)
	}

	all := VisiblePage(edges, defaultSimilarPageSize, true)
	if len(all) != len(edges) {
		t.Errorf("show-all page = %d edges, want %d", len(all), len(edges))
	}

	short := VisiblePage(edges[:3], defaultSimilarPageSize, false)
	if len(short) != 3 {
		t.Errorf("short list page = %d edges, want 3", len(short))
	}
}
