package service

import (
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
)

func TestVoteState_FirstVote(t *testing.T) {
	state := VoteState{}.Apply(domain.VoteUp)

	want := VoteState{Score: 1, Upvotes: 1, UserVote: 1}
	if state != want {
		t.Errorf("after first upvote: %+v, want %+v", state, want)
	}
}

func TestVoteState_ToggleOffIsInvolution(t *testing.T) {
	start := VoteState{Score: 3, Upvotes: 5, Downvotes: 2}

	for _, value := range []int{domain.VoteUp, domain.VoteDown} {
		if got := start.Apply(value).Apply(value); got != start {
			t.Errorf("double click with %d: %+v, want starting state %+v", value, got, start)
		}
	}
}

func TestVoteState_SwitchMovesScoreByTwo(t *testing.T) {
	state := VoteState{Score: 1, Upvotes: 1, UserVote: domain.VoteUp}

	got := state.Apply(domain.VoteDown)
	want := VoteState{Score: -1, Upvotes: 0, Downvotes: 1, UserVote: domain.VoteDown}
	if got != want {
		t.Errorf("switch up->down: %+v, want %+v", got, want)
	}

	back := got.Apply(domain.VoteUp)
	if back != state {
		t.Errorf("switch back down->up: %+v, want %+v", back, state)
	}
}

func TestVoteState_InvalidValueIsIgnored(t *testing.T) {
	start := VoteState{Score: 2, Upvotes: 2, UserVote: domain.VoteUp}

	for _, value := range []int{0, 2, -2, 100} {
		if got := start.Apply(value); got != start {
			t.Errorf("Apply(%d) changed state: %+v", value, got)
		}
	}
}

func TestVoteState_ScoreStaysConsistentWithCounts(t *testing.T) {
	state := VoteState{}
	clicks := []int{1, 1, -1, -1, 1, -1, -1, 1}

	for _, value := range clicks {
		state = state.Apply(value)
		if state.Score != state.Upvotes-state.Downvotes {
			t.Fatalf("score %d != upvotes %d - downvotes %d", state.Score, state.Upvotes, state.Downvotes)
		}
		if state.Upvotes < 0 || state.Downvotes < 0 {
			t.Fatalf("negative counters: %+v", state)
		}
	}
}

func TestVoteState_Aggregate(t *testing.T) {
	state := VoteState{Score: -2, Upvotes: 1, Downvotes: 3, UserVote: -1}

	got := state.Aggregate()
	want := domain.AggregatedScore{Score: -2, Upvotes: 1, Downvotes: 3}
	if got != want {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}
