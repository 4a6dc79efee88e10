package post

import (
	"strings"
	"testing"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
)

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	t.Parallel()

	p, err := New("post-id", "alice", "  shipped a bug to prod  ", created, 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID() != "post-id" || p.AuthorID() != "alice" {
		t.Fatalf("unexpected identity: %s %s", p.ID(), p.AuthorID())
	}
	if p.Content() != "shipped a bug to prod" {
		t.Fatalf("content should be trimmed: %q", p.Content())
	}
	if !p.EditableUntil().Equal(created.Add(10 * time.Minute)) {
		t.Fatalf("unexpected editableUntil: %s", p.EditableUntil())
	}
	if !p.Engagement().Equal(engagement.NewState()) {
		t.Fatalf("engagement should start empty: %+v", p.Engagement())
	}
	if len(p.Comments()) != 0 || p.Shares() != 0 {
		t.Fatalf("comments and shares should start empty")
	}
	if !p.IsPending() {
		t.Fatalf("expected pending insight but got %s", p.Insight().Status)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		id      ID
		author  engagement.ActorID
		content string
		wantErr error
	}{
		{name: "empty id", id: "", author: "a", content: "x", wantErr: ErrEmptyID},
		{name: "empty author", id: "p", author: "", content: "x", wantErr: ErrEmptyAuthor},
		{name: "blank content", id: "p", author: "a", content: "   ", wantErr: ErrEmptyContent},
		{name: "too long", id: "p", author: "a", content: strings.Repeat("x", MaxContentLength+1), wantErr: ErrContentTooLong},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.id, tc.author, tc.content, created, 0); err != tc.wantErr {
				t.Fatalf("expected %v but got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNew_DefaultWindow(t *testing.T) {
	t.Parallel()

	p, err := New("p", "a", "x", created, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.EditableUntil().Equal(created.Add(DefaultEditWindow)) {
		t.Fatalf("expected default window, got %s", p.EditableUntil())
	}
}

func TestEdit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		actor   engagement.ActorID
		at      time.Time
		wantErr error
	}{
		{name: "author inside window", actor: "alice", at: created.Add(9 * time.Minute)},
		{name: "someone else", actor: "bob", at: created.Add(time.Minute), wantErr: ErrNotAuthor},
		{name: "exactly at deadline", actor: "alice", at: created.Add(10 * time.Minute), wantErr: ErrEditWindowClosed},
		{name: "after deadline", actor: "alice", at: created.Add(time.Hour), wantErr: ErrEditWindowClosed},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, _ := New("p", "alice", "first draft", created, 10*time.Minute)
			err := p.Edit(tc.actor, "second draft", tc.at)
			if err != tc.wantErr {
				t.Fatalf("expected %v but got %v", tc.wantErr, err)
			}
			want := "first draft"
			if tc.wantErr == nil {
				want = "second draft"
			}
			if p.Content() != want {
				t.Fatalf("unexpected content %q", p.Content())
			}
		})
	}
}

func TestAddComment_AppendOnly(t *testing.T) {
	t.Parallel()

	p, _ := New("p", "alice", "story", created, 0)
	if _, err := p.AddComment("bob", "first", created.Add(time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.AddComment("carol", "second", created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comments := p.Comments()
	if len(comments) != 2 || comments[0].Text != "first" || comments[1].Text != "second" {
		t.Fatalf("comments should keep insertion order: %+v", comments)
	}

	comments[0].Text = "tampered"
	if p.Comments()[0].Text != "first" {
		t.Fatalf("Comments should return a copy")
	}

	if _, err := p.AddComment("bob", "  ", created); err != ErrEmptyComment {
		t.Fatalf("expected ErrEmptyComment but got %v", err)
	}
	if _, err := p.AddComment("bob", strings.Repeat("y", MaxCommentLength+1), created); err != ErrCommentTooLong {
		t.Fatalf("expected ErrCommentTooLong but got %v", err)
	}
}

func TestRestore_NormalizesEngagement(t *testing.T) {
	t.Parallel()

	p, err := Restore(Snapshot{
		ID:       "p",
		Content:  "story",
		AuthorID: "alice",
		Engagement: engagement.State{
			Likes:   -2,
			LikedBy: []engagement.ActorID{"bob", "bob"},
		},
		Shares: -1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := p.Engagement()
	if e.Likes != 1 || len(e.Reactions) != len(engagement.ReactionKinds()) {
		t.Fatalf("engagement should be normalised: %+v", e)
	}
	if p.Shares() != 0 {
		t.Fatalf("negative shares should clamp to 0, got %d", p.Shares())
	}
	if !p.IsPending() {
		t.Fatalf("missing insight status should default to pending")
	}
}

func TestRestore_InvalidInsightStatus(t *testing.T) {
	t.Parallel()

	_, err := Restore(Snapshot{ID: "p", Content: "c", Insight: Insight{Status: "unknown"}})
	if err != ErrInvalidInsightStatus {
		t.Fatalf("expected ErrInvalidInsightStatus but got %v", err)
	}
}

func TestInsightTransitions(t *testing.T) {
	t.Parallel()

	p, _ := New("p", "alice", "story", created, 0)
	if err := p.MarkInsightVerified(""); err != ErrEmptyInsight {
		t.Fatalf("expected ErrEmptyInsight but got %v", err)
	}
	if err := p.MarkInsightVerified("Failure is data."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Insight().Status != InsightVerified {
		t.Fatalf("expected verified but got %s", p.Insight().Status)
	}
	if err := p.MarkInsightRejected("late"); err != ErrInvalidInsightTransition {
		t.Fatalf("expected ErrInvalidInsightTransition but got %v", err)
	}
}

func TestCheckInsightText(t *testing.T) {
	long := strings.Repeat("a", MaxInsightLength+1)
	ok := "Failing the exam showed that steady weekly practice beats a single night of cramming."

	cases := []struct {
		name       string
		text       string
		wantReject bool
	}{
		{name: "acceptable", text: ok},
		{name: "empty", text: "", wantReject: true},
		{name: "too short", text: "Keep going.", wantReject: true},
		{name: "too long", text: long, wantReject: true},
		{name: "banned word", text: "Sometimes a plan has to die so a better one can grow in its place.", wantReject: true},
		{name: "banned word inside another word is fine", text: "A diet of small daily wins made the next attempt far less frightening."},
		{name: "url", text: "Read more about recovering from setbacks at https://example.com today.", wantReject: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reason := CheckInsightText(NormalizeInsightText(tc.text))
			if (reason != "") != tc.wantReject {
				t.Fatalf("reject=%v reason=%q", tc.wantReject, reason)
			}
		})
	}
}

func TestNormalizeInsightText(t *testing.T) {
	got := NormalizeInsightText("  line one\r\nline   two \n")
	if got != "line one line two" {
		t.Fatalf("unexpected normalised text: %q", got)
	}
}
