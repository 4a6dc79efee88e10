package post

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
)

const (
	// DefaultEditWindow is how long an author may edit a new post.
	DefaultEditWindow = 10 * time.Minute

	MaxContentLength = 5000
	MaxCommentLength = 1000
)

var (
	// ErrEmptyContent is returned when content is blank.
	ErrEmptyContent = errors.New("post: content is empty")
	// ErrContentTooLong is returned when content exceeds MaxContentLength runes.
	ErrContentTooLong = errors.New("post: content is too long")
	// ErrEmptyID is returned when a post is built without an id.
	ErrEmptyID = errors.New("post: id is empty")
	// ErrEmptyAuthor is returned when a post has no author.
	ErrEmptyAuthor = errors.New("post: author is empty")
	// ErrNotAuthor is returned when someone other than the author edits.
	ErrNotAuthor = errors.New("post: only the author may edit")
	// ErrEditWindowClosed is returned for edits at or after EditableUntil.
	ErrEditWindowClosed = errors.New("post: edit window has closed")
	// ErrEmptyComment is returned for a blank comment.
	ErrEmptyComment = errors.New("post: comment is empty")
	// ErrCommentTooLong is returned when a comment exceeds MaxCommentLength runes.
	ErrCommentTooLong = errors.New("post: comment is too long")
)

// ID identifies a post for its whole lifetime.
type ID string

// Comment is one entry of a post's append-only comment list.
type Comment struct {
	UserID    engagement.ActorID
	Text      string
	CreatedAt time.Time
}

// Post is a user-submitted failure story.
type Post struct {
	id            ID
	content       string
	authorID      engagement.ActorID
	createdAt     time.Time
	editableUntil time.Time
	engagement    engagement.State
	comments      []Comment
	shares        int
	insight       Insight
}

// Snapshot is the flat form of a Post used by repositories.
type Snapshot struct {
	ID            ID
	Content       string
	AuthorID      engagement.ActorID
	CreatedAt     time.Time
	EditableUntil time.Time
	Engagement    engagement.State
	Comments      []Comment
	Shares        int
	Insight       Insight
}

/**
 * New creates a post authored by author at now, editable for window.
 * All engagement counters start at zero and the insight is pending.
 */
func New(id ID, author engagement.ActorID, content string, now time.Time, window time.Duration) (*Post, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultEditWindow
	}

	return &Post{
		id:            id,
		content:       content,
		authorID:      author,
		createdAt:     now,
		editableUntil: now.Add(window),
		engagement:    engagement.NewState(),
		comments:      []Comment{},
		insight:       Insight{Status: InsightPending},
	}, nil
}

// Restore rebuilds a stored post. Engagement is normalised so a stored
// document missing reaction kinds or carrying stale counters still
// satisfies the engagement invariants.
func Restore(s Snapshot) (*Post, error) {
	if s.ID == "" {
		return nil, ErrEmptyID
	}
	if strings.TrimSpace(s.Content) == "" {
		return nil, ErrEmptyContent
	}
	if s.Insight.Status == "" {
		s.Insight.Status = InsightPending
	}
	if !s.Insight.Status.isValid() {
		return nil, ErrInvalidInsightStatus
	}
	shares := s.Shares
	if shares < 0 {
		shares = 0
	}

	return &Post{
		id:            s.ID,
		content:       s.Content,
		authorID:      s.AuthorID,
		createdAt:     s.CreatedAt,
		editableUntil: s.EditableUntil,
		engagement:    s.Engagement.Normalize(),
		comments:      append([]Comment{}, s.Comments...),
		shares:        shares,
		insight:       s.Insight,
	}, nil
}

// Snapshot returns a copy of the post's fields.
func (p *Post) Snapshot() Snapshot {
	return Snapshot{
		ID:            p.id,
		Content:       p.content,
		AuthorID:      p.authorID,
		CreatedAt:     p.createdAt,
		EditableUntil: p.editableUntil,
		Engagement:    p.engagement.Normalize(),
		Comments:      p.Comments(),
		Shares:        p.shares,
		Insight:       p.insight,
	}
}

func (p *Post) ID() ID {
	return p.id
}

func (p *Post) Content() string {
	return p.content
}

func (p *Post) AuthorID() engagement.ActorID {
	return p.authorID
}

func (p *Post) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Post) EditableUntil() time.Time {
	return p.editableUntil
}

func (p *Post) Shares() int {
	return p.shares
}

func (p *Post) Insight() Insight {
	return p.insight
}

// Engagement returns a copy of the engagement state.
func (p *Post) Engagement() engagement.State {
	return p.engagement.Normalize()
}

// Comments returns the comments oldest first.
func (p *Post) Comments() []Comment {
	return append([]Comment{}, p.comments...)
}

// CanEdit reports whether actor may edit the post at now.
func (p *Post) CanEdit(actor engagement.ActorID, now time.Time) bool {
	return p.checkEditable(actor, now) == nil
}

// Edit replaces the content. Only the author may edit, and only strictly
// before EditableUntil.
func (p *Post) Edit(actor engagement.ActorID, content string, now time.Time) error {
	if err := p.checkEditable(actor, now); err != nil {
		return err
	}
	content, err := validateContent(content)
	if err != nil {
		return err
	}
	p.content = content
	return nil
}

// AddComment appends a comment and returns it. Existing comments are
// never reordered or removed.
func (p *Post) AddComment(actor engagement.ActorID, text string, now time.Time) (Comment, error) {
	if actor == "" {
		return Comment{}, ErrEmptyAuthor
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	c := Comment{UserID: actor, Text: text, CreatedAt: now}
	p.comments = append(p.comments, c)
	return c, nil
}

// Share records one more share.
func (p *Post) Share() {
	p.shares++
}

// SetEngagement replaces the engagement state with a normalised copy.
func (p *Post) SetEngagement(s engagement.State) {
	p.engagement = s.Normalize()
}

func (p *Post) checkEditable(actor engagement.ActorID, now time.Time) error {
	if actor == "" || actor != p.authorID {
		return ErrNotAuthor
	}
	if !now.Before(p.editableUntil) {
		return ErrEditWindowClosed
	}
	return nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}
