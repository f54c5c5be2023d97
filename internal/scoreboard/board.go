// Package scoreboard maintains the in-memory list of governance score
// records and the user interactions on them: likes, comments and
// objections. Updates are copy-on-write so callers holding a snapshot
// can detect changes by comparing record values.
package scoreboard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRecordNotFound is returned for an unknown record id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNotAuthor rejects an objection on someone else's score.
	ErrNotAuthor = errors.New("您只能对自己的评分提出异议")
)

// Comment is a remark left on a score record.
type Comment struct {
	ID        string
	Author    string
	Content   string
	CreatedAt time.Time
}

// Objection is a formal dispute of a score record, raised by its author.
type Objection struct {
	ID        string
	Author    string
	Reason    string
	CreatedAt time.Time
}

// Record is a single governance-contribution entry.
type Record struct {
	ID          string
	Author      string
	Category    string
	Description string
	Points      int
	Likers      []string
	Comments    []Comment
	Objections  []Objection
	CreatedAt   time.Time
}

// clone deep-copies the record so interaction slices never alias.
func (r Record) clone() Record {
	out := r
	out.Likers = append([]string(nil), r.Likers...)
	out.Comments = append([]Comment(nil), r.Comments...)
	out.Objections = append([]Objection(nil), r.Objections...)
	return out
}

// Board holds the score records for one viewing user. All methods are
// safe for concurrent use.
type Board struct {
	mu          sync.Mutex
	currentUser string
	records     []Record
}

// New creates a Board for the given user, seeded with the demo records.
func New(currentUser string) *Board {
	now := time.Now()
	return &Board{
		currentUser: currentUser,
		records: []Record{
			{
				ID:          "r1",
				Author:      "张明",
				Category:    "创新贡献",
				Description: "提出了新的模型评审流程",
				Points:      15,
				Likers:      []string{"李华"},
				CreatedAt:   now.Add(-48 * time.Hour),
			},
			{
				ID:          "r2",
				Author:      "李华",
				Category:    "知识分享",
				Description: "组织了治理规范培训",
				Points:      10,
				Likers:      []string{"张明", "王芳"},
				CreatedAt:   now.Add(-24 * time.Hour),
			},
			{
				ID:          "r3",
				Author:      currentUser,
				Category:    "团队协作",
				Description: "协助完成跨部门合规检查",
				Points:      12,
				Likers:      []string{"张明", "李华"},
				CreatedAt:   now,
			},
		},
	}
}

// CurrentUser returns the user the board was created for.
func (b *Board) CurrentUser() string { return b.currentUser }

// Records returns a snapshot of all records.
func (b *Board) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.records))
	for i, r := range b.records {
		out[i] = r.clone()
	}
	return out
}

// replace swaps record i for a new value inside a freshly built slice.
// The old slice and its records are never mutated.
func (b *Board) replace(i int, updated Record) {
	next := make([]Record, len(b.records))
	copy(next, b.records)
	next[i] = updated
	b.records = next
}

func (b *Board) indexOf(recordID string) int {
	for i, r := range b.records {
		if r.ID == recordID {
			return i
		}
	}
	return -1
}

// ToggleLike adds actor to the record's likers, or removes them when
// already present. The updated record is returned.
func (b *Board) ToggleLike(recordID, actor string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}

	updated := b.records[i].clone()
	removed := false
	for j, liker := range updated.Likers {
		if liker == actor {
			updated.Likers = append(updated.Likers[:j], updated.Likers[j+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		updated.Likers = append(updated.Likers, actor)
	}

	b.replace(i, updated)
	return updated.clone(), nil
}

// OpenObjection checks that actor may dispute the record. Only the
// record's author can object; anyone else gets ErrNotAuthor and the
// board is left untouched.
func (b *Board) OpenObjection(recordID, actor string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}
	if b.records[i].Author != actor {
		return Record{}, ErrNotAuthor
	}
	return b.records[i].clone(), nil
}

// AddObjection records a dispute. The same author-only gate as
// OpenObjection applies.
func (b *Board) AddObjection(recordID, actor, reason string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}
	if b.records[i].Author != actor {
		return Record{}, ErrNotAuthor
	}

	updated := b.records[i].clone()
	updated.Objections = append(updated.Objections, Objection{
		ID:        uuid.NewString(),
		Author:    actor,
		Reason:    reason,
		CreatedAt: time.Now(),
	})
	b.replace(i, updated)
	return updated.clone(), nil
}

// AddComment appends a comment to the record.
func (b *Board) AddComment(recordID, author, content string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	if i < 0 {
		return Record{}, ErrRecordNotFound
	}

	updated := b.records[i].clone()
	updated.Comments = append(updated.Comments, Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
	})
	b.replace(i, updated)
	return updated.clone(), nil
}

// Submit adds a new score record authored by the current user.
func (b *Board) Submit(category, description string, points int) Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	record := Record{
		ID:          uuid.NewString(),
		Author:      b.currentUser,
		Category:    category,
		Description: description,
		Points:      points,
		CreatedAt:   time.Now(),
	}
	next := make([]Record, 0, len(b.records)+1)
	next = append(next, b.records...)
	next = append(next, record)
	b.records = next
	return record.clone()
}

// FilterByCategory returns the records in the given category. The
// special category "all" (any case) returns everything. The board is
// not modified.
func (b *Board) FilterByCategory(category string) []Record {
	if strings.EqualFold(category, "all") {
		return b.Records()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Record
	for _, r := range b.records {
		if r.Category == category {
			out = append(out, r.clone())
		}
	}
	return out
}

// LikedBy reports whether user currently likes the record. Computed on
// demand from the record state.
func (b *Board) LikedBy(recordID, user string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	if i < 0 {
		return false
	}
	for _, liker := range b.records[i].Likers {
		if liker == user {
			return true
		}
	}
	return false
}

// HasObjections reports whether the record has at least one objection.
func (b *Board) HasObjections(recordID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(recordID)
	return i >= 0 && len(b.records[i].Objections) > 0
}
