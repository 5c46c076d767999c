package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ContentType discriminates the two kinds of content the site publishes.
type ContentType string

// Available content types.
const (
	// ContentTypeNote is a short personal note.
	ContentTypeNote ContentType = "note"

	// ContentTypeBlog is a long-form blog post.
	ContentTypeBlog ContentType = "blog"
)

// IsValid returns true if the content type is recognised.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeNote, ContentTypeBlog:
		return true
	default:
		return false
	}
}

// Label returns the issue label used for this content type on the remote
// repository.
func (t ContentType) Label() string {
	return string(t)
}

// String returns the string representation.
func (t ContentType) String() string {
	return string(t)
}

// Origin identifies which backing store a content item lives in.
type Origin string

// Available origins.
const (
	// OriginLocal is a draft stored only in the local draft store.
	OriginLocal Origin = "local"

	// OriginRemote is a published post backed by a GitHub issue.
	OriginRemote Origin = "remote"
)

// RemoteIDPrefix prefixes the ID of remote-origin content items.
// The numeric suffix is the issue number.
const RemoteIDPrefix = "github-"

// FreshnessWindow is how long after creation an item is flagged as new.
const FreshnessWindow = 7 * 24 * time.Hour

// ContentItem is a normalised note or blog post, regardless of whether it is
// stored locally or as a remote issue. The ID uniquely identifies an item
// within a merged listing; Origin determines which backing store subsequent
// reads and writes must target.
type ContentItem struct {
	// ID is a time-based id for local drafts, or "github-<number>" for
	// remote items.
	ID string `json:"id"`

	// Title is the item title.
	Title string `json:"title"`

	// Body is the raw markdown content.
	Body string `json:"body"`

	// Type discriminates note from blog post.
	Type ContentType `json:"type"`

	// Origin identifies the backing store.
	Origin Origin `json:"origin"`

	// Tags are free-form labels, excluding the content-type label.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is when the item was created.
	CreatedAt time.Time `json:"created_at"`

	// IssueNumber is the remote issue number. Zero for local drafts.
	IssueNumber int `json:"issue_number,omitempty"`
}

// IsNew reports whether the item falls inside the freshness window
// relative to now. Pure function of (CreatedAt, now) so listings can
// badge recent items without caching state.
func (i ContentItem) IsNew(now time.Time) bool {
	return i.CreatedAt.After(now.Add(-FreshnessWindow))
}

// IsRemote reports whether the item is backed by a remote issue.
func (i ContentItem) IsRemote() bool {
	return i.Origin == OriginRemote
}

// RemoteID builds the listing id for a remote issue number.
func RemoteID(number int) string {
	return RemoteIDPrefix + strconv.Itoa(number)
}

// ParseRemoteID extracts the issue number from a remote-origin id.
// Returns false if the id does not denote a remote item.
func ParseRemoteID(id string) (int, bool) {
	suffix, ok := strings.CutPrefix(id, RemoteIDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NewDraftID generates a monotonically distinct time-based id for a new
// local draft, mirroring the millisecond timestamps the site historically
// used for draft ids.
func NewDraftID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// YearBucket groups content items published in the same calendar year.
type YearBucket struct {
	Year  int
	Items []ContentItem
}

// GroupByYear buckets items by calendar year of creation. Buckets are
// sorted descending by year and items within a bucket descending by
// creation time. Years with no items are omitted.
func GroupByYear(items []ContentItem) []YearBucket {
	byYear := make(map[int][]ContentItem)
	for _, item := range items {
		year := item.CreatedAt.Year()
		byYear[year] = append(byYear[year], item)
	}

	buckets := make([]YearBucket, 0, len(byYear))
	for year, bucketed := range byYear {
		sort.SliceStable(bucketed, func(a, b int) bool {
			return bucketed[a].CreatedAt.After(bucketed[b].CreatedAt)
		})
		buckets = append(buckets, YearBucket{Year: year, Items: bucketed})
	}

	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Year > buckets[b].Year
	})

	return buckets
}

// FilterByTitle keeps items whose title contains the query as a
// case-insensitive substring. An empty query keeps everything.
func FilterByTitle(items []ContentItem, query string) []ContentItem {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	matched := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			matched = append(matched, item)
		}
	}
	return matched
}
