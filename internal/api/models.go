// Package api provides the typed HTTP client for the Media Orchestrator
// content-generation service. All generation and scheduling logic lives
// server-side; this package is a pure I/O boundary.
package api

import "time"

// TemplateType identifies a content archetype. Templates are selected by
// type, not by id; the type is the value sent back on creation requests.
type TemplateType = string

// TemplateTypeCustom is the sentinel template that requires a non-empty
// custom prompt before a post can be generated from it.
const TemplateTypeCustom TemplateType = "custom"

// Template is a server-defined catalog entry. Immutable on the client.
type Template struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              TemplateType `json:"type"`
	Description       string       `json:"description"`
	StylePrompt       string       `json:"style_prompt,omitempty"`
	ContentGuidelines string       `json:"content_guidelines,omitempty"`
	VisualStyle       string       `json:"visual_style,omitempty"`
	Icon              string       `json:"icon"`
}

// PostStatus is the server-assigned lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

// Post is a generated piece of content. Posts are created and deleted by
// explicit user action and never mutated in place by the client.
type Post struct {
	ID           string       `json:"id"`
	TemplateType TemplateType `json:"template_type"`
	Caption      string       `json:"caption"`
	ImageURL     string       `json:"image_url,omitempty"`
	ImagePrompt  string       `json:"image_prompt,omitempty"`
	Hashtags     []string     `json:"hashtags"`
	ScheduledAt  *time.Time   `json:"scheduled_at,omitempty"`
	Status       PostStatus   `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Scheduled reports whether the post is in the "scheduled" state. The UI
// branches only on scheduled vs everything else.
func (p Post) Scheduled() bool { return p.Status == PostStatusScheduled }

// Frequency is a campaign's posting cadence.
type Frequency string

const (
	FrequencyDaily           Frequency = "daily"
	FrequencyTwiceDaily      Frequency = "twice_daily"
	FrequencyThreeTimesDaily Frequency = "three_times_daily"
)

// CampaignStatus is the server-assigned lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is a recurring generation schedule. Campaigns are created, never
// edited or deleted, by this client.
type Campaign struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	TemplateType TemplateType   `json:"template_type"`
	Posts        []Post         `json:"posts"`
	Frequency    Frequency      `json:"frequency"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	Status       CampaignStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Active reports whether the campaign is currently producing scheduled posts.
func (c Campaign) Active() bool { return c.Status == CampaignStatusActive }

// CreatePostRequest is the body of POST /posts. Empty optional fields are
// omitted from the wire form.
type CreatePostRequest struct {
	TemplateType TemplateType `json:"template_type"`
	CustomPrompt string       `json:"custom_prompt,omitempty"`
	Tone         string       `json:"tone,omitempty"`
	ScheduleAt   *time.Time   `json:"schedule_at,omitempty"`
}

// CreateCampaignRequest is the body of POST /campaigns. StartDate is an
// absolute instant; it marshals as RFC 3339.
type CreateCampaignRequest struct {
	Name         string       `json:"name"`
	TemplateType TemplateType `json:"template_type"`
	Frequency    Frequency    `json:"frequency"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	PostsCount   int          `json:"posts_count"`
}

// MinPostsCount and MaxPostsCount bound a campaign's posts_count.
const (
	MinPostsCount = 1
	MaxPostsCount = 90
)

// ClampPostsCount forces n into the inclusive [MinPostsCount, MaxPostsCount]
// range enforced by the campaign form's input control.
func ClampPostsCount(n int) int {
	if n < MinPostsCount {
		return MinPostsCount
	}
	if n > MaxPostsCount {
		return MaxPostsCount
	}
	return n
}
