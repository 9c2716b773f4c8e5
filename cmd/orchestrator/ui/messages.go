package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/MyroslavG/orchestrator/internal/api"
)

// Every request message carries the mount generation of the screen that
// issued it. The router only delivers messages whose generation matches the
// active screen, so a result arriving after its screen was unmounted is
// discarded. Requests themselves are never cancelled.

// templatesLoadedMsg carries the template catalog for a creation form.
type templatesLoadedMsg struct {
	gen       int
	templates []api.Template
	err       error
}

// dashboardLoadedMsg joins the parallel posts/campaigns fan-out. Each
// collection carries its own error so one failure does not hide the other
// collection.
type dashboardLoadedMsg struct {
	gen          int
	posts        []api.Post
	postsErr     error
	campaigns    []api.Campaign
	campaignsErr error
}

// postCreatedMsg is the result of a post creation request.
type postCreatedMsg struct {
	gen  int
	post *api.Post
	err  error
}

// campaignCreatedMsg is the result of a campaign creation request.
type campaignCreatedMsg struct {
	gen      int
	campaign *api.Campaign
	err      error
}

// postDeletedMsg is the result of a delete request for one post id.
type postDeletedMsg struct {
	gen int
	id  string
	err error
}

// previewFocusMsg is the one-shot focus request emitted after a successful
// post creation; the presentation layer consumes it by scrolling the preview
// region into view.
type previewFocusMsg struct{ gen int }

func loadTemplates(c *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		templates, err := c.ListTemplates(context.Background())
		return templatesLoadedMsg{gen: gen, templates: templates, err: err}
	}
}

// loadDashboard fans out the posts and campaigns list calls and joins them
// into a single message. Completion order does not matter; the loading state
// clears only once both calls finish.
func loadDashboard(c *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		msg := dashboardLoadedMsg{gen: gen}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			msg.posts, msg.postsErr = c.ListPosts(ctx)
			return nil
		})
		g.Go(func() error {
			msg.campaigns, msg.campaignsErr = c.ListCampaigns(ctx)
			return nil
		})
		_ = g.Wait() // per-collection errors are carried in the message
		return msg
	}
}

func createPost(c *api.Client, gen int, req api.CreatePostRequest) tea.Cmd {
	return func() tea.Msg {
		post, err := c.CreatePost(context.Background(), req)
		return postCreatedMsg{gen: gen, post: post, err: err}
	}
}

func createCampaign(c *api.Client, gen int, req api.CreateCampaignRequest) tea.Cmd {
	return func() tea.Msg {
		campaign, err := c.CreateCampaign(context.Background(), req)
		return campaignCreatedMsg{gen: gen, campaign: campaign, err: err}
	}
}

func deletePost(c *api.Client, gen int, id string) tea.Cmd {
	return func() tea.Msg {
		err := c.DeletePost(context.Background(), id)
		return postDeletedMsg{gen: gen, id: id, err: err}
	}
}

func focusPreview(gen int) tea.Cmd {
	return func() tea.Msg { return previewFocusMsg{gen: gen} }
}
