package handlers

import (
	"time"

	"blogapi/application/commands"
	"blogapi/domain/blog"
)

// PostRequest represents the request body for creating or updating a post
type PostRequest struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	CategoryID string   `json:"categoryId" validate:"required"`
	TagIDs     []string `json:"tagIds" validate:"required,min=1,dive,required"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Category  CategoryResponse `json:"category"`
	Tags      []TagResponse    `json:"tags"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// toCreateCommand maps an API request to the create command.
func toCreateCommand(req PostRequest) commands.CreatePostCommand {
	return commands.CreatePostCommand{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	}
}

// toUpdateCommand maps an API request to the update command.
func toUpdateCommand(req PostRequest) commands.UpdatePostCommand {
	return commands.UpdatePostCommand{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	}
}

// toPostResponse maps a domain post to its API representation.
func toPostResponse(post *blog.Post) PostResponse {
	tags := make([]TagResponse, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return PostResponse{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		Category: CategoryResponse{
			ID:   post.Category.ID,
			Name: post.Category.Name,
		},
		Tags:      tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// toPostResponses maps a list of domain posts.
func toPostResponses(posts []*blog.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post))
	}
	return responses
}
