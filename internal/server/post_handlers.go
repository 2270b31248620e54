package server

import (
	"devlink/internal/middleware"
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostRequest is the payload for creating a post or a comment.
type PostRequest struct {
	Text string `json:"text"`
}

// GetPosts returns the whole feed, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPost returns a single post with its likes and comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}

	post, err := s.postService.Get(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost publishes a new post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created", "post_id", post.ID)
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post owned by the caller.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}

	if err := s.postService.Delete(c.UserContext(), currentUserID(c), postID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost records the caller's like and returns the post's likes.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}

	likes, err := s.postService.Like(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(likes)
}

// UnlikePost removes the caller's like and returns the post's likes.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}

	likes, err := s.postService.Unlike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(likes)
}

// AddComment prepends a comment and returns the post's comments.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.postService.AddComment(c.UserContext(), currentUserID(c), postID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// DeleteComment removes a comment owned by the caller and returns the rest.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Post not found"))
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondError(c, models.NewNotFoundError("Comment does not exist"))
	}

	comments, err := s.postService.RemoveComment(c.UserContext(), currentUserID(c), postID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}
