package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"roomfeed/internal/models"
	"roomfeed/internal/repository"
	"roomfeed/internal/uploads"
)

const postNotFound = "Post not found"

type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error)
	CreatePostWithImage(ctx context.Context, input CreatePostInput, image ImageUpload) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	LikePost(ctx context.Context, postID uint) (*models.Like, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
}

type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL *string
}

type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// ImageStore persists uploaded images; implemented by uploads.Store.
type ImageStore interface {
	Save(name string, r io.Reader) (string, error)
	Remove(url string) error
}

type postService struct {
	repo      repository.PostRepository
	likeRepo  repository.LikeRepository
	cacheRepo repository.CacheRepository
	images    ImageStore
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewPostService(
	repo repository.PostRepository,
	likeRepo repository.LikeRepository,
	cacheRepo repository.CacheRepository,
	images ImageStore,
	cacheTTL time.Duration,
) PostService {
	return &postService{
		repo:      repo,
		likeRepo:  likeRepo,
		cacheRepo: cacheRepo,
		images:    images,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

func validatePost(input CreatePostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return missingField("title")
	}
	if strings.TrimSpace(input.Content) == "" {
		return missingField("content")
	}
	return nil
}

func (s *postService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	if err := validatePost(input); err != nil {
		return nil, err
	}
	return s.insert(ctx, input)
}

func (s *postService) insert(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", fromRepository(err, ""))
	}

	if err := s.cacheRepo.Delete(ctx, repository.CacheKeyPostList); err != nil {
		log.Printf("Failed to invalidate post list: %v", err)
	}

	return post, nil
}

func (s *postService) CreatePostWithImage(ctx context.Context, input CreatePostInput, image ImageUpload) (*models.Post, error) {
	if image.Filename == "" {
		return nil, &UploadError{Message: "No selected file"}
	}
	if !uploads.AllowedFile(image.Filename) {
		return nil, &UploadError{Message: "File type not allowed"}
	}

	name := uploads.SecureFilename(image.Filename)
	if name == "" || !uploads.AllowedFile(name) {
		return nil, &UploadError{Message: "Invalid file name"}
	}

	if err := validatePost(input); err != nil {
		return nil, err
	}

	url, err := s.images.Save(name, image.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	input.ImageURL = &url
	post, err := s.insert(ctx, input)
	if err != nil {
		s.discardUpload(ctx, url)
		return nil, err
	}

	log.Printf("Post %d created with image %s", post.ID, url)
	return post, nil
}

// discardUpload removes a file saved for a post that was never created,
// unless an earlier post stored the same name and still points at it.
// Anything left behind is collected by the upload sweep.
func (s *postService) discardUpload(ctx context.Context, url string) {
	inUse, err := s.repo.ImageInUse(ctx, url)
	if err != nil {
		log.Printf("Failed to check references of upload %s, keeping it: %v", url, err)
		return
	}
	if inUse {
		return
	}
	if err := s.images.Remove(url); err != nil {
		log.Printf("Failed to remove orphaned upload %s: %v", url, err)
	}
}

func (s *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var cached []models.Post
	if found, err := s.cacheRepo.GetJSON(ctx, repository.CacheKeyPostList, &cached); err != nil {
		log.Printf("Failed to read cached post list: %v", err)
	} else if found {
		return cached, nil
	}

	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if err := s.cacheRepo.SetJSON(ctx, repository.CacheKeyPostList, posts, s.cacheTTL); err != nil {
		log.Printf("Failed to cache post list: %v", err)
	}

	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, postNotFound)
	}
	return post, nil
}

func (s *postService) LikePost(ctx context.Context, postID uint) (*models.Like, error) {
	like := &models.Like{
		PostID:  postID,
		LikedAt: s.now().UTC(),
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, fmt.Errorf("failed to like post: %w", fromRepository(err, ""))
	}
	return like, nil
}

func (s *postService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return 0, fromRepository(err, postNotFound)
	}

	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
