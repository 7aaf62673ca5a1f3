package handlers

import (
	"errors"
	"log"
	"net/http"

	"roomfeed/internal/models"
	"roomfeed/internal/service"

	"github.com/gin-gonic/gin"
)

const multipartContentType = "multipart/form-data"

type PostHandler struct {
	service        service.PostService
	maxUploadBytes int64
}

func NewPostHandler(service service.PostService, maxUploadBytes int64) *PostHandler {
	return &PostHandler{service: service, maxUploadBytes: maxUploadBytes}
}

type createPostRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url"`
}

type likePostRequest struct {
	PostID *uint `json:"post_id" binding:"required"`
}

// CreatePost accepts either a JSON body or a multipart form carrying the
// image in the "file" part; the Content-Type decides which.
func (h *PostHandler) CreatePost(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var (
		post *models.Post
		err  error
	)
	if c.ContentType() == multipartContentType {
		post, err = h.createWithImage(c)
	} else {
		var req createPostRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			apiErr := bindingError(bindErr)
			c.JSON(apiErr.StatusCode, apiErr)
			return
		}
		post, err = h.service.CreatePost(c.Request.Context(), service.CreatePostInput{
			Title:    req.Title,
			Content:  req.Content,
			ImageURL: req.ImageURL,
		})
	}
	if err != nil {
		writeError(c, err, "")
		return
	}

	resp := gin.H{
		"id":      post.ID,
		"message": "Post created",
	}
	if post.ImageURL != nil {
		resp["image_url"] = *post.ImageURL
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) createWithImage(c *gin.Context) (*models.Post, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, NewBadRequestError("invalid multipart form")
		}
		// a part sent with an empty filename is parsed as a plain value
		if form := c.Request.MultipartForm; form != nil {
			if _, ok := form.Value["file"]; ok {
				return nil, &service.UploadError{Message: "No selected file"}
			}
		}
		return nil, NewBadRequestError("No file part")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Failed to close upload %s: %v", fileHeader.Filename, err)
		}
	}()

	return h.service.CreatePostWithImage(c.Request.Context(), service.CreatePostInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}, service.ImageUpload{
		Filename: fileHeader.Filename,
		Body:     file,
	})
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "post")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) LikePost(c *gin.Context) {
	var req likePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiErr := bindingError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	if _, err := h.service.LikePost(c.Request.Context(), *req.PostID); err != nil {
		writeError(c, err, "post does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked"})
}

func (h *PostHandler) GetLikes(c *gin.Context) {
	id, ok := pathID(c, "post")
	if !ok {
		return
	}

	count, err := h.service.CountLikes(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id": id,
		"likes":   count,
	})
}
