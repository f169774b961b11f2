// Package feed assembles the post feed: visibility filtering, author and
// comment attachment, and like aggregation, plus the post lifecycle
// (create, comment, like toggle, visibility change, delete).
package feed

import (
	"errors"
	"strings"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/models"
	"gorm.io/gorm"
)

// Assembler builds enriched post listings for a viewer.
type Assembler struct {
	db *gorm.DB
}

// NewAssembler creates an Assembler on the given database handle.
func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// VisiblePosts returns the posts the viewer may see, newest first: all
// public posts, plus the viewer's own private posts when a viewer is
// present.
func (a *Assembler) VisiblePosts(viewerID *uint) ([]models.Post, error) {
	query := a.enrichedQuery()
	if viewerID != nil {
		query = query.Where("visibility = ? OR (visibility = ? AND user_id = ?)",
			models.VisibilityPublic, models.VisibilityPrivate, *viewerID)
	} else {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	posts := make([]models.Post, 0)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := a.attachEngagement(posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// UserPosts returns one author's posts, newest first. The author sees all
// of their posts; everyone else sees only the public ones.
func (a *Assembler) UserPosts(authorID uint, viewerID *uint) ([]models.Post, error) {
	publicOnly := viewerID == nil || *viewerID != authorID
	return a.postsOf(authorID, viewerID, publicOnly)
}

// PublicPosts returns one author's public posts, newest first, with like
// state computed for the viewer. Used for profile pages, which never show
// private posts regardless of who is looking.
func (a *Assembler) PublicPosts(authorID uint, viewerID *uint) ([]models.Post, error) {
	return a.postsOf(authorID, viewerID, true)
}

func (a *Assembler) postsOf(authorID uint, viewerID *uint, publicOnly bool) ([]models.Post, error) {
	query := a.enrichedQuery().Where("user_id = ?", authorID)
	if publicOnly {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	posts := make([]models.Post, 0)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := a.attachEngagement(posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost stores a post for the author. Either content or media must be
// present. A media MIME in the image family tags the post as an image,
// anything else as a video; no media means a text post. New posts default
// to public visibility.
func (a *Assembler) CreatePost(authorID uint, content, mediaURL, mediaMime string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && mediaURL == "" {
		return nil, apperr.Invalid("content or media is required")
	}

	post := models.Post{
		UserID:     authorID,
		MediaType:  models.MediaText,
		Visibility: models.VisibilityPublic,
	}
	if content != "" {
		post.Content = &content
	}
	if mediaURL != "" {
		post.MediaURL = &mediaURL
		if strings.HasPrefix(mediaMime, "image/") {
			post.MediaType = models.MediaImage
		} else {
			post.MediaType = models.MediaVideo
		}
	}

	if err := a.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return a.GetPost(post.ID, &authorID)
}

// GetPost returns one post fully enriched for the viewer.
func (a *Assembler) GetPost(postID uint, viewerID *uint) (*models.Post, error) {
	var post models.Post
	err := a.enrichedQuery().First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, err
	}

	posts := []models.Post{post}
	if err := a.attachEngagement(posts, viewerID); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// ToggleLike flips the viewer's like on a post and reports the resulting
// state with a fresh total. Creating the like can race with an identical
// concurrent toggle; the unique (post_id, user_id) index makes the loser's
// insert fail with a duplicate key, which means the liked state already
// holds, so the loser reports liked=true instead of surfacing a conflict.
func (a *Assembler) ToggleLike(postID, userID uint) (bool, int64, error) {
	if err := a.ensurePostExists(postID); err != nil {
		return false, 0, err
	}

	var liked bool
	var existing models.Like
	err := a.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	switch {
	case err == nil:
		if err := a.db.Delete(&existing).Error; err != nil {
			return false, 0, err
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.createLike(postID, userID); err != nil {
			return false, 0, err
		}
		liked = true
	default:
		return false, 0, err
	}

	count, err := a.likeCount(postID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// createLike inserts the like row, treating a duplicate-key failure as
// success: the row exists either way.
func (a *Assembler) createLike(postID, userID uint) error {
	err := a.db.Create(&models.Like{PostID: postID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (a *Assembler) likeCount(postID uint) (int64, error) {
	var count int64
	err := a.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// AddComment stores a comment on the post and returns it with the author
// summary attached.
func (a *Assembler) AddComment(postID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("comment content is required")
	}
	if err := a.ensurePostExists(postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := a.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := a.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// SetVisibility updates a post's visibility. Only the author may do this.
func (a *Assembler) SetVisibility(postID, requesterID uint, visibility string) (*models.Post, error) {
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, apperr.Invalid("visibility must be public or private")
	}

	post, err := a.ownedPost(postID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := a.db.Model(post).Update("visibility", visibility).Error; err != nil {
		return nil, err
	}
	return a.GetPost(postID, &requesterID)
}

// UpdateContent replaces a post's text. Only the author may do this.
func (a *Assembler) UpdateContent(postID, requesterID uint, content string) (*models.Post, error) {
	post, err := a.ownedPost(postID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := a.db.Model(post).Update("content", content).Error; err != nil {
		return nil, err
	}
	return a.GetPost(postID, &requesterID)
}

// DeletePost removes a post along with its comments and likes. Only the
// author may do this.
func (a *Assembler) DeletePost(postID, requesterID uint) error {
	post, err := a.ownedPost(postID, requesterID)
	if err != nil {
		return err
	}

	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

func (a *Assembler) ownedPost(postID, requesterID uint) (*models.Post, error) {
	var post models.Post
	err := a.db.First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, err
	}
	if post.UserID != requesterID {
		return nil, apperr.Forbidden("not authorized")
	}
	return &post, nil
}

func (a *Assembler) ensurePostExists(postID uint) error {
	var count int64
	if err := a.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// enrichedQuery preloads the author and the newest-first comments with
// their authors, ordering posts newest first.
func (a *Assembler) enrichedQuery() *gorm.DB {
	return a.db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		Order("created_at DESC")
}

// attachEngagement fills LikeCount for every post and IsLiked for the
// viewer in two grouped queries.
func (a *Assembler) attachEngagement(posts []models.Post, viewerID *uint) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := a.db.Model(&models.Like{}).
		Select("post_id, count(*) as total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}

	likedByViewer := make(map[uint]bool)
	if viewerID != nil {
		var likedIDs []uint
		err := a.db.Model(&models.Like{}).
			Where("user_id = ? AND post_id IN ?", *viewerID, ids).
			Pluck("post_id", &likedIDs).Error
		if err != nil {
			return err
		}
		for _, id := range likedIDs {
			likedByViewer[id] = true
		}
	}

	for i := range posts {
		posts[i].LikeCount = counts[posts[i].ID]
		posts[i].IsLiked = likedByViewer[posts[i].ID]
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
	}
	return nil
}
