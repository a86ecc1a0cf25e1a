package serializer

import (
	"bytes"
	"html/template"
	"time"

	"blog-api/services/blog/internal/entity"
)

// MediaResolver turns a stored image path into a URL clients can load.
type MediaResolver interface {
	ObjectURL(path string) string
}

// Options controls how far related objects are expanded.
type Options struct {
	Depth int
	Media MediaResolver
}

func (o Options) url(path string) string {
	if o.Media == nil || path == "" {
		return path
	}
	return o.Media.ObjectURL(path)
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User never carries the password hash or the one-time code.
func User(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ProfileResponse struct {
	ID        string        `json:"id"`
	User      *UserResponse `json:"user"`
	Image     string        `json:"image"`
	ImageURL  string        `json:"image_url"`
	Thumbnail template.HTML `json:"thumbnail"`
	FullName  string        `json:"full_name"`
	Bio       string        `json:"bio"`
	About     string        `json:"about"`
	Author    bool          `json:"author"`
	Country   string        `json:"country"`
	Github    string        `json:"github"`
	Instagram string        `json:"instagram"`
	Date      time.Time     `json:"date"`
}

var thumbnailTemplate = template.Must(template.New("thumbnail").Parse(
	`<img src="{{.}}" width="50" height="50" style="border-radius: 30px; object-fit: cover;" />`,
))

// Thumbnail renders the small avatar markup for an image URL.
func Thumbnail(imageURL string) template.HTML {
	var buf bytes.Buffer
	if err := thumbnailTemplate.Execute(&buf, imageURL); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

func Profile(p *entity.Profile, u *entity.User, media MediaResolver) *ProfileResponse {
	if p == nil {
		return nil
	}
	opts := Options{Media: media}
	imageURL := opts.url(p.Image)
	return &ProfileResponse{
		ID:        p.ID,
		User:      User(u),
		Image:     p.Image,
		ImageURL:  imageURL,
		Thumbnail: Thumbnail(imageURL),
		FullName:  p.FullName,
		Bio:       p.Bio,
		About:     p.About,
		Author:    p.Author,
		Country:   p.Country,
		Github:    p.Github,
		Instagram: p.Instagram,
		Date:      p.CreatedAt,
	}
}

type PostResponse struct {
	ID          string      `json:"id"`
	User        interface{} `json:"user"`
	Profile     interface{} `json:"profile"`
	Category    *string     `json:"category"`
	Title       string      `json:"title"`
	Image       string      `json:"image"`
	ImageURL    string      `json:"image_url"`
	Description string      `json:"description"`
	Tags        string      `json:"tags"`
	Status      string      `json:"status"`
	View        int         `json:"view"`
	Likes       int64       `json:"likes"`
	Slug        string      `json:"slug"`
	Date        time.Time   `json:"date"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Post renders related user and profile as ids at depth 0. Depth 1 expands
// the user, depth 2 the profile as well.
func Post(p *entity.Post, opts Options) *PostResponse {
	if p == nil {
		return nil
	}
	resp := &PostResponse{
		ID:          p.ID,
		User:        p.UserID,
		Category:    p.CategoryID,
		Title:       p.Title,
		Image:       p.Image,
		ImageURL:    opts.url(p.Image),
		Description: p.Description,
		Tags:        p.Tags,
		Status:      string(p.Status),
		View:        p.View,
		Likes:       p.Likes,
		Slug:        p.Slug,
		Date:        p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ProfileID != nil {
		resp.Profile = *p.ProfileID
	}

	if opts.Depth >= 1 && p.Author != nil {
		resp.User = User(p.Author)
	}
	if opts.Depth >= 2 && p.AuthorProfile != nil {
		resp.Profile = Profile(p.AuthorProfile, p.Author, opts.Media)
	}
	return resp
}

func Posts(posts []*entity.Post, opts Options) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, Post(p, opts))
	}
	return out
}

type CategoryResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Image     string           `json:"image"`
	ImageURL  string           `json:"image_url"`
	Slug      string           `json:"slug"`
	PostCount int64            `json:"post_count"`
	Posts     *[]*PostResponse `json:"posts,omitempty"`
}

// Category renders a flat category at depth 0. From depth 1 its posts are
// included, each expanded one level less than the category.
func Category(d *entity.CategoryDetail, opts Options) *CategoryResponse {
	if d == nil || d.Category == nil {
		return nil
	}
	c := d.Category
	resp := &CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		Image:     c.Image,
		ImageURL:  opts.url(c.Image),
		Slug:      c.Slug,
		PostCount: d.PostCount,
	}
	if opts.Depth >= 1 {
		posts := Posts(d.Posts, Options{Depth: opts.Depth - 1, Media: opts.Media})
		resp.Posts = &posts
	}
	return resp
}

func Categories(details []*entity.CategoryDetail, opts Options) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(details))
	for _, d := range details {
		out = append(out, Category(d, opts))
	}
	return out
}

type CommentResponse struct {
	ID      string             `json:"id"`
	Post    string             `json:"post"`
	Parent  *string            `json:"parent"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Comment string             `json:"comment"`
	Date    time.Time          `json:"date"`
	Replies []*CommentResponse `json:"replies"`
}

func Comment(c *entity.Comment) *CommentResponse {
	if c == nil {
		return nil
	}
	return &CommentResponse{
		ID:      c.ID,
		Post:    c.PostID,
		Parent:  c.ParentID,
		Name:    c.Name,
		Email:   c.Email,
		Comment: c.Body,
		Date:    c.CreatedAt,
		Replies: Comments(c.Replies),
	}
}

func Comments(comments []*entity.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, Comment(c))
	}
	return out
}

type BookmarkResponse struct {
	ID   string        `json:"id"`
	User string        `json:"user"`
	Post *PostResponse `json:"post"`
	Date time.Time     `json:"date"`
}

func Bookmark(b *entity.Bookmark, opts Options) *BookmarkResponse {
	if b == nil {
		return nil
	}
	post := Post(b.Post, opts)
	if post == nil {
		post = &PostResponse{ID: b.PostID}
	}
	return &BookmarkResponse{
		ID:   b.ID,
		User: b.UserID,
		Post: post,
		Date: b.CreatedAt,
	}
}

func Bookmarks(bookmarks []*entity.Bookmark, opts Options) []*BookmarkResponse {
	out := make([]*BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, Bookmark(b, opts))
	}
	return out
}
