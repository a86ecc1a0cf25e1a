package serializer

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blog-api/services/blog/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixResolver struct{}

func (prefixResolver) ObjectURL(path string) string { return "https://cdn.test/" + path }

func toMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func sampleUser() *entity.User {
	return &entity.User{ID: "u1", Email: "a@x.com", Username: "a", FullName: "a", PasswordHash: "hash", OTP: "123456"}
}

func TestUser_OmitsSecrets(t *testing.T) {
	body := toMap(t, User(sampleUser()))

	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")
	assert.NotContains(t, body, "otp")
	assert.Nil(t, User(nil))
}

func TestProfile_NestedUserAndThumbnail(t *testing.T) {
	profile := &entity.Profile{ID: "p1", UserID: "u1", Image: "users/a.jpg", FullName: "a"}

	resp := Profile(profile, sampleUser(), prefixResolver{})

	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "https://cdn.test/users/a.jpg", resp.ImageURL)
	assert.Contains(t, string(resp.Thumbnail), `src="https://cdn.test/users/a.jpg"`)
	assert.Contains(t, string(resp.Thumbnail), `width="50"`)
}

func TestThumbnail_EscapesURL(t *testing.T) {
	html := Thumbnail(`x" onerror="alert(1)`)
	assert.NotContains(t, string(html), `" onerror="`)
}

func TestPost_Depth(t *testing.T) {
	profileID := "p1"
	post := &entity.Post{
		ID:            "post1",
		UserID:        "u1",
		ProfileID:     &profileID,
		Title:         "Hello",
		Image:         "posts/h.jpg",
		Status:        entity.StatusActive,
		Author:        sampleUser(),
		AuthorProfile: &entity.Profile{ID: "p1", UserID: "u1"},
	}

	flat := toMap(t, Post(post, Options{}))
	assert.Equal(t, "u1", flat["user"])
	assert.Equal(t, "p1", flat["profile"])
	assert.Equal(t, "posts/h.jpg", flat["image_url"])

	one := toMap(t, Post(post, Options{Depth: 1, Media: prefixResolver{}}))
	assert.IsType(t, map[string]interface{}{}, one["user"])
	assert.Equal(t, "p1", one["profile"])
	assert.Equal(t, "https://cdn.test/posts/h.jpg", one["image_url"])

	two := toMap(t, Post(post, Options{Depth: 2}))
	profile, ok := two["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1", profile["id"])
}

func TestPost_DepthWithoutLoadedRelations(t *testing.T) {
	body := toMap(t, Post(&entity.Post{ID: "post1", UserID: "u1"}, Options{Depth: 2}))
	assert.Equal(t, "u1", body["user"])
	assert.Nil(t, body["profile"])
}

func TestCategory_Depth(t *testing.T) {
	detail := &entity.CategoryDetail{
		Category:  &entity.Category{ID: "c1", Title: "Go", Slug: "go"},
		PostCount: 1,
		Posts:     []*entity.Post{{ID: "post1", UserID: "u1", Author: sampleUser()}},
	}

	flat := toMap(t, Category(detail, Options{}))
	assert.Equal(t, "go", flat["slug"])
	assert.EqualValues(t, 1, flat["post_count"])
	assert.NotContains(t, flat, "posts")

	one := toMap(t, Category(detail, Options{Depth: 1}))
	posts := one["posts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "u1", posts[0].(map[string]interface{})["user"])

	two := toMap(t, Category(detail, Options{Depth: 2}))
	posts = two["posts"].([]interface{})
	assert.IsType(t, map[string]interface{}{}, posts[0].(map[string]interface{})["user"])

	empty := toMap(t, Category(&entity.CategoryDetail{Category: &entity.Category{ID: "c2"}}, Options{Depth: 1}))
	assert.Equal(t, []interface{}{}, empty["posts"])
}

func TestComments_Tree(t *testing.T) {
	parent := "c1"
	tree := []*entity.Comment{{
		ID:   "c1",
		Body: "root",
		Replies: []*entity.Comment{
			{ID: "c2", ParentID: &parent, Body: "reply", CreatedAt: time.Now()},
		},
	}}

	out := Comments(tree)
	require.Len(t, out, 1)
	assert.Equal(t, "root", out[0].Comment)
	require.Len(t, out[0].Replies, 1)
	assert.Equal(t, "c1", *out[0].Replies[0].Parent)
	assert.NotNil(t, out[0].Replies[0].Replies)

	body := toMap(t, out[0].Replies[0])
	assert.Equal(t, []interface{}{}, body["replies"])
}

func TestBookmark_WithoutLoadedPost(t *testing.T) {
	resp := Bookmark(&entity.Bookmark{ID: "b1", UserID: "u1", PostID: "post1"}, Options{})
	assert.Equal(t, "post1", resp.Post.ID)
	assert.Equal(t, "u1", resp.User)
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Status   string `json:"status" validate:"omitempty,oneof=Active Draft"`
}

func TestValidationErrors(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(JSONTagName)

	err := v.Struct(signupRequest{Email: "nope", Status: "Gone"})
	errs := ValidationErrors(err)

	assert.Equal(t, []string{"Enter a valid email address."}, errs["email"])
	assert.Equal(t, []string{"This field is required."}, errs["password"])
	assert.Equal(t, []string{`"Gone" is not a valid choice.`}, errs["status"])

	err = v.Struct(signupRequest{Email: "a@x.com", Password: "short"})
	assert.Equal(t, []string{"Ensure this field has at least 8 characters."}, ValidationErrors(err)["password"])
}

func TestValidationErrors_NonField(t *testing.T) {
	errs := ValidationErrors(errors.New("unexpected EOF"))
	assert.Equal(t, map[string][]string{NonFieldErrors: {"unexpected EOF"}}, errs)
	assert.Empty(t, ValidationErrors(nil))
}
