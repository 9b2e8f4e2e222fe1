// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{
	"post_id", "title", "slug", "description", "content", "category",
	"author_id", "author", "author_img",
	"thumbnail", "date", "is_published", "likes_count", "comments_count", "views",
	"created_at", "updated_at",
}

func postRow(rows *sqlmock.Rows, id, slug string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, "Hello", slug, "desc", "body", "go",
		"a-1", "Jane Doe", "https://img/jane.png",
		"", now, true, 3, 1, 42,
		now, now,
	)
}

func newTestPostRepo(t *testing.T) (*postRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &postRepository{DB: db, logger: logger.Nop()}, mock
}

func TestCreatePost(t *testing.T) {
	repo, mock := newTestPostRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO posts").
		WillReturnRows(sqlmock.NewRows([]string{"likes_count", "comments_count", "views"}).AddRow(0, 0, 0))

	post, err := repo.CreatePost(context.Background(), models.Post{PostID: "p-1", Slug: "hello", Date: now})
	require.NoError(t, err)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_SlugTaken(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("INSERT INTO posts").
		WillReturnError(pgError(pgerrcode.UniqueViolation, constraintPostsSlug))

	_, err := repo.CreatePost(context.Background(), models.Post{PostID: "p-1", Slug: "hello"})
	assert.ErrorIs(t, err, ErrSlugAlreadyExists)
}

func TestFindPostBySlug(t *testing.T) {
	repo, mock := newTestPostRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT p.post_id").
		WithArgs("hello").
		WillReturnRows(postRow(sqlmock.NewRows(postRowColumns), "p-1", "hello", now))

	post, err := repo.FindPostBySlug(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "p-1", post.PostID)
	assert.Equal(t, "Jane Doe", post.Author)
	assert.Equal(t, int64(42), post.Views)
}

func TestFindPostBySlug_NotFound(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("SELECT p.post_id").WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPostBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSlugExists(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("hello").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestListPosts(t *testing.T) {
	repo, mock := newTestPostRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(postRowColumns)
	postRow(rows, "p-2", "second", now)
	postRow(rows, "p-1", "first", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT p.post_id").
		WithArgs("a-1").
		WillReturnRows(rows)

	posts, err := repo.ListPosts(context.Background(), models.PostFilter{AuthorID: "a-1"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p-2", posts[0].PostID)
}

func TestListPosts_QueryError(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("SELECT p.post_id").WillReturnError(errors.New("boom"))

	_, err := repo.ListPosts(context.Background(), models.PostFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUpdatePost(t *testing.T) {
	repo, mock := newTestPostRepo(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE posts").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	post, err := repo.UpdatePost(context.Background(), models.Post{PostID: "p-1", UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, now, post.UpdatedAt)
}

func TestUpdatePost_NotFound(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectQuery("UPDATE posts").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePost(context.Background(), models.Post{PostID: "p-1"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectExec("DELETE FROM posts").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM posts").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeletePost(context.Background(), "p-1"))
	assert.ErrorIs(t, repo.DeletePost(context.Background(), "p-1"), ErrPostNotFound)
}

func TestIncrementViews(t *testing.T) {
	repo, mock := newTestPostRepo(t)

	mock.ExpectExec("UPDATE posts SET views").WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.IncrementViews(context.Background(), "p-1"))
}
