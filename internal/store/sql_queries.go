// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/sosumi-blog/models"
	sq "github.com/Masterminds/squirrel"
)

const userColumns = `user_id, email, username, password_hash, provider_access_token,
		name, first_name, last_name, country, agreed_to_terms, bio, profile_picture_url,
		gender, homepage_url, company, city, interests, role,
		reset_password_token, reset_password_expires, version, registered_at, updated_at`

const (
	createUser = `INSERT INTO users (
			user_id, email, username, password_hash, provider_access_token,
			name, first_name, last_name, country, agreed_to_terms, bio, profile_picture_url,
			gender, homepage_url, company, city, interests, role, registered_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING version, registered_at, updated_at;`

	findUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1);`

	findUserByUsername = `SELECT ` + userColumns + `
		FROM users
		WHERE username = $1;`

	findUserByResetToken = `SELECT ` + userColumns + `
		FROM users
		WHERE reset_password_token = $1;`

	selectUserVersion = `SELECT version FROM users WHERE user_id = $1;`

	pruneExpiredSessions = `DELETE FROM user_sessions
		WHERE user_id = $1 AND expires_at <= $2;`

	insertSession = `INSERT INTO user_sessions (user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, token) DO NOTHING;`

	trimSessions = `DELETE FROM user_sessions
		WHERE user_id = $1 AND token IN (
			SELECT token FROM user_sessions
			WHERE user_id = $1
			ORDER BY token = $3 DESC, created_at DESC, token DESC
			OFFSET $2
		);`

	deleteSession = `DELETE FROM user_sessions
		WHERE user_id = $1 AND token = $2;`

	deleteAllSessions = `DELETE FROM user_sessions
		WHERE user_id = $1;`

	hasSession = `SELECT EXISTS (
			SELECT 1 FROM user_sessions
			WHERE user_id = $1 AND token = $2 AND expires_at > $3
		);`
)

const postColumns = `p.post_id, p.title, p.slug, p.description, p.content, p.category,
		p.author_id, COALESCE(NULLIF(u.name, ''), COALESCE(u.username, '')), u.profile_picture_url,
		p.thumbnail, p.date, p.is_published, p.likes_count, p.comments_count, p.views,
		p.created_at, p.updated_at`

const (
	createPost = `INSERT INTO posts (
			post_id, title, slug, description, content, category, author_id,
			thumbnail, date, is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $9, $9)
		RETURNING likes_count, comments_count, views;`

	findPostBySlug = `SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.author_id
		WHERE p.slug = $1;`

	slugExists = `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1);`

	updatePost = `UPDATE posts
		SET title = $2, slug = $3, description = $4, content = $5, category = $6,
			thumbnail = $7, is_published = $8, updated_at = $9
		WHERE post_id = $1
		RETURNING updated_at;`

	deletePost = `DELETE FROM posts WHERE post_id = $1;`

	incrementViews = `UPDATE posts SET views = views + 1 WHERE post_id = $1;`
)

const (
	insertComment = `INSERT INTO comments (comment_id, post_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5);`

	incrementCommentsCount = `UPDATE posts SET comments_count = comments_count + 1 WHERE post_id = $1;`

	listComments = `SELECT c.comment_id, c.post_id, c.user_id, c.content, c.created_at, c.updated_at,
			u.user_id, COALESCE(u.username, ''), u.name, u.profile_picture_url
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.comment_id ASC;`

	findCommentAuthor = `SELECT user_id, COALESCE(username, ''), name, profile_picture_url
		FROM users WHERE user_id = $1;`
)

const (
	insertLike = `INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING;`

	deleteLike = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2;`

	adjustLikesCount = `UPDATE posts
		SET likes_count = GREATEST(likes_count + $2, 0)
		WHERE post_id = $1
		RETURNING likes_count;`

	likeStatus = `SELECT p.likes_count,
			EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.post_id AND l.user_id::text = $2)
		FROM posts p
		WHERE p.post_id = $1;`

	insertBookmark = `INSERT INTO bookmarks (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING;`

	deleteBookmark = `DELETE FROM bookmarks WHERE post_id = $1 AND user_id = $2;`

	bookmarkExists = `SELECT EXISTS (
			SELECT 1 FROM bookmarks WHERE post_id = $1 AND user_id::text = $2
		);`
)

const (
	insertSubscription = `INSERT INTO subscriptions (subscription_id, email, date)
		VALUES ($1, $2, $3);`

	listSubscriptions = `SELECT subscription_id, email, date
		FROM subscriptions
		ORDER BY date DESC, subscription_id DESC;`

	deleteSubscription = `DELETE FROM subscriptions WHERE subscription_id = $1;`
)

// buildUpdateUserQuery builds the versioned UPDATE of every mutable users
// column. The statement returns the new version, or no row when the stored
// version differs from user.Version.
func buildUpdateUserQuery(user models.User, now time.Time) (string, []any, error) {
	query, args, err := psql.Update("users").
		SetMap(map[string]any{
			"email":                  user.Email,
			"username":               user.Username,
			"password_hash":          user.PasswordHash,
			"provider_access_token":  user.ProviderAccessToken,
			"name":                   user.Name,
			"first_name":             user.FirstName,
			"last_name":              user.LastName,
			"country":                user.Country,
			"agreed_to_terms":        user.AgreedToTerms,
			"bio":                    user.Bio,
			"profile_picture_url":    user.ProfilePictureURL,
			"gender":                 genderValue(user.Gender),
			"homepage_url":           user.HomepageURL,
			"company":                user.Company,
			"city":                   user.City,
			"interests":              user.Interests,
			"reset_password_token":   user.ResetPasswordToken,
			"reset_password_expires": user.ResetPasswordExpires,
			"updated_at":             now,
			"version":                sq.Expr("version + 1"),
		}).
		Where(sq.Eq{"user_id": user.UserID, "version": user.Version}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListPostsQuery builds the post listing for filter, newest first.
func buildListPostsQuery(filter models.PostFilter) (string, []any, error) {
	qb := psql.Select(postColumns).
		From("posts p").
		Join("users u ON u.user_id = p.author_id").
		OrderBy("p.date DESC", "p.post_id DESC")

	if filter.AuthorID != "" {
		qb = qb.Where(sq.Eq{"p.author_id": filter.AuthorID})
	}
	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"p.category": filter.Category})
	}
	if filter.OnlyPublished {
		qb = qb.Where(sq.Eq{"p.is_published": true})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		qb = qb.Offset(filter.Offset)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func genderValue(g *models.Gender) any {
	if g == nil {
		return nil
	}
	return string(*g)
}
