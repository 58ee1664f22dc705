package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/importstage/internal/model"
)

// TopicBackfill completes a topic synthesized from an orphaned first post,
// typically by fetching fields only the source system knows (the title).
// It is called exactly once per orphan, before anything is written.
type TopicBackfill func(ctx context.Context, topic model.Topic) (model.Topic, error)

// KeepTopic is a TopicBackfill that leaves the candidate unchanged.
func KeepTopic(_ context.Context, topic model.Topic) (model.Topic, error) {
	return topic, nil
}

type Reconciler interface {
	CreateMissing(ctx context.Context, backfill TopicBackfill) (int, error)
}

// Earliest post of every topic_id that has no topic row. Ties on created_at
// all rank 1 and come back ordered by id.
const orphanPostsQuery = `
	WITH missing_topics AS (
		SELECT p.id, p.raw, p.topic_id, p.user_id, p.created_at, p.url, p.upload_count,
		       RANK() OVER (PARTITION BY p.topic_id ORDER BY p.created_at) AS post_number
		  FROM post p
		 WHERE NOT EXISTS (SELECT 1 FROM topic t WHERE t.id = p.topic_id)
	)
	SELECT id, raw, topic_id, user_id, created_at, url, upload_count
	  FROM missing_topics
	 WHERE post_number = 1
	 ORDER BY topic_id, id`

// CreateMissing turns the first post of every topic that was never extracted
// into that topic. The post row is replaced by a topic row keyed by the
// post's topic_id, its attachments move to topic_upload and its likes are
// re-pointed at the topic. Each orphan is handled in its own transaction.
func (r *topicRepository) CreateMissing(ctx context.Context, backfill TopicBackfill) (int, error) {
	if backfill == nil {
		backfill = KeepTopic
	}

	var orphans []model.Post
	err := r.db.SelectContext(ctx, &orphans, orphanPostsQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphaned posts: %w", err)
	}

	// tied first posts are all adopted; the highest id is written last and
	// its fields win
	created := map[model.Key]bool{}
	for _, post := range orphans {
		topic, err := backfill(ctx, topicFromPost(post))
		if err != nil {
			return len(created), fmt.Errorf("failed to backfill topic %s: %w", post.TopicID, err)
		}

		err = r.adopt(ctx, post.ID, &topic)
		if err != nil {
			return len(created), fmt.Errorf("failed to create topic %s from post %s: %w", topic.ID, post.ID, err)
		}
		created[post.TopicID] = true
	}

	if len(created) > 0 {
		slog.Info("created missing topics", "count", len(created), "posts", len(orphans))
	}
	return len(created), nil
}

func topicFromPost(post model.Post) model.Topic {
	return model.Topic{
		ID:          post.TopicID,
		Raw:         post.Raw,
		UserID:      post.UserID,
		CreatedAt:   post.CreatedAt,
		URL:         post.URL,
		UploadCount: post.UploadCount,
	}
}

func (r *topicRepository) adopt(ctx context.Context, postID model.Key, topic *model.Topic) error {
	args, err := bindArgs(r.db, topic)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, postID)
	if err != nil {
		return err
	}

	_, err = tx.NamedExecContext(ctx, upsertTopicQuery, args)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO topic_upload (topic_id, path)
	                              SELECT ?, path FROM post_upload WHERE post_id = ?`, topic.ID, postID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM post_upload WHERE post_id = ?`, postID)
	if err != nil {
		return err
	}

	// OR REPLACE: the user may already like the topic itself
	_, err = tx.ExecContext(ctx, `UPDATE OR REPLACE "like" SET topic_id = ?, post_id = NULL WHERE post_id = ?`, topic.ID, postID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
