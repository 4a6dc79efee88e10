package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	queueFirestore "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/queue/firestore"
	repoFirestore "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/repository/firestore"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/app"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/logging"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"

	"github.com/rs/zerolog/log"
)

// seedPost is one sample document for the posts collection.
type seedPost struct {
	ID        string
	Author    string
	Content   string
	Age       time.Duration
	Reactions map[engagement.ActorID]engagement.Action
}

var samplePosts = []seedPost{
	{
		ID:      "seed-rejected-pitch",
		Author:  "maya",
		Content: "Pitched to ten investors in a week. Ten polite no's. I rewrote the deck from scratch.",
		Age:     72 * time.Hour,
		Reactions: map[engagement.ActorID]engagement.Action{
			"jon":  engagement.React(engagement.ReactionBeenThere),
			"lena": engagement.Like(),
		},
	},
	{
		ID:      "seed-failed-exam",
		Author:  "jon",
		Content: "Failed the bar exam on my first attempt. Took six months off and passed the second time.",
		Age:     30 * time.Hour,
		Reactions: map[engagement.ActorID]engagement.Action{
			"maya": engagement.React(engagement.ReactionSendingLove),
		},
	},
	{
		ID:      "seed-prod-outage",
		Author:  "lena",
		Content: "I took down production on a Friday with a config typo. We added review for config changes.",
		Age:     2 * time.Hour,
	},
}

func main() {
	config.LoadDotEnv()
	if cfg, err := config.LoadLogConfigFromEnv(); err == nil {
		_ = logging.Setup(cfg)
	}

	ctx := context.Background()
	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Msg("Firestore seeding completed")
}

func run(ctx context.Context) error {
	infra, err := app.NewInfra(ctx)
	if err != nil {
		return fmt.Errorf("init infra: %w", err)
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Warn().Err(err).Msg("Close infra")
		}
	}()

	client := infra.Firestore()
	if client == nil {
		return errors.New("firestore client is not initialized; set GOOGLE_CLOUD_PROJECT and related env vars")
	}

	repo, err := repoFirestore.NewPostRepository(client)
	if err != nil {
		return err
	}
	jobs, err := queueFirestore.NewFirestoreJobQueue(client)
	if err != nil {
		return err
	}
	return seedPosts(ctx, repo, jobs, samplePosts, time.Now())
}

/**
 * Stores each sample post, applies its reactions through the resolver and
 * queues an insight job. Posts that already exist are left untouched.
 */
func seedPosts(ctx context.Context, repo repository.PostRepository, jobs queue.JobQueue, samples []seedPost, now time.Time) error {
	for _, s := range samples {
		p, err := post.New(post.ID(s.ID), engagement.ActorID(s.Author), s.Content, now.Add(-s.Age), 0)
		if err != nil {
			return fmt.Errorf("build post %s: %w", s.ID, err)
		}

		state := p.Engagement()
		for actor, action := range s.Reactions {
			if state, err = engagement.Resolve(state, actor, action); err != nil {
				return fmt.Errorf("resolve %s on %s: %w", action, s.ID, err)
			}
		}
		p.SetEngagement(state)

		if err := repo.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrPostAlreadyExists) {
				log.Info().Str("postID", s.ID).Msg("Post already seeded, skipping")
				continue
			}
			return fmt.Errorf("save post %s: %w", s.ID, err)
		}

		if jobs != nil {
			if err := jobs.EnqueueInsight(ctx, p.ID()); err != nil && !errors.Is(err, queue.ErrJobAlreadyScheduled) {
				return fmt.Errorf("enqueue insight %s: %w", s.ID, err)
			}
		}
		log.Info().Str("postID", s.ID).Msg("Seeded post")
	}
	return nil
}
