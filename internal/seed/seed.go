package seed

import (
	"fmt"
	"log"
	"time"

	"karmafeed/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 60
	}
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll removes all seeded data. Deletion order follows reference
// direction so foreign keys never dangle mid-run.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.KarmaTransaction{},
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}
	return nil
}

// Seed runs the full demo population: users, posts, nested comment threads,
// and likes with their matching karma ledger rows.
func (s *Seeder) Seed() error {
	log.Printf("Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers()
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.createPosts(users)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := s.createComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	likes, err := s.createLikes(users, posts, comments)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	return nil
}

func (s *Seeder) createUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		users = append(users, s.factory.BuildUser(i))
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createPosts(users []*models.User) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// createComments builds threads with realistic nesting: most comments are
// top-level, the rest reply to an already-created comment on the same post.
func (s *Seeder) createComments(users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	rng := s.factory.rng
	var all []*models.Comment
	byPost := make(map[uint][]*models.Comment)

	total := s.opts.NumPosts * 3
	for i := 0; i < total; i++ {
		author := users[rng.Intn(len(users))]
		post := posts[rng.Intn(len(posts))]

		var parent *models.Comment
		if existing := byPost[post.ID]; len(existing) > 0 && rng.Intn(100) < 40 {
			parent = existing[rng.Intn(len(existing))]
		}

		comment := s.factory.BuildComment(author, post, parent)
		// Created one at a time: children need the parent's assigned ID.
		if err := s.db.Create(comment).Error; err != nil {
			return nil, err
		}
		byPost[post.ID] = append(byPost[post.ID], comment)
		all = append(all, comment)
	}
	return all, nil
}

// createLikes toggles a random subset of (user, target) pairs to liked and
// writes the karma ledger row each non-self like earns. Timestamps are
// spread over the whole MaxDays range so windowed leaderboards show both
// fresh and aged-out karma.
func (s *Seeder) createLikes(users []*models.User, posts []*models.Post, comments []*models.Comment) (int, error) {
	rng := s.factory.rng
	created := 0

	type target struct {
		kind      string
		id        uint
		authorID  uint
		createdAt time.Time
	}

	var targets []target
	for _, p := range posts {
		targets = append(targets, target{models.TargetPost, p.ID, p.UserID, p.CreatedAt})
	}
	for _, c := range comments {
		targets = append(targets, target{models.TargetComment, c.ID, c.UserID, c.CreatedAt})
	}

	for _, t := range targets {
		for _, u := range users {
			if rng.Intn(100) >= 15 {
				continue
			}

			likedAt := s.factory.timeAfter(t.createdAt)
			like := &models.Like{
				UserID:     u.ID,
				TargetType: t.kind,
				TargetID:   t.id,
				Liked:      true,
				LikedAt:    likedAt,
			}
			if err := s.db.Create(like).Error; err != nil {
				return created, err
			}

			// Self-likes stay, but never earn karma.
			if u.ID != t.authorID {
				kind, points := models.KarmaPointsFor(t.kind)
				txn := &models.KarmaTransaction{
					UserID:     t.authorID,
					LikerID:    u.ID,
					Kind:       kind,
					Points:     points,
					TargetType: t.kind,
					TargetID:   t.id,
					CreatedAt:  likedAt,
				}
				if err := s.db.Create(txn).Error; err != nil {
					return created, err
				}
			}
			created++
		}
	}
	return created, nil
}
