package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/database"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	id := uuid.New()
	u := &models.User{
		ID:       id,
		Email:    id.String() + "@example.com",
		Username: "user-" + id.String()[:8],
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTopic(t *testing.T, db *gorm.DB, posts int) (*models.Topic, []models.Post) {
	t.Helper()
	author := seedUser(t, db, "member")
	topic := &models.Topic{Title: "Best fruit?", AuthorID: author.ID}
	require.NoError(t, db.Create(topic).Error)

	var out []models.Post
	for i := 0; i < posts; i++ {
		p := models.Post{TopicID: topic.ID, AuthorID: author.ID, Body: "banana"}
		require.NoError(t, db.Create(&p).Error)
		out = append(out, p)
	}
	return topic, out
}
