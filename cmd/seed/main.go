// Seed wipes the database and loads a small demo graph: Me follows User1
// and User2, everyone writes a post, and Me's timeline is printed. Any
// failure aborts the program after logging.
package main

import (
	"encoding/json"
	"fmt"
	"log"

	"feedify/internal/config"
	"feedify/internal/database"
	"feedify/internal/models"
	"feedify/internal/services"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	if err := reset(db); err != nil {
		log.Fatalf("failed to reset data: %v", err)
	}

	userService := services.NewUserService()
	followService := services.NewFollowService()
	postService := services.NewPostService()

	log.Println("creating demo users")
	me := mustCreateUser(db, userService, "me@test.com", "Me")
	user1 := mustCreateUser(db, userService, "user1@test.com", "User1")
	user2 := mustCreateUser(db, userService, "user2@test.com", "User2")
	user3 := mustCreateUser(db, userService, "user3@test.com", "User3")

	log.Println("creating follow edges")
	for _, followee := range []models.User{user1, user2} {
		if _, err := followService.CreateFollow(db, me.ID, followee.ID); err != nil {
			log.Fatalf("failed to create follow: %v", err)
		}
	}

	log.Println("creating demo posts")
	mustCreatePost(db, postService, user1.ID, "User1's first post")
	mustCreatePost(db, postService, user2.ID, "User2's first post")
	mustCreatePost(db, postService, user3.ID, "User3's first post")
	mustCreatePost(db, postService, user1.ID, "User1's second post")

	entries, err := services.NewTimelineService().GetTimeline(db, me.ID)
	if err != nil {
		log.Fatalf("failed to load timeline: %v", err)
	}

	log.Printf("timeline for Me (%d posts, followed users only, newest first):", len(entries))
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Fatalf("failed to render timeline: %v", err)
	}
	fmt.Println(string(out))
}

// reset clears child tables before parents so the foreign keys stay happy.
func reset(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Task{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustCreateUser(db *gorm.DB, svc services.UserService, email, name string) models.User {
	user, err := svc.CreateUser(db, email, &name)
	if err != nil {
		log.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func mustCreatePost(db *gorm.DB, svc services.PostService, authorID uint, title string) models.Post {
	post, err := svc.CreatePost(db, authorID, title, nil, nil)
	if err != nil {
		log.Fatalf("failed to create post %q: %v", title, err)
	}
	return post
}
