package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/litreview/config"
	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud exercitation
ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in reprehenderit voluptate
velit esse cillum eu fugiat nulla pariatur excepteur sint occaecat cupidatat non proident sunt
culpa qui officia deserunt mollit anim id est laborum`)

func sentence(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = words[rand.Intn(len(words))]
	}
	return strings.Join(out, " ")
}

// 种子数据与表单走的是两条路：这里静默截断到字段上限，表单层则直接拒绝
func trunc(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	contentSvc := service.NewContentService(db, ticketRepo, reviewRepo)

	ctx := context.Background()

	USERS := envInt("USERS", 20)
	TICKETS := envInt("TICKETS", 50)
	REVIEWS := envInt("REVIEWS", 80)

	// 共享一个 hash，避免逐个 bcrypt 拖慢批量造数
	hash := must(bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost))

	fmt.Println("Creating users...")
	users := make([]*model.User, USERS)
	for i := 0; i < USERS; i++ {
		u := &model.User{
			ID:       uuid.New().String(),
			Username: fmt.Sprintf("user%03d", i),
			Email:    fmt.Sprintf("user%03d@example.com", i),
			Password: string(hash),
		}
		must(0, userRepo.Create(ctx, u))
		users[i] = u
	}

	fmt.Println("Creating follows...")
	followsCreated := 0
	for _, u := range users {
		n := 1 + rand.Intn(7)
		for j := 0; j < n; j++ {
			other := users[rand.Intn(len(users))]
			if other.ID == u.ID {
				continue
			}
			// 批量造数容忍重复边，线上路径不容忍
			if _, err := followRepo.Create(ctx, u.ID, other.ID); err == nil {
				followsCreated++
			}
		}
	}

	fmt.Println("Creating blocks...")
	blocksCreated := 0
	for _, u := range users {
		if rand.Intn(10) != 0 { // 约 10% 的用户屏蔽过人
			continue
		}
		n := 1 + rand.Intn(3)
		for j := 0; j < n; j++ {
			other := users[rand.Intn(len(users))]
			if other.ID == u.ID {
				continue
			}
			if _, err := blockRepo.Create(ctx, u.ID, other.ID); err == nil {
				blocksCreated++
			}
		}
	}

	fmt.Println("Creating tickets...")
	tickets := make([]*model.Ticket, 0, TICKETS)
	for i := 0; i < TICKETS; i++ {
		owner := users[rand.Intn(len(users))]
		t := &model.Ticket{
			ID:          uuid.New().String(),
			UserID:      owner.ID,
			Title:       trunc(sentence(3+rand.Intn(5)), model.TicketTitleMax),
			Description: trunc(sentence(30+rand.Intn(50)), model.TicketDescriptionMax),
		}
		must(0, ticketRepo.Create(ctx, t))
		tickets = append(tickets, t)
	}

	fmt.Println("Creating reviews...")
	reviewsCreated := 0
	// 70% 评已有帖（非帖主，且不重复），30% 建帖自评
	withTicket := REVIEWS * 7 / 10
	for i := 0; i < withTicket; i++ {
		t := tickets[rand.Intn(len(tickets))]
		reviewer := users[rand.Intn(len(users))]
		if reviewer.ID == t.UserID {
			continue
		}
		_, err := contentSvc.CreateReview(ctx, reviewer.ID, t.ID, service.ReviewInput{
			Rating:   rand.Intn(model.RatingMax + 1),
			Headline: trunc(sentence(4+rand.Intn(6)), model.ReviewHeadlineMax),
			Body:     trunc(sentence(50+rand.Intn(100)), model.ReviewBodyMax),
		})
		if err == nil {
			reviewsCreated++
		}
	}
	for i := withTicket; i < REVIEWS; i++ {
		owner := users[rand.Intn(len(users))]
		_, _, err := contentSvc.CreateTicketWithReview(ctx, owner.ID,
			service.TicketInput{
				Title:       trunc(sentence(3+rand.Intn(5)), model.TicketTitleMax),
				Description: trunc(sentence(30+rand.Intn(50)), model.TicketDescriptionMax),
			},
			service.ReviewInput{
				Rating:   rand.Intn(model.RatingMax + 1),
				Headline: trunc(sentence(4+rand.Intn(6)), model.ReviewHeadlineMax),
				Body:     trunc(sentence(50+rand.Intn(100)), model.ReviewBodyMax),
			})
		if err == nil {
			reviewsCreated++
		}
	}

	fmt.Printf("Done: users=%d follows=%d blocks=%d tickets=%d reviews=%d\n",
		USERS, followsCreated, blocksCreated, TICKETS, reviewsCreated)
	fmt.Println("Credentials: user000..  password123")
}
