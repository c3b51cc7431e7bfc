package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/litreview/config"
	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 { return 0 }
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 { k = 0 }
	if k >= len(xs) { k = len(xs)-1 }
	return xs[k]
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	relSvc := service.NewRelationshipService(userRepo, followRepo, blockRepo, nil)
	feedSvc := service.NewFeedService(relSvc, ticketRepo, reviewRepo)

	ctx := context.Background()

	N := 2000      // users
	FOLLOWS := 20  // follows per user
	TICKETS := 5000
	REVIEWS := 8000
	READS := 500   // feed resolutions to measure
	if s := os.Getenv("N"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { N = v } }
	if s := os.Getenv("FOLLOWS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { FOLLOWS = v } }
	if s := os.Getenv("TICKETS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { TICKETS = v } }
	if s := os.Getenv("REVIEWS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { REVIEWS = v } }
	if s := os.Getenv("READS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { READS = v } }

	// seed users
	users := make([]model.User, N)
	for i := 0; i < N; i++ {
		id := uuid.New().String()
		users[i] = model.User{ID: id, Username: "u" + id[:8], Email: id[:8] + "@example.com", Password: "p"}
	}
	_ = db.CreateInBatches(&users, 1000).Error

	// follow graph
	for i := 0; i < N; i++ {
		for j := 0; j < FOLLOWS; j++ {
			to := users[rand.Intn(N)].ID
			if to == users[i].ID { continue }
			_, _ = followRepo.Create(ctx, users[i].ID, to)
		}
	}

	// content
	tickets := make([]model.Ticket, TICKETS)
	base := time.Now().Add(-time.Duration(TICKETS) * time.Second)
	for i := 0; i < TICKETS; i++ {
		tickets[i] = model.Ticket{
			ID: uuid.New().String(), UserID: users[rand.Intn(N)].ID,
			Title: fmt.Sprintf("ticket %d", i), Description: "bench",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	_ = db.CreateInBatches(&tickets, 1000).Error

	reviews := make([]model.Review, 0, REVIEWS)
	for i := 0; i < REVIEWS; i++ {
		t := tickets[rand.Intn(TICKETS)]
		reviews = append(reviews, model.Review{
			ID: uuid.New().String(), UserID: users[rand.Intn(N)].ID, TicketID: t.ID,
			Rating: rand.Intn(6), Headline: fmt.Sprintf("review %d", i), Body: "bench",
			CreatedAt: t.CreatedAt.Add(time.Duration(rand.Intn(3600)) * time.Second),
		})
	}
	// (user, ticket) 撞唯一键的行直接丢弃
	for i := 0; i < len(reviews); i += 1000 {
		end := i + 1000
		if end > len(reviews) { end = len(reviews) }
		for j := i; j < end; j++ {
			_ = db.Create(&reviews[j]).Error
		}
	}

	// measure feed resolution
	durations := make([]time.Duration, 0, READS)
	var itemsTotal int
	t0 := time.Now()
	for i := 0; i < READS; i++ {
		viewer := users[rand.Intn(N)].ID
		st := time.Now()
		items, err := feedSvc.BuildFeed(ctx, viewer)
		if err != nil { panic(err) }
		durations = append(durations, time.Since(st))
		itemsTotal += len(items)
	}
	total := time.Since(t0)

	fmt.Printf("N=%d FOLLOWS=%d TICKETS=%d REVIEWS=%d READS=%d\n", N, FOLLOWS, TICKETS, REVIEWS, READS)
	fmt.Printf("BuildFeed: total=%v per op=%v p50=%v p95=%v p99=%v avg items=%d\n",
		total, total/time.Duration(READS), pct(durations, 0.50), pct(durations, 0.95), pct(durations, 0.99),
		itemsTotal/READS)
}
