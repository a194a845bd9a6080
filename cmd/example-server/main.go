package main

import (
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	middleware "github.com/jintaekimmm/simple-rate-limiter/middleware/gin"
	"github.com/jintaekimmm/simple-rate-limiter/pkg/limiter"
)

func main() {
	var store limiter.CounterStore

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		host, port := splitAddr(addr)
		client := limiter.NewRedisClient(limiter.RedisConfig{Host: host, Port: port})

		rs, err := limiter.NewRedisStore(client, limiter.WithTimeout(2*time.Second))
		if err != nil {
			log.Fatalf("redis store: %v", err)
		}
		store = rs
		log.Printf("using redis counter store at %s", addr)
	} else {
		store = limiter.NewMemoryStore()
		log.Print("using in-memory counter store (set REDIS_ADDR for a shared one)")
	}

	// Rate limit: 5 requests per 10s per IP and route.
	rl, err := limiter.NewRateLimiter(5, 10*time.Second,
		limiter.WithStore(store),
		limiter.WithKeyPrefix("demo:"),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Login lockout: 3 failed attempts lock the IP out for 60s.
	fl, err := limiter.NewFailureLimiter(3, time.Minute,
		limiter.WithStore(store),
		limiter.WithKeyPrefix("demo:"),
	)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.GET("/ping", middleware.RateLimit(rl, middleware.ClientIP()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/login", middleware.FailureGuard(fl, middleware.ClientIP()), func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Password != "hunter2" {
			fl.Fail(ctx, ip, c.FullPath())
			c.JSON(http.StatusUnauthorized, gin.H{"message": "bad credentials"})
			return
		}

		fl.Reset(ctx, ip, c.FullPath())
		c.JSON(http.StatusOK, gin.H{"message": "welcome"})
	})

	log.Print("listening on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

func splitAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return addr, 0
	}
	return host, port
}
