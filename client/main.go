package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func GetClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            addr,
		Protocol:        2,
		DisableIdentity: true,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})
}

// Pushes the arguments into a list, reverses it and prints it before and after.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	addr := flag.String("addr", "localhost:5678", "Address of the dlist server")
	key := flag.String("key", "demo", "List to push into")
	flag.Parse()

	values := flag.Args()
	if len(values) == 0 {
		values = []string{"2", "3", "5", "11", "9", "7"}
	}

	ctx := context.Background()
	memo := GetClient(*addr)
	defer memo.Close()

	if err := memo.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", *addr).Msg("Could not connect to dlist server, make sure it is running")
	}

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	if err := memo.Del(ctx, *key).Err(); err != nil {
		log.Fatal().Err(err).Msg("del failed")
	}
	n, err := memo.RPush(ctx, *key, args...).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("rpush failed")
	}
	log.Info().Str("key", *key).Int64("length", n).Msg("List created")

	before, err := memo.LRange(ctx, *key, 0, -1).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("lrange failed")
	}

	if err := memo.Do(ctx, "lreverse", *key).Err(); err != nil {
		log.Fatal().Err(err).Msg("lreverse failed")
	}

	after, err := memo.Do(ctx, "lrender", *key).Text()
	if err != nil {
		log.Fatal().Err(err).Msg("lrender failed")
	}

	fmt.Println("Linked List is", before)
	fmt.Println("Reversed Linked List is", after)
}
