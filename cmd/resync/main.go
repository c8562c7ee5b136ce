// Command resync regenerates planned-intake events outside the request path:
// all users by default, or one user with -user. Regeneration is idempotent,
// so running it repeatedly (or concurrently with the server's worker) is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/suppstack/suppstack-backend/internal/app"
	"github.com/suppstack/suppstack-backend/internal/planner"
)

func main() {
	var (
		userFlag = flag.String("user", "", "regenerate only this user id")
		daysFlag = flag.Int("days", planner.DefaultHorizonDays, "horizon length in days")
	)
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log := application.Log.With("cmd", "resync")

	if *userFlag != "" {
		userID, parseErr := uuid.Parse(*userFlag)
		if parseErr != nil {
			log.Error("Invalid -user flag", "error", parseErr)
			os.Exit(1)
		}
		from, to := planner.HorizonFrom(time.Now(), *daysFlag)
		n, regenErr := application.Services.Schedule.RegenerateUserRange(ctx, userID, from, to)
		if regenErr != nil {
			log.Error("Regeneration failed", "user_id", userID, "error", regenErr)
			os.Exit(1)
		}
		log.Info("Regeneration complete", "user_id", userID, "events", n)
		return
	}

	n, regenErr := application.Services.Schedule.RegenerateAll(ctx)
	if regenErr != nil {
		log.Error("Regeneration sweep failed", "error", regenErr)
		os.Exit(1)
	}
	log.Info("Regeneration sweep complete", "events", n)
}
