package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/KirkDiggler/rollable/internal/common/clock"
	"github.com/KirkDiggler/rollable/internal/common/uuid"
	"github.com/KirkDiggler/rollable/internal/notation"
	"github.com/KirkDiggler/rollable/internal/services/roller"
)

func main() {
	// Initialize the roller service
	svc, err := roller.NewService(&roller.Config{
		Clock: &clock.DefaultClock{},
		UUID:  uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create roller service: %v", err)
	}

	times, err := strconv.Atoi(getEnv("ROLL_TIMES", "1"))
	if err != nil || times < 1 {
		log.Fatalf("ROLL_TIMES must be a positive integer")
	}

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{getEnv("ROLL_DEFAULT", "1d6")}
	}

	ctx := context.Background()
	for _, arg := range args {
		expr, err := notation.Parse(arg)
		if err != nil {
			log.Fatalf("Failed to parse %q: %v", arg, err)
		}

		output, err := svc.Roll(ctx, &roller.RollInput{
			Expression: expr,
			Times:      times,
		})
		if err != nil {
			log.Fatalf("Failed to roll %q: %v", arg, err)
		}

		for _, record := range output.Records {
			fmt.Printf("%s = %g\n", record.Expression, record.Value)
		}
	}
}

// getEnv retrieves an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
