package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"travelplan/internal/ai"
	"travelplan/internal/config"
	"travelplan/internal/modules/travelplan"
)

// plan_demo runs the three prompts for one trip against the configured
// provider and prints the sections without touching storage.
func main() {
	destination := flag.String("destination", "Lisbon", "trip destination")
	start := flag.String("start", time.Now().AddDate(0, 0, 14).Format(time.DateOnly), "start date (YYYY-MM-DD)")
	days := flag.Int("days", 3, "trip length in days")
	people := flag.Int("people", 2, "number of travellers")
	interests := flag.String("interests", "food,history", "comma separated interests")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	prompt, err := config.LoadPrompt()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	startDate, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		logger.Fatal("bad -start", zap.Error(err))
	}

	ctx := context.Background()
	var completer ai.Completer
	if prompt.Provider == config.ProviderGemini {
		g, err := ai.NewGeminiCompleter(ctx, prompt.GeminiKey, travelplan.PromptInstructions())
		if err != nil {
			logger.Fatal("gemini init", zap.Error(err))
		}
		defer g.Close()
		completer = g
	} else {
		completer = ai.NewHyperleapCompleter(prompt.Endpoint, prompt.APIKey, prompt.Timeout)
	}

	in := travelplan.TravelFormInput{
		Destination: *destination,
		TravelDates: travelplan.TravelDates{
			StartDate: startDate,
			EndDate:   startDate.AddDate(0, 0, *days),
		},
		NumberOfPeople:   *people,
		TravelCompanions: "friends",
		TravelType:       "leisure",
		KeyInterests:     strings.Split(*interests, ","),
		Budget:           "medium",
	}

	r := travelplan.NewRequester(completer, travelplan.RetryPolicy{Attempts: prompt.Attempts, BaseDelay: prompt.Backoff})
	itinerary, err := r.Itinerary(ctx, in)
	if err != nil {
		logger.Fatal("itinerary", zap.Error(err))
	}
	eateries, err := r.Eateries(ctx, in)
	if err != nil {
		logger.Fatal("eateries", zap.Error(err))
	}
	faqs, err := r.Faqs(ctx, in)
	if err != nil {
		logger.Fatal("faqs", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Printf("Trip: %s, %d days\n", in.Destination, travelplan.TripDays(in.TravelDates.StartDate, in.TravelDates.EndDate))
	if err := enc.Encode(map[string]any{"itinerary": itinerary, "eateries": eateries, "faqs": faqs}); err != nil {
		logger.Fatal("write plan", zap.Error(err))
	}
}
