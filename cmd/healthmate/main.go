package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/yurim-dev/healthmate/internal/clock"
	"github.com/yurim-dev/healthmate/internal/config"
	"github.com/yurim-dev/healthmate/internal/store"
	"github.com/yurim-dev/healthmate/internal/tracker"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	watch := flag.Bool("watch", false, "keep running and re-render on store changes")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	st, err := store.NewSQLiteStore(cfg.DBPath, cfg.UserID)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	svc := tracker.New(st, clock.System{}, cfg.Generator(), log)

	ctx := context.Background()
	render(svc.Overview(ctx))

	if !*watch {
		return
	}

	// Pull-based refresh: re-render whenever the store signals a change.
	changed := make(chan struct{}, 1)
	cancel := svc.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case <-changed:
			render(svc.Overview(ctx))
		case <-interrupt:
			return
		}
	}
}

func render(o *tracker.Overview) {
	fmt.Printf("== %s ==\n", o.Date)
	fmt.Printf("복약 %d/%d (%d%%)\n", o.Summary.CompletedCount, o.Summary.Total, o.Summary.Percentage)

	for _, ms := range o.Medications {
		fmt.Printf("  [%s] %s (%.1f/%.1f)\n",
			ms.Status.State, ms.Medication.Name,
			ms.Status.ConsumedAmount, ms.Status.TargetAmount)
	}

	for _, slot := range o.Meals {
		mark := "기록 없음"
		if slot.Recorded {
			mark = slot.Time + " " + slot.Description
		}
		fmt.Printf("  %s: %s\n", slot.Type.Label(), mark)
	}

	if len(o.Reminders) > 0 {
		fmt.Println("알림:")
		for _, r := range o.Reminders {
			fmt.Printf("  - [%s] %s (%s)\n", r.Title, r.Message, r.RelativeTime)
		}
	}
}
