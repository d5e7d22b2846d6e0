// Command churn stresses entity creation, component insertion, destruction
// and sweeping, and writes an allocation profile.
//
// Profiling:
// go build ./cmd/churn
// go tool pprof -http=":8000" -nodefraction=0.001 ./churn mem.pprof
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/TheBitDrifter/stockroom"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()
	stockroom.Config.SetLogger(log.Named("stockroom"))
	stockroom.Config.SetInitialCapacity(entities)

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	start := time.Now()
	if err := run(rounds, iters, entities); err != nil {
		log.Error("churn failed", zap.Error(err))
	}
	p.Stop()
	log.Info("churn done",
		zap.Int("rounds", rounds),
		zap.Int("iterations", iters),
		zap.Int("entities", entities),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func run(rounds, iters, numEntities int) error {
	pos := stockroom.FactoryNewComponent[position]()
	vel := stockroom.FactoryNewComponent[velocity]()

	for range rounds {
		w, err := stockroom.Factory.NewWorld(pos, vel)
		if err != nil {
			return err
		}
		query := stockroom.Factory.NewQuery()
		query.And(pos, vel)
		cursor := stockroom.Factory.NewCursor(query, w)

		for range iters {
			for range numEntities {
				e := w.CreateEntity()
				if err := pos.Add(w, e, position{}); err != nil {
					return err
				}
				if err := vel.Add(w, e, velocity{X: 1, Y: 1}); err != nil {
					return err
				}
			}
			for cursor.Next() {
				p := pos.GetFromCursor(cursor)
				v := vel.GetFromCursor(cursor)
				p.X += v.X
				p.Y += v.Y
				w.EnqueueDestroyEntities(cursor.CurrentEntity())
			}
			if _, err := w.Sweep(); err != nil {
				return err
			}
		}
	}
	return nil
}
