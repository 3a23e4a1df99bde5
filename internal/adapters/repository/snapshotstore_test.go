package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fileOf(day model.Day, category string, riders ...string) *model.FileData {
	f := &model.FileData{Key: model.FileKey{Competition: "SEDE", Day: day, Category: category}}
	for _, r := range riders {
		f.Rows = append(f.Rows, model.CanonicalRow{License: r, RunningOrder: model.DefaultRunningOrder})
	}
	return f
}

func TestSnapshotStore(t *testing.T) {
	Convey("Given a new snapshot store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		at := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
		s := NewSnapshotStore(ctx, WithMetricsUpdateInterval(time.Hour), WithClock(func() time.Time { return at }))
		defer s.Close()

		Convey("It has nothing to read before the first load", func() {
			_, err := s.Current(ctx)
			So(errors.Is(err, ErrNoSnapshot), ShouldBeTrue)
			So(s.Replace(ctx, nil), ShouldEqual, ErrNilInput)
		})

		Convey("An upsert before the first load starts a snapshot of its own", func() {
			sat := fileOf(model.Saturday, "A", "L1")
			snap, err := s.Upsert(ctx, "x", sat)
			So(err, ShouldBeNil)
			So(snap.ID, ShouldEqual, "x")
			So(snap.Files, ShouldHaveLength, 1)
			So(snap.Missing, ShouldBeEmpty)

			cur, err := s.Current(ctx)
			So(err, ShouldBeNil)
			So(cur.Files[sat.Key], ShouldEqual, sat)
		})

		Convey("When a snapshot is published", func() {
			sat := fileOf(model.Saturday, "A", "L1")
			missing := model.FileKey{Competition: "SEDE", Day: model.Sunday, Category: "A"}
			first := &model.Snapshot{
				ID:      "first",
				Files:   map[model.FileKey]*model.FileData{sat.Key: sat},
				Missing: []model.FileKey{missing},
			}
			So(s.Replace(ctx, first), ShouldBeNil)

			Convey("Files are served from it", func() {
				got, err := s.File(ctx, sat.Key)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, sat)

				_, err = s.File(ctx, missing)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Upsert publishes a copy and leaves the old snapshot untouched", func() {
				sun := fileOf(model.Sunday, "A", "L1")
				next, err := s.Upsert(ctx, "second", sun)
				So(err, ShouldBeNil)
				So(next.ID, ShouldEqual, "second")
				So(next.LoadedAt, ShouldEqual, at)
				So(next.Files, ShouldHaveLength, 2)
				So(next.Missing, ShouldBeEmpty)

				So(first.Files, ShouldHaveLength, 1)
				So(first.Missing, ShouldHaveLength, 1)

				cur, _ := s.Current(ctx)
				So(cur, ShouldEqual, next)
			})

			Convey("Concurrent uploads are all kept", func() {
				var wg sync.WaitGroup
				for i := 0; i < 20; i++ {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						_, _ = s.Upsert(ctx, fmt.Sprint(i), fileOf(model.Tiebreak, fmt.Sprintf("C%d", i)))
					}(i)
				}
				wg.Wait()
				cur, _ := s.Current(ctx)
				So(cur.Files, ShouldHaveLength, 21)
			})
		})
	})
}
