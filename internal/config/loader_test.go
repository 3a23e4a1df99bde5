package config_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_Load(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given no file and no env", t, func() {
		clearConfigEnvVars(t)
		cfg, err := config.Load(ctx)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
		convey.So(cfg.TimeOnlyCategories, convey.ShouldResemble, []string{"A2", "B2", "C2"})
	})

	convey.Convey("Given env overrides", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("PONIS_ADDR", ":7070")
		t.Setenv("PONIS_CATEGORIES", "A, B ,")
		t.Setenv("PONIS_ELIMINATION_PENALTY", "15.5")
		t.Setenv("PONIS_LOAD_WORKERS", "3")
		t.Setenv("PONIS_SUMMARY_ELIMINATION_LIMIT", "1")

		cfg, err := config.Load(ctx)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
		convey.So(cfg.Categories, convey.ShouldResemble, []string{"A", "B"})
		convey.So(cfg.EliminationPenalty, convey.ShouldEqual, 15.5)
		convey.So(cfg.LoadWorkers, convey.ShouldEqual, 3)
		convey.So(cfg.SummaryEliminationLimit, convey.ShouldEqual, 1)
	})

	convey.Convey("Given a YAML file", t, func() {
		clearConfigEnvVars(t)
		path := createTempConfigFile(t, "addr: \":6060\"\ndata_dir: /srv/ponis\ncompetitions: [SEDE, AZKOITIA]\ntime_only_categories: []\n")
		t.Setenv("PONIS_CONFIG", path)

		convey.Convey("Then file values replace defaults", func() {
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/ponis")
			convey.So(cfg.Competitions, convey.ShouldResemble, []string{"SEDE", "AZKOITIA"})
			convey.So(cfg.TimeOnlyCategories, convey.ShouldBeEmpty)
			convey.So(cfg.Categories, convey.ShouldHaveLength, 6)
		})

		convey.Convey("Then env wins over the file", func() {
			t.Setenv("PONIS_ADDR", ":5050")
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
		})
	})

	convey.Convey("Given a broken setup", t, func() {
		clearConfigEnvVars(t)

		convey.Convey("When the YAML is invalid", func() {
			t.Setenv("PONIS_CONFIG", createTempConfigFile(t, "addr: [unclosed"))
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the file is missing", func() {
			t.Setenv("PONIS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When addr is empty", func() {
			t.Setenv("PONIS_CONFIG", createTempConfigFile(t, "addr: \"\"\n"))
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a number does not parse", func() {
			t.Setenv("PONIS_LOAD_WORKERS", "many")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the penalty is negative", func() {
			t.Setenv("PONIS_ELIMINATION_PENALTY", "-1")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
