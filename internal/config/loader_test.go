package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cadencehq/cadence/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.EmailProvider, convey.ShouldEqual, "console")
				convey.So(cfg.ScoreWindowWeeks, convey.ShouldEqual, 8)
				convey.So(cfg.ScoreGraceDays, convey.ShouldEqual, 1)
				convey.So(cfg.ScoreVacuous, convey.ShouldEqual, 100)
				convey.So(cfg.NudgePenalty, convey.ShouldEqual, 2)
				convey.So(cfg.DirectoryCacheSize, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CADENCE_ADDR", ":8080")
			_ = os.Setenv("CADENCE_STORE_DRIVER", "memory")
			_ = os.Setenv("CADENCE_SCORE_WINDOW_WEEKS", "4")
			_ = os.Setenv("CADENCE_NUDGE_PENALTY", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, "memory")
				convey.So(cfg.ScoreWindowWeeks, convey.ShouldEqual, 4)
				convey.So(cfg.NudgePenalty, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "cadence.yaml")
			yaml := "addr: \":7070\"\nstore_driver: memory\nscore_grace_days: 2\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("CADENCE_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, "memory")
				convey.So(cfg.ScoreGraceDays, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When configuration is invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("CADENCE_STORE_DRIVER", "oracle")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldEqual, config.ErrUnknownStoreDriver)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"CADENCE_CONFIG",
		"CADENCE_ADDR",
		"CADENCE_STORE_DRIVER",
		"CADENCE_SCORE_WINDOW_WEEKS",
		"CADENCE_NUDGE_PENALTY",
	} {
		_ = os.Unsetenv(key)
	}
}
