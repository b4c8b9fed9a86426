package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blogicum/core/internal/config"
	pkgcron "github.com/blogicum/core/internal/pkg/cron"
	jwtpkg "github.com/blogicum/core/internal/pkg/jwt"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sessionRetention is how long expired or revoked sessions are kept.
const sessionRetention = 7 * 24 * time.Hour

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) error {
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		return nil
	}
	loc, err := parseTimezoneLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	time.Local = loc
	_ = os.Setenv("TZ", tz)
	return nil
}

func parseTimezoneLocation(raw string) (*time.Location, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" {
		return time.Local, nil
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}
	if len(tz) == 6 && (tz[0] == '+' || tz[0] == '-') && tz[3] == ':' {
		h, errH := strconv.Atoi(tz[1:3])
		m, errM := strconv.Atoi(tz[4:6])
		if errH == nil && errM == nil && h <= 23 && m <= 59 {
			offset := h*3600 + m*60
			if tz[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(tz, offset), nil
		}
	}
	return nil, fmt.Errorf("expect IANA zone (e.g. Europe/Moscow) or UTC offset (e.g. +03:00)")
}

// registerCronJobs registers the scheduled maintenance jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_sessions",
		Description: "Delete expired and revoked login sessions",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := sessionpkg.Purge(db.WithContext(ctx), time.Now().Add(-sessionRetention))
			if err != nil {
				return err
			}
			cronLogger.Info("sessions purged", zap.Int64("count", n))
			return nil
		},
	})
}
