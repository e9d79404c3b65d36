package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StartKeepAlive pings the database on an interval so the managed Postgres
// pool does not drop idle connections. Returns the scheduler so main can
// shut it down.
func StartKeepAlive(db *gorm.DB, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			sqlDB, err := db.DB()
			if err != nil {
				log.WithError(err).Warn("keep-alive: failed to get connection pool")
				return
			}
			if err := sqlDB.Ping(); err != nil {
				log.WithError(err).Warn("keep-alive: database ping failed")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
