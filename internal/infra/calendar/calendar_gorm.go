package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

const (
	dayKeyFmt     = "clinic:day:%d"
	closureKeyFmt = "clinic:closure:%s"

	// marcador de cache negativo ("não existe linha para este dia/data")
	cacheNone = "-"

	cacheTTL = 5 * time.Minute
)

// GormCalendar responde "a clínica está aberta em T?" a partir do
// expediente semanal e das exceções de fechamento, com cache de leitura
// no Redis. O cache é opcional: sem Redis, toda consulta vai ao banco.
type GormCalendar struct {
	db    *gorm.DB
	cache *redis.Client
	log   *logrus.Logger
}

func NewGormCalendar(db *gorm.DB, cache *redis.Client, log *logrus.Logger) *GormCalendar {
	return &GormCalendar{
		db:    db,
		cache: cache,
		log:   log,
	}
}

func (c *GormCalendar) IsOpenAt(
	ctx context.Context,
	at time.Time,
) (scheduling.OpenStatus, error) {

	day, err := c.daySchedule(ctx, scheduling.ISOWeekday(at))
	if err != nil {
		return scheduling.OpenStatus{}, err
	}

	var exc *models.ClosureException
	if day != nil && !day.IsClosed {
		exc, err = c.closureException(ctx, at)
		if err != nil {
			return scheduling.OpenStatus{}, err
		}
	}

	return scheduling.ResolveOpenStatus(day, exc), nil
}

// --------------------------------------------------
// Lookups (cache-aside)
// --------------------------------------------------

func (c *GormCalendar) daySchedule(
	ctx context.Context,
	weekday int,
) (*models.ClinicDaySchedule, error) {

	key := fmt.Sprintf(dayKeyFmt, weekday)

	var cached models.ClinicDaySchedule
	hit, none := c.cacheGet(ctx, key, &cached)
	if none {
		return nil, nil
	}
	if hit {
		return &cached, nil
	}

	var day models.ClinicDaySchedule
	err := c.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&day).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.cacheSetNone(ctx, key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, key, &day)
	return &day, nil
}

func (c *GormCalendar) closureException(
	ctx context.Context,
	at time.Time,
) (*models.ClosureException, error) {

	date := at.Format("2006-01-02")
	key := fmt.Sprintf(closureKeyFmt, date)

	var cached models.ClosureException
	hit, none := c.cacheGet(ctx, key, &cached)
	if none {
		return nil, nil
	}
	if hit {
		return &cached, nil
	}

	var exc models.ClosureException
	err := c.db.WithContext(ctx).
		Where("date = ?", date).
		First(&exc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.cacheSetNone(ctx, key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, key, &exc)
	return &exc, nil
}

// --------------------------------------------------
// Invalidação (chamada pelos handlers de administração)
// --------------------------------------------------

func (c *GormCalendar) InvalidateWeek(ctx context.Context) {
	if c.cache == nil {
		return
	}
	keys := make([]string, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		keys = append(keys, fmt.Sprintf(dayKeyFmt, wd))
	}
	if err := c.cache.Del(ctx, keys...).Err(); err != nil {
		c.log.WithError(err).Warn("calendar cache invalidation failed")
	}
}

func (c *GormCalendar) InvalidateDate(ctx context.Context, date time.Time) {
	if c.cache == nil {
		return
	}
	key := fmt.Sprintf(closureKeyFmt, date.Format("2006-01-02"))
	if err := c.cache.Del(ctx, key).Err(); err != nil {
		c.log.WithError(err).Warn("calendar cache invalidation failed")
	}
}

// --------------------------------------------------
// Redis helpers — falha de cache nunca derruba a consulta
// --------------------------------------------------

func (c *GormCalendar) cacheGet(ctx context.Context, key string, out any) (hit bool, none bool) {
	if c.cache == nil {
		return false, false
	}

	raw, err := c.cache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, false
	}
	if err != nil {
		c.log.WithError(err).Warn("calendar cache read failed")
		return false, false
	}

	if raw == cacheNone {
		return false, true
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, false
	}
	return true, false
}

func (c *GormCalendar) cacheSet(ctx context.Context, key string, val any) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(b), cacheTTL).Err(); err != nil {
		c.log.WithError(err).Warn("calendar cache write failed")
	}
}

func (c *GormCalendar) cacheSetNone(ctx context.Context, key string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, cacheNone, cacheTTL).Err(); err != nil {
		c.log.WithError(err).Warn("calendar cache write failed")
	}
}

// Compile-time check
var _ scheduling.Calendar = (*GormCalendar)(nil)
