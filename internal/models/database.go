package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm connection and exposes typed store operations
type Database struct {
	db *gorm.DB
}

// ContentFilter restricts content listing. Zero values mean "no restriction".
type ContentFilter struct {
	ContentType ContentType
	Status      Status
	Genre       string
	Skip        int
	Limit       int
}

// WatchFilter restricts watch history listing. Nil fields mean "no restriction".
type WatchFilter struct {
	ContentID  *uint
	PlatformID *uint
	StartDate  *time.Time
	EndDate    *time.Time
	Skip       int
	Limit      int
}

// ContentStats holds aggregate counts over the content table
type ContentStats struct {
	Total           int64            `json:"total_content"`
	Movies          int64            `json:"movies"`
	TVShows         int64            `json:"tv_shows"`
	Favorites       int64            `json:"favorites"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

// NewDatabase opens a database connection and migrates the schema.
// A DSN starting with postgres:// (or containing host=) selects the
// postgres driver, anything else is treated as a sqlite file path.
func NewDatabase(dsn string) (*Database, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Content{}, &Platform{}, &ContentPlatform{}, &Watch{}, &WatchSession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialect returns the name of the active database backend
func (d *Database) Dialect() string {
	return d.db.Dialector.Name()
}

// translateErr maps gorm errors onto the store error taxonomy
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Content operations

// CreateContent inserts a new content row
func (d *Database) CreateContent(content *Content) error {
	return translateErr(d.db.Create(content).Error)
}

// GetContentByID retrieves a content row by ID
func (d *Database) GetContentByID(id uint) (*Content, error) {
	var content Content
	if err := d.db.First(&content, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &content, nil
}

// GetContentByTMDBID retrieves a content row by its TMDB ID
func (d *Database) GetContentByTMDBID(tmdbID int) (*Content, error) {
	var content Content
	if err := d.db.Where("tmdb_id = ?", tmdbID).First(&content).Error; err != nil {
		return nil, translateErr(err)
	}
	return &content, nil
}

// ListContent retrieves content matching the filter, newest-updated first
func (d *Database) ListContent(filter ContentFilter) ([]*Content, error) {
	query := d.db.Model(&Content{})

	if filter.ContentType != "" {
		query = query.Where("content_type = ?", filter.ContentType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Genre != "" {
		query = query.Where(d.genreMembership([]string{filter.Genre}))
	}

	var items []*Content
	err := query.Order("updated_at DESC").Offset(filter.Skip).Limit(filter.Limit).Find(&items).Error
	return items, translateErr(err)
}

// GetAllContent retrieves every content row
func (d *Database) GetAllContent() ([]*Content, error) {
	var items []*Content
	err := d.db.Find(&items).Error
	return items, translateErr(err)
}

// UpdateContentFields applies a sparse field update to a content row and
// returns the updated row. An empty field set still refreshes updated_at.
func (d *Database) UpdateContentFields(id uint, fields map[string]interface{}) (*Content, error) {
	var content Content
	if err := d.db.First(&content, id).Error; err != nil {
		return nil, translateErr(err)
	}

	if len(fields) == 0 {
		fields = map[string]interface{}{"updated_at": time.Now()}
	}
	if err := d.db.Model(&content).Updates(fields).Error; err != nil {
		return nil, translateErr(err)
	}

	if err := d.db.First(&content, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &content, nil
}

// DeleteContent deletes a content row, reporting whether a row was removed
func (d *Database) DeleteContent(id uint) (bool, error) {
	res := d.db.Delete(&Content{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SearchContentByTitle performs a case-insensitive substring title search,
// best-rated first
func (d *Database) SearchContentByTitle(query string, contentType ContentType, limit int) ([]*Content, error) {
	q := d.db.Model(&Content{}).Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%")
	if contentType != "" {
		q = q.Where("content_type = ?", contentType)
	}

	var items []*Content
	err := q.Order("tmdb_rating DESC").Limit(limit).Find(&items).Error
	return items, translateErr(err)
}

// FindSimilarContent retrieves content of the same type as base sharing at
// least one genre with it, best-rated first. When base has no genres the
// genre restriction is skipped entirely.
func (d *Database) FindSimilarContent(base *Content, limit int) ([]*Content, error) {
	query := d.db.Model(&Content{}).
		Where("id <> ?", base.ID).
		Where("content_type = ?", base.ContentType)

	if len(base.Genres) > 0 {
		query = query.Where(d.genreMembership(base.Genres))
	}

	var items []*Content
	err := query.Order("tmdb_rating DESC").Limit(limit).Find(&items).Error
	return items, translateErr(err)
}

// genreMembership builds a predicate matching rows whose genre set contains
// any of the given genres. Postgres gets a native jsonb membership test, every
// other backend falls back to LIKE probes against the serialized JSON array.
// Both forms are exact membership tests, never substring matches. They diverge
// on case: sqlite LIKE is ASCII case-insensitive while jsonb_exists matches
// case-sensitively, so "action" finds "Action" on sqlite only.
func (d *Database) genreMembership(genres []string) *gorm.DB {
	var cond *gorm.DB
	for _, genre := range genres {
		var clause *gorm.DB
		if d.Dialect() == "postgres" {
			clause = d.db.Where("jsonb_exists(genres::jsonb, ?)", genre)
		} else {
			clause = d.db.Where("genres LIKE ?", `%"`+genre+`"%`)
		}
		if cond == nil {
			cond = clause
		} else {
			cond = cond.Or(clause)
		}
	}
	return cond
}

// ContentStatistics computes aggregate counts over the content table
func (d *Database) ContentStatistics() (*ContentStats, error) {
	stats := &ContentStats{StatusBreakdown: make(map[string]int64)}

	if err := d.db.Model(&Content{}).Count(&stats.Total).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := d.db.Model(&Content{}).Where("content_type = ?", ContentTypeMovie).Count(&stats.Movies).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := d.db.Model(&Content{}).Where("content_type = ?", ContentTypeTV).Count(&stats.TVShows).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := d.db.Model(&Content{}).Where("is_favorite = ?", true).Count(&stats.Favorites).Error; err != nil {
		return nil, translateErr(err)
	}

	var rows []struct {
		Status string
		N      int64
	}
	if err := d.db.Model(&Content{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, translateErr(err)
	}
	for _, row := range rows {
		stats.StatusBreakdown[row.Status] = row.N
	}

	return stats, nil
}

// Platform operations

// CreatePlatform inserts a new platform
func (d *Database) CreatePlatform(platform *Platform) error {
	return translateErr(d.db.Create(platform).Error)
}

// GetPlatformByID retrieves a platform by ID
func (d *Database) GetPlatformByID(id uint) (*Platform, error) {
	var platform Platform
	if err := d.db.First(&platform, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &platform, nil
}

// ListPlatforms retrieves all platforms ordered by name
func (d *Database) ListPlatforms() ([]*Platform, error) {
	var platforms []*Platform
	err := d.db.Order("name ASC").Find(&platforms).Error
	return platforms, translateErr(err)
}

// LinkContentPlatform records availability of a content item on a platform
func (d *Database) LinkContentPlatform(link *ContentPlatform) error {
	return translateErr(d.db.Create(link).Error)
}

// ListContentPlatforms retrieves the platform links for a content item
func (d *Database) ListContentPlatforms(contentID uint) ([]*ContentPlatform, error) {
	var links []*ContentPlatform
	err := d.db.Where("content_id = ?", contentID).Find(&links).Error
	return links, translateErr(err)
}

// Watch operations

// CreateWatch inserts a new watch record
func (d *Database) CreateWatch(watch *Watch) error {
	return translateErr(d.db.Create(watch).Error)
}

// GetWatchByID retrieves a watch record by ID
func (d *Database) GetWatchByID(id uint) (*Watch, error) {
	var watch Watch
	if err := d.db.First(&watch, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &watch, nil
}

// ListWatches retrieves watch records matching the filter, most recent first
func (d *Database) ListWatches(filter WatchFilter) ([]*Watch, error) {
	query := d.db.Model(&Watch{})

	if filter.ContentID != nil {
		query = query.Where("content_id = ?", *filter.ContentID)
	}
	if filter.PlatformID != nil {
		query = query.Where("platform_id = ?", *filter.PlatformID)
	}
	if filter.StartDate != nil {
		query = query.Where("watched_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("watched_at <= ?", *filter.EndDate)
	}

	var watches []*Watch
	err := query.Order("watched_at DESC").Offset(filter.Skip).Limit(filter.Limit).Find(&watches).Error
	return watches, translateErr(err)
}

// GetAllWatches retrieves every watch record
func (d *Database) GetAllWatches() ([]*Watch, error) {
	var watches []*Watch
	err := d.db.Find(&watches).Error
	return watches, translateErr(err)
}

// DeleteWatch deletes a watch record, reporting whether a row was removed
func (d *Database) DeleteWatch(id uint) (bool, error) {
	res := d.db.Delete(&Watch{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountWatchesByContentID counts watch records referencing a content item
func (d *Database) CountWatchesByContentID(contentID uint) (int64, error) {
	var count int64
	err := d.db.Model(&Watch{}).Where("content_id = ?", contentID).Count(&count).Error
	return count, translateErr(err)
}

// WatchSession operations

// CreateWatchSession inserts a new watch session
func (d *Database) CreateWatchSession(session *WatchSession) error {
	return translateErr(d.db.Create(session).Error)
}

// GetWatchSessionByID retrieves a watch session by ID
func (d *Database) GetWatchSessionByID(id uint) (*WatchSession, error) {
	var session WatchSession
	if err := d.db.First(&session, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &session, nil
}

// UpdateWatchSession persists changes to a watch session
func (d *Database) UpdateWatchSession(session *WatchSession) error {
	return translateErr(d.db.Save(session).Error)
}

// GetAllWatchSessions retrieves every watch session
func (d *Database) GetAllWatchSessions() ([]*WatchSession, error) {
	var sessions []*WatchSession
	err := d.db.Find(&sessions).Error
	return sessions, translateErr(err)
}
