package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Object key type prefixes.
const (
	TypeArticle = "article"
	TypeAlert   = "alert"
)

// OwnerTypeHomepage is the owner type of Homepage relations.
const OwnerTypeHomepage = "homepage"

// ObjectKey formats the external key of an object, e.g. "article-12".
func ObjectKey(objType string, id uint) string {
	return fmt.Sprintf("%s-%d", objType, id)
}

// ParseObjectKey splits an object key into its type and numeric id.
func ParseObjectKey(key string) (objType string, id uint, ok bool) {
	i := strings.LastIndex(key, "-")
	if i <= 0 || i == len(key)-1 {
		return "", 0, false
	}
	n, err := strconv.ParseUint(key[i+1:], 10, 64)
	if err != nil || n == 0 {
		return "", 0, false
	}
	return key[:i], uint(n), true
}

// Article is a piece of content that can be placed on a homepage.
type Article struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	Slug     string `gorm:"column:slug;size:191"`
	Headline string `gorm:"column:headline"`
}

// TableName overrides the table name.
func (Article) TableName() string {
	return "articles"
}

// Identity returns the primary key.
func (a *Article) Identity() any { return a.ID }

// ObjectKey returns the "article-<id>" key.
func (a *Article) ObjectKey() string { return ObjectKey(TypeArticle, a.ID) }

// Alert is a breaking-news banner shown on at most one homepage slot.
type Alert struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	Headline string `gorm:"column:headline"`
}

// TableName overrides the table name.
func (Alert) TableName() string {
	return "alerts"
}

// Identity returns the primary key.
func (a *Alert) Identity() any { return a.ID }

// ObjectKey returns the "alert-<id>" key.
func (a *Alert) ObjectKey() string { return ObjectKey(TypeAlert, a.ID) }

// Homepage owns an ordered content collection and an optional alert.
type Homepage struct {
	ID      uint   `gorm:"column:id;primaryKey"`
	Title   string `gorm:"column:title"`
	AlertID *uint  `gorm:"column:alert_id"`
}

// TableName overrides the table name.
func (Homepage) TableName() string {
	return "homepages"
}

// OwnerType identifies homepages to the relation metadata.
func (h *Homepage) OwnerType() string { return OwnerTypeHomepage }

// Identity returns the primary key.
func (h *Homepage) Identity() any { return h.ID }

// HomepageContent is one placed item of a homepage's content collection.
// Its object key is the key of the content it references, so rows built from a
// payload compare equal to persisted rows pointing at the same content.
type HomepageContent struct {
	ID          string `gorm:"column:id;primaryKey;size:36"`
	HomepageID  uint   `gorm:"column:homepage_id;index"`
	ContentType string `gorm:"column:content_type;size:32"`
	ContentID   uint   `gorm:"column:content_id"`
	Position    int    `gorm:"column:position"`
}

// TableName overrides the table name.
func (HomepageContent) TableName() string {
	return "homepage_contents"
}

// BeforeCreate assigns a UUID primary key to new rows.
func (c *HomepageContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Identity returns the row id.
func (c *HomepageContent) Identity() any { return c.ID }

// ObjectKey returns the key of the referenced content.
func (c *HomepageContent) ObjectKey() string { return ObjectKey(c.ContentType, c.ContentID) }

// All returns every model, in migration order.
func All() []any {
	return []any{&Article{}, &Alert{}, &Homepage{}, &HomepageContent{}}
}
