package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectKey(t *testing.T) {
	tests := []struct {
		key     string
		objType string
		id      uint
		ok      bool
	}{
		{"article-12", TypeArticle, 12, true},
		{"alert-1", TypeAlert, 1, true},
		{"news-story-7", "news-story", 7, true},
		{"article-", "", 0, false},
		{"-5", "", 0, false},
		{"article-0", "", 0, false},
		{"article-x", "", 0, false},
		{"article", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			objType, id, ok := ParseObjectKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.objType, objType)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestObjectKeys(t *testing.T) {
	assert.Equal(t, "article-3", (&Article{ID: 3}).ObjectKey())
	assert.Equal(t, "alert-4", (&Alert{ID: 4}).ObjectKey())

	row := &HomepageContent{ID: "row-1", ContentType: TypeArticle, ContentID: 3}
	assert.Equal(t, "article-3", row.ObjectKey())
	assert.Equal(t, "row-1", row.Identity())
	assert.Equal(t, OwnerTypeHomepage, (&Homepage{}).OwnerType())
}

func TestHomepageContent_BeforeCreate(t *testing.T) {
	row := &HomepageContent{}
	assert.NoError(t, row.BeforeCreate(nil))
	assert.Len(t, row.ID, 36)

	kept := &HomepageContent{ID: "fixed"}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
}
