// Package models defines the gorm models of the homepage feature.
//
// Articles and alerts are relation targets addressed by object keys of the form
// "<type>-<id>". Homepages own the "content" collection (stored as
// HomepageContent rows) and the singular "alert" relation (the alert_id column).
package models
