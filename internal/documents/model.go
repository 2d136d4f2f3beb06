// Package documents stores supporting files (決算書, 会社案内 and the
// like) uploaded alongside an application, and extracts their text.
package documents

import "time"

// Document is one uploaded supporting file.
type Document struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	CompanyID        string     `json:"companyId,omitempty"`
	FileName         string     `json:"fileName"`
	MimeType         string     `json:"mimeType"`
	SizeBytes        int64      `json:"sizeBytes"`
	StorageKey       string     `json:"-"`
	ExtractedTextKey string     `json:"-"`
	ExtractedAt      *time.Time `json:"extractedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
