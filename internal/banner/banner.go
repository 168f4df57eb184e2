package banner

import (
	"strings"
	"time"
)

// Banner is a homepage hero slide.
type Banner struct {
	ID         string    `json:"id"`
	Title      *string   `json:"title,omitempty"`
	TitleAr    *string   `json:"titleAr,omitempty"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	SubtitleAr *string   `json:"subtitleAr,omitempty"`
	ImageURL   string    `json:"imageUrl"`
	Link       *string   `json:"link,omitempty"`
	SortOrder  int       `json:"sortOrder"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Input struct {
	Title      *string `json:"title"`
	TitleAr    *string `json:"titleAr"`
	Subtitle   *string `json:"subtitle"`
	SubtitleAr *string `json:"subtitleAr"`
	ImageURL   string  `json:"imageUrl"`
	Link       *string `json:"link"`
	SortOrder  int     `json:"sortOrder"`
	Active     *bool   `json:"active"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.ImageURL) == "" {
		errs["imageUrl"] = "صورة البانر مطلوبة"
	}
	return errs
}

func (in Input) apply(b *Banner) {
	b.Title = in.Title
	b.TitleAr = in.TitleAr
	b.Subtitle = in.Subtitle
	b.SubtitleAr = in.SubtitleAr
	b.ImageURL = strings.TrimSpace(in.ImageURL)
	b.Link = in.Link
	b.SortOrder = in.SortOrder
	if in.Active != nil {
		b.Active = *in.Active
	}
}
