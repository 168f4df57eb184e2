package category

import (
	"strings"
	"time"
)

// Category groups products on the storefront.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameAr    string    `json:"nameAr"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	SortOrder int       `json:"sortOrder"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the admin create/update payload.
type Input struct {
	Name      string  `json:"name"`
	NameAr    string  `json:"nameAr"`
	Slug      string  `json:"slug"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder int     `json:"sortOrder"`
	Active    *bool   `json:"active"`
}

func (in *Input) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "الاسم مطلوب"
	}
	if in.NameAr == "" {
		errs["nameAr"] = "الاسم بالعربية مطلوب"
	}
	if in.Slug == "" {
		errs["slug"] = "الرابط المختصر مطلوب"
	} else if strings.ContainsAny(in.Slug, " /?#") {
		errs["slug"] = "الرابط المختصر يحتوي على أحرف غير مسموحة"
	}
	return errs
}

func (in Input) apply(c *Category) {
	c.Name = in.Name
	c.NameAr = in.NameAr
	c.Slug = in.Slug
	c.ImageURL = in.ImageURL
	c.SortOrder = in.SortOrder
	if in.Active != nil {
		c.Active = *in.Active
	}
}
