package domain

import (
	"strings"
	"time"
)

type Product struct {
	ID               uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string     `json:"name" gorm:"not null"`
	Slug             string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	Description      string     `json:"description" gorm:"type:text;not null"`
	Specifications   string     `json:"specifications,omitempty" gorm:"type:text"`
	Price            float64    `json:"price" gorm:"not null"`
	ComparePrice     *float64   `json:"comparePrice,omitempty"`
	Images           StringList `json:"images" gorm:"type:text"`
	Category         string     `json:"category" gorm:"index;not null"`
	Stock            int        `json:"stock" gorm:"not null;default:0"`
	SKU              string     `json:"sku,omitempty"`
	IsActive         bool       `json:"isActive" gorm:"default:true"`
	IsFeatured       bool       `json:"isFeatured" gorm:"default:false"`
	IsTopRated       bool       `json:"isTopRated" gorm:"default:false"`
	IsTopSale        bool       `json:"isTopSale" gorm:"default:false"`
	Tags             StringList `json:"tags,omitempty" gorm:"type:text"`
	MetaTitle        string     `json:"metaTitle,omitempty"`
	MetaDescription  string     `json:"metaDescription,omitempty"`
	MetaKeywords     string     `json:"metaKeywords,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// PrimaryImage is the first image, used for cart and order snapshots.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

type Banner struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Image       string    `json:"image" gorm:"not null"`
	ButtonText  string    `json:"buttonText" gorm:"not null"`
	ButtonLink  string    `json:"buttonLink" gorm:"default:'/shop'"`
	Position    int       `json:"order" gorm:"column:position;default:0"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

type Blog struct {
	ID               uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string     `json:"title" gorm:"not null"`
	Slug             string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Author           string     `json:"author" gorm:"not null"`
	ShortDescription string     `json:"shortDescription" gorm:"size:350;not null"`
	Content          string     `json:"content" gorm:"type:text;not null"`
	Image            string     `json:"image" gorm:"not null"`
	Tags             StringList `json:"tags,omitempty" gorm:"type:text"`
	Category         string     `json:"category,omitempty"`
	MetaTitle        string     `json:"metaTitle,omitempty"`
	MetaDescription  string     `json:"metaDescription,omitempty"`
	IsActive         bool       `json:"isActive" gorm:"default:true"`
	PublishedAt      time.Time  `json:"publishedAt"`
	CreatedAt        time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

type GalleryItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null"`
	Image     string    `json:"image" gorm:"not null"`
	Caption   string    `json:"caption,omitempty"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Slugify derives a URL-safe, lowercase slug from a name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
