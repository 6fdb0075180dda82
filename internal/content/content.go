// Package content provides the read-only museum content: activities,
// announcements and carousel slides.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
)

// ErrNotFound is returned for an unknown activity or announcement id.
var ErrNotFound = errors.New("content not found")

// Activity is an exhibition or event listed on the activity screen.
type Activity struct {
	ID        int      `json:"id"`
	Tag       string   `json:"tag"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Location  string   `json:"location"`
	Images    []string `json:"images,omitempty"`
	Headline  string   `json:"headline"`
	Publisher string   `json:"publisher"`
	Published string   `json:"published"`
	Region    string   `json:"region"`
	Body      string   `json:"body"`
}

// Announcement is a notice listed on the announcement screen.
type Announcement struct {
	ID       int    `json:"id"`
	Tag      string `json:"tag"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// Slide is one carousel entry.
type Slide struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Carousel is handed to the slideshow widget as-is. The widget reports
// nothing back.
type Carousel struct {
	Slides   []Slide       `json:"slides"`
	Interval time.Duration `json:"interval"`
	Loop     bool          `json:"loop"`
	Dots     bool          `json:"dots"`
}

// IntervalMillis returns the autoplay interval in milliseconds.
func (c Carousel) IntervalMillis() int64 {
	return c.Interval.Milliseconds()
}

// Venue is the museum information card on the home screen.
type Venue struct {
	Name    string
	Address string
	Hours   string
}

// Catalog serves the content and renders detail bodies.
type Catalog struct {
	activities    []Activity
	announcements []Announcement
	home          Carousel
	activity      Carousel
	venue         Venue
	md            goldmark.Markdown
}

// NewCatalog returns the catalog with the built-in content.
func NewCatalog() *Catalog {
	return &Catalog{
		activities:    seedActivities,
		announcements: seedAnnouncements,
		home:          homeCarousel,
		activity:      activityCarousel,
		venue:         venue,
		md:            goldmark.New(),
	}
}

// Activities returns all activities in display order.
func (c *Catalog) Activities() []Activity {
	return c.activities
}

// Activity returns one activity by id.
func (c *Catalog) Activity(id int) (Activity, error) {
	for _, a := range c.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return Activity{}, fmt.Errorf("%w: activity %d", ErrNotFound, id)
}

// Announcements returns all announcements in display order.
func (c *Catalog) Announcements() []Announcement {
	return c.announcements
}

// Announcement returns one announcement by id.
func (c *Catalog) Announcement(id int) (Announcement, error) {
	for _, a := range c.announcements {
		if a.ID == id {
			return a, nil
		}
	}
	return Announcement{}, fmt.Errorf("%w: announcement %d", ErrNotFound, id)
}

// HomeCarousel returns the slideshow at the top of the home screen.
func (c *Catalog) HomeCarousel() Carousel {
	return c.home
}

// ActivityCarousel returns the slideshow at the top of the activity screen.
func (c *Catalog) ActivityCarousel() Carousel {
	return c.activity
}

// Venue returns the museum information card.
func (c *Catalog) Venue() Venue {
	return c.venue
}

// Render converts a markdown body to HTML.
func (c *Catalog) Render(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
