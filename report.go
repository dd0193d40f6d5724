package marketscan

import (
	"fmt"
	"strings"
)

// ExcerptLength is the number of characters of content shown per post.
const ExcerptLength = 180

// FormatPost renders a post as a short human-readable report entry.
func FormatPost(p *Post) string {
	var b strings.Builder

	price := "-"
	if v, ok := p.Price(); ok {
		price = fmt.Sprint(v)
	}
	content, _ := p.Content()

	fmt.Fprintf(&b, "$%s - %s - %s\n", price, p.Author, p.Timestamp)
	fmt.Fprintf(&b, "\"%s...\"\n", Excerpt(content, ExcerptLength))
	fmt.Fprintf(&b, "%d+ interested!\n", p.Interest())
	for _, c := range p.Followups() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	b.WriteString(p.Link)
	b.WriteString("\n\n")

	return b.String()
}

// FormatReport renders posts one after another.
func FormatReport(posts []*Post) string {
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(FormatPost(p))
	}
	return b.String()
}

// Excerpt returns at most n characters from the start of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// PostView is the JSON representation of a post in scan output.
type PostView struct {
	ID        string    `json:"id"`
	Price     *int      `json:"price"`
	Author    string    `json:"author"`
	Timestamp string    `json:"timestamp"`
	Link      string    `json:"link"`
	Seller    bool      `json:"seller"`
	Sublet    bool      `json:"sublet"`
	Interest  int       `json:"interest"`
	Content   *string   `json:"content"`
	Comments  []Comment `json:"comments"`
}

// NewPostView returns the JSON view of p, classifying sublets with cfg.
func NewPostView(p *Post, cfg Config) PostView {
	v := PostView{
		ID:        p.Fingerprint(),
		Author:    p.Author,
		Timestamp: p.Timestamp,
		Link:      p.Link,
		Seller:    p.Seller,
		Interest:  p.Interest(),
		Comments:  p.Comments,
	}
	if v.Comments == nil {
		v.Comments = []Comment{}
	}
	if p.Listing != nil {
		price, content := p.Listing.Price, p.Listing.Content
		v.Price = &price
		v.Content = &content
		v.Sublet = cfg.IsSublet(content)
	}
	return v
}
