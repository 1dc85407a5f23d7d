package entity

type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

type ContentType string

const (
	ContentMarkdown ContentType = "MARKDOWN"
	ContentHTML     ContentType = "HTML"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID            string      `json:"id"`
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
	Excerpt       string      `json:"excerpt,omitempty"`
	Content       string      `json:"content"`
	ContentType   ContentType `json:"contentType,omitempty"`
	Status        PostStatus  `json:"status"`
	PublishedAt   string      `json:"publishedAt,omitempty"`
	CreatedAt     string      `json:"createdAt,omitempty"`
	Author        string      `json:"author"`
	Category      *Category   `json:"category,omitempty"`
	FeaturedImage string      `json:"featuredImage,omitempty"`
	ReadTime      string      `json:"readTime,omitempty"`
}

// PostInput is the body of PUT /posts/:id.
type PostInput struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	CategoryID    int        `json:"categoryId"`
	Status        PostStatus `json:"status"`
	FeaturedImage string     `json:"featuredImage"`
}

func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}
