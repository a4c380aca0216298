package entities

// Statistics summarizes the whole journal.
type Statistics struct {
	TotalExcerpts   int           `json:"totalExcerpts"`
	TotalWords      int           `json:"totalWords"`
	TotalCharacters int           `json:"totalCharacters"`
	TopAuthors      []AuthorCount `json:"topAuthors"`
	TopWorks        []WorkCount   `json:"topWorks"`
	TopTags         []TagCount    `json:"topTags"`
	CreationTrend   []DayCount    `json:"creationTrend"`
}

// AuthorCount is the number of excerpts attributed to an author.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// WorkCount is the number of excerpts taken from a work.
type WorkCount struct {
	Work  string `json:"work"`
	Count int    `json:"count"`
}

// TagCount is the number of excerpts carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// DayCount is the number of excerpts created on a day (YYYY-MM-DD).
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
