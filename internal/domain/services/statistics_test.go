package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
)

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil)

	assert.Equal(t, 0, stats.TotalExcerpts)
	assert.Equal(t, 0, stats.TotalWords)
	assert.Equal(t, 0, stats.TotalCharacters)
	assert.Empty(t, stats.TopAuthors)
	assert.Empty(t, stats.TopWorks)
	assert.Empty(t, stats.TopTags)
	assert.Empty(t, stats.CreationTrend)
}

func TestCalculateStatistics_TotalExcerpts(t *testing.T) {
	excerpts := sampleExcerpts()
	assert.Equal(t, len(excerpts), CalculateStatistics(excerpts).TotalExcerpts)
}

func TestCalculateStatistics_TopAuthors(t *testing.T) {
	excerpts := []entities.Excerpt{
		{ID: "1", Author: "A"},
		{ID: "2", Author: "A"},
		{ID: "3", Author: "B"},
	}

	stats := CalculateStatistics(excerpts)

	assert.Equal(t, []entities.AuthorCount{
		{Author: "A", Count: 2},
		{Author: "B", Count: 1},
	}, stats.TopAuthors)
}

func TestCalculateStatistics_TiesKeepFirstSeenOrder(t *testing.T) {
	excerpts := []entities.Excerpt{
		{ID: "1", WorkTitle: "Z", Tags: []string{"y", "x"}},
		{ID: "2", WorkTitle: "M", Tags: []string{"x"}},
		{ID: "3", WorkTitle: "A", Tags: []string{"w"}},
	}

	stats := CalculateStatistics(excerpts)

	assert.Equal(t, []entities.WorkCount{
		{Work: "Z", Count: 1},
		{Work: "M", Count: 1},
		{Work: "A", Count: 1},
	}, stats.TopWorks)
	assert.Equal(t, []entities.TagCount{
		{Tag: "x", Count: 2},
		{Tag: "y", Count: 1},
		{Tag: "w", Count: 1},
	}, stats.TopTags)
}

func TestCalculateStatistics_TopListsAreTruncated(t *testing.T) {
	var excerpts []entities.Excerpt
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("n%02d", i)
		excerpts = append(excerpts, entities.Excerpt{
			ID:        name,
			Author:    name,
			WorkTitle: name,
			Tags:      []string{name},
		})
	}

	stats := CalculateStatistics(excerpts)

	assert.Len(t, stats.TopAuthors, TopAuthorsLimit)
	assert.Len(t, stats.TopWorks, TopWorksLimit)
	assert.Len(t, stats.TopTags, TopTagsLimit)
}

func TestCalculateStatistics_WordsAndCharacters(t *testing.T) {
	excerpts := []entities.Excerpt{
		{Content: "你好，世界！", Annotation: "注"},
		{Content: "Hello, world 42."},
	}

	stats := CalculateStatistics(excerpts)

	// 4 ideographs + "Helloworld42".
	assert.Equal(t, 4+12, stats.TotalWords)
	// 6 + 1 + 16 code points.
	assert.Equal(t, 23, stats.TotalCharacters)
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("，。！？ ...\n"))
	assert.Equal(t, 3, CountWords("a1中"))
	assert.Equal(t, 0, CountWords("é"), "only ASCII letters count")
}

func TestCalculateStatistics_CreationTrend(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	var excerpts []entities.Excerpt
	// 35 distinct days, every other calendar day, two excerpts on the last day.
	for i := 0; i < 35; i++ {
		excerpts = append(excerpts, entities.Excerpt{
			ID:        fmt.Sprintf("%d", i),
			CreatedAt: base.AddDate(0, 0, 2*i),
		})
	}
	last := excerpts[len(excerpts)-1].CreatedAt
	excerpts = append(excerpts, entities.Excerpt{ID: "extra", CreatedAt: last.Add(time.Hour)})

	stats := CalculateStatistics(excerpts)

	require.Len(t, stats.CreationTrend, CreationTrendDays)
	assert.Equal(t, base.AddDate(0, 0, 2*5).Format(entities.DateLayout), stats.CreationTrend[0].Date)
	assert.Equal(t, last.Format(entities.DateLayout), stats.CreationTrend[29].Date)
	assert.Equal(t, 2, stats.CreationTrend[29].Count)
	for i := 1; i < len(stats.CreationTrend); i++ {
		assert.Less(t, stats.CreationTrend[i-1].Date, stats.CreationTrend[i].Date)
	}
}

func TestCalculateStatistics_CreationTrendUsesStoredOffset(t *testing.T) {
	var excerpts []entities.Excerpt
	err := json.Unmarshal([]byte(`[
		{"id":"1","createdAt":"2024-01-01T01:00:00+08:00"},
		{"id":"2","createdAt":"2024-01-01T23:30:00-05:00"},
		{"id":"3","createdAt":""}
	]`), &excerpts)
	require.NoError(t, err)

	stats := CalculateStatistics(excerpts)

	require.Len(t, stats.CreationTrend, 1)
	assert.Equal(t, entities.DayCount{Date: "2024-01-01", Count: 2}, stats.CreationTrend[0])
}
