package trending

import (
	"math"
	"testing"
	"time"

	"github.com/vidpulse/vidpulse-go/internal/model"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// testVideo builds a READY video with the given counters, published the
// given duration before the reference time.
func testVideo(id string, age time.Duration, views, likes, dislikes, comments, subs int64) model.Video {
	published := refNow.Add(-age)
	return model.Video{
		ID:           id,
		Title:        "test video " + id,
		ViewCount:    views,
		LikeCount:    likes,
		DislikeCount: dislikes,
		CommentCount: comments,
		Status:       model.StatusReady,
		CreatedAt:    published,
		PublishedAt:  published,
		Channel:      model.Channel{ID: "ch-" + id, SubscriberCount: subs},
	}
}

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestComputeScore_ReferenceScenario(t *testing.T) {
	// Published exactly 1 hour ago: 1000 views, 100 likes, 10 dislikes,
	// 20 comments, channel with 0 subscribers.
	e := NewEngine(DefaultConfig())
	v := testVideo("ref", time.Hour, 1000, 100, 10, 20, 0)

	s := e.ComputeScore(v, refNow)

	// viewVelocity = 1000/1h, engagementRate = 120/1000, likeRatio = 100/110,
	// recency = 1 - 1/7 (day count floored at 1), subscriberBoost = 1.0.
	if !almostEqual(s.Factors.Engagement, 0.12, 1e-9) {
		t.Errorf("engagement rate = %.6f, want 0.12", s.Factors.Engagement)
	}
	if !almostEqual(s.Factors.Recency, 6.0/7.0, 1e-9) {
		t.Errorf("recency = %.6f, want %.6f", s.Factors.Recency, 6.0/7.0)
	}
	if s.Factors.SubscriberBoost != 1.0 {
		t.Errorf("subscriber boost = %.4f, want 1.0", s.Factors.SubscriberBoost)
	}

	// base = 0.4*1000 + 0.25*(0.12*1000) + 0.15*(100/110*100)
	//      + 0.10*(0.02*100) + 0.10*(6/7*50)
	//      = 400 + 30 + 13.6364 + 0.2 + 4.2857 = 448.1221
	want := 400 + 30 + 150.0/11 + 0.2 + 30.0/7
	if !almostEqual(s.Score, want, 1e-6) {
		t.Errorf("score = %.6f, want %.6f", s.Score, want)
	}
	if s.VideoID != "ref" {
		t.Errorf("videoId = %q, want %q", s.VideoID, "ref")
	}
}

func TestComputeScore_NeverNaNOrNegative(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name  string
		video model.Video
	}{
		{"all-zero counters", testVideo("a", time.Hour, 0, 0, 0, 0, 0)},
		{"zero views with likes", testVideo("b", time.Hour, 0, 50, 5, 10, 0)},
		{"zero reactions", testVideo("c", 48 * time.Hour, 500, 0, 0, 0, 0)},
		{"published exactly now", testVideo("d", 0, 100, 10, 0, 1, 0)},
		{"published in the future", testVideo("e", -time.Hour, 100, 10, 0, 1, 0)},
		{"very old video", testVideo("f", 365 * 24 * time.Hour, 1_000_000, 5000, 100, 900, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.ComputeScore(tt.video, refNow)
			if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
				t.Fatalf("score = %v, want finite", s.Score)
			}
			if s.Score < 0 {
				t.Errorf("score = %.6f, want >= 0", s.Score)
			}
			if math.IsNaN(s.Factors.Engagement) || math.IsNaN(s.Factors.Recency) {
				t.Error("factors contain NaN")
			}
		})
	}
}

func TestComputeScore_Idempotent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := testVideo("x", 5*time.Hour, 12345, 678, 90, 123, 40_000)

	first := e.ComputeScore(v, refNow)
	second := e.ComputeScore(v, refNow)

	if first.Score != second.Score {
		t.Errorf("scores differ across identical calls: %.10f vs %.10f", first.Score, second.Score)
	}
	if first.Factors != second.Factors {
		t.Errorf("factors differ across identical calls: %+v vs %+v", first.Factors, second.Factors)
	}
}

func TestComputeScore_MoreViewsNeverLowersScore(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Counters stay in the realistic regime (likes+comments well below
	// views); there the velocity gain always outweighs the engagement-rate
	// dilution.
	prev := -1.0
	for _, views := range []int64{1000, 2000, 5000, 10_000, 100_000} {
		v := testVideo("m", 6*time.Hour, views, 50, 5, 10, 0)
		score := e.ComputeScore(v, refNow).Score
		if score < prev {
			t.Errorf("score dropped from %.4f to %.4f when views rose to %d", prev, score, views)
		}
		prev = score
	}
}

func TestComputeScore_MoreDislikesNeverRaisesScore(t *testing.T) {
	e := NewEngine(DefaultConfig())

	prev := math.Inf(1)
	for _, dislikes := range []int64{0, 5, 50, 500, 5000} {
		v := testVideo("d", 6*time.Hour, 10_000, 200, dislikes, 30, 0)
		score := e.ComputeScore(v, refNow).Score
		if score > prev {
			t.Errorf("score rose from %.4f to %.4f when dislikes rose to %d", prev, score, dislikes)
		}
		prev = score
	}
}

func TestComputeScore_SubscriberBoost(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name string
		subs int64
		want float64
	}{
		{"no subscribers", 0, 1.0},
		{"quarter million", 250_000, 1.25},
		{"exactly at cap", 500_000, 1.5},
		{"ten million capped", 10_000_000, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testVideo("s", 2*time.Hour, 1000, 100, 0, 10, tt.subs)
			got := e.ComputeScore(v, refNow).Factors.SubscriberBoost
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("boost = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestComputeScore_DoesNotMutateInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := testVideo("immut", 3*time.Hour, 777, 77, 7, 17, 1234)
	before := v

	e.ComputeScore(v, refNow)

	if v != before {
		t.Error("input video was mutated")
	}
}

func TestRankTrending_ExcludesIneligible(t *testing.T) {
	e := NewEngine(DefaultConfig())

	processing := testVideo("processing", time.Hour, 9999, 999, 0, 99, 0)
	processing.Status = model.StatusProcessing
	failed := testVideo("failed", time.Hour, 9999, 999, 0, 99, 0)
	failed.Status = model.StatusFailed
	zeroViews := testVideo("zero-views", time.Hour, 0, 0, 0, 0, 0)
	tooOld := testVideo("too-old", 40*24*time.Hour, 1_000_000, 50_000, 100, 9000, 0)
	ok := testVideo("ok", 2*time.Hour, 100, 10, 1, 2, 0)

	got := e.RankTrending([]model.Video{processing, failed, zeroViews, tooOld, ok}, refNow, 50)

	if len(got) != 1 {
		t.Fatalf("ranked %d videos, want 1", len(got))
	}
	if got[0].ID != "ok" {
		t.Errorf("ranked video = %q, want %q", got[0].ID, "ok")
	}
}

func TestRankTrending_ThirtyDayWindowBoundary(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Two identical videos except one is 40 days old — the window must
	// drop the old one no matter how strong its raw numbers are.
	recent := testVideo("recent", 10*24*time.Hour, 1000, 100, 0, 20, 0)
	old := testVideo("old", 40*24*time.Hour, 1000, 100, 0, 20, 0)

	got := e.RankTrending([]model.Video{old, recent}, refNow, 50)

	if len(got) != 1 || got[0].ID != "recent" {
		t.Fatalf("got %d videos (first %v), want only %q", len(got), idsOf(got), "recent")
	}
}

func TestRankTrending_OrdersByScoreDescending(t *testing.T) {
	e := NewEngine(DefaultConfig())

	slow := testVideo("slow", 24*time.Hour, 100, 2, 0, 1, 0)
	medium := testVideo("medium", 24*time.Hour, 10_000, 500, 10, 80, 0)
	fast := testVideo("fast", 24*time.Hour, 500_000, 40_000, 200, 6000, 0)

	got := e.RankTrending([]model.Video{slow, fast, medium}, refNow, 50)

	want := []string{"fast", "medium", "slow"}
	if len(got) != len(want) {
		t.Fatalf("ranked %d videos, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestRankTrending_DeterministicTieBreak(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Identical metrics and age → identical scores. Newer publishedAt wins;
	// equal publishedAt falls back to ID order.
	a := testVideo("aaa", 4*time.Hour, 1000, 100, 10, 20, 0)
	b := testVideo("bbb", 4*time.Hour, 1000, 100, 10, 20, 0)
	newer := testVideo("zzz", 3*time.Hour, 1000, 100, 10, 20, 0)

	forward := e.RankTrending([]model.Video{a, b, newer}, refNow, 50)
	reversed := e.RankTrending([]model.Video{newer, b, a}, refNow, 50)

	if len(forward) != 3 || len(reversed) != 3 {
		t.Fatalf("ranked %d/%d videos, want 3/3", len(forward), len(reversed))
	}
	for i := range forward {
		if forward[i].ID != reversed[i].ID {
			t.Fatalf("order depends on input order: %v vs %v", idsOf(forward), idsOf(reversed))
		}
	}
	// a and b tie exactly: ID ascending
	if posOf(forward, "aaa") > posOf(forward, "bbb") {
		t.Errorf("tie-break by ID broken: %v", idsOf(forward))
	}
}

func TestRankTrending_Limit(t *testing.T) {
	e := NewEngine(DefaultConfig())

	var videos []model.Video
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		videos = append(videos, testVideo(id, 2*time.Hour, 1000, 50, 0, 5, 0))
	}

	if got := e.RankTrending(videos, refNow, 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d videos", len(got))
	}
	if got := e.RankTrending(videos, refNow, 100); len(got) != 5 {
		t.Errorf("limit above input size returned %d videos, want 5", len(got))
	}
	// Non-positive limit falls back to the default
	if got := e.RankTrending(videos, refNow, 0); len(got) != 5 {
		t.Errorf("zero limit returned %d videos, want 5", len(got))
	}
}

func TestRankByPeriod_TodayExcludesOlderThan24h(t *testing.T) {
	e := NewEngine(DefaultConfig())

	fresh := testVideo("fresh", 6*time.Hour, 1000, 100, 0, 20, 0)
	yesterday := testVideo("yesterday", 30*time.Hour, 1000, 100, 0, 20, 0)

	got := e.RankByPeriod([]model.Video{yesterday, fresh}, PeriodToday, refNow, 10)

	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("got %v, want only %q", idsOf(got), "fresh")
	}
}

func TestRankByPeriod_Windows(t *testing.T) {
	e := NewEngine(DefaultConfig())

	videos := []model.Video{
		testVideo("h6", 6*time.Hour, 100, 10, 0, 1, 0),
		testVideo("d3", 3*24*time.Hour, 100, 10, 0, 1, 0),
		testVideo("d20", 20*24*time.Hour, 100, 10, 0, 1, 0),
	}

	tests := []struct {
		period string
		want   int
	}{
		{PeriodToday, 1},
		{PeriodWeek, 2},
		{PeriodMonth, 3},
		{PeriodAll, 3},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got := e.RankByPeriod(videos, tt.period, refNow, 20)
			if len(got) != tt.want {
				t.Errorf("period %q ranked %d videos, want %d", tt.period, len(got), tt.want)
			}
		})
	}
}

func TestRankByCategory(t *testing.T) {
	e := NewEngine(DefaultConfig())

	gaming := testVideo("g1", 2*time.Hour, 5000, 400, 10, 60, 0)
	gaming.Title = "Insane speedrun world record"
	music := testVideo("m1", 2*time.Hour, 8000, 700, 20, 90, 0)
	music.Title = "Acoustic cover of a classic song"
	plain := testVideo("p1", 2*time.Hour, 3000, 200, 5, 30, 0)
	plain.Title = "Untitled upload"

	all := []model.Video{gaming, music, plain}

	got := e.RankByCategory(all, "gaming", refNow, 10)
	if len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("gaming ranking = %v, want [g1]", idsOf(got))
	}

	got = e.RankByCategory(all, "music", refNow, 10)
	if len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("music ranking = %v, want [m1]", idsOf(got))
	}

	// "all" and empty category rank everything
	if got = e.RankByCategory(all, CategoryAll, refNow, 10); len(got) != 3 {
		t.Errorf("category all ranked %d videos, want 3", len(got))
	}
	if got = e.RankByCategory(all, "", refNow, 10); len(got) != 3 {
		t.Errorf("empty category ranked %d videos, want 3", len(got))
	}
}

func TestRank_CombinesCategoryAndPeriod(t *testing.T) {
	e := NewEngine(DefaultConfig())

	freshGaming := testVideo("fg", 2*time.Hour, 5000, 400, 10, 60, 0)
	freshGaming.Title = "Ranked gameplay session"
	staleGaming := testVideo("sg", 3*24*time.Hour, 5000, 400, 10, 60, 0)
	staleGaming.Title = "Old gameplay archive"
	freshMusic := testVideo("fm", 2*time.Hour, 5000, 400, 10, 60, 0)
	freshMusic.Title = "New song premiere"

	got := e.Rank([]model.Video{freshGaming, staleGaming, freshMusic}, "gaming", PeriodToday, refNow, 10)

	if len(got) != 1 || got[0].ID != "fg" {
		t.Errorf("got %v, want [fg]", idsOf(got))
	}
}

func TestInsights_EmptyInput(t *testing.T) {
	e := NewEngine(DefaultConfig())

	got := e.Insights(nil, refNow)

	if got.TotalVideos != 0 {
		t.Errorf("totalVideos = %d, want 0", got.TotalVideos)
	}
	if got.AverageScore != 0 {
		t.Errorf("averageScore = %v, want 0", got.AverageScore)
	}
	if got.TopCategories == nil || len(got.TopCategories) != 0 {
		t.Errorf("topCategories = %v, want empty slice", got.TopCategories)
	}
	f := got.TrendingFactors
	if f.AverageViews != 0 || f.AverageEngagement != 0 || f.AverageRecency != 0 {
		t.Errorf("trendingFactors = %+v, want all zero", f)
	}
}

func TestInsights_Averages(t *testing.T) {
	e := NewEngine(DefaultConfig())

	a := testVideo("a", 2*time.Hour, 1000, 100, 0, 20, 0)
	a.Title = "Morning workout routine"
	b := testVideo("b", 2*time.Hour, 3000, 150, 0, 60, 0)
	b.Title = "Full body workout session"

	got := e.Insights([]model.Video{a, b}, refNow)

	if got.TotalVideos != 2 {
		t.Fatalf("totalVideos = %d, want 2", got.TotalVideos)
	}
	if !almostEqual(got.TrendingFactors.AverageViews, 2000, 1e-9) {
		t.Errorf("averageViews = %.2f, want 2000", got.TrendingFactors.AverageViews)
	}

	sa := e.ComputeScore(a, refNow)
	sb := e.ComputeScore(b, refNow)
	wantScore := (sa.Score + sb.Score) / 2
	if !almostEqual(got.AverageScore, wantScore, 1e-9) {
		t.Errorf("averageScore = %.6f, want %.6f", got.AverageScore, wantScore)
	}
	wantEngagement := (sa.Factors.Engagement + sb.Factors.Engagement) / 2
	if !almostEqual(got.TrendingFactors.AverageEngagement, wantEngagement, 1e-9) {
		t.Errorf("averageEngagement = %.6f, want %.6f", got.TrendingFactors.AverageEngagement, wantEngagement)
	}

	// Both titles hit the sports keyword table
	if len(got.TopCategories) != 1 || got.TopCategories[0].Category != "sports" || got.TopCategories[0].Count != 2 {
		t.Errorf("topCategories = %v, want [{sports 2}]", got.TopCategories)
	}
}

func TestInsights_TopCategoriesCapped(t *testing.T) {
	e := NewEngine(DefaultConfig())

	titles := map[string]string{
		"music":         "new album drop",
		"gaming":        "ranked gameplay",
		"education":     "calculus tutorial",
		"entertainment": "funny moments",
		"technology":    "gadget review",
		"sports":        "match highlights",
		"news":          "breaking report",
	}

	var videos []model.Video
	i := 0
	for _, title := range titles {
		v := testVideo(string(rune('a'+i)), 2*time.Hour, 1000, 50, 0, 5, 0)
		v.Title = title
		videos = append(videos, v)
		i++
	}

	got := e.Insights(videos, refNow)

	if len(got.TopCategories) != 5 {
		t.Errorf("topCategories has %d entries, want 5", len(got.TopCategories))
	}
}

func idsOf(videos []model.Video) []string {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}

func posOf(videos []model.Video, id string) int {
	for i, v := range videos {
		if v.ID == id {
			return i
		}
	}
	return -1
}
